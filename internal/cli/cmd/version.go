package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/schemewatch/internal/domain/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "schemewatch %s\n", buildInfo.Version)
		fmt.Fprintf(out, "  commit:  %s\n", buildInfo.Commit)
		fmt.Fprintf(out, "  built:   %s\n", buildInfo.BuildDate)
		fmt.Fprintf(out, "  go:      %s\n", buildInfo.GoVersion)
		fmt.Fprintf(out, "  repo:    %s\n", build.RepoURL())
		fmt.Fprintf(out, "  authors: %s\n", strings.Join(build.Contributors(), ", "))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
