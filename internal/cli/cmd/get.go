package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bnema/schemewatch/pkg/colorscheme"
)

var getJSON bool

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the preferred color scheme once",
	Long: `Read the preferred color scheme and print it.

Prints "dark" or "light". When no preference can be determined the output
is "unavailable: <reason>" and the exit status is non-zero.

Examples:
  schemewatch get
  schemewatch get --json`,
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().BoolVar(&getJSON, "json", false, "print as JSON")
}

func runGet(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	scheme := colorscheme.Use(app.Host, nil)
	if err := printScheme(cmd.OutOrStdout(), scheme, getJSON); err != nil {
		return err
	}
	if scheme.IsUnavailable() {
		return fmt.Errorf("color scheme unavailable")
	}
	return nil
}

func printScheme(w io.Writer, scheme colorscheme.Scheme, asJSON bool) error {
	if !asJSON {
		_, err := fmt.Fprintln(w, scheme.String())
		return err
	}
	data, err := json.Marshal(scheme)
	if err != nil {
		return fmt.Errorf("encode scheme: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
