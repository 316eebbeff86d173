package model

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bnema/schemewatch/internal/logging"
	"github.com/bnema/schemewatch/pkg/colorscheme"
)

// StreamRenderer prints one line per render to a writer. It is the plain
// counterpart of WatchModel for pipes and scripts.
type StreamRenderer struct {
	read    ReadFunc
	host    colorscheme.Host
	out     io.Writer
	asJSON  bool
	pending chan struct{}
	now     func() time.Time
}

// NewStreamRenderer creates a renderer writing to out.
func NewStreamRenderer(read ReadFunc, host colorscheme.Host, out io.Writer, asJSON bool) *StreamRenderer {
	return &StreamRenderer{
		read:    read,
		host:    host,
		out:     out,
		asJSON:  asJSON,
		pending: make(chan struct{}, 1),
		now:     time.Now,
	}
}

// Schedule requests a re-render. Requests made while one is already pending
// are coalesced into it.
func (r *StreamRenderer) Schedule() {
	select {
	case r.pending <- struct{}{}:
	default:
	}
}

// Run renders once, then once per scheduled request, until ctx is done.
func (r *StreamRenderer) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)

	if err := r.render(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.pending:
			log.Debug().Msg("re-render requested")
			if err := r.render(); err != nil {
				return err
			}
		}
	}
}

func (r *StreamRenderer) render() error {
	scheme := r.read(r.host, r.Schedule)

	if r.asJSON {
		data, err := json.Marshal(scheme)
		if err != nil {
			return fmt.Errorf("encode scheme: %w", err)
		}
		_, err = fmt.Fprintln(r.out, string(data))
		if err != nil {
			return fmt.Errorf("write scheme: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(r.out, "%s %s\n", r.now().Format(time.RFC3339), scheme); err != nil {
		return fmt.Errorf("write scheme: %w", err)
	}
	return nil
}
