package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/httpspan/internal/errorutil"
	"github.com/ghettovoice/httpspan/log"
	"github.com/ghettovoice/httpspan/parser"
)

type rootOptions struct {
	response      bool
	chunkSize     int
	maxHeaderSize int
	logFormat     string
	verbose       bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "httpspan [file...]",
		Short: "Parse HTTP/1.x message streams and print parse events",
		Long: `Parse HTTP/1.x message streams and print parse events.

Every file is parsed as a separate connection and a failed file does not
stop the rest. Without arguments the stream is read from stdin. Input is fed
to the parser in chunks of --chunk-size bytes, which makes it easy to check
how messages split across reads are handled.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.chunkSize <= 0 {
				return errtrace.Wrap(fmt.Errorf("invalid --chunk-size %d", opts.chunkSize))
			}
			l, err := newLogger(cmd.ErrOrStderr(), opts.logFormat, opts.verbose)
			if err != nil {
				return errtrace.Wrap(err)
			}

			typ := parser.TypeRequest
			if opts.response {
				typ = parser.TypeResponse
			}
			p := newPrinter(cmd.OutOrStdout())
			s, err := parser.New(typ, p, &parser.Options{
				MaxHeaderSize: opts.maxHeaderSize,
				Log:           l,
			})
			if err != nil {
				return errtrace.Wrap(err)
			}

			if len(args) == 0 {
				return errtrace.Wrap(run(s, p, cmd.InOrStdin(), opts.chunkSize))
			}
			var errs []error
			for i, name := range args {
				if i > 0 {
					if err := s.Reinitialize(typ); err != nil {
						return errtrace.Wrap(err)
					}
				}
				p.printf("== %s\n", name)
				if err := runFile(s, p, name, opts.chunkSize); err != nil {
					p.printf("error: %v\n", err)
					errs = append(errs, fmt.Errorf("%s: %w", name, err))
				}
			}
			return errtrace.Wrap(errorutil.JoinPrefix("parsing failed:", errs...))
		},
	}

	cmd.Flags().BoolVar(&opts.response, "response", false, "parse responses instead of requests")
	cmd.Flags().IntVar(&opts.chunkSize, "chunk-size", 4096, "bytes fed to the parser per call")
	cmd.Flags().IntVar(&opts.maxHeaderSize, "max-header-size", parser.DefaultMaxHeaderSize, "limit of a message head size")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "console", "log format: console, dev or json")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log parser debug events")

	return cmd
}

func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	lvl := slog.LevelWarn
	if verbose {
		lvl = slog.LevelDebug
	}
	switch format {
	case "console":
		return log.NewConsole(w, lvl), nil
	case "dev":
		return log.NewDev(w, lvl), nil
	case "json":
		return log.NewJSON(w, lvl), nil
	default:
		return nil, errtrace.Wrap(fmt.Errorf("unknown --log-format %q", format))
	}
}

func runFile(s *parser.Session, p *printer, name string, chunkSize int) error {
	f, err := os.Open(name)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer f.Close()
	return errtrace.Wrap(run(s, p, f, chunkSize))
}

// run feeds r to s and finishes the stream at EOF.
func run(s *parser.Session, p *printer, r io.Reader, chunkSize int) error {
	buf := make([]byte, chunkSize)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			consumed, err := s.Execute(buf, 0, n)
			if err != nil {
				return errtrace.Wrap(err)
			}
			if s.State() == parser.StateUpgraded {
				p.printf("upgraded, %d bytes left unparsed in the read\n", n-consumed)
				return nil
			}
		}
		if errors.Is(rerr, io.EOF) {
			return errtrace.Wrap(s.Finish())
		}
		if rerr != nil {
			return errtrace.Wrap(rerr)
		}
	}
}
