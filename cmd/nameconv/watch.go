package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/colorium/nameconv/internal/scenename"
	"github.com/colorium/nameconv/internal/tailer"
)

func newWatchCmd(g *globalOptions) *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Follow a names manifest and check appended lines",
		Long: `Follow a file and check every line appended to it, like tail -f.

Lines are normalized the way check normalizes stdin. The file is reopened
if it is rotated. Stop with Ctrl+C.

Examples:
  # Check names as an exporter appends them
  nameconv watch exports.txt

  # Check the existing lines first, using polling on a network share
  nameconv watch --from-start --poll //server/share/exports.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, g)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(),
				os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, rt, args[0], cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().Bool("poll", false,
		"Poll for changes instead of using file system notifications")
	cmd.Flags().Bool("from-start", false,
		"Check the lines already in the file before following it")
	cmd.Flags().BoolVar(&opts.decode, "asset", false,
		"Decode accepted names as Colorium assets")
	cmd.Flags().BoolVar(&opts.keepExt, "keep-ext", false,
		"Keep file extensions as part of the name")
	return cmd
}

// runWatch checks lines appended to path until ctx is cancelled or the
// file can no longer be followed.
func runWatch(ctx context.Context, rt *runtime, path string, out io.Writer, opts checkOptions) error {
	cfg := tailer.DefaultConfig()
	cfg.Poll = rt.settings.Watch.Poll
	cfg.FromStart = rt.settings.Watch.FromStart

	t, err := tailer.New(ctx, path, cfg)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	defer t.Stop()

	rt.logger.Info("watching", "path", path, "convention", rt.source)

	nameOpts := rt.nameOptions(opts.keepExt)
	lines, errs := t.Lines(), t.Errors()
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			name, ok := scenename.NormalizeWith(line, nameOpts)
			if !ok {
				continue
			}
			r := newReport(rt.conv, name, opts.decode, rt.logger)
			if err := OutputReport(rt.settings.Format, r, out); err != nil {
				return err
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			rt.logger.Warn("watch error", "path", path, "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}
