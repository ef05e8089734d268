package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/colorium/nameconv/internal/scenename"
)

// maxNameLine bounds one line read from stdin.
const maxNameLine = 64 * 1024

func newCheckCmd(g *globalOptions) *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check [NAME...]",
		Short: "Check names against the convention",
		Long: `Check names given as arguments, or read from stdin one per line.

Directory components and a trailing file extension are dropped, blank
lines and lines starting with # or // are skipped. Extensions are kept
with --keep-ext or when the convention separator is a dot. Reports are
written as JSON Lines by default.

Examples:
  # Check one name with the built-in convention
  nameconv check mdl_policeCar_v001

  # Check a manifest, failing if any name is rejected
  nameconv check --strict < manifest.txt

  # Use a project convention and readable output
  nameconv check -c studio.yaml -f pretty shots/*.ma

  # List rejected names with jq
  find . -name '*.ma' | nameconv check | jq -r 'select(.valid | not) | .name'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, g)
			if err != nil {
				return err
			}
			return runCheck(rt, args, cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().Bool("strict", false,
		"Exit with an error if any name is rejected")
	cmd.Flags().BoolVar(&opts.decode, "asset", false,
		"Decode accepted names as Colorium assets")
	cmd.Flags().BoolVar(&opts.keepExt, "keep-ext", false,
		"Keep file extensions as part of the name")
	return cmd
}

// checkOptions are the name handling flags shared by check and watch.
type checkOptions struct {
	decode  bool
	keepExt bool
}

func runCheck(rt *runtime, args []string, in io.Reader, out io.Writer, opts checkOptions) error {
	var checked, rejected int
	nameOpts := rt.nameOptions(opts.keepExt)

	check := func(line string) error {
		name, ok := scenename.NormalizeWith(line, nameOpts)
		if !ok {
			return nil
		}
		r := newReport(rt.conv, name, opts.decode, rt.logger)
		checked++
		if !r.Valid {
			rejected++
		}
		return OutputReport(rt.settings.Format, r, out)
	}

	if len(args) > 0 {
		for _, arg := range args {
			if err := check(arg); err != nil {
				return err
			}
		}
	} else {
		sc := bufio.NewScanner(in)
		sc.Buffer(make([]byte, 0, 4096), maxNameLine)
		for sc.Scan() {
			if err := check(sc.Text()); err != nil {
				return err
			}
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("failed to read names: %w", err)
		}
	}

	rt.logger.Info("check finished", "checked", checked, "rejected", rejected)

	if rt.settings.Strict && rejected > 0 {
		return fmt.Errorf("%d of %d names rejected", rejected, checked)
	}
	return nil
}
