package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/colorium/nameconv/pkg/nameconv"
	"github.com/colorium/nameconv/pkg/nameconv/convfile"
)

func newRulesCmd(g *globalOptions) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the active convention",
		Long: `Print the rules of the active convention in declaration order.

With --yaml the convention is printed as a convention file, which is a
starting point for a project nameconv.yaml:

  nameconv rules --yaml > nameconv.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, g)
			if err != nil {
				return err
			}
			if asYAML {
				return printYAML(cmd.OutOrStdout(), rt.conv)
			}
			return printRules(cmd.OutOrStdout(), rt.conv, rt.source)
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false,
		"Print the convention as a convention file")
	return cmd
}

func printYAML(out io.Writer, conv *nameconv.Convention) error {
	data, err := convfile.Marshal(convfile.FromConvention(conv))
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// printRules writes one line per rule; nested rules are indented under
// their composed rule.
func printRules(out io.Writer, conv *nameconv.Convention, source string) error {
	if _, err := fmt.Fprintf(out, "convention: %s (separator %q)\n", source, conv.Separator()); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	writeRules(tw, conv, 0)
	return tw.Flush()
}

func writeRules(w io.Writer, conv *nameconv.Convention, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, r := range conv.Rules() {
		var detail string
		switch r := r.(type) {
		case *nameconv.PatternRule:
			detail = r.Expr()
		case *nameconv.AlternativeRule:
			detail = strings.Join(r.Exprs(), " | ")
		case *nameconv.ComposedRule:
			detail = fmt.Sprintf("separator %q", r.Convention().Separator())
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", indent, r.Name(), r.Kind(), r.Presence(), detail)

		if cr, ok := r.(*nameconv.ComposedRule); ok {
			writeRules(w, cr.Convention(), depth+1)
		}
	}
}
