package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/lib2sch/pkg/easyeda"
	"github.com/OpenTraceLab/lib2sch/pkg/kicad/library"
)

var infoCmd = &cobra.Command{
	Use:   "info <library_file> [component]",
	Short: "Show library information",
	Long: `Display information about a KiCad .lib file.

Without component argument: lists every symbol
With component argument: shows fields and pins of that symbol (aliases work too)`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

var graphicKinds = []easyeda.Kind{
	easyeda.KindPin,
	easyeda.KindRect,
	easyeda.KindEllipse,
	easyeda.KindArc,
	easyeda.KindPolygon,
	easyeda.KindPolyline,
	easyeda.KindAnnotation,
}

func runInfo(cmd *cobra.Command, args []string) error {
	lib, err := library.NewReader(library.WithLogger(getLogger())).ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("error reading library: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(args) >= 2 {
		return showDefinition(out, lib, args[1])
	}

	showLibrarySummary(out, lib, args[0])
	return nil
}

func showLibrarySummary(out io.Writer, lib *library.Library, filename string) {
	fmt.Fprintf(out, "Library: %s (%s)\n", lib.Name, filename)
	fmt.Fprintf(out, "Symbols: %d\n", lib.Len())
	fmt.Fprintf(out, "Skipped: %d\n", len(lib.Errors))
	fmt.Fprintf(out, "Warnings: %d\n", len(lib.Warnings))
	fmt.Fprintln(out)

	for _, def := range lib.Definitions() {
		fmt.Fprintf(out, "%s (%s)\n", def.Name, def.Prefix)
		if len(def.Aliases) > 0 {
			fmt.Fprintf(out, "  Aliases: %s\n", strings.Join(def.Aliases, ", "))
		}
		if fp := def.Footprint(); fp != "" {
			fmt.Fprintf(out, "  Footprint: %s\n", fp)
		}

		var counts []string
		for _, kind := range graphicKinds {
			if n := def.Count(kind); n > 0 {
				counts = append(counts, fmt.Sprintf("%d %s", n, kind))
			}
		}
		if len(counts) > 0 {
			fmt.Fprintf(out, "  Graphics: %s\n", strings.Join(counts, ", "))
		}
	}

	if len(lib.Errors) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Skipped symbols:")
		for _, e := range lib.Errors {
			fmt.Fprintf(out, "  %v\n", e)
		}
	}

	if len(lib.Warnings) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Warnings:")
		for _, w := range lib.Warnings {
			fmt.Fprintf(out, "  %s\n", w)
		}
	}
}

func showDefinition(out io.Writer, lib *library.Library, name string) error {
	def, ok := lib.Lookup(name)
	if !ok {
		return fmt.Errorf("symbol '%s' not found", name)
	}

	fmt.Fprintf(out, "Symbol: %s\n", def.Name)
	if name != def.Name {
		fmt.Fprintf(out, "Alias: %s\n", name)
	}
	fmt.Fprintf(out, "Reference: %s\n", def.Prefix)
	fmt.Fprintf(out, "Line: %d\n", def.Line)
	if len(def.Footprints) > 0 {
		fmt.Fprintf(out, "Footprint filters: %s\n", strings.Join(def.Footprints, " "))
	}
	fmt.Fprintln(out)

	if len(def.Fields) > 0 {
		fmt.Fprintln(out, "Fields:")
		for _, f := range def.Fields {
			label := fmt.Sprintf("F%d", f.Index)
			if f.Name != "" {
				label += " " + f.Name
			}
			fmt.Fprintf(out, "  %s: %s\n", label, f.Value)
		}
		fmt.Fprintln(out)
	}

	var pins []*easyeda.Pin
	for _, g := range def.Graphics {
		if p, ok := g.(*easyeda.Pin); ok {
			pins = append(pins, p)
		}
	}
	if len(pins) > 0 {
		fmt.Fprintln(out, "Pins:")
		for _, p := range pins {
			pos := p.Position()
			fmt.Fprintf(out, "  %s (%s): %s at (%g, %g) %g°%s\n",
				p.Number, p.Name, p.Electric, pos.X, pos.Y, p.Rotation(), pinFlags(p))
		}
	}

	return nil
}

func pinFlags(p *easyeda.Pin) string {
	var flags []string
	if p.Hidden {
		flags = append(flags, "hidden")
	}
	if p.Inverted {
		flags = append(flags, "inverted")
	}
	if p.Clock {
		flags = append(flags, "clock")
	}
	if len(flags) == 0 {
		return ""
	}
	return " [" + strings.Join(flags, ", ") + "]"
}
