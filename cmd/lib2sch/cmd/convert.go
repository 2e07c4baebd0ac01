package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/lib2sch/internal/config"
	"github.com/OpenTraceLab/lib2sch/pkg/convert"
	"github.com/OpenTraceLab/lib2sch/pkg/easyeda"
	"github.com/OpenTraceLab/lib2sch/pkg/kicad/library"
)

var (
	convertOutput  string
	convertFormat  string
	convertConfig  string
	convertLayout  bool
	convertTheme   string
	convertInclude []string
	convertExclude []string
)

var convertCmd = &cobra.Command{
	Use:   "convert <library_file>...",
	Short: "Convert libraries to an EasyEDA schematic",
	Long: `Convert one or more KiCad .lib files into a single EasyEDA schematic.

Each library is named after its file without the extension. Symbols that
cannot be converted (multiple units, DeMorgan bodies, malformed records) are
skipped and listed on stderr; the rest of the library is still converted.

Flags override the values of --config.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	f := convertCmd.Flags()
	f.StringVarP(&convertOutput, "output", "o", "-", "output file, - for stdout")
	f.StringVar(&convertFormat, "format", "json", "output format: json or msgpack")
	f.StringVar(&convertConfig, "config", "", "YAML configuration file")
	f.BoolVar(&convertLayout, "layout", false, "stack components so they do not overlap")
	f.StringVar(&convertTheme, "theme", "default", "colour theme: default or kicad")
	f.StringSliceVar(&convertInclude, "include", nil, "only convert components matching these patterns")
	f.StringSliceVar(&convertExclude, "exclude", nil, "skip components matching these patterns")
}

func loadConvertConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if convertConfig != "" {
		var err error
		cfg, err = config.Load(convertConfig)
		if err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = convertFormat
	}
	if flags.Changed("layout") {
		cfg.Layout.Enabled = convertLayout
	}
	if flags.Changed("theme") {
		cfg.Theme.Name = convertTheme
	}
	if flags.Changed("include") {
		cfg.Filter.Include = convertInclude
	}
	if flags.Changed("exclude") {
		cfg.Filter.Exclude = convertExclude
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	log := getLogger()

	cfg, err := loadConvertConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	if err := checkLibraryNames(args); err != nil {
		return err
	}

	ctx := convert.NewContext(library.NewReader(library.WithLogger(log)), log)
	for _, filename := range args {
		if _, err := ctx.ReadLibraryFile(filename); err != nil {
			return err
		}
	}

	doc := easyeda.NewDocument()
	n := ctx.LibrariesToSchematic(doc, opts...)

	for _, e := range ctx.Errors() {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %v\n", e)
	}

	data := doc.Materialize(easyeda.NewIDAllocator())
	if err := writeOutput(cmd.OutOrStdout(), convertOutput, func(w io.Writer) error {
		return easyeda.Encode(w, data, cfg.Format(), cfg.Output.Indent)
	}); err != nil {
		return err
	}

	log.Info("converted", "libraries", len(args), "components", n, "skipped", len(ctx.Errors()))
	return nil
}

// checkLibraryNames rejects inputs that would be read under the same library
// name, since the later one would replace the earlier.
func checkLibraryNames(filenames []string) error {
	seen := make(map[string]string, len(filenames))
	for _, filename := range filenames {
		name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("libraries %s and %s share the name %s", prev, filename, name)
		}
		seen[name] = filename
	}
	return nil
}

// writeOutput runs write against stdout or the named file.
func writeOutput(stdout io.Writer, filename string, write func(io.Writer) error) error {
	if filename == "" || filename == "-" {
		return write(stdout)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
