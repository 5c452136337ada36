package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/jsvensson/chromapick/internal/clipboard"
	"github.com/jsvensson/chromapick/internal/color"
	"github.com/jsvensson/chromapick/internal/config"
	"github.com/jsvensson/chromapick/internal/export"
	"github.com/jsvensson/chromapick/internal/picker"
	"github.com/jsvensson/chromapick/internal/tui"
)

const configEnv = "CHROMAPICK_CONFIG"

var (
	flagConfig    string
	flagVerbose   int
	flagLog       string
	flagTo        string
	flagGamutMap  string
	flagOut       string
	flagTemplates string
	flagOnly      []string
	flagCheck     bool
	version       = "dev" // Injected at build time via ldflags

	cfg *config.Config
	log = commonlog.GetLogger("chromapick")
)

var rootCmd = &cobra.Command{
	Use:               "chromapick",
	Short:             "Pick, convert and inspect CSS colors across color spaces",
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var convertCmd = &cobra.Command{
	Use:   "convert <color>",
	Short: "Print a color in one or every picker space",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <color>",
	Short: "Print the picker state for a color",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var spacesCmd = &cobra.Command{
	Use:   "spaces",
	Short: "List the picker spaces and their channels",
	Args:  cobra.NoArgs,
	RunE:  runSpaces,
}

var copyCmd = &cobra.Command{
	Use:   "copy <color>",
	Short: "Copy a color to the system clipboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runCopy,
}

var pickCmd = &cobra.Command{
	Use:   "pick [color]",
	Short: "Edit a color interactively in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPick,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render templates with the configured color and palette",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format chromapick config files",
	Long:  "Format one or more config files in-place. Prints the name of each file that was modified.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config HCL file (default $"+configEnv+")")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (can be repeated)")
	rootCmd.PersistentFlags().StringVar(&flagLog, "log", "", "write logs to this file instead of stderr")

	convertCmd.Flags().StringVar(&flagTo, "to", "", "target space (default: every space)")
	convertCmd.Flags().StringVar(&flagGamutMap, "gamut-map", "", "gamut mapping for bounded spaces: clip or css")
	copyCmd.Flags().StringVar(&flagTo, "to", "", "convert to this space before copying")
	exportCmd.Flags().StringVar(&flagOut, "out", "output", "output directory")
	exportCmd.Flags().StringVar(&flagTemplates, "templates", "templates", "templates directory")
	exportCmd.Flags().StringArrayVar(&flagOnly, "only", nil, "render only these templates (can be repeated)")
	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")

	rootCmd.AddCommand(convertCmd, inspectCmd, spacesCmd, copyCmd, pickCmd, exportCmd, fmtCmd, versionCmd)
}

// setup loads .env, the optional config file and configures logging.
// Flags win over the config's log block.
func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	if !cmd.Flags().Changed("config") {
		flagConfig = os.Getenv(configEnv)
	}

	cfg = nil
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	verbosity, logFile := flagVerbose, flagLog
	if cfg != nil {
		if !cmd.Flags().Changed("verbose") {
			verbosity = cfg.Log.Verbosity
		}
		if logFile == "" {
			logFile = cfg.Log.File
		}
	}
	if logFile != "" {
		commonlog.Configure(verbosity, &logFile)
	} else {
		commonlog.Configure(verbosity, nil)
	}
	return nil
}

// newPicker returns a picker seeded from the config, if any, then opts.
func newPicker(opts ...picker.Option) *picker.Picker {
	all := []picker.Option{picker.WithClipboard(clipboard.System{})}
	if cfg != nil {
		all = append(all, cfg.Options()...)
	}
	return picker.New(append(all, opts...)...)
}

func gamutMethod() (color.GamutMethod, error) {
	if flagGamutMap != "" {
		return config.ParseGamutMethod(flagGamutMap)
	}
	if cfg != nil {
		return cfg.GamutMap, nil
	}
	return color.Clip, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	method, err := gamutMethod()
	if err != nil {
		return err
	}

	if flagTo != "" {
		text, err := config.ConvertColor(args[0], flagTo, method)
		if err != nil {
			return fmt.Errorf("converting: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}

	if _, err := color.Parse(args[0]); err != nil {
		return fmt.Errorf("converting: %w", err)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, s := range picker.Spaces() {
		text, err := config.ConvertColor(args[0], string(s), method)
		if err != nil {
			log.Errorf("converting to %s: %s", s, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", s, text)
	}
	return w.Flush()
}

func runInspect(cmd *cobra.Command, args []string) error {
	p := newPicker()
	if err := p.SetColor(args[0]); err != nil {
		return err
	}
	state := p.State()

	hex, err := color.Hex(state.Color)
	if err != nil {
		return err
	}
	c, err := color.Parse(state.Color)
	if err != nil {
		return err
	}
	overlay, err := color.Parse(state.TextOverlay)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "color\t%s\n", state.Color)
	fmt.Fprintf(w, "space\t%s\n", state.Space)
	fmt.Fprintf(w, "hex\t%s\n", hex)
	fmt.Fprintf(w, "gamut\t%s\n", state.Gamut)
	fmt.Fprintf(w, "text\t%s (%.2f:1)\n", state.TextOverlay, color.ContrastRatio(c, overlay))
	fmt.Fprintf(w, "background\t%s\n", state.BackgroundOverlay)
	return w.Flush()
}

func runSpaces(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, s := range picker.Spaces() {
		fmt.Fprintf(w, "%s", s)
		for _, ch := range picker.Channels(s) {
			unit := ""
			if ch.Percent {
				unit = "%"
			}
			fmt.Fprintf(w, "\t%s [%g%s, %g%s]", ch.Name, ch.Min, unit, ch.Max, unit)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runCopy(cmd *cobra.Command, args []string) error {
	p := newPicker()
	if err := p.SetColor(args[0]); err != nil {
		return err
	}
	if flagTo != "" {
		s, err := picker.ParseSpace(flagTo)
		if err != nil {
			return err
		}
		p.SelectSpace(s)
	}

	if err := <-p.Copy(); err != nil {
		return fmt.Errorf("copying: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), p.Color())
	return nil
}

func runPick(cmd *cobra.Command, args []string) error {
	p := newPicker()
	if len(args) == 1 {
		if err := p.SetColor(args[0]); err != nil {
			return err
		}
	}
	return tui.Run(p)
}

func runExport(cmd *cobra.Command, args []string) error {
	var palette map[string]string
	if cfg != nil {
		palette = cfg.Palette
	}

	e := &export.Engine{
		TemplatesDir: flagTemplates,
		OutputDir:    flagOut,
		Only:         flagOnly,
	}
	if err := e.Run(newPicker(), palette); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Rendered templates in %s\n", flagOut)
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		changed, err := config.FormatFile(path, flagCheck)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}
		if changed {
			fmt.Fprintln(cmd.OutOrStdout(), path)
			needsFormatting = true
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		os.Exit(1)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
