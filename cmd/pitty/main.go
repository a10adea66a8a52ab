package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/apparebit/pitty"
	"github.com/apparebit/pitty/internal/ansiart"
	"github.com/apparebit/pitty/internal/export"
	"github.com/apparebit/pitty/internal/themefile"
)

var (
	flagTheme     string
	flagSpace     string
	flagOk        string
	flagWidth     int
	flagColors    string
	flagCheck     bool
	flagTemplates string
	flagOut       string
	flagOnly      []string
	version       = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:     "pitty",
	Short:   "Convert, match, and render high-resolution colors for terminals",
	Version: version,
}

var convertCmd = &cobra.Command{
	Use:   "convert [colors...]",
	Short: "Convert colors to another color space",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runConvert,
}

var matchCmd = &cobra.Command{
	Use:   "match [colors...]",
	Short: "Find the closest ANSI and 8-bit colors under a theme",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMatch,
}

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Show the theme colors and the 8-bit color grid",
	Args:  cobra.NoArgs,
	RunE:  runPalette,
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Query the terminal and print the resolved theme",
	Args:  cobra.NoArgs,
	RunE:  runTheme,
}

var renderCmd = &cobra.Command{
	Use:   "render <image>",
	Short: "Render an image as half-block escape sequence art",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the theme through Go templates",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format theme files",
	Long:  "Format one or more .hcl theme files in-place. Prints the name of each file that was modified.",
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
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "path to a theme file (.hcl, .yaml, or .yml)")
	convertCmd.Flags().StringVar(&flagSpace, "to", "oklch", "target color space, e.g. srgb, oklch, oklrab")
	matchCmd.Flags().StringVar(&flagOk, "ok", "revised", "Oklab version for comparisons: original or revised")
	renderCmd.Flags().StringVar(&flagOk, "ok", "revised", "Oklab version for comparisons: original or revised")
	renderCmd.Flags().IntVar(&flagWidth, "width", 0, "output width in columns (0 uses the terminal width)")
	renderCmd.Flags().StringVar(&flagColors, "colors", "auto", "output colors: auto, ansi, 8bit, or 24bit")
	exportCmd.Flags().StringVar(&flagTemplates, "templates", "templates", "templates directory")
	exportCmd.Flags().StringVar(&flagOut, "out", "output", "output directory")
	exportCmd.Flags().StringArrayVar(&flagOnly, "only", nil, "export only specific templates (can be repeated)")
	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(paletteCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadTheme resolves the --theme flag, falling back onto the built-in theme.
func loadTheme() (pitty.Theme, error) {
	if flagTheme == "" {
		return pitty.DefaultTheme(), nil
	}
	file, err := themefile.Load(flagTheme)
	if err != nil {
		return pitty.Theme{}, fmt.Errorf("loading theme: %w", err)
	}
	return file.Theme, nil
}

func okVersion() (pitty.OkVersion, error) {
	switch flagOk {
	case "original":
		return pitty.OkOriginal, nil
	case "revised":
		return pitty.OkRevised, nil
	default:
		return 0, fmt.Errorf("unknown Oklab version %q (valid: original, revised)", flagOk)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	space, err := pitty.ParseColorSpace(flagSpace)
	if err != nil {
		return err
	}

	for _, arg := range args {
		color, err := pitty.Parse(arg)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", arg, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.To(space))
	}
	return nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	theme, err := loadTheme()
	if err != nil {
		return err
	}
	ok, err := okVersion()
	if err != nil {
		return err
	}
	matcher := pitty.NewMatcher(&theme, ok)
	out := cmd.OutOrStdout()

	for i, arg := range args {
		color, err := pitty.Parse(arg)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", arg, err)
		}

		if i > 0 {
			fmt.Fprintln(out)
		}

		ansi := matcher.ToAnsi(color)
		eight := matcher.ToEightBit(color)
		eightTC := eightBitTrueColor(eight, &theme)

		fmt.Fprintf(out, "%s %s · %s\n", swatch(color.TrueColor()), color.TrueColor().Hex(), color.To(pitty.Oklch))
		fmt.Fprintf(out, "   ANSI   %s %s\n", swatch(theme.Ansi(ansi).TrueColor()), ansi)
		fmt.Fprintf(out, "   8-bit  %s %d %s\n", swatch(eightTC), eight.EightBit(), eightTC.Hex())
	}
	return nil
}

func runPalette(cmd *cobra.Command, args []string) error {
	theme, err := loadTheme()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, header.Render("Theme"))
	printTheme(cmd, &theme)

	fmt.Fprintln(out)
	fmt.Fprintln(out, header.Render("8-bit colors"))
	for red := uint8(0); red < 6; red++ {
		for green := uint8(0); green < 6; green++ {
			for blue := uint8(0); blue < 6; blue++ {
				rgb, _ := pitty.NewEmbeddedRGB(red, green, blue)
				fmt.Fprint(out, swatch(rgb.TrueColor()))
			}
		}
		fmt.Fprintln(out)
	}
	for level := uint8(0); level < 24; level++ {
		gray, _ := pitty.NewGrayGradient(level)
		fmt.Fprint(out, swatch(gray.TrueColor()))
	}
	fmt.Fprintln(out)
	return nil
}

func runTheme(cmd *cobra.Command, args []string) error {
	output := termenv.NewOutput(os.Stdout)
	theme := pitty.QueryTheme(output)

	fmt.Fprintf(cmd.OutOrStdout(), "Fidelity: %s\n\n", pitty.DetectFidelity(output))
	printTheme(cmd, &theme)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args[0], err)
	}

	theme, err := loadTheme()
	if err != nil {
		return err
	}
	ok, err := okVersion()
	if err != nil {
		return err
	}
	fidelity, err := renderFidelity()
	if err != nil {
		return err
	}

	renderer := &ansiart.Renderer{
		Matcher:  pitty.NewMatcher(&theme, ok),
		Fidelity: fidelity,
		Width:    renderWidth(img),
	}
	art, err := renderer.Render(img)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), art)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	if flagTheme == "" {
		return fmt.Errorf("export needs a theme file (--theme)")
	}
	file, err := themefile.Load(flagTheme)
	if err != nil {
		return fmt.Errorf("loading theme: %w", err)
	}

	e := &export.Engine{
		TemplatesDir: flagTemplates,
		OutputDir:    flagOut,
		Only:         flagOnly,
	}
	if err := e.Run(file); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported theme files in %s\n", flagOut)
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		content := string(data)
		formatted := themefile.Format(content)
		if formatted == content {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !flagCheck {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		os.Exit(1)
	}

	return nil
}

// renderFidelity resolves the --colors flag, detecting the terminal's
// capabilities for "auto".
func renderFidelity() (pitty.Fidelity, error) {
	switch flagColors {
	case "auto":
		fidelity := pitty.DetectFidelity(termenv.NewOutput(os.Stdout))
		if fidelity < pitty.FidelityAnsi {
			fidelity = pitty.FidelityAnsi
		}
		return fidelity, nil
	case "ansi":
		return pitty.FidelityAnsi, nil
	case "8bit":
		return pitty.FidelityEightBit, nil
	case "24bit":
		return pitty.FidelityFull, nil
	default:
		return 0, fmt.Errorf("unknown color mode %q (valid: auto, ansi, 8bit, 24bit)", flagColors)
	}
}

// renderWidth resolves the --width flag, consulting the terminal and capping
// at the image width so small images do not blow up.
func renderWidth(img image.Image) int {
	width := flagWidth
	if width <= 0 {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if cols, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width = cols
			}
		}
	}
	if width <= 0 {
		width = 80
	}
	if dx := img.Bounds().Dx(); width > dx {
		width = dx
	}
	return width
}

var header = lipgloss.NewStyle().Bold(true)

// swatch renders a two-cell block in the given color.
func swatch(t pitty.TrueColor) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(t.Hex())).Render("  ")
}

// eightBitTrueColor resolves the 24-bit value of an 8-bit color, consulting
// the theme for ANSI colors.
func eightBitTrueColor(color pitty.EightBitColor, theme *pitty.Theme) pitty.TrueColor {
	switch c := color.(type) {
	case pitty.EmbeddedRGB:
		return c.TrueColor()
	case pitty.GrayGradient:
		return c.TrueColor()
	case pitty.AnsiColor:
		return theme.Ansi(c).TrueColor()
	}
	return pitty.TrueColor{}
}

// printTheme lists all eighteen theme entries with their color values.
func printTheme(cmd *cobra.Command, theme *pitty.Theme) {
	out := cmd.OutOrStdout()
	for _, layer := range []pitty.Layer{pitty.Foreground, pitty.Background} {
		t := theme.Default(layer).TrueColor()
		fmt.Fprintf(out, "%-15s %s %s\n", layer, swatch(t), t.Hex())
	}
	for code := pitty.Black; code <= pitty.BrightWhite; code++ {
		t := theme.Ansi(code).TrueColor()
		fmt.Fprintf(out, "%-15s %s %s\n", code, swatch(t), t.Hex())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
