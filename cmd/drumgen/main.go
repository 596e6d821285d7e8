// Package main is the entry point for the drumgen CLI
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mortomr/ai-midi/pkg/api"
	"github.com/mortomr/ai-midi/pkg/drums"
	"github.com/mortomr/ai-midi/pkg/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	tempo             float64
	style             string
	section           string
	bars              int
	density           float64
	variation         float64
	syncopation       float64
	fillFrequency     float64
	kickPattern       string
	hihatPattern      string
	seed              int64
	count             int
	outputFile        string
	fillsOnly         bool
	rudimentType      string
	rudimentIntensity float64
	noHumanize        bool
	serverPort        int
	rudimentsDir      string
	rudimentsTempo    float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "drumgen",
	Short: "Generate drum patterns as standard MIDI files",
	Long: `drumgen is a generative drum machine for songwriters.

It builds style-aware drum patterns (pop punk, singer/songwriter, reggae)
from tunable density, variation and syncopation controls, and writes them
as General MIDI percussion files.

Examples:
  drumgen generate --style pop_punk --tempo 165
  drumgen generate --style reggae_ska --section chorus --bars 8 --seed 42
  drumgen generate --count 5 -o takes/
  drumgen rudiments --output practice/
  drumgen list
  drumgen tui
  drumgen serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a drum pattern and write it to a MIDI file",
	RunE:  runGenerate,
}

var rudimentsCmd = &cobra.Command{
	Use:   "rudiments",
	Short: "Export the rudiment library as practice MIDI files",
	RunE:  runRudiments,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available styles, sections, patterns and rudiments",
	RunE:  runList,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	f := generateCmd.Flags()
	f.Float64VarP(&tempo, "tempo", "t", 140, "Tempo in BPM (20-300)")
	f.StringVarP(&style, "style", "s", "pop_punk", "Style (pop_punk, singer_songwriter, reggae_ska)")
	f.StringVar(&section, "section", "", "Song section (intro, verse, pre_chorus, chorus, bridge, breakdown, outro)")
	f.IntVarP(&bars, "bars", "b", 4, "Number of bars")
	f.Float64VarP(&density, "density", "d", 0.7, "Hit density (0-1)")
	f.Float64Var(&variation, "variation", 0.5, "Bar-to-bar variation (0-1)")
	f.Float64Var(&syncopation, "syncopation", 0.3, "Off-beat displacement (0-1)")
	f.Float64Var(&fillFrequency, "fill-frequency", 0.25, "Chance of a fill at each phrase boundary (0-1)")
	f.StringVar(&kickPattern, "kick", "punk", "Kick template name")
	f.StringVar(&hihatPattern, "hihat", "eighth", "Hi-hat template name")
	f.Int64Var(&seed, "seed", -1, "Random seed (-1 for random)")
	f.IntVarP(&count, "count", "n", 1, "Number of variations to generate")
	f.StringVarP(&outputFile, "output", "o", "", "Output file or directory (default: auto-named in cwd)")
	f.BoolVar(&fillsOnly, "fills-only", false, "Generate every bar as a fill")
	f.StringVar(&rudimentType, "rudiment-type", "mixed", "Rudiment category for fills (rolls, diddles, flams, drags, mixed)")
	f.Float64Var(&rudimentIntensity, "rudiment-intensity", 0.5, "Fill orchestration intensity (0-1)")
	f.BoolVar(&noHumanize, "no-humanize", false, "Disable velocity humanization")

	rudimentsCmd.Flags().StringVarP(&rudimentsDir, "output", "o", "rudiments", "Output directory")
	rudimentsCmd.Flags().Float64VarP(&rudimentsTempo, "tempo", "t", 80, "Practice tempo in BPM")

	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(rudimentsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func buildParameters() drums.Parameters {
	p := drums.Parameters{
		Tempo:             tempo,
		Style:             drums.Style(style),
		Section:           drums.Section(section),
		Bars:              bars,
		Density:           density,
		Variation:         variation,
		Syncopation:       syncopation,
		FillFrequency:     fillFrequency,
		KickPattern:       kickPattern,
		HihatPattern:      hihatPattern,
		FillsOnly:         fillsOnly,
		RudimentType:      drums.RudimentCategory(rudimentType),
		RudimentIntensity: rudimentIntensity,
	}
	if seed >= 0 {
		s := seed
		p.Seed = &s
	}
	if noHumanize {
		off := false
		p.Humanize = &off
	}
	return p
}

// autoName builds a filename like pop_punk_140bpm_d7v5s3.mid so a directory
// of takes stays self-describing.
func autoName(p drums.Parameters, variant int) string {
	name := fmt.Sprintf("%s_%.0fbpm_d%.0fv%.0fs%.0f",
		p.Style, p.Tempo, p.Density*10, p.Variation*10, p.Syncopation*10)
	if variant > 0 {
		name += fmt.Sprintf("_var%02d", variant)
	}
	return name + ".mid"
}

func outputPath(p drums.Parameters, variant int) string {
	if outputFile == "" {
		return autoName(p, variant)
	}
	if count > 1 || strings.HasSuffix(outputFile, string(os.PathSeparator)) {
		return filepath.Join(outputFile, autoName(p, variant))
	}
	return outputFile
}

func runGenerate(cmd *cobra.Command, args []string) error {
	params := buildParameters()
	enc := drums.NewEncoder()

	for i := 0; i < count; i++ {
		if params.Seed != nil && i > 0 {
			next := *params.Seed + 1
			params.Seed = &next
		}

		pattern, err := drums.Generate(params)
		if err != nil {
			return err
		}

		variant := 0
		if count > 1 {
			variant = i + 1
		}
		path := outputPath(params, variant)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
		if err := enc.WriteFile(pattern, path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%s)\n", path, pattern.Description)
	}
	return nil
}

func runRudiments(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(rudimentsDir, 0755); err != nil {
		return err
	}

	enc := drums.NewEncoder()
	for _, name := range drums.RudimentNames() {
		fig, err := drums.GetRudiment(name)
		if err != nil {
			return err
		}
		pattern := drums.RudimentPattern(fig, rudimentsTempo)
		path := filepath.Join(rudimentsDir, name+".mid")
		if err := enc.WriteFile(pattern, path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	fmt.Println("Styles:")
	for _, s := range drums.Styles() {
		fmt.Printf("  %s\n", s)
	}
	fmt.Println("Sections:")
	for _, s := range drums.Sections() {
		fmt.Printf("  %s\n", s)
	}
	fmt.Println("Kick patterns:")
	for _, s := range drums.KickPatterns() {
		fmt.Printf("  %s\n", s)
	}
	fmt.Println("Hi-hat patterns:")
	for _, s := range drums.HihatPatterns() {
		fmt.Printf("  %s\n", s)
	}
	fmt.Println("Rudiments:")
	for _, fig := range drums.ListByCategory(drums.CategoryMixed) {
		fmt.Printf("  %-22s %s (%s)\n", fig.Name, fig.Sticking, fig.Category)
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
