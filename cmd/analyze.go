// Package cmd defines all the commands for the cli
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/retrodev/mzmap/analyzer"
	"github.com/retrodev/mzmap/catalog"
	"github.com/retrodev/mzmap/mz"
	"github.com/retrodev/mzmap/profile"
	"github.com/retrodev/mzmap/renderer"
	"github.com/urfave/cli/v2"
)

var (
	ProfileFlag = &cli.PathFlag{
		Name:     "profile",
		Usage:    "Path to the analysis profile config file. Default: built-in GP.EXE profile",
		Required: false,
	}
	CatalogOutputFlag = &cli.PathFlag{
		Name:  "catalog-output-path",
		Usage: "File path to store the exported function catalog",
		Value: filepath.Join("artifacts", "symbols.json"),
	}
	FormatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "format of the summary report. Options: json, text",
		Value: "text",
	}
	ReportOutputPathFlag = &cli.PathFlag{
		Name:     "report-output-path",
		Usage:    "output file path for the summary report. Default: stdout",
		Required: false,
	}
)

func CreateAnalyzeCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "analyze",
		Usage:       "Recovers the function catalog from an MZ executable",
		Description: "Recovers the function catalog from an MZ executable",
		ArgsUsage:   "<executable>",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
			CatalogOutputFlag,
			FormatFlag,
			ReportOutputPathFlag,
		},
	}
}

var AnalyzeCommand = CreateAnalyzeCommand(AnalyzeImage)

func AnalyzeImage(ctx *cli.Context) error {
	prof, err := loadProfile(ctx)
	if err != nil {
		return fmt.Errorf("error loading profile: %w", err)
	}

	img, err := loadImage(ctx.Args().First())
	if err != nil {
		return err
	}

	logger := newLogger()
	logger.Info("image parsed",
		"code_start", fmt.Sprintf("0x%X", img.CodeStart),
		"entry", fmt.Sprintf("0x%X", img.EntryLinear),
		"size", len(img.Data))

	cat := analyzer.New(prof, logger).Run(img)

	catalogPath := ctx.Path(CatalogOutputFlag.Name)
	if err := cat.Export(catalogPath); err != nil {
		return fmt.Errorf("unable to export catalog: %w", err)
	}
	logger.Info("catalog exported", "path", catalogPath, "functions", len(cat.Functions))

	format := ctx.String(FormatFlag.Name)
	reportOutputPath := ctx.Path(ReportOutputPathFlag.Name)
	if err := writeReport(cat, format, reportOutputPath); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	return nil
}

// loadProfile falls back to the built-in profile when no config is given.
func loadProfile(ctx *cli.Context) (*profile.Profile, error) {
	path := ctx.Path(ProfileFlag.Name)
	if path == "" {
		return profile.Default(), nil
	}
	return profile.LoadProfile(path)
}

// loadImage reads and parses the executable under analysis.
func loadImage(path string) (*mz.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("missing executable path argument")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read executable: %w", err)
	}
	img, err := mz.ParseImage(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// writeReport outputs the catalog summary in the specified format.
func writeReport(cat *catalog.Catalog, format, outputPath string) error {
	var output *os.File
	if outputPath == "" {
		output = os.Stdout
	} else {
		absPath, err := filepath.Abs(outputPath)
		if err != nil {
			return fmt.Errorf("unable to determine absolute path: %w", err)
		}
		output, err = os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("unable to open output file: %w", err)
		}
		defer func() {
			_ = output.Close()
		}()
	}

	var rendererInstance renderer.Renderer
	switch format {
	case "text":
		rendererInstance = renderer.NewTextRenderer()
	case "json":
		rendererInstance = renderer.NewJSONRenderer()
	default:
		return fmt.Errorf("invalid format: %s", format)
	}

	return rendererInstance.Render(cat, output)
}

// newLogger builds the stage-progress logger. MZMAP_LOG_LEVEL=debug
// raises verbosity; anything else stays at info.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "mzmap",
	})
	if os.Getenv("MZMAP_LOG_LEVEL") == "debug" {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
