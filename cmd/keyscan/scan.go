// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"keyscan/internal/aggregate"
	"keyscan/internal/config"
	"keyscan/internal/extract"
	"keyscan/internal/matcher"
	"keyscan/internal/paths"
	"keyscan/internal/report"
	"keyscan/internal/scanner"
	"keyscan/internal/taxonomy"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a folder of PDFs and write keyword frequency reports",
	Long: `Scan enumerates every .pdf file under the target folder, extracts its
text, counts taxonomy keyword occurrences, and writes the reports into the
scanned folder itself. The target is either --dir directly, or --name looked
up by folder name under --root.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		return runScan(cmd, cfg)
	},
}

func init() {
	scanCmd.Flags().String("dir", "", "folder to scan")
	scanCmd.Flags().String("root", "", "root to search when using --name")
	scanCmd.Flags().String("name", "", "folder name to locate under --root")
	scanCmd.Flags().String("taxonomy", "", "YAML file overriding the built-in keyword taxonomy")
	scanCmd.Flags().String("match", config.DefaultMatchMode, "counting mode: whole or substring")
	scanCmd.Flags().Bool("xlsx", false, "also write a spreadsheet mirror of the detailed report")
	scanCmd.Flags().Bool("quiet", false, "suppress per-file progress output")
	scanCmd.Flags().Bool("no-color", false, "disable colored output")
	scanCmd.Flags().Duration("timeout", config.DefaultTimeout, "per-document extraction timeout")

	cobra.CheckErr(viper.BindPFlag("dir", scanCmd.Flags().Lookup("dir")))
	cobra.CheckErr(viper.BindPFlag("root", scanCmd.Flags().Lookup("root")))
	cobra.CheckErr(viper.BindPFlag("name", scanCmd.Flags().Lookup("name")))
	cobra.CheckErr(viper.BindPFlag("taxonomy", scanCmd.Flags().Lookup("taxonomy")))
	cobra.CheckErr(viper.BindPFlag("match", scanCmd.Flags().Lookup("match")))
	cobra.CheckErr(viper.BindPFlag("xlsx", scanCmd.Flags().Lookup("xlsx")))
	cobra.CheckErr(viper.BindPFlag("quiet", scanCmd.Flags().Lookup("quiet")))
	cobra.CheckErr(viper.BindPFlag("no_color", scanCmd.Flags().Lookup("no-color")))
	cobra.CheckErr(viper.BindPFlag("timeout", scanCmd.Flags().Lookup("timeout")))

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, cfg *config.Config) error {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}

	logger := newLogger(cfg.Quiet)

	dir, err := resolveTarget(cfg)
	if err != nil {
		return err
	}

	tax, err := loadTaxonomy(cfg.Taxonomy)
	if err != nil {
		return err
	}

	mode, err := matcher.ParseMode(cfg.Match)
	if err != nil {
		return err
	}
	patterns := matcher.Compile(tax, mode)

	logger.Info().
		Str("dir", dir).
		Str("match", string(mode)).
		Int("keywords", tax.KeywordCount()).
		Msg("starting scan")

	chain := extract.NewChain(
		extract.WithTimeout(cfg.Timeout),
		extract.WithLogger(logger),
	)

	s := scanner.New(chain, patterns, logger, progressPrinter(cfg.Quiet))
	result, err := s.Scan(cmd.Context(), dir)
	if err != nil {
		return err
	}

	return writeReports(cfg, dir, result)
}

// resolveTarget turns the config into a validated scan folder, failing before
// any extraction work starts.
func resolveTarget(cfg *config.Config) (string, error) {
	dir := cfg.Dir
	if cfg.Name != "" {
		found, err := paths.FindFolderByName(cfg.Root, cfg.Name)
		if err != nil {
			return "", err
		}
		dir = found
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("scan target %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("scan target %s is not a directory", dir)
	}
	return dir, nil
}

func loadTaxonomy(path string) (*taxonomy.Taxonomy, error) {
	if path == "" {
		return taxonomy.Default(), nil
	}
	return taxonomy.Load(path)
}

func newLogger(quiet bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if quiet {
		level = zerolog.WarnLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// progressPrinter reports each finished document on stdout. A nil return
// disables reporting.
func progressPrinter(quiet bool) scanner.Progress {
	if quiet {
		return nil
	}
	done := color.New(color.FgGreen)
	failed := color.New(color.FgRed)
	return func(filename string, err error) {
		if err != nil {
			failed.Printf("  %s: %v\n", filename, err)
			return
		}
		done.Printf("  %s: done\n", filename)
	}
}

func writeReports(cfg *config.Config, dir string, result *scanner.Result) error {
	folder := scanner.StripParen(filepath.Base(dir))
	w := report.NewWriter(dir, nil)

	detailedPath, err := w.WriteDetailed(folder, result.Rows)
	if err != nil {
		return err
	}
	written := []string{detailedPath}

	if cfg.XLSX {
		path, err := w.WriteDetailedXLSX(detailedPath, result.Rows)
		if err != nil {
			return err
		}
		written = append(written, path)
	}

	path, err := w.WriteKeywordAggregate(aggregate.ByKeyword(result.Rows))
	if err != nil {
		return err
	}
	written = append(written, path)

	path, err = w.WriteGroupAggregate(aggregate.ByGroup(result.Rows))
	if err != nil {
		return err
	}
	written = append(written, path)

	path, err = w.WriteLog(folder, result.LogLines)
	if err != nil {
		return err
	}
	written = append(written, path)

	path, err = w.WriteSummary(result.FilesScanned)
	if err != nil {
		return err
	}
	written = append(written, path)

	fmt.Printf("Scanned %d files\n", result.FilesScanned)
	for _, p := range written {
		fmt.Println("  " + p)
	}
	return nil
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
