// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"golang.org/x/term"

	"origin-scan/internal/batch"
	"origin-scan/internal/config"
	"origin-scan/internal/detector"
	"origin-scan/internal/engine"
	"origin-scan/internal/formatters"
	_ "origin-scan/internal/formatters/csv"
	_ "origin-scan/internal/formatters/json"
	_ "origin-scan/internal/formatters/text"
	_ "origin-scan/internal/formatters/yaml"
	"origin-scan/internal/help"
	"origin-scan/internal/observability"
	"origin-scan/internal/reference"
	"origin-scan/internal/schema"
	"origin-scan/internal/version"
)

// configFlags holds command line flag values
type configFlags struct {
	inputPath        string
	schemaVariant    string
	schemaFile       string
	outputFormat     string
	outputPath       string
	confidenceLevels string
	checksToRun      string
	profileName      string
	configFile       string
	matchesOnly      bool
	verbose          bool
	debug            bool
	noColor          bool
	workers          int

	// Reference list overrides
	entitiesFile   string
	sanctionsFile  string
	exclusionsFile string
	categoriesFile string
	placesFile     string

	showVersion bool
	showHelp    bool
	helpChecks  bool
}

func parseFlags() *configFlags {
	f := &configFlags{}
	flag.StringVar(&f.inputPath, "input", "", "input file of tab-delimited records (default: stdin)")
	flag.StringVar(&f.schemaVariant, "schema", "", "schema variant name for the batch")
	flag.StringVar(&f.schemaFile, "schema-file", "", "YAML file adding or overriding schema variants")
	flag.StringVar(&f.outputFormat, "format", "", "output format: text, json, csv, yaml")
	flag.StringVar(&f.outputPath, "output", "", "write results to a file instead of stdout")
	flag.StringVar(&f.confidenceLevels, "confidence", "", "confidence levels to show: high,medium,low or all")
	flag.StringVar(&f.checksToRun, "checks", "", "comma-separated detector names, or all")
	flag.StringVar(&f.profileName, "profile", "", "named profile from the config file")
	flag.StringVar(&f.configFile, "config", "", "path to config file")
	flag.BoolVar(&f.matchesOnly, "matches-only", false, "omit non-matching verdicts from output")
	flag.BoolVar(&f.verbose, "verbose", false, "show detailed rationale per verdict")
	flag.BoolVar(&f.debug, "debug", false, "emit component timing diagnostics on stderr")
	flag.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	flag.IntVar(&f.workers, "workers", 0, "worker count (0 = NumCPU capped at 8)")
	flag.StringVar(&f.entitiesFile, "entities", "", "entity watchlist override file")
	flag.StringVar(&f.sanctionsFile, "sanctions", "", "export-control list override file")
	flag.StringVar(&f.exclusionsFile, "exclusions", "", "false-positive exclusion list override file")
	flag.StringVar(&f.categoriesFile, "categories", "", "strategic-category keyword list override file")
	flag.StringVar(&f.placesFile, "places", "", "ambiguous place-name list override file")
	flag.BoolVar(&f.showVersion, "version", false, "print version and exit")
	flag.BoolVar(&f.showHelp, "help-general", false, "show general help")
	flag.BoolVar(&f.helpChecks, "help-checks", false, "describe the available detectors")
	flag.Parse()
	return f
}

// finalConfiguration holds resolved configuration values, flag values
// taking precedence over profile values, which take precedence over
// config-file defaults.
type finalConfiguration struct {
	format           string
	confidenceLevels string
	checksToRun      string
	schemaVariant    string
	schemaFile       string
	matchesOnly      bool
	verbose          bool
	noColor          bool
	workers          int
}

func resolveConfiguration(flags *configFlags, cfg *config.Config) (*finalConfiguration, error) {
	final := &finalConfiguration{
		format:           cfg.Defaults.Format,
		confidenceLevels: cfg.Defaults.ConfidenceLevels,
		checksToRun:      cfg.Defaults.Checks,
		schemaVariant:    cfg.Defaults.SchemaVariant,
		schemaFile:       cfg.SchemaFile,
		matchesOnly:      cfg.Defaults.MatchesOnly,
		verbose:          cfg.Defaults.Verbose,
		noColor:          cfg.Defaults.NoColor,
		workers:          cfg.Defaults.Workers,
	}

	if flags.profileName != "" {
		profile := cfg.GetProfile(flags.profileName)
		if profile == nil {
			return nil, fmt.Errorf("unknown profile %q (available: %s)",
				flags.profileName, strings.Join(cfg.ListProfiles(), ", "))
		}
		if profile.Format != "" {
			final.format = profile.Format
		}
		if profile.ConfidenceLevels != "" {
			final.confidenceLevels = profile.ConfidenceLevels
		}
		if profile.Checks != "" {
			final.checksToRun = profile.Checks
		}
		final.matchesOnly = final.matchesOnly || profile.MatchesOnly
		final.verbose = final.verbose || profile.Verbose
		final.noColor = final.noColor || profile.NoColor
	}

	if flags.outputFormat != "" {
		final.format = flags.outputFormat
	}
	if flags.confidenceLevels != "" {
		final.confidenceLevels = flags.confidenceLevels
	}
	if flags.checksToRun != "" {
		final.checksToRun = flags.checksToRun
	}
	if flags.schemaVariant != "" {
		final.schemaVariant = flags.schemaVariant
	}
	if flags.schemaFile != "" {
		final.schemaFile = flags.schemaFile
	}
	if flags.workers != 0 {
		final.workers = flags.workers
	}
	final.matchesOnly = final.matchesOnly || flags.matchesOnly
	final.verbose = final.verbose || flags.verbose
	final.noColor = final.noColor || flags.noColor

	return final, nil
}

// ParseConfidenceLevels converts a comma-separated confidence level string
// into a map. "all" or empty string enables every level.
func ParseConfidenceLevels(levels string) map[string]bool {
	result := map[string]bool{
		"high":   false,
		"medium": false,
		"low":    false,
	}

	if levels == "all" || levels == "" {
		result["high"] = true
		result["medium"] = true
		result["low"] = true
		return result
	}

	for _, level := range strings.Split(levels, ",") {
		switch strings.ToLower(strings.TrimSpace(level)) {
		case "high", "medium", "low":
			result[strings.ToLower(strings.TrimSpace(level))] = true
		}
	}

	return result
}

func main() {
	flags := parseFlags()

	if flags.showVersion {
		fmt.Printf("origin-scan %s\n", version.GetVersion())
		return
	}
	if flags.showHelp {
		help.ShowGeneralHelp(flags.noColor)
		return
	}
	if flags.helpChecks {
		help.ShowChecksHelp(flags.noColor)
		return
	}

	cfg := config.LoadConfigOrDefault(flags.configFile)
	final, err := resolveConfiguration(flags, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Color output only makes sense on a terminal.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		final.noColor = true
	}

	// Reference lists load once, before workers start; a bad override is
	// fatal because a partial list would silently degrade detection.
	ref, err := reference.Load(reference.Paths{
		Entities:   firstNonEmpty(flags.entitiesFile, cfg.Reference.Entities),
		Sanctions:  firstNonEmpty(flags.sanctionsFile, cfg.Reference.Sanctions),
		Exclusions: firstNonEmpty(flags.exclusionsFile, cfg.Reference.Exclusions),
		Categories: firstNonEmpty(flags.categoriesFile, cfg.Reference.Categories),
		Places:     firstNonEmpty(flags.placesFile, cfg.Reference.Places),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	registry := schema.NewRegistry()
	if final.schemaFile != "" {
		if err := registry.LoadFile(final.schemaFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	}
	adapter, err := registry.Adapter(final.schemaVariant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	enabledChecks := engine.ParseChecksToRun(splitChecks(final.checksToRun))
	eng := engine.NewWithDetectors(ref, engine.BuildDetectorSet(enabledChecks, ref))

	debug := flags.debug || cfg.Defaults.Debug
	obsLevel := observability.ObservabilityMetrics
	if debug {
		obsLevel = observability.ObservabilityDebug
	}
	observer := observability.NewStandardObserver(obsLevel, os.Stderr)

	input := io.Reader(os.Stdin)
	if flags.inputPath != "" {
		f, err := os.Open(flags.inputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		defer f.Close()
		input = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := batch.NewRunner(eng, adapter, final.workers, observer)
	if debug {
		runner.SetSkipLogger(func(err *schema.MalformedRecordError) {
			fmt.Fprintf(os.Stderr, "[DEBUG] skipped malformed record: %v\n", err)
		})
	}

	var verdicts []detector.Verdict
	summary, err := runner.Run(ctx, input, func(v detector.Verdict) {
		verdicts = append(verdicts, v)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: batch aborted: %v\n", err)
		os.Exit(1)
	}

	// Workers complete out of order; restore input order so identical runs
	// produce identical output files.
	sortVerdicts(verdicts)

	options := formatters.FormatterOptions{
		ConfidenceLevel: ParseConfidenceLevels(final.confidenceLevels),
		Verbose:         final.verbose,
		NoColor:         final.noColor,
		MatchesOnly:     final.matchesOnly,
	}

	output, err := formatters.Export(final.format, verdicts, summary, options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if flags.outputPath != "" {
		if err := os.WriteFile(flags.outputPath, []byte(output), 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Print(output)
	}

	if summary.Matched > 0 {
		os.Exit(3)
	}
}

func sortVerdicts(verdicts []detector.Verdict) {
	sort.Slice(verdicts, func(i, j int) bool {
		return verdicts[i].LineNumber < verdicts[j].LineNumber
	})
}

func splitChecks(checks string) []string {
	if checks == "" || checks == "all" {
		return nil
	}
	return strings.Split(checks, ",")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
