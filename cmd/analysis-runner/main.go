package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"sms-campaign-analysis/internal/config"
	"sms-campaign-analysis/internal/runner"
	"sms-campaign-analysis/internal/sink"
)

func main() {
	var exitCode int
	defer func() {
		os.Exit(exitCode)
	}()

	configPath := flag.String("config", "analysis.yaml", "path to the analysis configuration")
	inputPath := flag.String("input", "", "delivery report CSV (overrides input.report_csv)")
	outputDir := flag.String("out", "", "directory for exported CSV tables (overrides export.output_dir)")

	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Printf("Failed to load config: %v", err)
		exitCode = 1
		return
	}
	if *inputPath != "" {
		cfg.Input.ReportCSV = *inputPath
	}
	if *outputDir != "" {
		cfg.Export.OutputDir = *outputDir
	}

	fmt.Printf("Running revenue decline analysis on %s...\n", cfg.Input.ReportCSV)

	outcome, err := runner.Run(cfg, logger)
	if err != nil {
		logger.Printf("Analysis failed: %v", err)
		exitCode = 1
		return
	}

	var sinks []sink.Sink
	if cfg.Export.OutputDir != "" {
		sinks = append(sinks, &sink.CSVSink{Dir: cfg.Export.OutputDir})
	}
	if cfg.Export.Workbook != "" {
		sinks = append(sinks, &sink.ExcelSink{Path: cfg.Export.Workbook})
	}
	if cfg.Export.Postgres != "" {
		sinks = append(sinks, &sink.PostgresSink{DSN: cfg.Export.Postgres})
	}

	ctx := context.Background()
	for _, s := range sinks {
		if err := s.Write(ctx, outcome.RunID, outcome.Tables); err != nil {
			logger.Printf("Export to %s failed: %v", s.Name(), err)
			exitCode = 1
			return
		}
		logger.Printf("exported %d tables to %s", len(outcome.Tables), s.Name())
	}

	jsonOutput, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		logger.Printf("Failed to marshal outcome: %v", err)
		exitCode = 1
		return
	}
	fmt.Println(string(jsonOutput))
}
