package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/spendlens/spendlens/internal/infrastructure/config"
	"github.com/spendlens/spendlens/internal/infrastructure/storage"
	"github.com/spendlens/spendlens/internal/insight"
	"github.com/spendlens/spendlens/internal/normalize"
	"github.com/spendlens/spendlens/internal/observability"
	"github.com/spendlens/spendlens/internal/reader"
	"github.com/spendlens/spendlens/internal/report"
)

func main() {
	var (
		file    = flag.String("file", "", "Transaction file to analyze (CSV or JSON)")
		format  = flag.String("format", "", "Input format: csv or json (default: from file extension)")
		save    = flag.Bool("save", false, "Persist the result as an analysis session")
		dbPath  = flag.String("db", "", "Database path (default: from config)")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	logger := observability.NewLogger(config.LoggingConfig{Level: level, Format: "text"})

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze -file transactions.csv [-format csv|json] [-save]")
		os.Exit(2)
	}

	rows, err := readRows(*file, *format)
	if err != nil {
		logger.Error("Failed to read input", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Debug("Read input rows", slog.Int("count", len(rows)))

	transactions, err := normalize.Normalize(rows)
	if err != nil {
		logger.Error("Normalization failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	insights, err := insight.Analyze(transactions)
	if err != nil {
		logger.Error("Analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Print(report.Markdown(insights))

	if *save {
		path := *dbPath
		if path == "" {
			path = config.LoadOrEnv().Storage.DatabasePath
		}

		store, err := storage.NewStorage(path)
		if err != nil {
			logger.Error("Failed to open storage", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer store.Close()

		session := &storage.AnalysisSession{
			ID:           uuid.NewString(),
			Source:       sourceFor(*file, *format),
			Transactions: transactions,
			Insights:     insights,
		}
		if err := store.SaveSession(session); err != nil {
			logger.Error("Failed to save session", slog.String("error", err.Error()))
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "saved session %s\n", session.ID)
	}
}

func readRows(path, format string) ([]normalize.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch resolveFormat(path, format) {
	case "json":
		return reader.JSON(f)
	case "csv":
		return reader.CSV(f)
	default:
		return nil, fmt.Errorf("cannot determine format for %q, pass -format csv|json", path)
	}
}

func resolveFormat(path, format string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".csv", ".txt":
		return "csv"
	}
	return ""
}

func sourceFor(path, format string) string {
	if resolveFormat(path, format) == "json" {
		return storage.SourceJSON
	}
	return storage.SourceCSV
}
