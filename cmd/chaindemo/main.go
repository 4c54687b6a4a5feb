package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/llxisdsh/chaintable"
	"github.com/llxisdsh/chaintable/internal/config"
)

func main() {
	// config
	var configPath string
	flag.StringVar(&configPath, "config", "", "demo configuration file (environment only when empty)")
	flag.Parse()
	cfg := config.MustLoad(configPath)

	// logger
	log := mustMakeLogger(cfg.LogLevel)

	if err := run(cfg, log, os.Stdout); err != nil {
		log.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger, out io.Writer) error {
	table := buildTable(cfg, log)
	for _, v := range cfg.Values {
		if table.PutString(v) == chaintable.Nil {
			log.Warn("skipped empty value")
		}
	}
	log.Info("table filled",
		"size", table.Len(),
		"capacity", table.Capacity(),
		"load_factor", table.LoadFactor(),
		"growths", table.Growths())
	log.Debug("table stats", "stats", table.Stats().ToString())

	if err := render(out, table, cfg.Format); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

func buildTable(cfg config.Config, log *slog.Logger) *chaintable.Table {
	opts := []func(*chaintable.TableConfig){
		chaintable.WithCapacity(cfg.Table.Capacity),
		chaintable.WithThreshold(cfg.Table.Threshold),
		chaintable.WithLogger(log),
	}
	if cfg.Table.Hash == config.HashSeeded {
		opts = append(opts, chaintable.WithHashFunc(chaintable.SeededHash()))
	}
	if cfg.Table.FullRecount {
		opts = append(opts, chaintable.WithFullRecount())
	}
	return chaintable.NewTable(opts...)
}

func render(w io.Writer, table *chaintable.Table, format string) error {
	switch format {
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(table); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		return enc.Close()
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(table); err != nil {
			return fmt.Errorf("json encode: %w", err)
		}
		return nil
	case config.FormatText:
		_, err := io.WriteString(w, table.String())
		return err
	default:
		return fmt.Errorf("%w: %q", config.ErrBadFormat, format)
	}
}

func mustMakeLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		panic("unknown log level: " + levelStr)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
