// Package main provides jsonmap, it maps CoinMarketCap style listing JSON into typed records,
// prints a ranked summary and optionally persists records into MySQL.
//
// Usage:
//
//	jsonmap -config jsonmap.yaml -in listing.json -envelope -op insert -limit 5
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/viant/jsonmap/config"
	"github.com/viant/jsonmap/internal/cli"
)

func main() {
	configURL := flag.String("config", "", "YAML configuration file")
	in := flag.String("in", "", "input JSON file, stdin when empty")
	envelope := flag.Bool("envelope", false, "input is a listing envelope with status and data")
	op := flag.String("op", "", "store operation: none, insert or update")
	limit := flag.Int("limit", 0, "number of reported items")
	mode := flag.String("mode", "", "mapping mode: compat or strict")
	flag.Parse()
	defer glog.Flush()

	cfg, err := loadConfig(*configURL)
	if err == nil {
		err = override(cfg, *envelope, *op, *mode, *limit)
	}
	if err == nil {
		err = run(cfg, *in)
	}
	if err != nil {
		glog.Errorf("jsonmap: %v", err)
		fmt.Fprintln(os.Stderr, err)
		glog.Flush()
		os.Exit(1)
	}
}

func loadConfig(URL string) (*config.Config, error) {
	if URL == "" {
		return config.Default(), nil
	}
	return config.LoadFile(URL)
}

func override(cfg *config.Config, envelope bool, op, mode string, limit int) error {
	if envelope {
		cfg.Mapping.Envelope = true
	}
	if op != "" {
		cfg.Store.Op = op
	}
	if mode != "" {
		cfg.Mapping.Mode = mode
	}
	if limit > 0 {
		cfg.Report.Limit = limit
	}
	return cfg.Validate()
}

func run(cfg *config.Config, in string) error {
	input, err := readInput(in)
	if err != nil {
		return err
	}
	summary, err := cli.New(cfg, os.Stdout).Run(context.Background(), input)
	if err != nil {
		return err
	}
	glog.V(1).Infof("jsonmap: %d items, persisted: %v", len(summary.Items), summary.Persisted)
	return nil
}

func readInput(in string) ([]byte, error) {
	if in == "" {
		data, err := io.ReadAll(os.Stdin)
		return data, errors.Wrap(err, "failed to read stdin")
	}
	data, err := os.ReadFile(in)
	return data, errors.Wrapf(err, "failed to read %s", in)
}
