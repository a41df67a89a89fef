package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/inkrank/doodle/chart"
	"github.com/inkrank/doodle/classifier"
	"github.com/inkrank/doodle/config"
	"github.com/inkrank/doodle/labels"
)

func main() {
	configName := flag.String("c", "", "configuration file")
	outputName := flag.String("o", "", "output file, stdout when empty")
	top := flag.Int("k", 0, "classes per image, configured top-k when 0")
	asJSON := flag.Bool("json", false, "write json")
	flag.Parse()

	if err := run(*configName, *outputName, *top, *asJSON, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type result struct {
	Path   string      `json:"path"`
	Ranked []chart.Row `json:"ranked,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func run(configName, outputName string, top int, asJSON bool, paths []string) (err error) {
	if len(paths) == 0 {
		return errors.New("missing input files")
	}

	cfg, err := config.Load(configName)
	if err != nil {
		return err
	}
	if top <= 0 {
		top = cfg.Chart.TopK
	}

	names := labels.Default()
	if cfg.Classifier.Labels != "" {
		if names, err = labels.Load(cfg.Classifier.Labels); err != nil {
			return err
		}
	}

	backend := classifier.NewHTTPBackend(cfg.Classifier.URL, cfg.Classifier.Secret, cfg.Classifier.Timeout)
	model := classifier.NewModel(backend, names)
	ctx := context.Background()
	if err := model.Load(ctx); err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outputName != "" {
		f, err := os.Create(outputName)
		if err != nil {
			return fmt.Errorf("can't create outputfile %w", err)
		}
		defer f.Close()
		out = f
	}

	results := classifier.ClassifyFiles(ctx, model, paths, classifier.BatchConfig{
		Margin:    cfg.Canvas.Margin,
		TopK:      top,
		BatchSize: cfg.Classifier.BatchSize,
	})

	report := make([]result, len(results))
	failed := 0
	for i, r := range results {
		report[i].Path = r.Path
		if r.Err != nil {
			report[i].Error = r.Err.Error()
			failed++
			continue
		}
		report[i].Ranked = chart.Build(r.Ranked, names, cfg.Chart.Palette).Legend
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(report)
	} else {
		err = writeText(out, report)
	}
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(paths))
	}
	return nil
}

func writeText(w io.Writer, report []result) error {
	for _, r := range report {
		if r.Error != "" {
			if _, err := fmt.Fprintf(w, "%s\terror: %s\n", r.Path, r.Error); err != nil {
				return err
			}
			continue
		}
		for i, row := range r.Ranked {
			if _, err := fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", r.Path, i+1, row.Label, row.Percent); err != nil {
				return err
			}
		}
	}
	return nil
}
