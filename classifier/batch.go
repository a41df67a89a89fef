package classifier

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/sync/semaphore"

	"github.com/inkrank/doodle/chart"
	"github.com/inkrank/doodle/log"
	"github.com/inkrank/doodle/normalize"
)

var ErrNoInk = errors.New("image has no ink")

// BatchConfig holds batch classification settings
type BatchConfig struct {
	Margin    float64
	TopK      int
	BatchSize int64
}

// FileResult is the outcome for one input image.
type FileResult struct {
	Path   string
	Ranked []chart.Entry
	Err    error
}

// ClassifyFiles classifies each image independently, at most
// cfg.BatchSize at a time. Results keep the order of paths.
func ClassifyFiles(ctx context.Context, m *Model, paths []string, cfg BatchConfig) []FileResult {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	results := make([]FileResult, len(paths))
	for i, p := range paths {
		results[i].Path = p
	}

	sem := semaphore.NewWeighted(cfg.BatchSize)
	for i := range paths {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Trace.Printf("Failed to acquire semaphore: %v", err)
			for j := i; j < len(paths); j++ {
				results[j].Err = err
			}
			break
		}
		go func(i int) {
			defer sem.Release(1)
			ranked, err := classifyFile(ctx, m, paths[i], cfg)
			if err != nil {
				log.Trace.Printf("Can't classify %s: %v", paths[i], err)
			}
			results[i].Ranked = ranked
			results[i].Err = err
		}(i)
	}

	// wait for the workers
	if err := sem.Acquire(context.Background(), cfg.BatchSize); err != nil {
		log.Trace.Printf("Failed to acquire semaphore: %v", err)
	}
	return results
}

func classifyFile(ctx context.Context, m *Model, path string, cfg BatchConfig) ([]chart.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	box, ok := normalize.InkBox(img, cfg.Margin)
	if !ok {
		return nil, ErrNoInk
	}
	t, err := normalize.Region(img, box)
	if err != nil {
		return nil, err
	}
	probs, err := m.Classify(ctx, t)
	if err != nil {
		return nil, err
	}
	return chart.Rank(probs, cfg.TopK), nil
}
