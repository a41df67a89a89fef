// Package classifier gates access to the external doodle classifier and
// provides the HTTP client used to reach it.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/inkrank/doodle/encoding/tensor"
	"github.com/inkrank/doodle/log"
)

var (
	ErrNotReady      = errors.New("classifier not ready")
	ErrLabelMismatch = errors.New("probability vector does not match vocabulary")
)

// Backend is the black box classifier.
type Backend interface {
	Health(ctx context.Context) error
	Classify(ctx context.Context, t *tensor.Tensor) ([]float32, error)
}

// BackendFunc adapts a function to a Backend that is always healthy.
type BackendFunc func(ctx context.Context, t *tensor.Tensor) ([]float32, error)

func (f BackendFunc) Health(context.Context) error { return nil }

func (f BackendFunc) Classify(ctx context.Context, t *tensor.Tensor) ([]float32, error) {
	return f(ctx, t)
}

type State int

const (
	Unloaded State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Model tracks whether the backend can be used and checks its output
// against the vocabulary.
type Model struct {
	backend Backend
	labels  []string

	mu    sync.RWMutex
	state State
	err   error
}

func NewModel(backend Backend, labels []string) *Model {
	return &Model{backend: backend, labels: labels}
}

// Load checks the backend and marks the model ready. Calling Load on a ready
// model is a no-op.
func (m *Model) Load(ctx context.Context) error {
	m.mu.Lock()
	if m.state == Ready || m.state == Loading {
		m.mu.Unlock()
		return nil
	}
	m.state = Loading
	m.mu.Unlock()

	err := m.backend.Health(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	if err != nil {
		m.state = Failed
		return fmt.Errorf("load model: %w", err)
	}
	m.state = Ready
	log.Info.Printf("classifier ready, %d labels", len(m.labels))
	return nil
}

// LoadAsync runs Load in the background; the error, if any, is delivered on
// the returned channel.
func (m *Model) LoadAsync(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		err := m.Load(ctx)
		if err != nil {
			log.Warning.Printf("classifier unavailable: %v", err)
		}
		done <- err
	}()
	return done
}

func (m *Model) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Model) Ready() bool {
	return m.State() == Ready
}

// Err is the last load error.
func (m *Model) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

func (m *Model) Labels() []string {
	return m.labels
}

// Classify runs the backend on t. It fails with ErrNotReady before Load
// succeeded.
func (m *Model) Classify(ctx context.Context, t *tensor.Tensor) ([]float32, error) {
	if !m.Ready() {
		return nil, ErrNotReady
	}
	probs, err := m.backend.Classify(ctx, t)
	if err != nil {
		return nil, err
	}
	if len(m.labels) > 0 && len(probs) != len(m.labels) {
		return nil, fmt.Errorf("%w: got %d values for %d labels", ErrLabelMismatch, len(probs), len(m.labels))
	}
	return probs, nil
}
