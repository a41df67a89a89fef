package chart

import "sync"

// View receives chart updates from a session.
type View interface {
	Show(Chart)
	Hide()
}

// Latest is a View that keeps the most recent state for hosts that poll it.
type Latest struct {
	mu      sync.RWMutex
	current Chart
	updates int
}

func (l *Latest) Show(c Chart) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = c
	l.updates++
}

func (l *Latest) Hide() {
	l.Show(Hidden)
}

// Chart returns the last state shown.
func (l *Latest) Chart() Chart {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Updates counts Show and Hide calls.
func (l *Latest) Updates() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.updates
}

// Multi fans updates out to several views.
type Multi []View

func (m Multi) Show(c Chart) {
	for _, v := range m {
		v.Show(c)
	}
}

func (m Multi) Hide() {
	for _, v := range m {
		v.Hide()
	}
}
