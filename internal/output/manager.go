package output

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Manager drives several writers through one run.
type Manager struct {
	writers []Writer
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) AddWriter(w Writer) error {
	if m == nil {
		return fmt.Errorf("output manager is nil")
	}
	if w == nil {
		return fmt.Errorf("writer must not be nil")
	}
	m.writers = append(m.writers, w)
	return nil
}

func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.writers)
}

func (m *Manager) Begin() error {
	if m == nil {
		return fmt.Errorf("output manager is nil")
	}
	var errs []error
	for _, w := range m.writers {
		if err := w.Begin(); err != nil {
			errs = append(errs, fmt.Errorf("begin %T: %w", w, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors starting writers: %w", errors.Join(errs...))
	}
	return nil
}

func (m *Manager) WriteObject(o any, enumerate bool) error {
	if m == nil {
		return fmt.Errorf("output manager is nil")
	}
	var errs []error
	for _, w := range m.writers {
		if err := w.WriteObject(o, enumerate); err != nil {
			errs = append(errs, fmt.Errorf("write %T: %w", w, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors writing to writers: %w", errors.Join(errs...))
	}
	return nil
}

// End finishes every writer concurrently. A failing writer does not stop the others.
func (m *Manager) End() error {
	if m == nil {
		return fmt.Errorf("output manager is nil")
	}
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	for _, w := range m.writers {
		g.Go(func() error {
			if err := w.End(); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("end %T: %w", w, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	if len(errs) > 0 {
		return fmt.Errorf("errors ending writers: %w", errors.Join(errs...))
	}
	return nil
}
