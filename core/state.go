package core

import (
	"fmt"
	"sync"
)

// DotStateStore owns the mutable per-dot display state. Geometry lives
// elsewhere; the store only knows how many records exist. Every write goes
// through a method and serializes under one mutex, and each call applies
// as a unit, so a reader never observes a half-applied record. Readers get
// copies via Get and Snapshot and never touch the backing slice.
type DotStateStore struct {
	mu           sync.Mutex
	states       []DotState
	initialized  bool
	defaultColor RGB
	activeColor  RGB
}

// NewDotStateStore creates an empty store. Initialize must run before any
// other operation.
func NewDotStateStore(defaultColor, activeColor RGB) *DotStateStore {
	return &DotStateStore{defaultColor: defaultColor, activeColor: activeColor}
}

// Initialize allocates count default records (inactive, default color, no
// metadata). It runs once per retained point set build; calling it again
// drops all prior state.
func (s *DotStateStore) Initialize(count int) error {
	if count < 0 {
		return fmt.Errorf("%w: record count %d, need >= 0", ErrInvalidArgument, count)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = make([]DotState, count)
	for i := range s.states {
		s.states[i].Color = s.defaultColor
	}
	s.initialized = true
	return nil
}

// Len reports the number of records, zero before Initialize.
func (s *DotStateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

// Get returns a copy of the record at index.
func (s *DotStateStore) Get(index int) (DotState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return DotState{}, err
	}
	return s.states[index], nil
}

// Update merges the patch into the record at index. Nil patch fields leave
// the current value in place; the whole patch applies atomically.
func (s *DotStateStore) Update(index int, patch StatePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return err
	}
	if patch.Active != nil {
		s.states[index].Active = *patch.Active
	}
	if patch.Color != nil {
		s.states[index].Color = *patch.Color
	}
	if patch.Metadata != nil {
		s.states[index].Metadata = patch.Metadata
	}
	return nil
}

// Activate marks the record at index active. A nil color selects the
// configured active color.
func (s *DotStateStore) Activate(index int, color *RGB) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.states[index].Active = true
	if color != nil {
		s.states[index].Color = *color
	} else {
		s.states[index].Color = s.activeColor
	}
	return nil
}

// ClearActive resets every record to inactive with the default color.
// Metadata survives; it belongs to the caller, not to activation.
func (s *DotStateStore) ClearActive() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return fmt.Errorf("%w: ClearActive before Initialize", ErrUninitialized)
	}
	for i := range s.states {
		s.states[i].Active = false
		s.states[i].Color = s.defaultColor
	}
	return nil
}

// Snapshot returns a copy of every record, in dot order. Renderers call
// this once per frame instead of holding the backing slice.
func (s *DotStateStore) Snapshot() ([]DotState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return nil, fmt.Errorf("%w: Snapshot before Initialize", ErrUninitialized)
	}
	out := make([]DotState, len(s.states))
	copy(out, s.states)
	return out, nil
}

func (s *DotStateStore) checkIndex(index int) error {
	if !s.initialized {
		return fmt.Errorf("%w: access before Initialize", ErrUninitialized)
	}
	if index < 0 || index >= len(s.states) {
		return fmt.Errorf("%w: index %d, store holds %d records", ErrIndexOutOfRange, index, len(s.states))
	}
	return nil
}
