package config

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// Saver applies edits to a config and writes it once edits settle
type Saver struct {
	mu       sync.Mutex
	cfg      *Config
	path     string
	debounce func(f func())
	onError  func(error)
	saves    int
}

// NewSaver saves cfg to path after wait without further edits. onError may
// be nil.
func NewSaver(cfg *Config, path string, wait time.Duration, onError func(error)) *Saver {
	return &Saver{
		cfg:      cfg,
		path:     path,
		debounce: debounce.New(wait),
		onError:  onError,
	}
}

// Update edits the config and schedules a save
func (s *Saver) Update(edit func(*Config)) {
	s.mu.Lock()
	edit(s.cfg)
	s.mu.Unlock()
	s.debounce(func() { s.Flush() })
}

// Flush saves immediately
func (s *Saver) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.cfg.SaveFile(s.path)
	if err != nil && s.onError != nil {
		s.onError(err)
	}
	if err == nil {
		s.saves++
	}
	return err
}

// Saves counts successful writes
func (s *Saver) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Config returns a copy of the current config
func (s *Saver) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.cfg
}
