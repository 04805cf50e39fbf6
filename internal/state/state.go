package state

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// Checkpoint summarizes scanner activity across runs. It is
// informational only and never gates a decision; the decision log
// remains the permanent record.
type Checkpoint struct {
	LastScanTime time.Time            `json:"last_scan_time"`
	ScanCount    int                  `json:"scan_count"`
	LastDecision map[string]time.Time `json:"last_decision"`
}

// Store is a mutex-guarded checkpoint with JSON persistence.
type Store struct {
	mu         sync.RWMutex
	checkpoint Checkpoint
}

func NewStore() *Store {
	return &Store{
		checkpoint: Checkpoint{
			LastDecision: map[string]time.Time{},
		},
	}
}

func (s *Store) Snapshot() Checkpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copy := s.checkpoint
	copy.LastDecision = make(map[string]time.Time, len(s.checkpoint.LastDecision))
	for k, v := range s.checkpoint.LastDecision {
		copy.LastDecision[k] = v
	}
	return copy
}

func (s *Store) RecordScan(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkpoint.LastScanTime = t
	s.checkpoint.ScanCount++
}

func (s *Store) RecordDecision(symbol string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkpoint.LastDecision[symbol] = t
}

func (s *Store) Save(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := json.MarshalIndent(s.checkpoint, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var checkpoint Checkpoint
	if err := json.Unmarshal(data, &checkpoint); err != nil {
		return err
	}
	if checkpoint.LastDecision == nil {
		checkpoint.LastDecision = map[string]time.Time{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkpoint = checkpoint
	return nil
}
