/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import (
	"sync"
	"time"
)

// Snapshot represents a reversible state blob for a script under edit.
// Blob content is opaque to the manager (the editor stores serialized scene
// state); size is estimated as len(Blob). TS is when it was captured.
type Snapshot struct {
	ScriptID int64
	Blob     []byte
	TS       time.Time
}

// Config controls memory and depth caps and coalescing behavior.
type Config struct {
	// MaxBytes is a soft cap; older entries are pruned when exceeded.
	MaxBytes int
	// MaxPerScript limits snapshots kept per script (0 means unlimited).
	MaxPerScript int
	// MinInterval coalesces snapshots captured within the interval for the
	// same script: the burst collapses into its earliest snapshot, so one
	// undo step jumps back to the state before the burst began. Keeps
	// per-keystroke edit recording from flooding the stack.
	MinInterval time.Duration
}

// Manager provides an in-memory undo/redo stack per script with performance
// safeguards. It is safe for concurrent use.
type Manager struct {
	cfg Config
	mu  sync.Mutex
	// per-script stacks
	undo map[int64][]Snapshot
	redo map[int64][]Snapshot
	// accounting
	totalBytes int
}

func NewManager(cfg Config) *Manager {
	// Set conservative defaults if not provided
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 8 * 1024 * 1024 // 8 MiB
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 250 * time.Millisecond
	}
	return &Manager{cfg: cfg, undo: make(map[int64][]Snapshot), redo: make(map[int64][]Snapshot)}
}

// PushSnapshot records a pre-edit snapshot for a script. If within
// MinInterval from the last snapshot on the same script, the new blob is
// dropped and the earlier one kept: snapshots capture the state before an
// edit, so keeping the oldest of a burst is what lets undo reach the state
// the burst started from. Clears the redo stack for that script either way.
func (m *Manager) PushSnapshot(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[s.ScriptID]
	if n := len(stack); n > 0 {
		last := stack[n-1]
		if s.TS.Sub(last.TS) < m.cfg.MinInterval {
			// Coalesce: the burst keeps its earliest snapshot.
			m.redo[s.ScriptID] = nil
			return
		}
	}
	// Push new
	stack = append(stack, s)
	m.undo[s.ScriptID] = stack
	m.totalBytes += len(s.Blob)
	// Any new change invalidates redo for the script
	m.redo[s.ScriptID] = nil
	m.enforceCapsLocked(s.ScriptID)
}

// Undo pops the most recent snapshot for a script and returns it so the
// caller can restore that state. The caller passes its current state blob,
// which is parked on the redo stack so Redo can bring it back.
func (m *Manager) Undo(scriptID int64, current []byte) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[scriptID]
	if len(stack) == 0 {
		return Snapshot{}, false
	}
	s := stack[len(stack)-1]
	m.undo[scriptID] = stack[:len(stack)-1]
	m.totalBytes -= len(s.Blob)
	m.redo[scriptID] = append(m.redo[scriptID], Snapshot{ScriptID: scriptID, Blob: current, TS: time.Now()})
	return s, true
}

// Redo pops the most recent redo snapshot and parks the caller's current
// state back on the undo stack.
func (m *Manager) Redo(scriptID int64, current []byte) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.redo[scriptID]
	if len(r) == 0 {
		return Snapshot{}, false
	}
	s := r[len(r)-1]
	m.redo[scriptID] = r[:len(r)-1]
	m.undo[scriptID] = append(m.undo[scriptID], Snapshot{ScriptID: scriptID, Blob: current, TS: time.Now()})
	m.totalBytes += len(current)
	m.enforceCapsLocked(scriptID)
	return s, true
}

// ClearScript clears undo/redo stacks for a script to free memory.
func (m *Manager) ClearScript(scriptID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.undo[scriptID] {
		m.totalBytes -= len(s.Blob)
	}
	delete(m.undo, scriptID)
	delete(m.redo, scriptID)
	if m.totalBytes < 0 {
		m.totalBytes = 0
	}
}

// Stats returns current sizes for diagnostics.
func (m *Manager) Stats() (totalBytes int, scripts int, totalSnapshots int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	scripts = len(m.undo)
	for _, v := range m.undo {
		totalSnapshots += len(v)
	}
	return m.totalBytes, scripts, totalSnapshots
}

func (m *Manager) enforceCapsLocked(scriptID int64) {
	// Per-script depth cap
	if m.cfg.MaxPerScript > 0 {
		stack := m.undo[scriptID]
		if len(stack) > m.cfg.MaxPerScript {
			// drop the oldest extras
			toDrop := len(stack) - m.cfg.MaxPerScript
			for i := 0; i < toDrop; i++ {
				m.totalBytes -= len(stack[i].Blob)
			}
			m.undo[scriptID] = append([]Snapshot{}, stack[toDrop:]...)
		}
	}
	// Global memory cap: prune oldest across all scripts
	for m.cfg.MaxBytes > 0 && m.totalBytes > m.cfg.MaxBytes {
		var oldestScript int64
		oldestIdx := -1
		var oldestTS time.Time
		for id, stack := range m.undo {
			if len(stack) == 0 {
				continue
			}
			if oldestIdx == -1 || stack[0].TS.Before(oldestTS) {
				oldestScript = id
				oldestIdx = 0
				oldestTS = stack[0].TS
			}
		}
		if oldestIdx == -1 {
			break
		}
		stack := m.undo[oldestScript]
		m.totalBytes -= len(stack[0].Blob)
		m.undo[oldestScript] = stack[1:]
		if len(m.undo[oldestScript]) == 0 {
			delete(m.undo, oldestScript)
		}
	}
}
