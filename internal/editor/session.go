/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package editor

import (
	"encoding/json"
	"fmt"
	"time"

	"goscreenwriter/internal/domain"
	"goscreenwriter/internal/timing"
	"goscreenwriter/internal/undo"
)

// Review is the derived view recomputed after every edit: the timing
// breakdown, its classification, and the structural defects. It is never
// cached across edits; Session.Review derives it fresh from current state.
type Review struct {
	Breakdown timing.Breakdown
	Status    timing.Status
	Defects   map[string][]string
}

// Session wraps a script under edit with undo/redo history. Edits go through
// Apply so a pre-edit snapshot lands on the history stack; Review re-derives
// the timing and validation view from the current state on demand.
//
// A Session is not safe for concurrent use; the surrounding application
// serializes edits per script.
type Session struct {
	script domain.Script
	hist   *undo.Manager
	now    func() time.Time
}

// NewSession starts an editing session over a deep copy of the script.
// A nil manager gets default history caps.
func NewSession(script domain.Script, hist *undo.Manager) *Session {
	if hist == nil {
		hist = undo.NewManager(undo.Config{})
	}
	return &Session{script: script.Clone(), hist: hist, now: time.Now}
}

// Script returns a deep copy of the current state.
func (s *Session) Script() domain.Script {
	return s.script.Clone()
}

// Apply runs the edit against a working copy, renumbers scenes, and on
// success records a pre-edit snapshot on the history stack. If the edit
// returns an error the state and history are unchanged.
func (s *Session) Apply(edit func(*domain.Script) error) error {
	blob, err := marshalState(&s.script)
	if err != nil {
		return err
	}
	work := s.script.Clone()
	if err := edit(&work); err != nil {
		return err
	}
	domain.Renumber(work.Scenes)
	work.UpdatedAt = s.now()
	s.hist.PushSnapshot(undo.Snapshot{ScriptID: s.script.ID, Blob: blob, TS: s.now()})
	s.script = work
	return nil
}

// Undo restores the previous state, if any.
func (s *Session) Undo() bool {
	cur, err := marshalState(&s.script)
	if err != nil {
		return false
	}
	snap, ok := s.hist.Undo(s.script.ID, cur)
	if !ok {
		return false
	}
	return s.restore(snap.Blob)
}

// Redo reapplies the last undone state, if any.
func (s *Session) Redo() bool {
	cur, err := marshalState(&s.script)
	if err != nil {
		return false
	}
	snap, ok := s.hist.Redo(s.script.ID, cur)
	if !ok {
		return false
	}
	return s.restore(snap.Blob)
}

// Review derives breakdown, status, and defects from the current state.
func (s *Session) Review() Review {
	b := timing.Estimate(s.script)
	return Review{
		Breakdown: b,
		Status:    timing.Classify(b.Total),
		Defects:   Validate(s.script.Scenes),
	}
}

func (s *Session) restore(blob []byte) bool {
	var restored domain.Script
	if err := json.Unmarshal(blob, &restored); err != nil {
		return false
	}
	s.script = restored
	return true
}

func marshalState(sc *domain.Script) ([]byte, error) {
	blob, err := json.Marshal(sc)
	if err != nil {
		return nil, fmt.Errorf("snapshot script %d: %w", sc.ID, err)
	}
	return blob, nil
}
