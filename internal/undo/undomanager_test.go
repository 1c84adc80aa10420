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
	"testing"
	"time"
)

func TestUndoRedoBasic(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024 * 1024, MaxPerScript: 10, MinInterval: 10 * time.Millisecond})
	var id int64 = 1
	m.PushSnapshot(Snapshot{ScriptID: id, Blob: []byte("a"), TS: time.Now()})
	m.PushSnapshot(Snapshot{ScriptID: id, Blob: []byte("b"), TS: time.Now().Add(20 * time.Millisecond)})
	if _, scripts, total := m.Stats(); scripts != 1 || total != 2 {
		t.Fatalf("expected 1 script and 2 snapshots, got scripts=%d total=%d", scripts, total)
	}
	s, ok := m.Undo(id, []byte("c"))
	if !ok || string(s.Blob) != "b" {
		t.Fatalf("undo expected 'b', got ok=%v blob=%q", ok, string(s.Blob))
	}
	s, ok = m.Redo(id, s.Blob)
	if !ok || string(s.Blob) != "c" {
		t.Fatalf("redo expected 'c', got ok=%v blob=%q", ok, string(s.Blob))
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024 * 1024, MaxPerScript: 10, MinInterval: time.Millisecond})
	var id int64 = 9
	t0 := time.Now()
	// Snapshots of state before each edit: s0 before first, s1 before second.
	m.PushSnapshot(Snapshot{ScriptID: id, Blob: []byte("s0"), TS: t0})
	m.PushSnapshot(Snapshot{ScriptID: id, Blob: []byte("s1"), TS: t0.Add(10 * time.Millisecond)})
	cur := []byte("s2")
	s, ok := m.Undo(id, cur)
	if !ok || string(s.Blob) != "s1" {
		t.Fatalf("first undo expected s1, got ok=%v blob=%q", ok, string(s.Blob))
	}
	cur = s.Blob
	s, ok = m.Undo(id, cur)
	if !ok || string(s.Blob) != "s0" {
		t.Fatalf("second undo expected s0, got ok=%v blob=%q", ok, string(s.Blob))
	}
	cur = s.Blob
	s, ok = m.Redo(id, cur)
	if !ok || string(s.Blob) != "s1" {
		t.Fatalf("first redo expected s1, got ok=%v blob=%q", ok, string(s.Blob))
	}
	cur = s.Blob
	s, ok = m.Redo(id, cur)
	if !ok || string(s.Blob) != "s2" {
		t.Fatalf("second redo expected s2, got ok=%v blob=%q", ok, string(s.Blob))
	}
}

func TestPushClearsRedo(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024 * 1024, MaxPerScript: 10, MinInterval: time.Millisecond})
	var id int64 = 4
	t0 := time.Now()
	m.PushSnapshot(Snapshot{ScriptID: id, Blob: []byte("a"), TS: t0})
	m.PushSnapshot(Snapshot{ScriptID: id, Blob: []byte("b"), TS: t0.Add(10 * time.Millisecond)})
	if _, ok := m.Undo(id, []byte("cur")); !ok {
		t.Fatalf("expected undo to succeed")
	}
	// A new edit after undo invalidates the redo branch
	m.PushSnapshot(Snapshot{ScriptID: id, Blob: []byte("c"), TS: t0.Add(20 * time.Millisecond)})
	if _, ok := m.Redo(id, []byte("cur")); ok {
		t.Fatalf("expected redo to be cleared after a new snapshot")
	}
}

func TestCoalesce(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024 * 1024, MaxPerScript: 10, MinInterval: 50 * time.Millisecond})
	var id int64 = 2
	t0 := time.Now()
	m.PushSnapshot(Snapshot{ScriptID: id, Blob: []byte("1"), TS: t0})
	m.PushSnapshot(Snapshot{ScriptID: id, Blob: []byte("2"), TS: t0.Add(10 * time.Millisecond)}) // coalesce
	_, _, total := m.Stats()
	if total != 1 {
		t.Fatalf("expected coalesced to 1 snapshot, got %d", total)
	}
	// The burst keeps its earliest pre-edit state; undo must reach it.
	s, ok := m.Undo(id, nil)
	if !ok || string(s.Blob) != "1" {
		t.Fatalf("expected coalesced snapshot '1', got ok=%v blob=%q", ok, string(s.Blob))
	}
}

func TestCoalesceClearsRedo(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024 * 1024, MaxPerScript: 10, MinInterval: 50 * time.Millisecond})
	var id int64 = 6
	t0 := time.Now()
	m.PushSnapshot(Snapshot{ScriptID: id, Blob: []byte("a"), TS: t0})
	m.PushSnapshot(Snapshot{ScriptID: id, Blob: []byte("b"), TS: t0.Add(100 * time.Millisecond)})
	m.PushSnapshot(Snapshot{ScriptID: id, Blob: []byte("c"), TS: t0.Add(200 * time.Millisecond)})
	if _, ok := m.Undo(id, []byte("cur")); !ok {
		t.Fatalf("expected undo to succeed")
	}
	// "d" lands within MinInterval of "b", the new stack top. A coalesced
	// push is still a new edit and must invalidate redo.
	m.PushSnapshot(Snapshot{ScriptID: id, Blob: []byte("d"), TS: t0.Add(120 * time.Millisecond)})
	if _, ok := m.Redo(id, []byte("cur")); ok {
		t.Fatalf("expected redo to be cleared by a coalesced snapshot")
	}
}

func TestCaps(t *testing.T) {
	m := NewManager(Config{MaxBytes: 20, MaxPerScript: 2, MinInterval: 1 * time.Millisecond})
	var id int64 = 3
	for i := 0; i < 10; i++ {
		m.PushSnapshot(Snapshot{ScriptID: id, Blob: []byte("xxxxx"), TS: time.Now().Add(time.Duration(i) * time.Millisecond)})
	}
	_, _, total := m.Stats()
	if total > 2 {
		t.Fatalf("expected MaxPerScript cap to limit to 2, got %d", total)
	}
}
