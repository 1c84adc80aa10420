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

func TestClearScriptAndStats(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024, MaxPerScript: 10, MinInterval: time.Millisecond})
	var id int64 = 7
	m.PushSnapshot(Snapshot{ScriptID: id, Blob: []byte("abcdef"), TS: time.Now()})
	tb, scripts, total := m.Stats()
	if tb == 0 || scripts != 1 || total != 1 {
		t.Fatalf("unexpected stats before clear: tb=%d scripts=%d total=%d", tb, scripts, total)
	}
	m.ClearScript(id)
	tb2, scripts2, total2 := m.Stats()
	if tb2 != 0 || scripts2 != 0 || total2 != 0 {
		t.Fatalf("expected cleared stats to be zero, got tb=%d scripts=%d total=%d", tb2, scripts2, total2)
	}
}

func TestGlobalPruneAcrossScripts(t *testing.T) {
	// Very small MaxBytes so pruning triggers across scripts
	m := NewManager(Config{MaxBytes: 8, MaxPerScript: 0, MinInterval: time.Millisecond})
	t0 := time.Now()
	// Script 1 older snapshot
	m.PushSnapshot(Snapshot{ScriptID: 1, Blob: []byte("xxxx"), TS: t0})
	// Script 2 newer snapshot
	m.PushSnapshot(Snapshot{ScriptID: 2, Blob: []byte("yyyy"), TS: t0.Add(time.Second)})

	// Add another snapshot to exceed cap and force prune of the oldest entry
	m.PushSnapshot(Snapshot{ScriptID: 2, Blob: []byte("zzzz"), TS: t0.Add(2 * time.Second)})

	// After pruning, the oldest (script 1) should be removed
	_, scripts, total := m.Stats()
	if scripts == 0 || total == 0 {
		t.Fatalf("expected some snapshots to remain")
	}
	// Undo script 1 should now be empty
	if _, ok := m.Undo(1, nil); ok {
		t.Fatalf("expected script 1 to have been pruned")
	}
	// Undo script 2 should still work
	if _, ok := m.Undo(2, nil); !ok {
		t.Fatalf("expected script 2 to have snapshots")
	}
}
