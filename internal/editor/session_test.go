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
	"errors"
	"testing"
	"time"

	"goscreenwriter/internal/domain"
	"goscreenwriter/internal/undo"
)

// zeroIntervalHistory disables coalescing so every Apply lands a snapshot.
func zeroIntervalHistory() *undo.Manager {
	return undo.NewManager(undo.Config{MinInterval: time.Nanosecond})
}

func TestSessionApplyAndUndoRedo(t *testing.T) {
	sess := NewSession(threeSceneScript(), zeroIntervalHistory())
	err := sess.Apply(func(s *domain.Script) error {
		AddScene(s)
		return nil
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if got := len(sess.Script().Scenes); got != 4 {
		t.Fatalf("expected 4 scenes after apply, got %d", got)
	}
	if !sess.Undo() {
		t.Fatalf("expected undo to succeed")
	}
	if got := len(sess.Script().Scenes); got != 3 {
		t.Fatalf("expected 3 scenes after undo, got %d", got)
	}
	if !sess.Redo() {
		t.Fatalf("expected redo to succeed")
	}
	if got := len(sess.Script().Scenes); got != 4 {
		t.Fatalf("expected 4 scenes after redo, got %d", got)
	}
}

func TestSessionUndoEmptyHistory(t *testing.T) {
	sess := NewSession(threeSceneScript(), zeroIntervalHistory())
	if sess.Undo() {
		t.Fatalf("expected undo on fresh session to fail")
	}
	if sess.Redo() {
		t.Fatalf("expected redo on fresh session to fail")
	}
}

func TestSessionApplyErrorLeavesStateUntouched(t *testing.T) {
	sess := NewSession(threeSceneScript(), zeroIntervalHistory())
	boom := errors.New("boom")
	err := sess.Apply(func(s *domain.Script) error {
		AddScene(s)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected edit error to propagate, got %v", err)
	}
	if got := len(sess.Script().Scenes); got != 3 {
		t.Fatalf("expected state unchanged after failed edit, got %d scenes", got)
	}
	if sess.Undo() {
		t.Fatalf("expected no snapshot recorded for failed edit")
	}
}

func TestSessionApplyRenumbers(t *testing.T) {
	sess := NewSession(threeSceneScript(), zeroIntervalHistory())
	err := sess.Apply(func(s *domain.Script) error {
		// Deliberately scramble the numbers; Apply restores the invariant.
		for i := range s.Scenes {
			s.Scenes[i].Number = 99
		}
		return nil
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	assertContiguous(t, sess.Script().Scenes)
}

func TestSessionReviewRecomputes(t *testing.T) {
	sess := NewSession(threeSceneScript(), zeroIntervalHistory())
	before := sess.Review()
	err := sess.Apply(func(s *domain.Script) error {
		AddDialogueLine(s, "scene-1", domain.DialogueLine{
			Character: "BARISTA",
			Text:      "one two three four five six seven eight nine ten",
		})
		return nil
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	after := sess.Review()
	if after.Breakdown.Total <= before.Breakdown.Total {
		t.Fatalf("expected total to grow after adding dialogue: before=%d after=%d",
			before.Breakdown.Total, after.Breakdown.Total)
	}
	if _, ok := after.Breakdown.PerCharacter["BARISTA"]; !ok {
		t.Fatalf("expected BARISTA in per-character stats")
	}
	if after.Status.Band == "" || after.Status.Formatted == "" {
		t.Fatalf("expected classified status, got %+v", after.Status)
	}
	if !Clean(after.Defects) {
		t.Fatalf("expected no defects on complete scenes: %v", after.Defects)
	}
}

func TestSessionIsolatedFromCaller(t *testing.T) {
	orig := threeSceneScript()
	sess := NewSession(orig, zeroIntervalHistory())
	orig.Scenes[0].Heading = "MUTATED"
	if sess.Script().Scenes[0].Heading == "MUTATED" {
		t.Fatalf("session state should be isolated from the caller's script")
	}
	got := sess.Script()
	got.Scenes[0].Heading = "MUTATED AGAIN"
	if sess.Script().Scenes[0].Heading == "MUTATED AGAIN" {
		t.Fatalf("Script() should return a deep copy")
	}
}

func TestSessionRapidEditsStayUndoable(t *testing.T) {
	orig := threeSceneScript()
	orig.Title = "First Cut"
	// Default history: edits landing inside the coalescing window collapse
	// into one undo step that reaches the state before the burst.
	sess := NewSession(orig, nil)
	for _, title := range []string{"Second Cut", "Third Cut"} {
		title := title
		err := sess.Apply(func(s *domain.Script) error {
			s.Title = title
			return nil
		})
		if err != nil {
			t.Fatalf("apply failed: %v", err)
		}
	}
	if got := sess.Script().Title; got != "Third Cut" {
		t.Fatalf("expected latest title, got %q", got)
	}
	if !sess.Undo() {
		t.Fatalf("expected undo to succeed")
	}
	if got := sess.Script().Title; got != "First Cut" {
		t.Fatalf("undo after a rapid burst must restore the pre-burst state, got %q", got)
	}
	if !sess.Redo() {
		t.Fatalf("expected redo to succeed")
	}
	if got := sess.Script().Title; got != "Third Cut" {
		t.Fatalf("redo should return to the latest state, got %q", got)
	}
}
