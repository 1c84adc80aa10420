/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package store

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"goscreenwriter/internal/domain"
)

func openTestStore(t *testing.T) (*SQLite, string) {
	t.Helper()
	root := t.TempDir()
	s, err := OpenSQLite(root)
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, root
}

func sampleScript(title string) domain.Script {
	return domain.Script{
		Title: title,
		Topic: "robot barista malfunction",
		Style: domain.StyleComedy,
		Story: "A barista discovers the robot has opinions.",
		Scenes: []domain.Scene{
			{
				ID: "scene-1", Number: 1,
				Heading: "INT. COFFEE SHOP - DAY",
				Action:  "The morning rush.",
				Dialogue: []domain.DialogueLine{
					{Character: "BARISTA", Text: "It's awake."},
				},
			},
		},
		TargetRuntime: 105,
	}
}

func TestSQLiteCreateAndGet(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, sampleScript("Robot Barista Malfunction (Comedy)"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps set")
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != created.Title || got.Topic != created.Topic || got.Style != created.Style {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Scenes) != 1 || got.Scenes[0].Dialogue[0].Character != "BARISTA" {
		t.Fatalf("scenes not preserved: %+v", got.Scenes)
	}
	if got.TargetRuntime != 105 {
		t.Fatalf("target runtime = %d", got.TargetRuntime)
	}
}

func TestSQLiteGetNotFound(t *testing.T) {
	s, _ := openTestStore(t)
	_, err := s.Get(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteUpdate(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	created, err := s.Create(ctx, sampleScript("First Draft"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	mod := created
	mod.Title = "Second Draft"
	mod.Scenes = append(mod.Scenes, domain.Scene{ID: "scene-2", Number: 2, Heading: "INT. COFFEE SHOP - LATER"})
	updated, err := s.Update(ctx, created.ID, mod)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Second Draft" || len(updated.Scenes) != 2 {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Fatalf("created_at must be preserved: %v vs %v", updated.CreatedAt, created.CreatedAt)
	}

	if _, err := s.Update(ctx, 9999, mod); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestSQLiteDelete(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	created, err := s.Create(ctx, sampleScript("Doomed"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for double delete, got %v", err)
	}
}

func TestSQLiteListOrder(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	a, err := s.Create(ctx, sampleScript("Older"))
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	// Same-second creates still order deterministically via the id tiebreak.
	b, err := s.Create(ctx, sampleScript("Newer"))
	if err != nil {
		t.Fatalf("create b: %v", err)
	}
	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 scripts, got %d", len(list))
	}
	if list[0].ID != b.ID || list[1].ID != a.ID {
		t.Fatalf("expected newest first, got %d then %d", list[0].ID, list[1].ID)
	}
}

func TestSQLiteSearch(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	kept, err := s.Create(ctx, sampleScript("Robot Barista Malfunction (Comedy)"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	other := sampleScript("Cooking Catastrophe (Thriller)")
	other.Topic = "kitchen fire"
	other.Story = "A chef fights the clock."
	if _, err := s.Create(ctx, other); err != nil {
		t.Fatalf("create other: %v", err)
	}

	res, err := s.Search(ctx, "barista", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res) != 1 || res[0].ID != kept.ID {
		t.Fatalf("expected one barista match, got %+v", res)
	}
	if !strings.Contains(res[0].Snippet, "[") {
		t.Fatalf("expected highlighted snippet, got %q", res[0].Snippet)
	}

	// Empty query lists everything up to the limit.
	all, err := s.Search(ctx, "", 10)
	if err != nil {
		t.Fatalf("empty search: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 rows for empty query, got %d", len(all))
	}

	// Deleted scripts drop out of the index via triggers.
	if err := s.Delete(ctx, kept.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	res, err = s.Search(ctx, "barista", 10)
	if err != nil {
		t.Fatalf("search after delete: %v", err)
	}
	if len(res) != 0 {
		t.Fatalf("expected no matches after delete, got %+v", res)
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	root := t.TempDir()
	s, err := OpenSQLite(root)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	created, err := s.Create(context.Background(), sampleScript("Durable"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := OpenSQLite(root)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	got, err := s2.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Title != "Durable" {
		t.Fatalf("title after reopen = %q", got.Title)
	}
}

func TestSQLiteCreatesDataDir(t *testing.T) {
	root := t.TempDir()
	s, err := OpenSQLite(root)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	if _, err := os.Stat(LibraryPath(root)); err != nil {
		t.Fatalf("expected database file at %s: %v", LibraryPath(root), err)
	}
}

func TestSQLiteRequiresRoot(t *testing.T) {
	if _, err := OpenSQLite("  "); err == nil {
		t.Fatalf("expected error for empty root")
	}
}
