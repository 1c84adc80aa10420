/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model for Go Screen Writer: a script with
// ordered scenes, dialogue lines, and camera notes. The shapes serialize to a
// human-readable JSON manifest consumed by the store and the exporters.

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidInput reports a missing or empty required field (e.g. the topic
// handed to the generator). It is surfaced to the caller, never defaulted.
var ErrInvalidInput = errors.New("invalid input")

// Style identifies a narrative template family. The set is closed but
// extensible: unknown tags fall back to the default template at generation
// time rather than failing.
type Style string

const (
	StyleComedy      Style = "comedy"
	StyleThriller    Style = "thriller"
	StyleEducational Style = "educational"
)

// Styles lists the registered style tags in display order.
func Styles() []Style {
	return []Style{StyleComedy, StyleThriller, StyleEducational}
}

// Script is a complete screenplay document. ID and the timestamps are owned
// by the persistence store; everything else is authored content.
//
// TargetRuntime is the placeholder duration (seconds) assigned at generation
// time. It is deliberately independent of the content-derived estimate
// computed by the timing package; the two values may disagree for the same
// script, which is why they carry distinct names.
type Script struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Topic         string  `json:"topic"`
	Style         Style   `json:"style"`
	Story         string  `json:"story"`
	Scenes        []Scene `json:"scenes"`
	TargetRuntime int     `json:"targetRuntime"`

	Writer string `json:"writer,omitempty"`
	Draft  string `json:"draft,omitempty"`
	Notes  string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Scene is one numbered unit of a script. Number is 1-based and contiguous;
// after any structural edit (insert/delete/reorder) the editor renumbers so
// that scenes[i].Number == i+1 holds.
type Scene struct {
	ID          string         `json:"id"`
	Number      int            `json:"number"`
	Heading     string         `json:"heading"`
	Action      string         `json:"action,omitempty"`
	Dialogue    []DialogueLine `json:"dialogue,omitempty"`
	CameraNotes []string       `json:"cameraNotes,omitempty"`
}

// DialogueLine is a single spoken line. Character is canonicalized on write
// (upper-case, single-spaced) so downstream matching can use plain equality.
type DialogueLine struct {
	Character     string `json:"character"`
	Text          string `json:"text,omitempty"`
	Parenthetical string `json:"parenthetical,omitempty"`
}

// CanonicalName folds a character name to canonical form: upper-case with
// runs of whitespace collapsed to single spaces. All downstream consumers
// (timing stats, suggestions, validation) assume this form.
func CanonicalName(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), " "))
}

// CanonicalHeading normalizes a slugline: upper-case, single-spaced words.
func CanonicalHeading(heading string) string {
	return strings.ToUpper(strings.Join(strings.Fields(heading), " "))
}

// Renumber reassigns Scene.Number as the 1-based sequential index matching
// slice order. Callers invoke it after every structural edit.
func Renumber(scenes []Scene) {
	for i := range scenes {
		scenes[i].Number = i + 1
	}
}

// Clone returns a deep copy of the script. The store hands out clones so
// callers cannot mutate cached state.
func (s Script) Clone() Script {
	out := s
	out.Scenes = CloneScenes(s.Scenes)
	return out
}

// CloneScenes deep-copies a scene slice.
func CloneScenes(scenes []Scene) []Scene {
	if scenes == nil {
		return nil
	}
	out := make([]Scene, len(scenes))
	for i, sc := range scenes {
		out[i] = sc
		if sc.Dialogue != nil {
			out[i].Dialogue = append([]DialogueLine(nil), sc.Dialogue...)
		}
		if sc.CameraNotes != nil {
			out[i].CameraNotes = append([]string(nil), sc.CameraNotes...)
		}
	}
	return out
}

// SceneByID returns a pointer to the scene with the given id, or nil.
func (s *Script) SceneByID(id string) *Scene {
	for i := range s.Scenes {
		if s.Scenes[i].ID == id {
			return &s.Scenes[i]
		}
	}
	return nil
}
