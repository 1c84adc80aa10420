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
	"fmt"
	"sort"
	"strconv"
	"strings"

	"goscreenwriter/internal/domain"
)

// Direction selects which way MoveScene shifts a scene.
type Direction int

const (
	MoveUp Direction = iota
	MoveDown
)

// AddScene appends an empty scene skeleton and returns its id. The new scene
// gets the next free "scene-N" id so ids stay stable across later edits.
func AddScene(s *domain.Script) string {
	id := nextSceneID(s.Scenes)
	s.Scenes = append(s.Scenes, domain.Scene{
		ID:       id,
		Heading:  "",
		Action:   "",
		Dialogue: nil,
	})
	domain.Renumber(s.Scenes)
	return id
}

// DeleteScene removes the scene with the given id and renumbers the rest.
// Returns false if no scene matched.
func DeleteScene(s *domain.Script, sceneID string) bool {
	for i := range s.Scenes {
		if s.Scenes[i].ID == sceneID {
			s.Scenes = append(s.Scenes[:i], s.Scenes[i+1:]...)
			domain.Renumber(s.Scenes)
			return true
		}
	}
	return false
}

// MoveScene swaps a scene with its neighbor in the given direction and
// renumbers. Moving the first scene up or the last one down is a no-op.
func MoveScene(s *domain.Script, sceneID string, dir Direction) bool {
	idx := -1
	for i := range s.Scenes {
		if s.Scenes[i].ID == sceneID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	next := idx - 1
	if dir == MoveDown {
		next = idx + 1
	}
	if next < 0 || next >= len(s.Scenes) {
		return false
	}
	s.Scenes[idx], s.Scenes[next] = s.Scenes[next], s.Scenes[idx]
	domain.Renumber(s.Scenes)
	return true
}

// SetHeading writes a canonicalized slugline on the scene.
func SetHeading(s *domain.Script, sceneID, heading string) bool {
	sc := s.SceneByID(sceneID)
	if sc == nil {
		return false
	}
	sc.Heading = domain.CanonicalHeading(heading)
	return true
}

// SetAction replaces the scene's action text.
func SetAction(s *domain.Script, sceneID, action string) bool {
	sc := s.SceneByID(sceneID)
	if sc == nil {
		return false
	}
	sc.Action = action
	return true
}

// AddDialogueLine appends a line, canonicalizing the character name at this
// write boundary. Returns the index of the new line, or -1 if the scene does
// not exist.
func AddDialogueLine(s *domain.Script, sceneID string, line domain.DialogueLine) int {
	sc := s.SceneByID(sceneID)
	if sc == nil {
		return -1
	}
	line.Character = domain.CanonicalName(line.Character)
	sc.Dialogue = append(sc.Dialogue, line)
	return len(sc.Dialogue) - 1
}

// UpdateDialogueLine replaces the line at index, canonicalizing the
// character name.
func UpdateDialogueLine(s *domain.Script, sceneID string, index int, line domain.DialogueLine) bool {
	sc := s.SceneByID(sceneID)
	if sc == nil || index < 0 || index >= len(sc.Dialogue) {
		return false
	}
	line.Character = domain.CanonicalName(line.Character)
	sc.Dialogue[index] = line
	return true
}

// DeleteDialogueLine removes the line at index.
func DeleteDialogueLine(s *domain.Script, sceneID string, index int) bool {
	sc := s.SceneByID(sceneID)
	if sc == nil || index < 0 || index >= len(sc.Dialogue) {
		return false
	}
	sc.Dialogue = append(sc.Dialogue[:index], sc.Dialogue[index+1:]...)
	return true
}

// AddCameraNote appends a camera note to the scene.
func AddCameraNote(s *domain.Script, sceneID, note string) bool {
	sc := s.SceneByID(sceneID)
	if sc == nil {
		return false
	}
	sc.CameraNotes = append(sc.CameraNotes, note)
	return true
}

// UpdateCameraNote replaces the note at index.
func UpdateCameraNote(s *domain.Script, sceneID string, index int, note string) bool {
	sc := s.SceneByID(sceneID)
	if sc == nil || index < 0 || index >= len(sc.CameraNotes) {
		return false
	}
	sc.CameraNotes[index] = note
	return true
}

// DeleteCameraNote removes the note at index.
func DeleteCameraNote(s *domain.Script, sceneID string, index int) bool {
	sc := s.SceneByID(sceneID)
	if sc == nil || index < 0 || index >= len(sc.CameraNotes) {
		return false
	}
	sc.CameraNotes = append(sc.CameraNotes[:index], sc.CameraNotes[index+1:]...)
	return true
}

// Characters lists every distinct character speaking in the script, sorted.
// Names are already canonical, so plain map keys suffice.
func Characters(s *domain.Script) []string {
	seen := make(map[string]bool)
	var out []string
	for _, sc := range s.Scenes {
		for _, dl := range sc.Dialogue {
			if dl.Character != "" && !seen[dl.Character] {
				seen[dl.Character] = true
				out = append(out, dl.Character)
			}
		}
	}
	sort.Strings(out)
	return out
}

// nextSceneID returns "scene-N" with N one past the highest numeric suffix
// already in use, so ids never collide with generated or earlier edits.
func nextSceneID(scenes []domain.Scene) string {
	max := 0
	for _, sc := range scenes {
		if n, ok := sceneIDNumber(sc.ID); ok && n > max {
			max = n
		}
	}
	return fmt.Sprintf("scene-%d", max+1)
}

func sceneIDNumber(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, "scene-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}
