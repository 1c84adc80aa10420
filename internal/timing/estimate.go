/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package timing converts script content into an estimated screen duration.
// The model is additive: dialogue at a fixed speaking rate, action at a fixed
// pacing per word, a flat cost per camera note, and a flat cost per scene
// boundary. Constants follow common table-read heuristics.
package timing

import (
	"math"
	"strings"

	"goscreenwriter/internal/domain"
)

// Model constants.
const (
	WordsPerMinute         = 150 // average speaking rate for dialogue
	ActionSecondsPerWord   = 0.5 // pacing for action/description text
	CameraSetupSeconds     = 1.0 // per camera note
	SceneTransitionSeconds = 2.0 // per boundary between consecutive scenes
)

// SceneTime is the per-scene slice of the breakdown. All values are whole
// seconds, rounded at output.
type SceneTime struct {
	SceneID  string `json:"sceneId"`
	Dialogue int    `json:"dialogue"`
	Action   int    `json:"action"`
	Camera   int    `json:"camera"`
	Total    int    `json:"total"`
}

// CharacterStats accumulates speaking statistics per canonicalized character.
type CharacterStats struct {
	Lines      int `json:"lines"`
	Words      int `json:"words"`
	ScreenTime int `json:"screenTime"` // seconds of spoken dialogue
}

// Breakdown is the full derived timing report for a script. It is never
// persisted; callers recompute it from current script state on demand so it
// cannot go stale.
type Breakdown struct {
	Total        int                       `json:"total"`
	Dialogue     int                       `json:"dialogue"`
	Action       int                       `json:"action"`
	Transitions  int                       `json:"transitions"`
	CameraNotes  int                       `json:"cameraNotes"`
	PerScene     []SceneTime               `json:"perScene"`
	PerCharacter map[string]CharacterStats `json:"perCharacter"`
}

// Estimate derives a Breakdown from the script's scenes. It is a pure
// function: deterministic, no side effects, safe for concurrent use. Missing
// scenes, action, dialogue, or camera notes contribute zero rather than
// erroring. Internal accumulation keeps fractional seconds; rounding happens
// once per reported value.
func Estimate(s domain.Script) Breakdown {
	b := Breakdown{
		PerScene:     make([]SceneTime, 0, len(s.Scenes)),
		PerCharacter: make(map[string]CharacterStats),
	}

	var totalDialogue, totalAction, totalCamera float64
	charSeconds := make(map[string]float64)

	for _, sc := range s.Scenes {
		var sceneDialogue, sceneAction, sceneCamera float64

		for _, dl := range sc.Dialogue {
			words := WordCount(dl.Text)
			secs := float64(words) / WordsPerMinute * 60
			sceneDialogue += secs

			name := domain.CanonicalName(dl.Character)
			st := b.PerCharacter[name]
			st.Lines++
			st.Words += words
			b.PerCharacter[name] = st
			charSeconds[name] += secs
		}

		sceneAction = float64(WordCount(sc.Action)) * ActionSecondsPerWord
		sceneCamera = float64(len(sc.CameraNotes)) * CameraSetupSeconds

		totalDialogue += sceneDialogue
		totalAction += sceneAction
		totalCamera += sceneCamera

		b.PerScene = append(b.PerScene, SceneTime{
			SceneID:  sc.ID,
			Dialogue: roundSeconds(sceneDialogue),
			Action:   roundSeconds(sceneAction),
			Camera:   roundSeconds(sceneCamera),
			Total:    roundSeconds(sceneDialogue + sceneAction + sceneCamera),
		})
	}

	transitions := float64(maxInt(0, len(s.Scenes)-1)) * SceneTransitionSeconds

	for name, secs := range charSeconds {
		st := b.PerCharacter[name]
		st.ScreenTime = roundSeconds(secs)
		b.PerCharacter[name] = st
	}

	b.Dialogue = roundSeconds(totalDialogue)
	b.Action = roundSeconds(totalAction)
	b.CameraNotes = roundSeconds(totalCamera)
	b.Transitions = roundSeconds(transitions)
	b.Total = roundSeconds(totalDialogue + totalAction + totalCamera + transitions)
	return b
}

// WordCount counts whitespace-delimited tokens. Punctuation is not stripped;
// a word count is a token count, matching table-read practice rather than
// linguistic tokenization.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func roundSeconds(v float64) int {
	return int(math.Round(v))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
