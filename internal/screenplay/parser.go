/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package screenplay

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"goscreenwriter/internal/domain"
)

// Error represents a parse diagnostic with position context. Parsing is
// lenient; diagnostics never abort the parse.
type Error struct {
	Line    int
	Message string
}

func (e Error) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Patterns. A slugline starts with INT., EXT., or INT/EXT. A dialogue line
// is an upper-case name, optional parenthetical, then a colon. Names are
// required to be upper-case so action sentences containing a colon are not
// swallowed as dialogue.
var (
	reSlug = regexp.MustCompile(`^(?i)(INT\.|EXT\.|INT/EXT\.?)\s+.*$`)
	reName = regexp.MustCompile(`^([A-Z][A-Z0-9 .'\-]{0,63}?)\s*(?:\(([^)]*)\))?\s*:\s*(.*)$`)
)

// Header keys recognized before the first slugline.
var headerKeys = map[string]bool{
	"TITLE": true, "TOPIC": true, "STYLE": true,
	"WRITER": true, "DRAFT": true, "NOTES": true,
}

// Parse reads screenplay text into a script. Supported syntax:
//
//   - Header lines "KEY: value" (TITLE, TOPIC, STYLE, WRITER, DRAFT, NOTES)
//     before the first slugline fill the matching script field.
//   - Free text before the first slugline (after the header block) becomes
//     the synopsis.
//   - A slugline (INT./EXT. prefix) starts a new scene; the heading is
//     canonicalized on write.
//   - "CAMERA: text" appends a camera note to the current scene.
//   - "NAME: text" or "NAME (paren): text" appends a dialogue line; the
//     character name is canonicalized. Continuation lines indented by two
//     or more spaces extend the previous dialogue text.
//   - Anything else becomes action text for the current scene, paragraphs
//     joined by blank lines.
//
// Scene ids and numbers are assigned sequentially. Dialogue outside any
// scene is reported as a diagnostic and attached to an implicit scene so no
// content is lost.
func Parse(input string) (domain.Script, []Error) {
	var (
		s       domain.Script
		errs    []Error
		cur     *domain.Scene
		lastDlg *domain.DialogueLine
		action  []string
		preside []string // synopsis paragraphs before the first scene
		inBody  bool     // true once a non-header line was seen
	)

	flushAction := func() {
		if cur != nil && len(action) > 0 {
			text := strings.Join(action, "\n")
			if cur.Action == "" {
				cur.Action = text
			} else {
				cur.Action += "\n\n" + text
			}
		}
		action = action[:0]
	}

	openScene := func(heading string) {
		flushAction()
		lastDlg = nil
		s.Scenes = append(s.Scenes, domain.Scene{
			ID:      fmt.Sprintf("scene-%d", len(s.Scenes)+1),
			Heading: domain.CanonicalHeading(heading),
		})
		cur = &s.Scenes[len(s.Scenes)-1]
	}

	scanner := bufio.NewScanner(strings.NewReader(input))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimRight(scanner.Text(), "\r")

		// Continuation line for the previous dialogue.
		if strings.HasPrefix(raw, "  ") && lastDlg != nil {
			if cont := strings.TrimSpace(raw); cont != "" {
				lastDlg.Text += "\n" + cont
			}
			continue
		}

		trim := strings.TrimSpace(raw)
		if trim == "" {
			lastDlg = nil
			if cur == nil && len(action) > 0 {
				preside = append(preside, strings.Join(action, "\n"))
				action = action[:0]
			}
			if cur != nil {
				flushAction()
			}
			continue
		}

		if reSlug.MatchString(trim) {
			if cur == nil && len(action) > 0 {
				preside = append(preside, strings.Join(action, "\n"))
				action = action[:0]
			}
			openScene(trim)
			continue
		}

		if m := reName.FindStringSubmatch(trim); m != nil {
			name, paren, text := m[1], m[2], m[3]
			if cur == nil && headerKeys[name] && !inBody {
				setHeaderField(&s, name, text)
				continue
			}
			inBody = true
			if name == "CAMERA" {
				if cur == nil {
					errs = append(errs, Error{Line: lineNo, Message: "camera note before any scene heading"})
					openScene("")
				}
				cur.CameraNotes = append(cur.CameraNotes, text)
				lastDlg = nil
				continue
			}
			if cur == nil {
				errs = append(errs, Error{Line: lineNo, Message: "dialogue before any scene heading"})
				openScene("")
			}
			flushAction()
			cur.Dialogue = append(cur.Dialogue, domain.DialogueLine{
				Character:     domain.CanonicalName(name),
				Text:          text,
				Parenthetical: paren,
			})
			lastDlg = &cur.Dialogue[len(cur.Dialogue)-1]
			continue
		}

		// Plain text: action inside a scene, synopsis before the first one.
		inBody = true
		lastDlg = nil
		action = append(action, trim)
	}

	if cur == nil && len(action) > 0 {
		preside = append(preside, strings.Join(action, "\n"))
		action = action[:0]
	}
	flushAction()
	if err := scanner.Err(); err != nil {
		errs = append(errs, Error{Line: lineNo, Message: err.Error()})
	}

	s.Story = strings.Join(preside, "\n\n")
	domain.Renumber(s.Scenes)
	return s, errs
}

func setHeaderField(s *domain.Script, key, value string) {
	switch key {
	case "TITLE":
		s.Title = value
	case "TOPIC":
		s.Topic = value
	case "STYLE":
		s.Style = domain.Style(strings.ToLower(value))
	case "WRITER":
		s.Writer = value
	case "DRAFT":
		s.Draft = value
	case "NOTES":
		s.Notes = value
	}
}
