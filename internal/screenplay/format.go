/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package screenplay converts between the structured script model and a
// plain-text screenplay format. The format round-trips through Parse:
// a header block (TITLE:/TOPIC:/STYLE:/WRITER:), free synopsis text, then
// per scene a slugline, action, CAMERA: notes, and NAME (paren): dialogue
// with two-space indented continuation lines.
package screenplay

import (
	"strings"

	"goscreenwriter/internal/domain"
)

// Format renders a script as plain screenplay text.
func Format(s domain.Script) string {
	var b strings.Builder

	writeHeader(&b, "TITLE", s.Title)
	writeHeader(&b, "TOPIC", s.Topic)
	writeHeader(&b, "STYLE", string(s.Style))
	writeHeader(&b, "WRITER", s.Writer)
	writeHeader(&b, "DRAFT", s.Draft)
	// Header values are single-line; multi-line notes collapse to one line.
	writeHeader(&b, "NOTES", strings.Join(strings.Fields(s.Notes), " "))
	b.WriteString("\n")

	if s.Story != "" {
		b.WriteString(s.Story)
		b.WriteString("\n\n")
	}

	for i, sc := range s.Scenes {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sc.Heading)
		b.WriteString("\n")
		if sc.Action != "" {
			b.WriteString("\n")
			b.WriteString(sc.Action)
			b.WriteString("\n")
		}
		for _, note := range sc.CameraNotes {
			b.WriteString("\nCAMERA: ")
			b.WriteString(note)
			b.WriteString("\n")
		}
		for _, dl := range sc.Dialogue {
			b.WriteString("\n")
			b.WriteString(dl.Character)
			if dl.Parenthetical != "" {
				b.WriteString(" (")
				b.WriteString(dl.Parenthetical)
				b.WriteString(")")
			}
			b.WriteString(": ")
			// Indent continuation lines so Parse reattaches them.
			b.WriteString(strings.ReplaceAll(dl.Text, "\n", "\n  "))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeHeader(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}
