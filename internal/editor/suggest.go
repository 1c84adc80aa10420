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
	"strings"

	"goscreenwriter/internal/domain"
)

// castEntry maps a topic keyword to character names for the datalist-style
// character suggestions. Ordered association list, first match wins.
type castEntry struct {
	key   string
	names []string
}

var castTable = []castEntry{
	{"detective", []string{"DETECTIVE", "SUSPECT", "WITNESS", "VICTIM", "PARTNER", "INFORMANT"}},
	{"coffee", []string{"BARISTA", "CUSTOMER", "MANAGER", "SUPPLIER", "REGULAR", "CRITIC"}},
	{"barista", []string{"BARISTA", "CUSTOMER", "MANAGER", "SUPPLIER", "REGULAR", "CRITIC"}},
	{"cooking", []string{"CHEF", "SOUS CHEF", "CUSTOMER", "FOOD CRITIC", "SERVER", "DISHWASHER"}},
	{"school", []string{"TEACHER", "STUDENT", "PRINCIPAL", "PARENT", "JANITOR", "COUNSELOR"}},
	{"office", []string{"MANAGER", "EMPLOYEE", "INTERN", "CLIENT", "RECEPTIONIST", "CEO"}},
	{"medical", []string{"DOCTOR", "NURSE", "PATIENT", "SURGEON", "PARAMEDIC", "SPECIALIST"}},
	{"space", []string{"ASTRONAUT", "MISSION CONTROL", "ALIEN", "CAPTAIN", "ENGINEER", "PILOT"}},
	{"robot", []string{"TECHNICIAN", "ROBOT", "SCIENTIST", "CUSTOMER", "SECURITY", "AI"}},
	{"phone", []string{"CALLER", "OPERATOR", "TECHNICIAN", "CUSTOMER", "BOSS", "STRANGER"}},
	{"time", []string{"TIME TRAVELER", "HISTORIAN", "SCIENTIST", "PAST SELF", "FUTURE SELF", "GUARDIAN"}},
}

var genericCast = []string{"PROTAGONIST", "FRIEND", "STRANGER", "NARRATOR"}

var styleCast = map[domain.Style][]string{
	domain.StyleThriller:    {"MYSTERIOUS VOICE", "SHADOW FIGURE", "WHISTLEBLOWER"},
	domain.StyleComedy:      {"COMIC RELIEF", "STRAIGHT MAN", "BUMBLING FOOL"},
	domain.StyleEducational: {"EXPERT", "STUDENT", "DEMONSTRATOR"},
}

// SuggestCharacters proposes character names for the current topic and
// style: the first matching topic entry (or a generic set), followed by
// style-specific additions, deduplicated in order. Empty topic yields nil.
func SuggestCharacters(topic string, style domain.Style) []string {
	topic = strings.TrimSpace(strings.ToLower(topic))
	if topic == "" {
		return nil
	}
	names := genericCast
	first := topic
	if i := strings.IndexByte(topic, ' '); i >= 0 {
		first = topic[:i]
	}
	for _, e := range castTable {
		if strings.Contains(topic, e.key) || strings.Contains(e.key, first) {
			names = e.names
			break
		}
	}
	out := make([]string, 0, len(names)+3)
	seen := make(map[string]bool, len(names)+3)
	for _, n := range append(append([]string{}, names...), styleCast[style]...) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// phraseEntry maps a character-name fragment to stock lines for that role
// family. First match wins; the match is a substring test against the
// canonical (uppercase) character name.
type phraseEntry struct {
	keys    []string
	phrases []string
}

var rolePhrases = []phraseEntry{
	{[]string{"DETECTIVE"}, []string{
		"Something doesn't add up here.",
		"I've seen this pattern before.",
		"The evidence suggests otherwise.",
	}},
	{[]string{"CHEF", "COOK"}, []string{
		"The secret ingredient is timing.",
		"This recipe has been in my family for generations.",
		"Taste is everything in this business.",
	}},
	{[]string{"SCIENTIST", "DOCTOR"}, []string{
		"The data doesn't support that hypothesis.",
		"We need to run more tests.",
		"This could change everything we know.",
	}},
	{[]string{"TEACHER", "PROFESSOR"}, []string{
		"Let me explain this simply.",
		"This is a perfect example of what we discussed.",
		"Does anyone have questions?",
	}},
}

var stylePhrases = map[domain.Style][]string{
	domain.StyleComedy: {
		"Well, this is awkward.",
		"That's not supposed to happen!",
		"I meant to do that... sort of.",
	},
	domain.StyleThriller: {
		"We're being watched.",
		"Trust no one.",
		"This goes deeper than we thought.",
	},
}

// SuggestDialogue proposes next lines for a character: role-family phrases
// first, then style-specific ones. Advisory only; never mutates the script.
// Both character and topic must be non-empty.
func SuggestDialogue(character, topic string, style domain.Style) []string {
	if strings.TrimSpace(character) == "" || strings.TrimSpace(topic) == "" {
		return nil
	}
	name := domain.CanonicalName(character)
	var out []string
	for _, e := range rolePhrases {
		for _, k := range e.keys {
			if strings.Contains(name, k) {
				out = append(out, e.phrases...)
				break
			}
		}
		if len(out) > 0 {
			break
		}
	}
	out = append(out, stylePhrases[style]...)
	return out
}
