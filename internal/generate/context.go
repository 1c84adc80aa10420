/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package generate

import "strings"

// Context is the inferred shooting context for a topic: a short ordered cast
// of role names and a canonical setting label used to build sluglines.
type Context struct {
	Cast    []string
	Setting string
}

// contextEntry binds a keyword to a cast and a location label. Matching is a
// symmetric partial match: an entry fires when any topic word contains the
// key, or the key contains the first topic word. The table is an ordered
// association list on purpose: first match wins, so order is the tie-break.
type contextEntry struct {
	key     string
	cast    []string
	setting string
}

var contextTable = []contextEntry{
	{"detective", []string{"DETECTIVE", "SUSPECT", "WITNESS"}, "POLICE STATION"},
	{"coffee", []string{"BARISTA", "CUSTOMER", "MANAGER"}, "COFFEE SHOP"},
	{"barista", []string{"BARISTA", "CUSTOMER", "MANAGER"}, "COFFEE SHOP"},
	{"cooking", []string{"CHEF", "SOUS CHEF", "FOOD CRITIC"}, "RESTAURANT KITCHEN"},
	{"chef", []string{"CHEF", "SOUS CHEF", "FOOD CRITIC"}, "RESTAURANT KITCHEN"},
	{"school", []string{"TEACHER", "STUDENT", "PRINCIPAL"}, "CLASSROOM"},
	{"office", []string{"MANAGER", "EMPLOYEE", "INTERN"}, "OPEN-PLAN OFFICE"},
	{"medical", []string{"DOCTOR", "NURSE", "PATIENT"}, "HOSPITAL WARD"},
	{"doctor", []string{"DOCTOR", "NURSE", "PATIENT"}, "HOSPITAL WARD"},
	{"space", []string{"CAPTAIN", "ENGINEER", "MISSION CONTROL"}, "SPACECRAFT BRIDGE"},
	{"robot", []string{"TECHNICIAN", "ROBOT", "SCIENTIST"}, "ROBOTICS LAB"},
	{"phone", []string{"CALLER", "OPERATOR", "TECHNICIAN"}, "CALL CENTER"},
	{"time", []string{"TIME TRAVELER", "HISTORIAN", "SCIENTIST"}, "LABORATORY"},
}

// Fallback context used when no table entry matches.
var genericContext = Context{
	Cast:    []string{"PROTAGONIST", "FRIEND", "STRANGER"},
	Setting: "MAIN LOCATION",
}

// ResolveContext maps a free-text topic to a cast and setting. The caller
// guarantees a non-empty topic; resolution itself is fully deterministic.
func ResolveContext(topic string) Context {
	words := strings.Fields(strings.ToLower(topic))
	if len(words) == 0 {
		return cloneContext(genericContext)
	}
	first := words[0]
	for _, e := range contextTable {
		if matchesEntry(e.key, words, first) {
			return cloneContext(Context{Cast: e.cast, Setting: e.setting})
		}
	}
	return cloneContext(genericContext)
}

func matchesEntry(key string, words []string, first string) bool {
	for _, w := range words {
		if strings.Contains(w, key) {
			return true
		}
	}
	return strings.Contains(key, first)
}

// cloneContext copies the table-backed slices so callers can append freely.
func cloneContext(c Context) Context {
	return Context{
		Cast:    append([]string(nil), c.Cast...),
		Setting: c.Setting,
	}
}
