/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package generate turns a free-text topic and a style tag into a populated
// script document: it resolves a shooting context for the topic, selects the
// style's narrative template, and assembles the final scenes with stable
// identifiers and contiguous numbering. No external model is involved;
// content assembly is template selection plus string substitution.
package generate

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"goscreenwriter/internal/domain"
	applog "goscreenwriter/internal/log"
)

// Target runtime placeholder range in seconds, assigned at generation time.
// Independent of the content-derived estimate in the timing package.
const (
	targetRuntimeMin = 90
	targetRuntimeMax = 120
)

// randInt is swappable in tests to pin the placeholder runtime.
var randInt = rand.Intn

// Generate builds a Script for the given topic and style. The id and
// timestamps stay zero; the store assigns them on create. An empty (or
// all-whitespace) topic fails with domain.ErrInvalidInput. Unregistered
// styles fall back to the default template but keep the requested tag on the
// resulting script.
func Generate(topic string, style domain.Style) (domain.Script, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return domain.Script{}, fmt.Errorf("topic is required: %w", domain.ErrInvalidInput)
	}

	ctx := ResolveContext(topic)
	story, scenes := templateFor(style)(topic, ctx.Cast, ctx.Setting)

	for i := range scenes {
		scenes[i].ID = fmt.Sprintf("scene-%d", i+1)
		scenes[i].Heading = domain.CanonicalHeading(scenes[i].Heading)
		for j := range scenes[i].Dialogue {
			scenes[i].Dialogue[j].Character = domain.CanonicalName(scenes[i].Dialogue[j].Character)
		}
	}
	domain.Renumber(scenes)

	s := domain.Script{
		Title:         fmt.Sprintf("%s (%s)", titleCase(topic), titleCase(string(style))),
		Topic:         topic,
		Style:         style,
		Story:         story,
		Scenes:        scenes,
		TargetRuntime: targetRuntimeMin + randInt(targetRuntimeMax-targetRuntimeMin+1),
	}

	applog.WithComponent("generate").Debug("script assembled",
		slog.String("topic", topic),
		slog.String("style", string(style)),
		slog.Int("scenes", len(s.Scenes)),
		slog.String("setting", ctx.Setting),
	)
	return s, nil
}

// titleCase upper-cases the first rune of every whitespace-separated word.
// Good enough for titles built from topics and style tags; no locale rules.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// titleCaseWord renders an upper-case role name for prose use: "SOUS CHEF"
// becomes "Sous Chef".
func titleCaseWord(name string) string {
	return titleCase(strings.ToLower(name))
}

// lowerWords renders a setting label for prose use: "COFFEE SHOP" becomes
// "coffee shop".
func lowerWords(label string) string {
	return strings.ToLower(label)
}
