/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package generate

import (
	"strings"
	"testing"

	"goscreenwriter/internal/domain"
)

func TestTemplatesProduceScenesForEveryRegisteredStyle(t *testing.T) {
	for _, style := range domain.Styles() {
		if !RegisteredStyle(style) {
			t.Fatalf("style %s not registered", style)
		}
		story, scenes := templateFor(style)("a test topic", []string{"ALPHA", "BETA", "GAMMA"}, "TEST STAGE")
		if story == "" {
			t.Errorf("style %s produced empty synopsis", style)
		}
		if !strings.Contains(story, "a test topic") {
			t.Errorf("style %s synopsis does not mention the topic", style)
		}
		if len(scenes) < 2 {
			t.Errorf("style %s produced %d scenes, want at least 2", style, len(scenes))
		}
		for i, sc := range scenes {
			if sc.Heading == "" {
				t.Errorf("style %s scene %d has empty heading", style, i)
			}
			if !strings.Contains(sc.Heading, "TEST STAGE") {
				t.Errorf("style %s scene %d heading %q misses setting", style, i, sc.Heading)
			}
		}
	}
}

func TestTemplateFallsBackToPlaceholderForShortCast(t *testing.T) {
	_, scenes := templateFor(domain.StyleComedy)("a test topic", []string{"SOLO"}, "TEST STAGE")
	var placeholder bool
	for _, sc := range scenes {
		for _, dl := range sc.Dialogue {
			if dl.Character == "PERFORMER" {
				placeholder = true
			}
			if dl.Character == "" {
				t.Fatalf("empty character attribution")
			}
		}
	}
	if !placeholder {
		t.Fatalf("short cast did not trigger the neutral placeholder")
	}
}

func TestUnregisteredStyleUsesDefaultTemplate(t *testing.T) {
	if RegisteredStyle(domain.Style("mockumentary")) {
		t.Fatalf("unexpected registration for unknown tag")
	}
	storyA, _ := templateFor(domain.Style("mockumentary"))("t", nil, "SET")
	storyB, _ := templateFor(DefaultStyle)("t", nil, "SET")
	if storyA != storyB {
		t.Fatalf("unknown tag did not dispatch to the default template")
	}
}
