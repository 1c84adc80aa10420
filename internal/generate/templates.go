/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package generate

import (
	"fmt"

	"goscreenwriter/internal/domain"
)

// A template is a pure generator from (topic, cast, setting) to a synopsis
// and an ordered list of scene skeletons. Scene count, wording, and dialogue
// density are template constants; only the substituted names vary with input.
// Skeletons carry no IDs or numbers; the assembler stamps those.
type template func(topic string, cast []string, setting string) (story string, scenes []domain.Scene)

// templates is the style registry. DefaultStyle names the explicit fallback
// entry used for unregistered tags, so adding a style stays additive and
// unknown tags can never fail generation.
var templates = map[domain.Style]template{
	domain.StyleComedy:      comedyTemplate,
	domain.StyleThriller:    thrillerTemplate,
	domain.StyleEducational: educationalTemplate,
}

// DefaultStyle is used when the requested style tag is not registered.
const DefaultStyle = domain.StyleComedy

func templateFor(style domain.Style) template {
	if t, ok := templates[style]; ok {
		return t
	}
	return templates[DefaultStyle]
}

// RegisteredStyle reports whether the tag has its own template (rather than
// falling back to the default).
func RegisteredStyle(style domain.Style) bool {
	_, ok := templates[style]
	return ok
}

// castMember returns the i-th resolved role name, or a style-neutral
// placeholder when the cast is shorter than the template requires.
func castMember(cast []string, i int) string {
	if i >= 0 && i < len(cast) {
		return cast[i]
	}
	return "PERFORMER"
}

func heading(setting, marker string) string {
	return domain.CanonicalHeading(fmt.Sprintf("INT. %s - %s", setting, marker))
}

func comedyTemplate(topic string, cast []string, setting string) (string, []domain.Scene) {
	lead := castMember(cast, 0)
	second := castMember(cast, 1)
	third := castMember(cast, 2)

	story := fmt.Sprintf(
		"A hilarious misunderstanding unfolds when %s leads to increasingly absurd situations. "+
			"%s and %s find themselves in compromising positions as simple mistakes snowball into "+
			"major comedic disasters at the %s. Despite the chaos, everyone learns to laugh at "+
			"themselves and discovers that the best moments come from the most unexpected circumstances.",
		topic, titleCaseWord(lead), titleCaseWord(second), lowerWords(setting))

	scenes := []domain.Scene{
		{
			Heading: heading(setting, "DAY"),
			Action: fmt.Sprintf("The scene is set for comedy as %s encounters %s in the most ordinary way possible.",
				lead, topic),
			Dialogue: []domain.DialogueLine{
				{Character: lead, Text: "Well, this should be simple enough.", Parenthetical: "famous last words"},
			},
			CameraNotes: []string{"Establish normal setting", "Foreshadow upcoming chaos"},
		},
		{
			Heading: heading(setting, "CONTINUOUS"),
			Action:  "Things immediately start going wrong in the most unexpected ways.",
			Dialogue: []domain.DialogueLine{
				{Character: lead, Text: "That's... not supposed to happen.", Parenthetical: "watching chaos unfold"},
				{Character: second, Text: "Please tell me you have a plan B.", Parenthetical: "backing away slowly"},
			},
			CameraNotes: []string{"Medium shot of confusion", "Quick cuts showing mistakes"},
		},
		{
			Heading: heading(setting, "LATER"),
			Action: fmt.Sprintf("The dust settles. %s surveys the wreckage while %s tries very hard not to laugh.",
				third, second),
			Dialogue: []domain.DialogueLine{
				{Character: third, Text: "So. Who wants to explain this one?", Parenthetical: "deadpan"},
				{Character: lead, Text: "I meant to do that... sort of."},
			},
			CameraNotes: []string{"Wide shot of the aftermath", "Hold on deadpan reaction"},
		},
	}
	return story, scenes
}

func thrillerTemplate(topic string, cast []string, setting string) (string, []domain.Scene) {
	lead := castMember(cast, 0)
	second := castMember(cast, 1)

	story := fmt.Sprintf(
		"A seemingly innocent situation involving %s quickly turns sinister when hidden dangers "+
			"emerge from the shadows of the %s. As tension builds, %s realizes they have stumbled "+
			"into something far more dangerous than expected. Every choice becomes a matter of life "+
			"and death, leading to a heart-pounding climax as the true scope of the threat becomes clear.",
		topic, lowerWords(setting), titleCaseWord(lead))

	scenes := []domain.Scene{
		{
			Heading: heading(setting, "NIGHT"),
			Action: fmt.Sprintf("The atmosphere is tense as %s cautiously approaches %s, unaware of the danger lurking nearby.",
				lead, topic),
			Dialogue: []domain.DialogueLine{
				{Character: lead, Text: "Something doesn't feel right about this.", Parenthetical: "whispering"},
			},
			CameraNotes: []string{"Low-key lighting", "Handheld camera for tension"},
		},
		{
			Heading: heading(setting, "CONTINUOUS"),
			Action:  "Shadows move in the background. The instincts prove correct as danger reveals itself.",
			Dialogue: []domain.DialogueLine{
				{Character: "MYSTERIOUS VOICE", Text: "You shouldn't have come here.", Parenthetical: "from the darkness"},
				{Character: lead, Text: "Who's there? Show yourself."},
			},
			CameraNotes: []string{"Over-shoulder shot", "Quick zoom on fear"},
		},
		{
			Heading: heading(setting, "MOMENTS LATER"),
			Action: fmt.Sprintf("%s arrives just in time. The two exchange a look that says the night is far from over.",
				second),
			Dialogue: []domain.DialogueLine{
				{Character: second, Text: "We're being watched. Move. Now.", Parenthetical: "urgent"},
			},
			CameraNotes: []string{"Tracking shot through the dark", "Cut to black on the reveal"},
		},
	}
	return story, scenes
}

func educationalTemplate(topic string, cast []string, setting string) (string, []domain.Scene) {
	presenter := castMember(cast, 0)
	learner := castMember(cast, 1)

	story := fmt.Sprintf(
		"An engaging exploration of %s that breaks down complex concepts into easily digestible "+
			"segments. Through clear explanations and relatable scenarios set in a %s, viewers gain a "+
			"comprehensive understanding of the subject. Real-world applications demonstrate the "+
			"practical value of the information being presented.",
		topic, lowerWords(setting))

	scenes := []domain.Scene{
		{
			Heading: heading(setting, "DAY"),
			Action: fmt.Sprintf("A welcoming environment where %s is introduced in an accessible and engaging manner.",
				topic),
			Dialogue: []domain.DialogueLine{
				{Character: presenter, Text: "Today we're going to explore a fascinating topic that affects us all.", Parenthetical: "warm, engaging tone"},
			},
			CameraNotes: []string{"Clean, well-lit setup", "Direct address to camera"},
		},
		{
			Heading: heading(setting, "CONTINUOUS"),
			Action:  "Visual aids and examples help illustrate key concepts clearly and memorably.",
			Dialogue: []domain.DialogueLine{
				{Character: presenter, Text: "Let's break this down into simple, understandable parts.", Parenthetical: "pointing to visual aids"},
				{Character: learner, Text: "So that's why it works that way."},
			},
			CameraNotes: []string{"Close-up on visual materials", "Smooth camera movements"},
		},
		{
			Heading: heading(setting, "LATER"),
			Action: fmt.Sprintf("A quick recap ties the ideas together, with %s inviting the audience to try it themselves.",
				presenter),
			Dialogue: []domain.DialogueLine{
				{Character: presenter, Text: "Does anyone have questions? Let's recap what we learned."},
			},
			CameraNotes: []string{"Pull back to full set"},
		},
	}
	return story, scenes
}
