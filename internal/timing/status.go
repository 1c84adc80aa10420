/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package timing

import "fmt"

// Band classifies a total runtime into one of five buckets.
type Band string

const (
	BandVeryShort Band = "very-short"
	BandTooShort  Band = "too-short"
	BandOptimal   Band = "optimal"
	BandTooLong   Band = "too-long"
	BandVeryLong  Band = "very-long"
)

// Status is the derived classification for a total runtime: the band, a
// display color token, user-facing message and recommendation, and the
// runtime formatted as minutes:seconds.
type Status struct {
	Band           Band   `json:"band"`
	Color          string `json:"color"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
	Formatted      string `json:"formatted"`
	Seconds        int    `json:"seconds"`
}

// Band boundaries in seconds. Lower bounds are inclusive; the optimal band is
// closed on both ends, so 180 is still optimal and 181 is too long.
const (
	veryShortBelow = 15
	tooShortBelow  = 30
	optimalUpTo    = 180
	tooLongUpTo    = 240
)

// Classify maps a total-seconds value to its status band. It is total over
// non-negative integers; a negative input is a caller precondition violation
// and is clamped to zero. Formatting is independent of banding.
func Classify(totalSeconds int) Status {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	st := Status{
		Seconds:   totalSeconds,
		Formatted: FormatRuntime(totalSeconds),
	}
	switch {
	case totalSeconds < veryShortBelow:
		st.Band = BandVeryShort
		st.Color = "text-red-400"
		st.Message = "Script is very short"
		st.Recommendation = "Add more scenes, dialogue, or action to reach a usable length"
	case totalSeconds < tooShortBelow:
		st.Band = BandTooShort
		st.Color = "text-yellow-400"
		st.Message = "Consider adding more content"
		st.Recommendation = "Expand dialogue or action until the runtime passes 30 seconds"
	case totalSeconds <= optimalUpTo:
		st.Band = BandOptimal
		st.Color = "text-green-400"
		st.Message = "Good length"
		st.Recommendation = "Runtime is in the target window; no changes needed"
	case totalSeconds <= tooLongUpTo:
		st.Band = BandTooLong
		st.Color = "text-yellow-400"
		st.Message = "Consider reducing content"
		st.Recommendation = "Trim action paragraphs or cut a scene to get under 3 minutes"
	default:
		st.Band = BandVeryLong
		st.Color = "text-red-400"
		st.Message = "Script is very long"
		st.Recommendation = "Cut scenes or split the script into multiple parts"
	}
	return st
}

// FormatRuntime renders seconds as M:SS with zero-padded seconds.
func FormatRuntime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
