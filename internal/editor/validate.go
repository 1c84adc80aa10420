/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package editor provides the edit-side operations on a script: structural
// edits with renumbering, scene validation, dialogue and character
// suggestions, and an undo-backed edit session.
package editor

import (
	"strings"

	"goscreenwriter/internal/domain"
)

// Defect messages reported by Validate. Advisory only; a script with defects
// can still be saved and estimated.
const (
	DefectMissingHeading = "Missing scene heading"
	DefectEmptyScene     = "Scene needs action or dialogue"
)

// Validate checks every scene for structural completeness and returns the
// defects keyed by scene ID. Every scene gets an entry; a clean scene maps to
// an empty list. A scene counts as having dialogue if it has at least one
// line, even one whose text is still empty.
func Validate(scenes []domain.Scene) map[string][]string {
	defects := make(map[string][]string, len(scenes))
	for _, sc := range scenes {
		var errs []string
		if strings.TrimSpace(sc.Heading) == "" {
			errs = append(errs, DefectMissingHeading)
		}
		if strings.TrimSpace(sc.Action) == "" && len(sc.Dialogue) == 0 {
			errs = append(errs, DefectEmptyScene)
		}
		defects[sc.ID] = errs
	}
	return defects
}

// Clean reports whether a defect map contains no defects at all.
func Clean(defects map[string][]string) bool {
	for _, errs := range defects {
		if len(errs) > 0 {
			return false
		}
	}
	return true
}
