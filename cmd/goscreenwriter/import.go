/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"goscreenwriter/internal/domain"
	"goscreenwriter/internal/screenplay"
)

// loadImport turns raw import-file bytes into a script ready for the store.
// A JSON manifest is validated against the script schema and rejected on any
// violation; screenplay text parses leniently with diagnostics returned as
// warnings. Either way the result is canonicalized and renumbered, and the
// store-owned id is cleared so Create assigns a fresh one.
func loadImport(data []byte, defaultRuntime int) (domain.Script, []string, error) {
	var s domain.Script
	var warnings []string

	if looksLikeManifest(data) {
		violations, err := domain.ValidateManifest(data)
		if err != nil {
			return domain.Script{}, nil, err
		}
		if len(violations) > 0 {
			return domain.Script{}, nil, fmt.Errorf("manifest rejected: %s", strings.Join(violations, "; "))
		}
		if err := json.Unmarshal(data, &s); err != nil {
			return domain.Script{}, nil, fmt.Errorf("manifest decode: %w", err)
		}
	} else {
		var diags []screenplay.Error
		s, diags = screenplay.Parse(string(data))
		for _, d := range diags {
			warnings = append(warnings, d.String())
		}
	}

	s.ID = 0
	for i := range s.Scenes {
		s.Scenes[i].Heading = domain.CanonicalHeading(s.Scenes[i].Heading)
		for j := range s.Scenes[i].Dialogue {
			s.Scenes[i].Dialogue[j].Character = domain.CanonicalName(s.Scenes[i].Dialogue[j].Character)
		}
	}
	domain.Renumber(s.Scenes)
	if s.TargetRuntime == 0 {
		s.TargetRuntime = defaultRuntime
	}
	return s, warnings, nil
}

func looksLikeManifest(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
