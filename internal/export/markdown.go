/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"goscreenwriter/internal/domain"
)

// ExportMarkdown writes the script as a Markdown document for sharing drafts
// in wikis and review tools.
func ExportMarkdown(s domain.Script, outPath string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", s.Title)
	if s.Writer != "" {
		fmt.Fprintf(&b, "*written by %s*\n\n", s.Writer)
	}
	if s.Topic != "" {
		fmt.Fprintf(&b, "- Topic: %s\n", s.Topic)
	}
	if s.Style != "" {
		fmt.Fprintf(&b, "- Style: %s\n", s.Style)
	}
	if s.Draft != "" {
		fmt.Fprintf(&b, "- Draft: %s\n", s.Draft)
	}
	b.WriteString("\n")

	if s.Story != "" {
		fmt.Fprintf(&b, "%s\n\n", s.Story)
	}

	for _, sc := range s.Scenes {
		heading := sc.Heading
		if heading == "" {
			heading = "UNTITLED"
		}
		fmt.Fprintf(&b, "## Scene %d: %s\n\n", sc.Number, heading)
		if sc.Action != "" {
			fmt.Fprintf(&b, "%s\n\n", sc.Action)
		}
		for _, note := range sc.CameraNotes {
			fmt.Fprintf(&b, "> CAMERA: %s\n", note)
		}
		if len(sc.CameraNotes) > 0 {
			b.WriteString("\n")
		}
		for _, dl := range sc.Dialogue {
			if dl.Parenthetical != "" {
				fmt.Fprintf(&b, "**%s** *(%s)*: %s\n\n", dl.Character, dl.Parenthetical, dl.Text)
			} else {
				fmt.Fprintf(&b, "**%s**: %s\n\n", dl.Character, dl.Text)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}
