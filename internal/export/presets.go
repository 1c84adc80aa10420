/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"goscreenwriter/internal/domain"
)

// PresetName represents a named export preset.
type PresetName string

const (
	// PresetDraft targets quick sharing: text and markdown, camera notes in.
	PresetDraft PresetName = "draft"
	// PresetFinal targets delivery: title-paged PDF plus plain text.
	PresetFinal PresetName = "final"
)

// BatchOptions controls batch export across multiple formats.
//
// Path semantics:
//   - OutDir is the base directory; files are named <slug>.<ext> where slug
//     derives from the script title (falling back to script-<id>).
//   - Formats allowed: pdf, text, markdown; empty means preset defaults.
type BatchOptions struct {
	Preset  PresetName
	Formats []string
	OutDir  string
}

// BatchExport renders the script in every requested format.
func BatchExport(s domain.Script, opt BatchOptions) error {
	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	for i := range formats {
		formats[i] = strings.ToLower(strings.TrimSpace(formats[i]))
	}

	baseOut := opt.OutDir
	if baseOut == "" {
		baseOut = string(opt.Preset)
	}
	name := FileSlug(s)

	pdfOpt := PDFOptions{
		TitlePage:          opt.Preset == PresetFinal,
		IncludeCameraNotes: opt.Preset != PresetFinal,
	}

	for _, f := range formats {
		switch f {
		case "pdf":
			out := filepath.Join(baseOut, name+".pdf")
			if err := ExportPDF(s, out, pdfOpt); err != nil {
				return fmt.Errorf("pdf: %w", err)
			}
		case "text":
			out := filepath.Join(baseOut, name+".txt")
			if err := ExportText(s, out); err != nil {
				return fmt.Errorf("text: %w", err)
			}
		case "markdown":
			out := filepath.Join(baseOut, name+".md")
			if err := ExportMarkdown(s, out); err != nil {
				return fmt.Errorf("markdown: %w", err)
			}
		default:
			return fmt.Errorf("unknown format: %s", f)
		}
	}
	return nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetDraft:
		return []string{"text", "markdown"}
	case PresetFinal:
		return []string{"pdf", "text"}
	default:
		return []string{"pdf"}
	}
}

// FileSlug derives a filesystem-friendly name from the script title.
func FileSlug(s domain.Script) string {
	title := strings.ToLower(strings.TrimSpace(s.Title))
	if title == "" {
		return fmt.Sprintf("script-%d", s.ID)
	}
	var b strings.Builder
	lastDash := false
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return fmt.Sprintf("script-%d", s.ID)
	}
	return slug
}
