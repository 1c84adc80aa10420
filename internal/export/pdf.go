/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package export renders finalized scripts to deliverable documents: a
// screenplay-formatted PDF, plain screenplay text, and Markdown.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"goscreenwriter/internal/domain"
)

// Screenplay page geometry in points on US Letter. The measurements follow
// standard screenplay margins: 1.5in left, 1in right/top/bottom, dialogue in
// a narrowed center column, character names further indented.
const (
	pageW = 612.0
	pageH = 792.0

	marginLeft   = 108.0 // 1.5in
	marginRight  = 72.0
	marginTop    = 72.0
	marginBottom = 72.0

	dialogueIndent = 180.0 // from left margin edge of page
	dialogueWidth  = 252.0 // 3.5in column
	characterX     = 252.0 // character name column
	parenX         = 216.0

	fontSize   = 12.0
	lineHeight = 14.0
)

// PDFOptions controls PDF export behavior.
type PDFOptions struct {
	// TitlePage adds a separate title page before the script.
	TitlePage bool
	// IncludeCameraNotes renders CAMERA: lines; off for a clean read draft.
	IncludeCameraNotes bool
}

// ExportPDF writes the script as a screenplay-formatted PDF to outPath,
// creating parent directories as needed. Courier keeps the traditional
// monospaced look without font embedding.
func ExportPDF(s domain.Script, outPath string, opt PDFOptions) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageW, Ht: pageH},
		OrientationStr: "",
	})
	pdf.SetTitle(s.Title, false)
	if s.Writer != "" {
		pdf.SetAuthor(s.Writer, false)
	}
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetFont("Courier", "", fontSize)

	if opt.TitlePage {
		writeTitlePage(pdf, s)
	}

	pdf.AddPage()
	if !opt.TitlePage && s.Title != "" {
		pdf.SetFont("Courier", "B", fontSize)
		pdf.MultiCell(0, lineHeight, s.Title, "", "C", false)
		pdf.SetFont("Courier", "", fontSize)
		pdf.Ln(lineHeight)
	}

	if s.Story != "" {
		pdf.MultiCell(0, lineHeight, s.Story, "", "L", false)
		pdf.Ln(lineHeight)
	}

	for _, sc := range s.Scenes {
		// Slugline
		pdf.SetFont("Courier", "B", fontSize)
		heading := sc.Heading
		if heading == "" {
			heading = fmt.Sprintf("SCENE %d", sc.Number)
		}
		pdf.MultiCell(0, lineHeight, heading, "", "L", false)
		pdf.SetFont("Courier", "", fontSize)
		pdf.Ln(lineHeight / 2)

		if sc.Action != "" {
			pdf.MultiCell(0, lineHeight, sc.Action, "", "L", false)
			pdf.Ln(lineHeight / 2)
		}

		if opt.IncludeCameraNotes {
			for _, note := range sc.CameraNotes {
				pdf.MultiCell(0, lineHeight, "CAMERA: "+note, "", "L", false)
			}
			if len(sc.CameraNotes) > 0 {
				pdf.Ln(lineHeight / 2)
			}
		}

		for _, dl := range sc.Dialogue {
			pdf.SetX(characterX)
			pdf.MultiCell(pageW-characterX-marginRight, lineHeight, dl.Character, "", "L", false)
			if dl.Parenthetical != "" {
				pdf.SetX(parenX)
				pdf.MultiCell(dialogueWidth, lineHeight, "("+dl.Parenthetical+")", "", "L", false)
			}
			pdf.SetX(dialogueIndent)
			pdf.MultiCell(dialogueWidth, lineHeight, dl.Text, "", "L", false)
			pdf.Ln(lineHeight / 2)
		}

		pdf.Ln(lineHeight)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func writeTitlePage(pdf *gofpdf.Fpdf, s domain.Script) {
	pdf.AddPage()
	pdf.SetY(pageH / 3)
	pdf.SetFont("Courier", "B", 16)
	pdf.MultiCell(0, 20, s.Title, "", "C", false)
	pdf.SetFont("Courier", "", fontSize)
	pdf.Ln(2 * lineHeight)
	if s.Writer != "" {
		pdf.MultiCell(0, lineHeight, "written by", "", "C", false)
		pdf.MultiCell(0, lineHeight, s.Writer, "", "C", false)
	}
	if s.Draft != "" {
		pdf.Ln(2 * lineHeight)
		pdf.MultiCell(0, lineHeight, s.Draft, "", "C", false)
	}
}
