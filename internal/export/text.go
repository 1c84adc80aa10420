/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"goscreenwriter/internal/domain"
	"goscreenwriter/internal/screenplay"
)

// ExportText writes the script as plain screenplay text. The output parses
// back with screenplay.Parse, which is what the import command relies on.
func ExportText(s domain.Script, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(screenplay.Format(s)), 0o644); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}
