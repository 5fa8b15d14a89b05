package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/familytower/pkg/family"
)

// FormatVersion is written into every family file.
const FormatVersion = 1

type file struct {
	Version int             `json:"version"`
	Lineage family.Lineage  `json:"lineage"`
	Members []family.Member `json:"members"`
}

// WriteJSON encodes reg as an indented family file.
func WriteJSON(reg *family.Registry, w io.Writer) error {
	out := file{
		Version: FormatVersion,
		Lineage: family.LineageOf(reg),
		Members: reg.All(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ExportJSON writes reg to path, creating parent directories.
func ExportJSON(reg *family.Registry, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(reg, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
