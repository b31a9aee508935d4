package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Staging is the listing snapshot written before detail pages are fetched.
type Staging struct {
	Path string
}

// WriteStaging dumps v as indented json into dir/name, non-ascii text is
// written as is.
func WriteStaging(dir, name string, v any) (Staging, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return Staging{}, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return Staging{}, err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return Staging{}, fmt.Errorf("write staging file: %w", err)
	}
	return Staging{Path: path}, nil
}

// Read decodes the staging file back into out.
func (s Staging) Read(out any) error {
	contents, err := os.ReadFile(s.Path)
	if err != nil {
		return err
	}
	return json.Unmarshal(contents, out)
}

// Remove deletes the staging file, a file that is already gone is not an
// error.
func (s Staging) Remove() error {
	if s.Path == "" {
		return nil
	}
	err := os.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
