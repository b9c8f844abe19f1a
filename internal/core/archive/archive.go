// Package archive extracts SDK zip archives. Upstream archives wrap their
// contents in a top-level folder whose name varies between releases; every
// entry is rewritten with the common leading path prefix stripped so all
// instances share one local folder shape.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractZip extracts the archive at src into dest, stripping the common
// leading path-component prefix shared by all file entries. Entries whose
// path does not extend past the prefix are dropped.
func ExtractZip(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", src, err)
	}
	defer func() { _ = r.Close() }()

	prefix := commonPrefix(r.File)

	for _, f := range r.File {
		name := f.Name
		if prefix != "" {
			if len(name) <= len(prefix) {
				continue
			}
			name = name[len(prefix):]
		}
		if err := writeEntry(f, dest, name); err != nil {
			return err
		}
	}

	return nil
}

// commonPrefix computes the longest common path-component prefix over the
// directory parts of every file entry, as a "a/b/" style string. Archives
// with no shared wrapper folder yield "".
func commonPrefix(files []*zip.File) string {
	var parts [][]string
	for _, f := range files {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		segments := strings.Split(f.Name, "/")
		parts = append(parts, segments[:len(segments)-1])
	}
	if len(parts) == 0 {
		return ""
	}

	prefix := parts[0]
	for _, p := range parts[1:] {
		prefix = commonSegments(prefix, p)
		if len(prefix) == 0 {
			return ""
		}
	}
	if len(prefix) == 0 {
		return ""
	}
	return strings.Join(prefix, "/") + "/"
}

func commonSegments(a, b []string) []string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

// writeEntry writes one archive entry, named name after prefix stripping,
// beneath dest.
func writeEntry(f *zip.File, dest, name string) error {
	target := filepath.Join(dest, filepath.FromSlash(name))

	// Entries must stay inside the destination. A leading ".." component
	// means escape; a name like "..foo" does not.
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("archive entry escapes destination: %s", f.Name)
	}

	if strings.HasSuffix(f.Name, "/") {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", target, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", target, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}

	_, err = io.Copy(out, rc)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	return nil
}
