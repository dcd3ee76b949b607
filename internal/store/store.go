// Package store implements the data persistence layer for the two contact
// stores. Each store owns one JSON document on disk of the shape
// {"contacts": [...]}, created on first access, loaded fully into memory for
// every operation, and written back as a whole after every mutation.
//
// Concurrency: every store handle serializes its load-mutate-save cycles
// behind an in-process mutex, so concurrent requests against the same handle
// cannot lose updates. The files are still owned exclusively by one process;
// there is no cross-process locking.
//
// Error semantics:
//   - I/O failures (directory creation, read, write) are returned wrapped
//     with the offending path.
//   - A file that exists but does not parse as JSON is a hard error and
//     propagates to the caller; the store never repairs or resets it.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// readDocument reads the JSON document at path into v. It reports found=false
// without error when the file does not exist yet; callers then persist their
// empty document. Parse failures are wrapped and propagate.
func readDocument(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

// writeDocument fully overwrites path with v rendered as two-space indented
// JSON, creating the parent directory first when needed.
func writeDocument(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
