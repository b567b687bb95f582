// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package fsutil provides filesystem helpers for the isojs data directory.
// The directory holds REPL history, so it is private to the user.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDirPerm is the permission mode for the data directory.
const DataDirPerm os.FileMode = 0700

// EnsureParent creates the directory that will hold path, if missing.
// An existing directory keeps its permissions.
func EnsureParent(path string) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
		return nil
	case !os.IsNotExist(err):
		return err
	}
	if err := os.MkdirAll(dir, DataDirPerm); err != nil {
		return err
	}
	// MkdirAll is subject to umask; set the mode explicitly.
	return os.Chmod(dir, DataDirPerm)
}
