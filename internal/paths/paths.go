// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package paths locates scan targets on the filesystem.
package paths

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// FindFolderByName walks root and returns the first directory whose base name
// equals name, case-insensitively, in lexicographic walk order. Returns an
// error when root is unreadable or no such folder exists.
func FindFolderByName(root, name string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.EqualFold(d.Name(), name) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to search %s: %w", root, err)
	}
	if found == "" {
		return "", fmt.Errorf("no folder named %q under %s", name, root)
	}
	return found, nil
}
