// Package queue enumerates structure files on disk for batch workflows.
//
// Scan lists a directory by glob pattern with a selectable sort key, and
// Pick selects an entry by index with modular wrap-around, so a stepped
// index can cycle through the queue indefinitely.
package queue

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/molviz/molrender/pkg/errors"
)

// Sort keys accepted by Scan.
const (
	SortByName         = "name"
	SortByDateModified = "date_modified"
	SortByDateCreated  = "date_created"
	SortBySize         = "size"
)

// Orders accepted by Scan.
const (
	OrderAscending  = "ascending"
	OrderDescending = "descending"
)

// Scan lists files in dir matching the glob pattern, sorted by the given
// key and order. A pattern without a leading wildcard is treated as an
// extension filter ("*" is prepended). Fails with QUEUE_DIR_NOT_FOUND when
// dir is not a directory and QUEUE_EMPTY when nothing matches.
//
// date_created sorts by modification time: Go's portable file API exposes
// no creation time.
func Scan(dir, pattern, sortKey, order string) ([]string, error) {
	expanded, err := homedir.Expand(os.ExpandEnv(strings.TrimSpace(dir)))
	if err == nil {
		dir, _ = filepath.Abs(expanded)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, errors.New(errors.ErrCodeQueueDirNotFound, "folder not found: %s", dir)
	}

	if pattern == "" {
		pattern = "*.pdb"
	}
	if !strings.HasPrefix(pattern, "*") {
		pattern = "*" + pattern
	}

	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueueDirNotFound, err, "bad pattern %q", pattern)
	}
	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeQueueEmpty,
			"no files matching %q found in %s", pattern, dir)
	}

	sortFiles(files, sortKey)
	if order == OrderDescending {
		reverse(files)
	}
	return files, nil
}

// sortFiles orders files in place by the given key; unknown keys sort by
// name.
func sortFiles(files []string, sortKey string) {
	switch sortKey {
	case SortByDateModified, SortByDateCreated:
		sort.SliceStable(files, func(i, j int) bool {
			return modTime(files[i]) < modTime(files[j])
		})
	case SortBySize:
		sort.SliceStable(files, func(i, j int) bool {
			return fileSize(files[i]) < fileSize(files[j])
		})
	default:
		sort.SliceStable(files, func(i, j int) bool {
			return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
		})
	}
}

func modTime(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.ModTime().UnixNano()
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func reverse(files []string) {
	for i, j := 0, len(files)-1; i < j; i, j = i+1, j-1 {
		files[i], files[j] = files[j], files[i]
	}
}

// Pick selects the entry at index with wrap-around over the list length.
// Fails with QUEUE_EMPTY for an empty list.
func Pick(files []string, index int) (string, error) {
	if len(files) == 0 {
		return "", errors.New(errors.ErrCodeQueueEmpty, "file list is empty")
	}
	i := index % len(files)
	if i < 0 {
		i += len(files)
	}
	return files[i], nil
}

// ParseList splits a newline-joined path list, dropping blank lines.
func ParseList(text string) []string {
	var files []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files
}

// JoinList renders files as a newline-joined list, the inverse of ParseList.
func JoinList(files []string) string {
	return strings.Join(files, "\n")
}
