package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// SegFileName returns segment file name:
//   - seg 0: base
//   - seg N>0: base.N
func SegFileName(base string, segNo int32) string {
	if segNo <= 0 {
		return base
	}
	return fmt.Sprintf("%s.%d", base, segNo)
}

// listSegmentsLocal scans lfs.Dir and returns all segment numbers for lfs.Base.
// It matches: Base and Base.<int>.
func listSegmentsLocal(lfs LocalFileSet) ([]int32, error) {
	ents, err := os.ReadDir(lfs.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	segs := make([]int32, 0)
	prefix := lfs.Base + "."

	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == lfs.Base {
			segs = append(segs, 0)
			continue
		}
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		suf := strings.TrimPrefix(name, prefix)
		n64, err := strconv.ParseInt(suf, 10, 32)
		if err != nil || n64 <= 0 {
			continue
		}
		segs = append(segs, int32(n64))
	}

	sort.Slice(segs, func(i, j int) bool { return segs[i] < segs[j] })
	return segs, nil
}

// RemoveAllSegments removes Base, Base.1, Base.2, ... (robust: scan dir).
func RemoveAllSegments(lfs LocalFileSet) error {
	segs, err := listSegmentsLocal(lfs)
	if err != nil {
		return err
	}
	for _, segNo := range segs {
		if err := os.Remove(lfs.SegmentPath(segNo)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// FileKey returns a stable identity for lfs, used as the File name.
func FileKey(lfs LocalFileSet) string {
	return filepath.Join(filepath.Clean(lfs.Dir), lfs.Base)
}
