package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tuannm99/novabuf/internal/alias/util"
)

type FileSet interface {
	OpenSegment(segNo int32) (*os.File, error)
}

var _ FileSet = (*LocalFileSet)(nil)

// LocalFileSet represents a local directory + base file name.
// Segments are stored as: Base, Base.1, Base.2, ...
type LocalFileSet struct {
	Dir  string
	Base string
}

func (lfs LocalFileSet) SegmentPath(segNo int32) string {
	return filepath.Join(lfs.Dir, SegFileName(lfs.Base, segNo))
}

func (lfs LocalFileSet) OpenSegment(segNo int32) (*os.File, error) {
	if err := os.MkdirAll(lfs.Dir, FileMode0755); err != nil {
		return nil, err
	}
	// RDWR | CREATE (no truncate)
	return os.OpenFile(lfs.SegmentPath(segNo), os.O_RDWR|os.O_CREATE, FileMode0644)
}

// StorageManager maps a logical pageID -> (segment, offset).
type StorageManager struct{}

func NewStorageManager() *StorageManager {
	return &StorageManager{}
}

func (sm *StorageManager) locate(pageID PageID) (segNo int32, offset int64) {
	segNo = int32(pageID / MaxPagePerSegment)
	pageInSeg := int64(pageID % MaxPagePerSegment)
	return segNo, pageInSeg * PageSize
}

// ReadPage reads exactly one page (PageSize bytes) into dst.
// If the underlying file is smaller than the requested offset+PageSize,
// the remainder is zero-filled.
func (sm *StorageManager) ReadPage(fs FileSet, pageID PageID, dst []byte) error {
	if len(dst) != PageSize {
		return ErrWrongSize
	}
	segNo, off := sm.locate(pageID)
	f, err := fs.OpenSegment(segNo)
	if err != nil {
		return err
	}
	defer util.CloseFileFunc(f)

	n, err := f.ReadAt(dst, off)
	if err != nil && err != io.EOF {
		return err
	}
	clear(dst[n:])
	return nil
}

// WritePage writes exactly one page (PageSize bytes) from src to disk
// at the location computed from pageID.
func (sm *StorageManager) WritePage(fs FileSet, pageID PageID, src []byte) error {
	if len(src) != PageSize {
		return ErrWrongSize
	}
	segNo, off := sm.locate(pageID)
	f, err := fs.OpenSegment(segNo)
	if err != nil {
		return err
	}
	defer util.CloseFileFunc(f)

	n, err := f.WriteAt(src, off)
	if err != nil {
		return err
	}
	if n != PageSize {
		return io.ErrShortWrite
	}
	return nil
}

// CountPages computes total pages for a LocalFileSet by scanning its segments.
// Only full pages are counted.
func (sm *StorageManager) CountPages(lfs LocalFileSet) (uint32, error) {
	segs, err := listSegmentsLocal(lfs)
	if err != nil {
		return 0, err
	}

	var total uint32
	for _, segNo := range segs {
		info, err := os.Stat(lfs.SegmentPath(segNo))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return 0, fmt.Errorf("stat segment %d: %w", segNo, err)
		}
		pages := uint32(info.Size() / PageSize)
		if pages == 0 {
			continue
		}
		// Pages of a later segment sit after every page of the earlier ones.
		end := uint32(segNo)*MaxPagePerSegment + pages
		if end > total {
			total = end
		}
	}
	return total, nil
}
