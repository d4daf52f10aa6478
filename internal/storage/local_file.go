package storage

import (
	"fmt"
	"log/slog"
	"sync"
)

// LocalFile is a disk-backed File stored as segment files in a directory.
// Deleted page ids are kept in memory and reused by AllocatePage; they are
// forgotten when the file is reopened.
type LocalFile struct {
	sm  *StorageManager
	lfs LocalFileSet

	mu       sync.Mutex
	numPages uint32
	free     freeList
	zero     []byte
}

// OpenLocalFile opens (or creates) the file <dir>/<base> and recovers its
// page count from the segments already on disk.
func OpenLocalFile(dir, base string) (*LocalFile, error) {
	sm := NewStorageManager()
	lfs := LocalFileSet{Dir: dir, Base: base}

	n, err := sm.CountPages(lfs)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", FileKey(lfs), err)
	}
	slog.Debug("storage: open local file", "file", FileKey(lfs), "pages", n)

	return &LocalFile{
		sm:       sm,
		lfs:      lfs,
		numPages: n,
		zero:     make([]byte, PageSize),
	}, nil
}

func (f *LocalFile) Name() string { return FileKey(f.lfs) }

// NumPages returns the high-water mark of allocated page ids.
func (f *LocalFile) NumPages() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.numPages
}

func (f *LocalFile) allocated(id PageID) bool {
	return uint32(id) < f.numPages && !f.free.contains(id)
}

func (f *LocalFile) ReadPage(id PageID, dst []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.allocated(id) {
		return fmt.Errorf("%w: %s page %d", ErrPageNotFound, f.Name(), id)
	}
	return f.sm.ReadPage(f.lfs, id, dst)
}

func (f *LocalFile) WritePage(id PageID, src []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.allocated(id) {
		return fmt.Errorf("%w: %s page %d", ErrPageNotFound, f.Name(), id)
	}
	return f.sm.WritePage(f.lfs, id, src)
}

// AllocatePage reuses the lowest deleted page id if any, otherwise extends
// the file by one page. The page is zeroed on disk before it is returned.
func (f *LocalFile) AllocatePage() (PageID, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, reused := f.free.pop()
	if !reused {
		id = PageID(f.numPages)
	}
	if err := f.sm.WritePage(f.lfs, id, f.zero); err != nil {
		if reused {
			f.free.push(id)
		}
		return 0, nil, fmt.Errorf("allocate page in %s: %w", f.Name(), err)
	}
	if !reused {
		f.numPages++
	}
	return id, make([]byte, PageSize), nil
}

func (f *LocalFile) DeletePage(id PageID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.allocated(id) {
		return fmt.Errorf("%w: %s page %d", ErrPageNotFound, f.Name(), id)
	}
	if err := f.sm.WritePage(f.lfs, id, f.zero); err != nil {
		return fmt.Errorf("delete page %d in %s: %w", id, f.Name(), err)
	}
	f.free.push(id)
	return nil
}

// Remove deletes every segment of the file from disk.
func (f *LocalFile) Remove() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := RemoveAllSegments(f.lfs); err != nil {
		return err
	}
	f.numPages = 0
	f.free = nil
	return nil
}
