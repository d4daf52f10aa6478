package storage

import (
	"fmt"
	"sync"
)

// MemFile is an in-memory File. It counts reads and writes per page so
// callers can check how often the buffer pool actually touched storage.
type MemFile struct {
	name string

	mu       sync.Mutex
	pages    map[PageID][]byte
	next     PageID
	free     freeList
	reads    map[PageID]int
	writes   map[PageID]int
	writeErr error
}

func NewMemFile(name string) *MemFile {
	return &MemFile{
		name:   name,
		pages:  make(map[PageID][]byte),
		reads:  make(map[PageID]int),
		writes: make(map[PageID]int),
	}
}

func (f *MemFile) Name() string { return f.name }

func (f *MemFile) ReadPage(id PageID, dst []byte) error {
	if len(dst) != PageSize {
		return ErrWrongSize
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	buf, ok := f.pages[id]
	if !ok {
		return fmt.Errorf("%w: %s page %d", ErrPageNotFound, f.name, id)
	}
	copy(dst, buf)
	f.reads[id]++
	return nil
}

func (f *MemFile) WritePage(id PageID, src []byte) error {
	if len(src) != PageSize {
		return ErrWrongSize
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.writeErr != nil {
		return f.writeErr
	}
	buf, ok := f.pages[id]
	if !ok {
		return fmt.Errorf("%w: %s page %d", ErrPageNotFound, f.name, id)
	}
	copy(buf, src)
	f.writes[id]++
	return nil
}

func (f *MemFile) AllocatePage() (PageID, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.free.pop()
	if !ok {
		id = f.next
		f.next++
	}
	f.pages[id] = make([]byte, PageSize)
	return id, make([]byte, PageSize), nil
}

func (f *MemFile) DeletePage(id PageID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.pages[id]; !ok {
		return fmt.Errorf("%w: %s page %d", ErrPageNotFound, f.name, id)
	}
	delete(f.pages, id)
	f.free.push(id)
	return nil
}

// Exists reports whether id is currently allocated.
func (f *MemFile) Exists(id PageID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.pages[id]
	return ok
}

// Snapshot returns a copy of the stored contents of id, or nil.
func (f *MemFile) Snapshot(id PageID) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	buf, ok := f.pages[id]
	if !ok {
		return nil
	}
	return append([]byte(nil), buf...)
}

func (f *MemFile) Reads(id PageID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads[id]
}

func (f *MemFile) Writes(id PageID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes[id]
}

// TotalWrites sums writes over every page.
func (f *MemFile) TotalWrites() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.writes {
		n += c
	}
	return n
}

// FailWrites makes every following WritePage return err; nil restores normal writes.
func (f *MemFile) FailWrites(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeErr = err
}
