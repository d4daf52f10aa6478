package storage

import "slices"

// File is the page-granular backing store the buffer pool reads from and
// writes back to. Every buffer passed in or returned is exactly PageSize bytes.
//
// Name is the file's identity: two File values with the same Name are the
// same file as far as the buffer pool is concerned.
type File interface {
	Name() string
	ReadPage(id PageID, dst []byte) error
	WritePage(id PageID, src []byte) error
	// AllocatePage reserves a fresh page and returns its id and initial contents.
	AllocatePage() (PageID, []byte, error)
	DeletePage(id PageID) error
}

var (
	_ File = (*LocalFile)(nil)
	_ File = (*MemFile)(nil)
)

// freeList keeps deleted page ids sorted so allocation reuses the lowest one first.
type freeList []PageID

func (l *freeList) push(id PageID) {
	i, found := slices.BinarySearch(*l, id)
	if found {
		return
	}
	*l = slices.Insert(*l, i, id)
}

func (l *freeList) pop() (PageID, bool) {
	if len(*l) == 0 {
		return 0, false
	}
	id := (*l)[0]
	*l = (*l)[1:]
	return id, true
}

func (l freeList) contains(id PageID) bool {
	_, found := slices.BinarySearch(l, id)
	return found
}
