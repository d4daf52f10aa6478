package bufferpool

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/tuannm99/novabuf/internal/storage"
)

var (
	ErrTagNotFound  = errors.New("bufferpool: page tag not found")
	ErrDuplicateTag = errors.New("bufferpool: page tag already present")
)

// PageTag uniquely identifies a page across files.
type PageTag struct {
	File   string
	PageID storage.PageID
}

func (t PageTag) String() string {
	return fmt.Sprintf("%s#%d", t.File, t.PageID)
}

func tagOf(file storage.File, pageID storage.PageID) PageTag {
	return PageTag{File: file.Name(), PageID: pageID}
}

func hashTag(t PageTag, seed uint64) uint64 {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(t.PageID))

	d := xxhash.NewWithSeed(seed)
	_, _ = d.WriteString(t.File)
	_, _ = d.Write(b[:])
	return d.Sum64()
}

// Directory maps (file, pageID) -> frame. A page is present in at most one frame.
type Directory struct {
	m *xsync.MapOf[PageTag, FrameID]
}

// NewDirectory sizes the table a bit above the frame count so it rarely grows.
func NewDirectory(frames int) *Directory {
	size := int(float64(frames)*1.2) + 1
	return &Directory{
		m: xsync.NewMapOfWithHasher[PageTag, FrameID](hashTag, xsync.WithPresize(size)),
	}
}

// Lookup returns the frame holding tag. A miss is (-1, false), not an error.
func (d *Directory) Lookup(tag PageTag) (FrameID, bool) {
	frame, ok := d.m.Load(tag)
	if !ok {
		return -1, false
	}
	return frame, true
}

func (d *Directory) Insert(tag PageTag, frame FrameID) error {
	if _, loaded := d.m.LoadOrStore(tag, frame); loaded {
		return fmt.Errorf("%w: %s", ErrDuplicateTag, tag)
	}
	return nil
}

func (d *Directory) Remove(tag PageTag) error {
	if _, ok := d.m.LoadAndDelete(tag); !ok {
		return fmt.Errorf("%w: %s", ErrTagNotFound, tag)
	}
	return nil
}

func (d *Directory) Len() int { return d.m.Size() }

// Range calls fn for each entry until fn returns false.
func (d *Directory) Range(fn func(tag PageTag, frame FrameID) bool) {
	d.m.Range(fn)
}
