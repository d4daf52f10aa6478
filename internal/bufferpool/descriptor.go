package bufferpool

import (
	"fmt"

	"github.com/tuannm99/novabuf/internal/storage"
)

// FrameID indexes a frame in the pool and its descriptor.
type FrameID int

// Descriptor is the per-frame bookkeeping, co-indexed with the frame arena.
// File is a reference only; the pool does not own file lifetimes.
type Descriptor struct {
	File     storage.File
	PageID   storage.PageID
	Valid    bool
	Dirty    bool
	RefBit   bool
	PinCount int
}

// set installs (file, pageID) into the descriptor with one pin.
func (d *Descriptor) set(file storage.File, pageID storage.PageID) {
	d.File = file
	d.PageID = pageID
	d.Valid = true
	d.Dirty = false
	d.RefBit = true
	d.PinCount = 1
}

func (d *Descriptor) clear() {
	*d = Descriptor{}
}

// belongsTo reports whether the descriptor is tagged with the file named name.
func (d *Descriptor) belongsTo(name string) bool {
	return d.File != nil && d.File.Name() == name
}

func (d *Descriptor) tag() PageTag {
	return PageTag{File: d.File.Name(), PageID: d.PageID}
}

func (d Descriptor) String() string {
	file := "-"
	if d.File != nil {
		file = d.File.Name()
	}
	return fmt.Sprintf("file:%s pageNo:%d valid:%t dirty:%t pinCnt:%d refbit:%t",
		file, d.PageID, d.Valid, d.Dirty, d.PinCount, d.RefBit)
}
