package bufferpool

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tuannm99/novabuf/internal/storage"
	"github.com/tuannm99/novabuf/pkg/clockx"
)

var DefaultCapacity = 128

// Handle names a pinned page in the pool: the frame index plus the page it
// was issued for. It stays usable until the matching Unpin.
type Handle struct {
	Frame  FrameID
	File   string
	PageID storage.PageID
}

// Stats counts pool traffic since construction.
type Stats struct {
	Accesses   uint64
	Hits       uint64
	DiskReads  uint64
	DiskWrites uint64
}

// Pool is a fixed-capacity buffer pool shared by any number of files.
// Frames are reclaimed with the clock (second-chance) policy.
//
// Pool serializes its public methods with one mutex; it does not make
// handles safe to use from several goroutines.
type Pool struct {
	mu     sync.Mutex
	arena  []byte
	frames [][]byte     // len == capacity, each PageSize bytes of arena
	descs  []Descriptor // co-indexed with frames
	dir    *Directory
	clock  *clockx.Clock
	stats  Stats
	closed bool
}

func NewPool(capacity int) *Pool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	arena := make([]byte, capacity*storage.PageSize)
	frames := make([][]byte, capacity)
	for i := range frames {
		frames[i] = arena[i*storage.PageSize : (i+1)*storage.PageSize : (i+1)*storage.PageSize]
	}
	return &Pool{
		arena:  arena,
		frames: frames,
		descs:  make([]Descriptor, capacity),
		dir:    NewDirectory(capacity),
		clock:  clockx.New(capacity),
	}
}

func (p *Pool) Capacity() int { return len(p.descs) }

// Fetch pins (file, pageID), reading it from file on a miss.
func (p *Pool) Fetch(file storage.File, pageID storage.PageID) (Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return Handle{}, ErrPoolClosed
	}
	p.stats.Accesses++

	tag := tagOf(file, pageID)

	// 1) HIT
	if idx, ok := p.dir.Lookup(tag); ok {
		d := &p.descs[idx]
		d.RefBit = true
		d.PinCount++
		p.stats.Hits++
		return Handle{Frame: idx, File: tag.File, PageID: pageID}, nil
	}

	// 2) MISS: take a frame, then read into it
	idx, err := p.allocFrame()
	if err != nil {
		return Handle{}, err
	}
	if err := file.ReadPage(pageID, p.frames[idx]); err != nil {
		return Handle{}, fmt.Errorf("bufferpool: read %s: %w", tag, err)
	}
	p.stats.DiskReads++

	if err := p.install(idx, file, pageID); err != nil {
		return Handle{}, err
	}
	return Handle{Frame: idx, File: tag.File, PageID: pageID}, nil
}

// Unpin drops one pin on (file, pageID). dirty=true marks the frame dirty
// and the mark sticks until the frame is written back. Unpinning a page
// that is not cached is a no-op.
func (p *Pool) Unpin(file storage.File, pageID storage.PageID, dirty bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}

	tag := tagOf(file, pageID)
	idx, ok := p.dir.Lookup(tag)
	if !ok {
		return nil
	}

	d := &p.descs[idx]
	if dirty {
		d.Dirty = true
	}
	if d.PinCount == 0 {
		return fmt.Errorf("%w: %s frame %d", ErrNotPinned, tag, idx)
	}
	d.PinCount--
	return nil
}

// AllocatePage allocates a new page in file and pins it in a frame.
// If no frame can be obtained the allocation is handed back to the file.
func (p *Pool) AllocatePage(file storage.File) (Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return Handle{}, ErrPoolClosed
	}

	pageID, data, err := file.AllocatePage()
	if err != nil {
		return Handle{}, fmt.Errorf("bufferpool: allocate page in %s: %w", file.Name(), err)
	}

	idx, err := p.allocFrame()
	if err != nil {
		if derr := file.DeletePage(pageID); derr != nil {
			slog.Warn("bufferpool: roll back page allocation",
				"file", file.Name(), "page", pageID, "err", derr)
		}
		return Handle{}, err
	}

	copy(p.frames[idx], data)
	if err := p.install(idx, file, pageID); err != nil {
		return Handle{}, err
	}
	return Handle{Frame: idx, File: file.Name(), PageID: pageID}, nil
}

// DisposePage drops (file, pageID) from the pool, pinned or dirty alike,
// and deletes it from file. It does nothing if the page is not cached.
func (p *Pool) DisposePage(file storage.File, pageID storage.PageID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}

	tag := tagOf(file, pageID)
	idx, ok := p.dir.Lookup(tag)
	if !ok {
		return nil
	}

	p.descs[idx].clear()
	if err := p.dir.Remove(tag); err != nil {
		return err
	}

	if err := file.DeletePage(pageID); err != nil {
		return fmt.Errorf("bufferpool: delete %s: %w", tag, err)
	}
	return nil
}

// FlushFile writes back and drops every frame of file. It stops at the
// first frame that is pinned (ErrPagePinned) or inconsistent (ErrBadBuffer);
// frames already handled stay dropped, so the caller can unpin and retry.
func (p *Pool) FlushFile(file storage.File) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}

	name := file.Name()
	for i := range p.descs {
		d := &p.descs[i]
		if !d.belongsTo(name) {
			continue
		}

		if d.Dirty {
			if err := p.writeBack(FrameID(i)); err != nil {
				return err
			}
		}
		if !d.Valid {
			return fmt.Errorf("%w: frame %d dirty=%t valid=%t refbit=%t",
				ErrBadBuffer, i, d.Dirty, d.Valid, d.RefBit)
		}
		if d.PinCount != 0 {
			return fmt.Errorf("%w: %s frame %d pinCnt=%d", ErrPagePinned, d.tag(), i, d.PinCount)
		}

		if err := p.dir.Remove(d.tag()); err != nil {
			slog.Warn("bufferpool: flush file: frame not in directory", "frame", i, "err", err)
		}
		d.clear()
	}
	return nil
}

// FlushAll writes back every dirty frame. Frames stay resident.
func (p *Pool) FlushAll() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}
	for i := range p.descs {
		if p.descs[i].Valid && p.descs[i].Dirty {
			if err := p.writeBack(FrameID(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close writes back every valid dirty frame, pinned or not, and releases the
// frame storage. Write-back errors are collected; the pool is closed anyway.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}

	var errs []error
	for i := range p.descs {
		if p.descs[i].Valid && p.descs[i].Dirty {
			if err := p.writeBack(FrameID(i)); err != nil {
				errs = append(errs, err)
			}
		}
	}

	slog.Debug("bufferpool: close",
		"frames", len(p.descs), "valid", p.dir.Len(), "diskWrites", p.stats.DiskWrites)

	p.closed = true
	p.arena = nil
	p.frames = nil
	p.descs = nil
	p.dir = NewDirectory(0)
	return errors.Join(errs...)
}

// Bytes returns the frame contents behind h. It fails with ErrStaleHandle
// once the frame no longer holds h's page pinned.
func (p *Pool) Bytes(h Handle) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrPoolClosed
	}
	if h.Frame < 0 || int(h.Frame) >= len(p.descs) {
		return nil, fmt.Errorf("%w: frame %d out of range", ErrStaleHandle, h.Frame)
	}
	d := &p.descs[h.Frame]
	if !d.Valid || d.PinCount == 0 || d.PageID != h.PageID || d.File.Name() != h.File {
		return nil, fmt.Errorf("%w: frame %d no longer holds %s#%d", ErrStaleHandle, h.Frame, h.File, h.PageID)
	}
	return p.frames[h.Frame], nil
}

// Descriptor returns a copy of the descriptor of frame.
func (p *Pool) Descriptor(frame FrameID) Descriptor {
	p.mu.Lock()
	defer p.mu.Unlock()

	if frame < 0 || int(frame) >= len(p.descs) {
		return Descriptor{}
	}
	return p.descs[frame]
}

func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// install registers a freshly filled frame in the directory and its descriptor.
func (p *Pool) install(idx FrameID, file storage.File, pageID storage.PageID) error {
	tag := tagOf(file, pageID)
	if err := p.dir.Insert(tag, idx); err != nil {
		return fmt.Errorf("%w: frame %d: %w", ErrBadBuffer, idx, err)
	}
	p.descs[idx].set(file, pageID)
	return nil
}

// writeBack writes a dirty frame to its file and clears the dirty bit.
func (p *Pool) writeBack(idx FrameID) error {
	d := &p.descs[idx]
	if err := d.File.WritePage(d.PageID, p.frames[idx]); err != nil {
		return fmt.Errorf("bufferpool: write back %s: %w", d.tag(), err)
	}
	d.Dirty = false
	p.stats.DiskWrites++
	return nil
}
