package bufferpool

import "errors"

var (
	// ErrBufferExceeded: the clock found no evictable frame, every frame is pinned.
	ErrBufferExceeded = errors.New("bufferpool: buffer exceeded (all frames pinned)")
	// ErrNotPinned: Unpin on a page whose pin count is already zero.
	ErrNotPinned = errors.New("bufferpool: page is not pinned")
	// ErrPagePinned: FlushFile met a frame of the file that is still pinned.
	ErrPagePinned = errors.New("bufferpool: page is pinned")
	// ErrBadBuffer: a frame tagged with the flushed file is not valid.
	ErrBadBuffer = errors.New("bufferpool: bad buffer")

	ErrPoolClosed  = errors.New("bufferpool: pool is closed")
	ErrStaleHandle = errors.New("bufferpool: stale frame handle")
)
