package storage

import (
	"errors"
)

const (
	OneB  = 1 << 0  // 1
	OneKB = 1 << 10 // 1,024
	OneMB = 1 << 20 // 1,048,576
	OneGB = 1 << 30 // 1,073,741,824

	SegmentSize       = 1 << 30                // 1,073,741,824 (1 GiB)
	PageSize          = 1 << 13                // 8,192 (8 KiB)
	MaxPagePerSegment = SegmentSize / PageSize // 131,072 pages/segment
)

const (
	FileMode0644 = 0o644
	FileMode0664 = 0o664
	FileMode0755 = 0o755
)

// PageID is the identity of a page within its file.
type PageID uint32

var (
	ErrPageNotFound = errors.New("storage: page not found")
	ErrWrongSize    = errors.New("storage: buffer size != PageSize")
	ErrFileClosed   = errors.New("storage: file is closed")
)
