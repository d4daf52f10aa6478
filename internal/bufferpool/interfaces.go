package bufferpool

import "github.com/tuannm99/novabuf/internal/storage"

// Manager is a buffer pool bound to a single file.
type Manager interface {
	GetPage(pageID storage.PageID) (Handle, error)
	NewPage() (Handle, error)
	Unpin(pageID storage.PageID, dirty bool) error
	Bytes(h Handle) ([]byte, error)
	FlushAll() error
}

var _ Manager = (*FileView)(nil)
