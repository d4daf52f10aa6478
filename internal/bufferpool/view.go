package bufferpool

import "github.com/tuannm99/novabuf/internal/storage"

// FileView binds a Pool to a specific File.
// It implements Manager so page-level code can use it without carrying the file around.
type FileView struct {
	pool *Pool
	file storage.File
}

func (v *FileView) File() storage.File { return v.file }

func (v *FileView) GetPage(pageID storage.PageID) (Handle, error) {
	return v.pool.Fetch(v.file, pageID)
}

func (v *FileView) NewPage() (Handle, error) {
	return v.pool.AllocatePage(v.file)
}

func (v *FileView) Unpin(pageID storage.PageID, dirty bool) error {
	return v.pool.Unpin(v.file, pageID, dirty)
}

func (v *FileView) Bytes(h Handle) ([]byte, error) {
	return v.pool.Bytes(h)
}

func (v *FileView) Dispose(pageID storage.PageID) error {
	return v.pool.DisposePage(v.file, pageID)
}

// FlushAll writes back and drops the pages of THIS file only.
func (v *FileView) FlushAll() error {
	return v.pool.FlushFile(v.file)
}

// View returns a file-scoped view of the shared Pool.
func (p *Pool) View(file storage.File) *FileView {
	return &FileView{pool: p, file: file}
}
