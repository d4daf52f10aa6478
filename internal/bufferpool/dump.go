package bufferpool

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/tuannm99/novabuf/internal/storage"
)

// ValidFrames counts frames that currently hold a page.
func (p *Pool) ValidFrames() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.validFramesLocked()
}

func (p *Pool) validFramesLocked() int {
	n := 0
	for i := range p.descs {
		if p.descs[i].Valid {
			n++
		}
	}
	return n
}

// Dump writes one line per frame followed by the number of valid frames.
func (p *Pool) Dump(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}

	for i := range p.descs {
		if _, err := fmt.Fprintf(w, "FrameNo:%d %s\n", i, p.descs[i]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total Number of Valid Frames:%d\nPool size:%s (%d frames of %s)\n",
		p.validFramesLocked(),
		humanize.IBytes(uint64(len(p.arena))),
		len(p.descs),
		humanize.IBytes(storage.PageSize),
	)
	return err
}
