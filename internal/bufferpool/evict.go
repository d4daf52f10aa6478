package bufferpool

import (
	"fmt"
	"log/slog"

	"github.com/tuannm99/novabuf/pkg/clockx"
)

// probe classifies the frame under the clock hand. Invalid frames are taken
// at once, pinned frames are skipped with their ref bit untouched, and a set
// ref bit is spent as the frame's second chance.
func (p *Pool) probe(id int) clockx.Verdict {
	d := &p.descs[id]
	switch {
	case !d.Valid:
		return clockx.Victim
	case d.PinCount > 0:
		return clockx.Skip
	case d.RefBit:
		d.RefBit = false
		return clockx.SecondChance
	default:
		return clockx.Victim
	}
}

// allocFrame picks a victim with the clock and empties it. The returned frame
// is invalid and absent from the directory.
func (p *Pool) allocFrame() (FrameID, error) {
	victim, ok := p.clock.Sweep(p.probe)
	if !ok {
		return -1, fmt.Errorf("%w: %d frames", ErrBufferExceeded, len(p.descs))
	}

	idx := FrameID(victim)
	if err := p.evict(idx); err != nil {
		return -1, err
	}
	return idx, nil
}

// evict writes back a dirty victim, then drops its directory entry and
// descriptor together. A failed write-back leaves the victim resident and dirty.
func (p *Pool) evict(idx FrameID) error {
	d := &p.descs[idx]
	if !d.Valid {
		return nil
	}

	wasDirty := d.Dirty
	if d.Dirty {
		if err := p.writeBack(idx); err != nil {
			return err
		}
	}

	tag := d.tag()
	if err := p.dir.Remove(tag); err != nil {
		slog.Warn("bufferpool: evicted frame not in directory", "frame", idx, "err", err)
	}
	d.clear()

	slog.Debug("bufferpool: evict", "frame", idx, "page", tag.String(), "dirty", wasDirty)
	return nil
}
