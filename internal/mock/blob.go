package mock

import (
	"context"
	"errors"
	"fmt"

	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
)

var errBlobClosed = errors.New("blob handle is closed")

// Blob is a fake blob handle. Data written through it becomes visible in
// the attachment when the handle closes.
type Blob struct {
	att   *Attachment
	id    uint64
	write bool

	data    []byte
	pos     int
	eof     bool
	pending []byte
	closed  bool
}

var _ wire.Blob = (*Blob)(nil)

func (b *Blob) ID() uint64 {
	return b.id
}

func (b *Blob) GetSegment(_ context.Context, maxSize int) ([]byte, error) {
	b.att.mu.Lock()
	defer b.att.mu.Unlock()

	if err := b.att.record("get-segment", fmt.Sprintf("get segment blob%d", b.id)); err != nil {
		return nil, err
	}
	if b.closed {
		return nil, errBlobClosed
	}
	n := len(b.data) - b.pos
	if n > maxSize {
		n = maxSize
	}
	seg := append([]byte(nil), b.data[b.pos:b.pos+n]...)
	b.pos += n
	b.eof = b.pos >= len(b.data)

	return seg, nil
}

func (b *Blob) PutSegment(_ context.Context, segment []byte) error {
	b.att.mu.Lock()
	defer b.att.mu.Unlock()

	if err := b.att.record("put-segment", fmt.Sprintf("put segment blob%d %d", b.id, len(segment))); err != nil {
		return err
	}
	if b.closed {
		return errBlobClosed
	}
	if len(segment) > wire.MaxSegmentSize {
		return fmt.Errorf("segment of %d bytes exceeds %d", len(segment), wire.MaxSegmentSize)
	}
	b.pending = append(b.pending, segment...)
	b.att.segmentWrites[b.id] = append(b.att.segmentWrites[b.id], len(segment))

	return nil
}

func (b *Blob) EOF() bool {
	b.att.mu.Lock()
	defer b.att.mu.Unlock()

	return b.eof
}

func (b *Blob) Close(context.Context) error {
	b.att.mu.Lock()
	defer b.att.mu.Unlock()

	if err := b.att.record("close-blob", fmt.Sprintf("close blob%d", b.id)); err != nil {
		return err
	}
	if b.closed {
		return errBlobClosed
	}
	b.closed = true
	if b.write {
		b.att.blobs[b.id] = b.pending
	}

	return nil
}
