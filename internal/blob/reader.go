package blob

import (
	"context"
	"io"

	"github.com/FirebirdSQL/jaybird-sub009/internal/stack"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
	"github.com/FirebirdSQL/jaybird-sub009/trace"
)

var (
	_ io.ReadCloser = (*Reader)(nil)
	_ io.ByteReader = (*Reader)(nil)
)

// Reader streams a blob segment by segment. Segments are fetched lazily,
// one at a time, when the buffered one is exhausted.
type Reader struct {
	blob   *Blob
	handle wire.Blob
	ctx    context.Context //nolint:containedctx

	buf []byte
	pos int

	eof    bool
	closed bool
}

// fill makes sure the buffer has unread bytes. It returns io.EOF when the
// handle reported the end of data and the last segment was empty.
func (r *Reader) fill() error {
	for empty := 0; r.pos >= len(r.buf); empty++ {
		if r.eof || r.handle == nil || r.handle.EOF() {
			r.eof = true

			return io.EOF
		}
		if empty >= maxEmptySegments {
			return xerrors.WithStackTrace(xerrors.IO(errEmptySegmentRun))
		}
		if err := r.segment(); err != nil {
			return err
		}
	}

	return nil
}

func (r *Reader) segment() (finalErr error) {
	var (
		ctx = r.ctx
		seg []byte
	)
	onDone := trace.DriverOnBlobSegmentRead(r.blob.trace, &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/blob.(*Reader).segment"),
		r.blob.id, r.blob.bufferLength,
	)
	defer func() {
		onDone(len(seg), r.eof, finalErr)
	}()

	seg, err := r.handle.GetSegment(ctx, r.blob.bufferLength)
	if err != nil {
		return xerrors.WithStackTrace(xerrors.Transport(err))
	}
	r.buf = seg
	r.pos = 0
	if len(seg) == 0 && r.handle.EOF() {
		r.eof = true
	}

	return nil
}

func (r *Reader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, xerrors.WithStackTrace(xerrors.IO(errStreamClosed))
	}
	if len(p) == 0 {
		return 0, nil
	}
	if err := r.fill(); err != nil {
		return 0, err
	}
	n := copy(p, r.buf[r.pos:])
	r.pos += n

	return n, nil
}

func (r *Reader) ReadByte() (byte, error) {
	if r.closed {
		return 0, xerrors.WithStackTrace(xerrors.IO(errStreamClosed))
	}
	if err := r.fill(); err != nil {
		return 0, err
	}
	c := r.buf[r.pos]
	r.pos++

	return c, nil
}

// Close releases the handle. Closing twice is a no-op.
func (r *Reader) Close() (finalErr error) {
	if r.closed {
		return nil
	}
	r.closed = true
	r.buf = nil
	delete(r.blob.readers, r)
	if r.handle == nil {
		return nil
	}

	ctx := r.ctx
	onDone := trace.DriverOnBlobClose(r.blob.trace, &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/blob.(*Reader).Close"),
		r.blob.id,
	)
	defer func() {
		onDone(finalErr)
	}()

	var errs []error
	if err := r.handle.Close(ctx); err != nil {
		errs = append(errs, xerrors.Transport(err))
	}
	errs = append(errs, r.blob.owner.BlobCompleted(ctx))

	return xerrors.Join(errs...)
}
