package blob

import (
	"context"
	"io"

	"github.com/FirebirdSQL/jaybird-sub009/internal/stack"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
	"github.com/FirebirdSQL/jaybird-sub009/trace"
)

var _ io.WriteCloser = (*Writer)(nil)

// Writer streams into a newly created large object. Each write is split into
// chunks of at most the buffer length, one segment per chunk.
type Writer struct {
	blob   *Blob
	handle wire.Blob
	ctx    context.Context //nolint:containedctx

	closed bool
}

func (w *Writer) Write(p []byte) (n int, _ error) {
	if w.closed {
		return 0, xerrors.WithStackTrace(xerrors.IO(errStreamClosed))
	}
	for len(p) > 0 {
		chunk := p
		if len(chunk) > w.blob.bufferLength {
			chunk = chunk[:w.blob.bufferLength]
		}
		if err := w.put(chunk); err != nil {
			return n, err
		}
		n += len(chunk)
		p = p[len(chunk):]
	}

	return n, nil
}

func (w *Writer) put(chunk []byte) (finalErr error) {
	ctx := w.ctx
	onDone := trace.DriverOnBlobSegmentWrite(w.blob.trace, &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/blob.(*Writer).put"),
		w.handle.ID(), len(chunk),
	)
	defer func() {
		onDone(finalErr)
	}()

	if err := w.handle.PutSegment(ctx, chunk); err != nil {
		return xerrors.WithStackTrace(xerrors.Transport(err))
	}

	return nil
}

// Close closes the handle and publishes its locator to the blob. Closing
// twice is a no-op.
func (w *Writer) Close() (finalErr error) {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.blob.writer == w {
		w.blob.writer = nil
	}

	ctx := w.ctx
	onDone := trace.DriverOnBlobClose(w.blob.trace, &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/blob.(*Writer).Close"),
		w.handle.ID(),
	)
	defer func() {
		onDone(finalErr)
	}()

	var errs []error
	if err := w.handle.Close(ctx); err != nil {
		errs = append(errs, xerrors.Transport(err))
	} else {
		w.blob.id = w.handle.ID()
	}
	errs = append(errs, w.blob.owner.BlobCompleted(ctx))

	return xerrors.Join(errs...)
}
