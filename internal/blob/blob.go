package blob

import (
	"context"
	"errors"
	"io"

	"github.com/FirebirdSQL/jaybird-sub009/internal/stack"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
	"github.com/FirebirdSQL/jaybird-sub009/trace"
)

// DefaultBufferLength is the segment size used when no buffer length is configured.
const DefaultBufferLength = 16384

var (
	errNoID            = errors.New("no blob id is available for a blob that was never written")
	errWriterOpen      = errors.New("only one blob output stream can be open at a time")
	errStreamClosed    = errors.New("blob stream is closed")
	errBadPosition     = errors.New("blob position must be 1 or greater")
	errNegativeLength  = errors.New("blob length must not be negative")
	errEmptySegmentRun = errors.New("blob returned too many empty segments")
)

// maxEmptySegments bounds the number of consecutive empty segments a reader
// accepts from a handle that does not report end of data.
const maxEmptySegments = 16

// Owner is the connection side of a blob: it opens handles and keeps a
// transaction around while a stream is open.
type Owner interface {
	Attachment() wire.Attachment
	// BlobStarted guarantees a transaction for a large object stream and returns it.
	BlobStarted(ctx context.Context) (wire.Transaction, error)
	// BlobCompleted is called once per BlobStarted when the stream closes.
	BlobCompleted(ctx context.Context) error
}

// Blob is a large object value. A zero id means the blob was never written.
// Blob is not safe for concurrent use; callers serialize with the connection lock.
type Blob struct {
	owner Owner
	id    uint64

	bufferLength int
	segmented    bool

	readers map[*Reader]struct{}
	writer  *Writer

	trace *trace.Driver
}

type Option func(b *Blob)

// WithBufferLength sets the maximum size of a single segment.
func WithBufferLength(n int) Option {
	return func(b *Blob) {
		switch {
		case n <= 0:
			b.bufferLength = DefaultBufferLength
		case n > wire.MaxSegmentSize:
			b.bufferLength = wire.MaxSegmentSize
		default:
			b.bufferLength = n
		}
	}
}

func WithSegmented(segmented bool) Option {
	return func(b *Blob) {
		b.segmented = segmented
	}
}

func WithTrace(t *trace.Driver) Option {
	return func(b *Blob) {
		b.trace = t
	}
}

func New(owner Owner, id uint64, opts ...Option) *Blob {
	b := &Blob{
		owner:        owner,
		id:           id,
		bufferLength: DefaultBufferLength,
		segmented:    true,
		readers:      make(map[*Reader]struct{}),
		trace:        &trace.Driver{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	return b
}

// ID returns the locator of the blob.
func (b *Blob) ID() (uint64, error) {
	if b.id == 0 {
		return 0, xerrors.WithStackTrace(xerrors.Usage(errNoID))
	}

	return b.id, nil
}

// Written reports whether the blob has a locator.
func (b *Blob) Written() bool {
	return b.id != 0
}

func (b *Blob) BufferLength() int {
	return b.bufferLength
}

// Detach returns a new value holder for the same locator without the open
// streams of b.
func (b *Blob) Detach() *Blob {
	return &Blob{
		owner:        b.owner,
		id:           b.id,
		bufferLength: b.bufferLength,
		segmented:    b.segmented,
		readers:      make(map[*Reader]struct{}),
		trace:        b.trace,
	}
}

// NewReader opens a read stream. The stream keeps ctx for its segment calls.
// A blob that was never written reads as empty.
func (b *Blob) NewReader(ctx context.Context) (_ *Reader, finalErr error) {
	r := &Reader{
		blob: b,
		ctx:  ctx,
	}
	if b.id == 0 {
		r.eof = true
		b.readers[r] = struct{}{}

		return r, nil
	}

	onDone := trace.DriverOnBlobOpen(b.trace, &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/blob.(*Blob).NewReader"),
		b.id, false,
	)
	defer func() {
		onDone(b.id, finalErr)
	}()

	tx, err := b.owner.BlobStarted(ctx)
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}
	handle, err := b.owner.Attachment().OpenBlob(ctx, tx, b.id, b.segmented)
	if err != nil {
		return nil, xerrors.WithStackTrace(xerrors.Join(
			xerrors.Transport(err),
			b.owner.BlobCompleted(ctx),
		))
	}
	r.handle = handle
	r.ctx = ctx
	b.readers[r] = struct{}{}

	return r, nil
}

// NewWriter creates a new large object and opens a write stream to it. The
// locator is published to b when the stream closes.
func (b *Blob) NewWriter(ctx context.Context) (_ *Writer, finalErr error) {
	if b.writer != nil {
		return nil, xerrors.WithStackTrace(xerrors.Usage(errWriterOpen))
	}

	var id uint64
	onDone := trace.DriverOnBlobOpen(b.trace, &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/blob.(*Blob).NewWriter"),
		b.id, true,
	)
	defer func() {
		onDone(id, finalErr)
	}()

	tx, err := b.owner.BlobStarted(ctx)
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}
	handle, err := b.owner.Attachment().CreateBlob(ctx, tx, b.segmented)
	if err != nil {
		return nil, xerrors.WithStackTrace(xerrors.Join(
			xerrors.Transport(err),
			b.owner.BlobCompleted(ctx),
		))
	}
	id = handle.ID()
	b.writer = &Writer{
		blob:   b,
		handle: handle,
		ctx:    ctx,
	}

	return b.writer, nil
}

// Bytes reads up to length bytes starting at the 1-based position pos.
func (b *Blob) Bytes(ctx context.Context, pos int64, length int) (_ []byte, finalErr error) {
	if pos < 1 {
		return nil, xerrors.WithStackTrace(xerrors.Usage(errBadPosition))
	}
	if length < 0 {
		return nil, xerrors.WithStackTrace(xerrors.Usage(errNegativeLength))
	}
	r, err := b.NewReader(ctx)
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}
	defer func() {
		finalErr = xerrors.Join(finalErr, r.Close())
	}()

	if _, err = io.CopyN(io.Discard, r, pos-1); err != nil {
		if errors.Is(err, io.EOF) {
			return []byte{}, nil
		}

		return nil, xerrors.WithStackTrace(err)
	}
	buf := make([]byte, length)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, xerrors.WithStackTrace(err)
	}

	return buf[:n], nil
}

// ReadAll reads the whole blob.
func (b *Blob) ReadAll(ctx context.Context) (_ []byte, finalErr error) {
	r, err := b.NewReader(ctx)
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}
	defer func() {
		finalErr = xerrors.Join(finalErr, r.Close())
	}()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	return data, nil
}

// CopyFrom writes everything src yields into a new large object and makes
// it the value of b.
func (b *Blob) CopyFrom(ctx context.Context, src io.Reader) (_ int64, finalErr error) {
	w, err := b.NewWriter(ctx)
	if err != nil {
		return 0, xerrors.WithStackTrace(err)
	}
	defer func() {
		finalErr = xerrors.Join(finalErr, w.Close())
	}()

	n, err := io.CopyBuffer(w, onlyReader{src}, make([]byte, b.bufferLength))
	if err != nil {
		return n, xerrors.WithStackTrace(err)
	}

	return n, nil
}

// onlyReader hides io.WriterTo so that copies go through the segment buffer.
type onlyReader struct {
	io.Reader
}

// Close closes every open stream of b and returns the failures joined.
func (b *Blob) Close() error {
	var errs []error
	for r := range b.readers {
		errs = append(errs, r.Close())
	}
	if b.writer != nil {
		errs = append(errs, b.writer.Close())
	}

	return xerrors.Join(errs...)
}
