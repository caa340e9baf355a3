package xsql

import (
	"context"
	"io"

	"github.com/FirebirdSQL/jaybird-sub009/internal/blob"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xsync"
)

// Blob is a large object value of a connection. Live results return blob
// columns as *Blob; pass one as a parameter to reference its content.
type Blob struct {
	conn *Conn
	blob *blob.Blob
}

// ID returns the locator. A blob that was never written has none.
func (b *Blob) ID() (uint64, error) {
	return b.blob.ID()
}

func (b *Blob) Written() bool {
	return b.blob.Written()
}

// Detach returns a value for the same locator that shares none of the open
// streams of b.
func (b *Blob) Detach() *Blob {
	b.conn.mu.Lock()
	defer b.conn.mu.Unlock()

	return &Blob{conn: b.conn, blob: b.blob.Detach()}
}

// NewReader opens a read stream over the content.
func (b *Blob) NewReader(ctx context.Context) (io.ReadCloser, error) {
	b.conn.mu.Lock()
	defer b.conn.mu.Unlock()

	if err := b.conn.check(); err != nil {
		return nil, err
	}
	r, err := b.blob.NewReader(ctx)
	if err != nil {
		return nil, xerrors.BadConn(err, b.conn)
	}

	return &lockedReader{mu: &b.conn.mu, r: r}, nil
}

// NewWriter opens the single write stream. The locator is assigned once the
// stream is closed.
func (b *Blob) NewWriter(ctx context.Context) (io.WriteCloser, error) {
	b.conn.mu.Lock()
	defer b.conn.mu.Unlock()

	if err := b.conn.check(); err != nil {
		return nil, err
	}
	w, err := b.blob.NewWriter(ctx)
	if err != nil {
		return nil, xerrors.BadConn(err, b.conn)
	}

	return &lockedWriter{mu: &b.conn.mu, w: w}, nil
}

// Bytes returns up to length bytes starting at 1-based position pos.
func (b *Blob) Bytes(ctx context.Context, pos int64, length int) ([]byte, error) {
	return xsync.WithLock(&b.conn.mu, func() ([]byte, error) {
		if err := b.conn.check(); err != nil {
			return nil, err
		}

		return b.blob.Bytes(ctx, pos, length)
	})
}

func (b *Blob) ReadAll(ctx context.Context) ([]byte, error) {
	return xsync.WithLock(&b.conn.mu, func() ([]byte, error) {
		if err := b.conn.check(); err != nil {
			return nil, err
		}

		return b.blob.ReadAll(ctx)
	})
}

// CopyFrom writes everything src yields as the new content of b. src must not
// be a stream of the same connection.
func (b *Blob) CopyFrom(ctx context.Context, src io.Reader) (int64, error) {
	return xsync.WithLock(&b.conn.mu, func() (int64, error) {
		if err := b.conn.check(); err != nil {
			return 0, err
		}

		return b.blob.CopyFrom(ctx, src)
	})
}

// Close closes every open stream of b.
func (b *Blob) Close() error {
	b.conn.mu.Lock()
	defer b.conn.mu.Unlock()

	return b.blob.Close()
}

type lockedReader struct {
	mu *xsync.Mutex
	r  *blob.Reader
}

func (l *lockedReader) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.r.Read(p)
}

func (l *lockedReader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.r.Close()
}

type lockedWriter struct {
	mu *xsync.Mutex
	w  *blob.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.w.Write(p)
}

func (l *lockedWriter) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.w.Close()
}
