package wire

import (
	"context"
)

//go:generate mockgen -destination wiremock/wire_mock.go -package wiremock -write_package_comment=false . Attachment,Transaction,Statement,Blob

// Attachment is a physical connection to a database.
type Attachment interface {
	BeginTransaction(ctx context.Context, params TxParameters) (Transaction, error)
	AllocateStatement(ctx context.Context) (Statement, error)

	// OpenBlob opens an existing large object for reading.
	OpenBlob(ctx context.Context, tx Transaction, id uint64, segmented bool) (Blob, error)
	// CreateBlob creates a large object for writing. The handle id becomes valid
	// once the handle is closed.
	CreateBlob(ctx context.Context, tx Transaction, segmented bool) (Blob, error)

	// BestRowIdentifier returns the ordered columns identifying a row of table.
	BestRowIdentifier(ctx context.Context, tx Transaction, table string) ([]RowIdentifierColumn, error)

	// IsValid reports whether the attachment can still be used.
	IsValid() bool
	Close(ctx context.Context) error
}

type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Statement interface {
	Prepare(ctx context.Context, tx Transaction, query string) error
	// Fields describes the columns of the prepared statement.
	Fields() []FieldDescriptor
	// SetTransaction rebinds the prepared statement to tx.
	SetTransaction(tx Transaction)
	Execute(ctx context.Context, params Row, sendOutputDescriptor bool) (ExecuteResult, error)
	// Fetch returns up to n rows of the open cursor. done is true when the
	// cursor is exhausted.
	Fetch(ctx context.Context, n int) (rows []Row, done bool, err error)
	// CloseCursor closes the open cursor keeping the statement prepared.
	CloseCursor(ctx context.Context) error
	// Close releases the statement, deallocating the server handle when deallocate is set.
	Close(ctx context.Context, deallocate bool) error
}

type ExecuteResult struct {
	// HasCursor is true when the statement opened a cursor to Fetch from.
	HasCursor bool
	// Output holds the singleton output row of procedure calls.
	Output       Row
	RowsAffected int64
}

type Blob interface {
	ID() uint64
	// GetSegment reads at most maxSize bytes.
	GetSegment(ctx context.Context, maxSize int) ([]byte, error)
	PutSegment(ctx context.Context, segment []byte) error
	// EOF reports whether the last GetSegment reached the end of the object.
	EOF() bool
	Close(ctx context.Context) error
}

// RowIdentifierColumn is one column of the best row identifier.
type RowIdentifierColumn struct {
	Name string
	// Pseudo is set for the physical row locator.
	Pseudo bool
}
