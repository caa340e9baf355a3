package fbsql

import (
	"github.com/FirebirdSQL/jaybird-sub009/internal/rowupdater"
	"github.com/FirebirdSQL/jaybird-sub009/internal/tx"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xsql"
)

type (
	Conn       = xsql.Conn
	Stmt       = xsql.Stmt
	Rows       = xsql.Rows
	Tx         = xsql.Tx
	Blob       = xsql.Blob
	RowUpdater = xsql.RowUpdater
	Dialer     = xsql.Dialer
	DialerFunc = xsql.DialerFunc
)

// Handles of the wire layer that a Dialer provides.
type (
	Attachment          = wire.Attachment
	Transaction         = wire.Transaction
	Statement           = wire.Statement
	BlobHandle          = wire.Blob
	ExecuteResult       = wire.ExecuteResult
	FieldDescriptor     = wire.FieldDescriptor
	FieldType           = wire.FieldType
	Row                 = wire.Row
	RowIdentifierColumn = wire.RowIdentifierColumn
	TxParameters        = wire.TxParameters
	Isolation           = wire.Isolation
)

const (
	IsolationReadCommitted          = wire.IsolationReadCommitted
	IsolationSnapshot               = wire.IsolationSnapshot
	IsolationSnapshotTableStability = wire.IsolationSnapshotTableStability
)

// Mode is the transaction policy of a connection.
type Mode = tx.Mode

const (
	ModeAutoCommit = tx.ModeAutoCommit
	ModeLocal      = tx.ModeLocal
	ModeManaged    = tx.ModeManaged
	ModeDisabled   = tx.ModeDisabled
)

type QuoteStrategy = rowupdater.QuoteStrategy

const (
	QuoteDialect3 = rowupdater.QuoteDialect3
	QuoteDialect1 = rowupdater.QuoteDialect1
)

type UpdaterState = rowupdater.State
