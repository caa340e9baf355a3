package rowupdater

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"

	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
	"github.com/FirebirdSQL/jaybird-sub009/trace"
)

var (
	errNoRelations      = errors.New("underlying result set references no relations")
	errNoRowIdentifier  = errors.New("underlying result set does not contain all columns that form 'best row identifier' and no RDB$DB_KEY was available as fallback") //nolint:lll
	errOnInsertRow      = errors.New("only insertRow() is allowed when result set is positioned on insert row")
	errNotOnRow         = errors.New("result set is not positioned on a row")
	errNotOnInsertRow   = errors.New("insertRow() is only allowed when result set is positioned on insert row")
	errClosed           = errors.New("corresponding result set is closed")
	errNotBlob          = errors.New("stream values can only be set on blob columns")
	errNoRowsFetched    = errors.New("no rows could be fetched")
	errTooManyRows      = errors.New("more than one row fetched")
	errColumnOutOfRange = errors.New("column index out of range")
)

// Session runs the synthesized statements of an updater.
type Session interface {
	Attachment() wire.Attachment
	// ExecutionStarted guarantees a transaction for one updater operation and
	// returns it.
	ExecutionStarted(ctx context.Context) (wire.Transaction, error)
	// ExecutionCompleted is called once for every successful ExecutionStarted.
	ExecutionCompleted(ctx context.Context, success bool) error
	// WriteBlob stores everything r yields as a new large object and returns
	// the encoded locator.
	WriteBlob(ctx context.Context, r io.Reader) ([]byte, error)
}

// State tells which virtual row field writes go to.
type State uint8

const (
	// StateReading has no pending changes on the current row.
	StateReading = State(iota)
	// StateUpdating has pending changes on the current row.
	StateUpdating
	// StateInserting is positioned on the insert row.
	StateInserting
)

func (s State) String() string {
	switch s {
	case StateReading:
		return "reading"
	case StateUpdating:
		return "updating"
	case StateInserting:
		return "inserting"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Updater mutates the base table of a cursor that was not declared updatable.
// Rows are identified by the best row identifier of the table or, when that
// is not projected, by the row locator.
type Updater struct {
	session Session
	fields  []wire.FieldDescriptor
	table   string

	quote QuoteStrategy
	coder wire.Coder
	trace *trace.Driver

	old       wire.Row
	pending   wire.Row
	dirty     []bool
	streams   map[int]io.Reader
	inserting bool

	keys     []int
	keysErr  error
	resolved bool

	stmts  [operationCount]wire.Statement
	closed bool
}

type Option func(u *Updater)

func WithQuoteStrategy(q QuoteStrategy) Option {
	return func(u *Updater) {
		u.quote = q
	}
}

func WithCoder(c wire.Coder) Option {
	return func(u *Updater) {
		if c != nil {
			u.coder = c
		}
	}
}

func WithTrace(t *trace.Driver) Option {
	return func(u *Updater) {
		u.trace = t
	}
}

// New creates an updater for a cursor described by fields. It fails with a
// not-updatable error unless every column comes from one and the same table.
func New(session Session, fields []wire.FieldDescriptor, opts ...Option) (*Updater, error) {
	table, err := singleTable(fields)
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}
	u := &Updater{
		session: session,
		fields:  fields,
		table:   table,
		coder:   wire.BinaryCoder{},
		trace:   &trace.Driver{},
		pending: wire.NewRow(len(fields)),
		dirty:   make([]bool, len(fields)),
		streams: make(map[int]io.Reader),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(u)
		}
	}

	return u, nil
}

func singleTable(fields []wire.FieldDescriptor) (string, error) {
	var table string
	for i, fd := range fields {
		if i == 0 {
			table = fd.Relation

			continue
		}
		if fd.Relation != table {
			return "", xerrors.NotUpdatable(fmt.Errorf(
				"underlying result set references at least two relations: %s and %s", table, fd.Relation,
			))
		}
	}
	if table == "" {
		return "", xerrors.NotUpdatable(errNoRelations)
	}

	return table, nil
}

// Table returns the base table.
func (u *Updater) Table() string {
	return u.table
}

func (u *Updater) State() State {
	switch {
	case u.inserting:
		return StateInserting
	case u.hasDirty():
		return StateUpdating
	default:
		return StateReading
	}
}

func (u *Updater) hasDirty() bool {
	for _, d := range u.dirty {
		if d {
			return true
		}
	}

	return false
}

func (u *Updater) reset() {
	for i := range u.pending {
		u.pending[i] = nil
		u.dirty[i] = false
	}
	clear(u.streams)
}

// SetRow positions the updater on row and discards pending changes.
func (u *Updater) SetRow(row wire.Row) {
	u.old = row
	u.inserting = false
	u.reset()
}

func (u *Updater) MoveToInsertRow() {
	u.inserting = true
	u.reset()
}

func (u *Updater) MoveToCurrentRow() {
	u.inserting = false
	u.reset()
}

// CancelRowUpdates discards pending changes and leaves the insert row.
func (u *Updater) CancelRowUpdates() {
	u.inserting = false
	u.reset()
}

func (u *Updater) checkColumn(i int) error {
	if i < 0 || i >= len(u.fields) {
		return xerrors.WithStackTrace(xerrors.Usage(fmt.Errorf("%w: %d", errColumnOutOfRange, i)))
	}

	return nil
}

// SetField writes the encoded value of column i into the active virtual row.
// A nil value is NULL.
func (u *Updater) SetField(i int, data []byte) error {
	if err := u.checkColumn(i); err != nil {
		return err
	}
	u.pending[i] = data
	u.dirty[i] = true
	delete(u.streams, i)

	return nil
}

func (u *Updater) SetNull(i int) error {
	return u.SetField(i, nil)
}

// SetValue encodes v for column i and writes it into the active virtual row.
func (u *Updater) SetValue(i int, v driver.Value) error {
	if err := u.checkColumn(i); err != nil {
		return err
	}
	data, err := u.coder.Encode(u.fields[i], v)
	if err != nil {
		return xerrors.WithStackTrace(xerrors.Usage(err))
	}

	return u.SetField(i, data)
}

// SetStream defers the content of blob column i until the next operation.
func (u *Updater) SetStream(i int, r io.Reader) error {
	if err := u.checkColumn(i); err != nil {
		return err
	}
	if !u.fields[i].IsBlob() {
		return xerrors.WithStackTrace(xerrors.Usage(errNotBlob))
	}
	u.pending[i] = nil
	u.dirty[i] = true
	u.streams[i] = r

	return nil
}

// Field returns the encoded value of column i as seen from the active virtual row.
func (u *Updater) Field(i int) ([]byte, error) {
	if err := u.checkColumn(i); err != nil {
		return nil, err
	}
	if u.dirty[i] || u.inserting || u.old == nil {
		return u.pending[i], nil
	}

	return u.old[i], nil
}

func (u *Updater) Value(i int) (driver.Value, error) {
	data, err := u.Field(i)
	if err != nil {
		return nil, err
	}
	v, err := u.coder.Decode(u.fields[i], data)
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	return v, nil
}

func wrongRow(expected, actual string) error {
	return xerrors.WithStackTrace(xerrors.Usage(fmt.Errorf(
		"cannot return %s row, currently positioned on %s row", expected, actual,
	)), xerrors.WithSkipDepth(1))
}

// OldRow returns the current row as read from the cursor.
func (u *Updater) OldRow() (wire.Row, error) {
	if u.inserting {
		return nil, wrongRow("old", "insert")
	}

	return u.old, nil
}

// NewRow returns a copy of the current row with pending changes applied.
func (u *Updater) NewRow() (wire.Row, error) {
	if u.inserting {
		return nil, wrongRow("update", "insert")
	}
	row := wire.NewRow(len(u.fields))
	for i := range row {
		data, _ := u.Field(i)
		if data != nil {
			row[i] = append([]byte{}, data...)
		}
	}

	return row, nil
}

// InsertValues returns a copy of the insert row.
func (u *Updater) InsertValues() (wire.Row, error) {
	if !u.inserting {
		return nil, wrongRow("insert", "current")
	}

	return u.pending.Clone(), nil
}
