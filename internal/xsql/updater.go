package xsql

import (
	"context"
	"database/sql/driver"
	"io"

	"github.com/FirebirdSQL/jaybird-sub009/internal/rowupdater"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
)

var _ rowupdater.Session = updaterSession{}

// updaterSession runs updater statements in the transaction of the cursor
// when one is open, and in an implicit transaction otherwise.
type updaterSession struct {
	conn *Conn
}

func (s updaterSession) Attachment() wire.Attachment {
	return s.conn.att
}

func (s updaterSession) ExecutionStarted(ctx context.Context) (wire.Transaction, error) {
	if err := s.conn.counter.Ensure(ctx); err != nil {
		return nil, err
	}

	return s.conn.local.Transaction(), nil
}

func (s updaterSession) ExecutionCompleted(ctx context.Context, success bool) error {
	return s.conn.counter.Check(ctx, success)
}

func (s updaterSession) WriteBlob(ctx context.Context, r io.Reader) ([]byte, error) {
	return s.conn.writeBlob(ctx, r)
}

// RowUpdater changes the base table of a result row by row. Column indexes
// are 0-based.
type RowUpdater struct {
	conn   *Conn
	fields []wire.FieldDescriptor
	u      *rowupdater.Updater
}

func (ru *RowUpdater) Table() string {
	return ru.u.Table()
}

func (ru *RowUpdater) State() rowupdater.State {
	ru.conn.mu.Lock()
	defer ru.conn.mu.Unlock()

	return ru.u.State()
}

func (ru *RowUpdater) SetValue(i int, v driver.Value) error {
	ru.conn.mu.Lock()
	defer ru.conn.mu.Unlock()

	if blob, ok := v.(*Blob); ok {
		id, err := blob.blob.ID()
		if err != nil {
			return err
		}

		return ru.u.SetField(i, wire.EncodeBlobID(id))
	}

	return ru.u.SetValue(i, v)
}

func (ru *RowUpdater) SetNull(i int) error {
	ru.conn.mu.Lock()
	defer ru.conn.mu.Unlock()

	return ru.u.SetNull(i)
}

// SetStream writes everything r yields into blob column i on the next operation.
func (ru *RowUpdater) SetStream(i int, r io.Reader) error {
	ru.conn.mu.Lock()
	defer ru.conn.mu.Unlock()

	return ru.u.SetStream(i, r)
}

// Value returns column i as seen from the active virtual row.
func (ru *RowUpdater) Value(i int) (driver.Value, error) {
	ru.conn.mu.Lock()
	defer ru.conn.mu.Unlock()

	return ru.u.Value(i)
}

// OldRow returns the current row as read from the cursor.
func (ru *RowUpdater) OldRow() ([]driver.Value, error) {
	return ru.values(ru.u.OldRow)
}

// NewRow returns the current row with pending changes applied.
func (ru *RowUpdater) NewRow() ([]driver.Value, error) {
	return ru.values(ru.u.NewRow)
}

// InsertValues returns the values assigned on the insert row.
func (ru *RowUpdater) InsertValues() ([]driver.Value, error) {
	return ru.values(ru.u.InsertValues)
}

func (ru *RowUpdater) values(row func() (wire.Row, error)) ([]driver.Value, error) {
	ru.conn.mu.Lock()
	defer ru.conn.mu.Unlock()

	r, err := row()
	if err != nil {
		return nil, err
	}
	dest := make([]driver.Value, len(ru.fields))
	if err = ru.conn.toValues(ru.fields, r, false, dest); err != nil {
		return nil, err
	}

	return dest, nil
}

func (ru *RowUpdater) MoveToInsertRow() {
	ru.conn.mu.Lock()
	defer ru.conn.mu.Unlock()

	ru.u.MoveToInsertRow()
}

func (ru *RowUpdater) MoveToCurrentRow() {
	ru.conn.mu.Lock()
	defer ru.conn.mu.Unlock()

	ru.u.MoveToCurrentRow()
}

func (ru *RowUpdater) CancelRowUpdates() {
	ru.conn.mu.Lock()
	defer ru.conn.mu.Unlock()

	ru.u.CancelRowUpdates()
}

func (ru *RowUpdater) UpdateRow(ctx context.Context) error {
	return ru.do(ctx, ru.u.UpdateRow)
}

func (ru *RowUpdater) DeleteRow(ctx context.Context) error {
	return ru.do(ctx, ru.u.DeleteRow)
}

func (ru *RowUpdater) InsertRow(ctx context.Context) error {
	return ru.do(ctx, ru.u.InsertRow)
}

func (ru *RowUpdater) RefreshRow(ctx context.Context) error {
	return ru.do(ctx, ru.u.RefreshRow)
}

func (ru *RowUpdater) do(ctx context.Context, op func(ctx context.Context) error) error {
	ru.conn.mu.Lock()
	defer ru.conn.mu.Unlock()

	if err := ru.conn.check(); err != nil {
		return err
	}

	return op(ctx)
}
