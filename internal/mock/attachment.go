package mock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
)

var (
	errClosed    = errors.New("attachment is closed")
	errNoTx      = errors.New("no transaction")
	errTxEnded   = errors.New("transaction already ended")
	errNoBlob    = errors.New("blob not found")
	errNoCatalog = errors.New("table is unknown")
)

// Result is the scripted outcome of executing a query.
type Result struct {
	Fields       []wire.FieldDescriptor
	Rows         []wire.Row
	Output       wire.Row
	RowsAffected int64
	// Err fails the execution.
	Err error
}

// Execution is one recorded statement execution.
type Execution struct {
	Query  string
	Params wire.Row
	Tx     int
}

// Attachment is an in-memory wire.Attachment. Every transport call is appended
// to an event log so tests can assert on ordering.
type Attachment struct {
	mu sync.Mutex

	events     []string
	executions []Execution
	scripts    map[string]*Result
	catalog    map[string][]wire.RowIdentifierColumn
	failures   map[string][]error

	blobs         map[uint64][]byte
	segmentWrites map[uint64][]int
	nextBlobID    uint64
	nextTxID      int
	nextStmtID    int

	invalid bool
	closed  bool
}

var _ wire.Attachment = (*Attachment)(nil)

func NewAttachment() *Attachment {
	return &Attachment{
		scripts:       make(map[string]*Result),
		catalog:       make(map[string][]wire.RowIdentifierColumn),
		failures:      make(map[string][]error),
		blobs:         make(map[uint64][]byte),
		segmentWrites: make(map[uint64][]int),
	}
}

// Script makes query produce r.
func (a *Attachment) Script(query string, r Result) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.scripts[query] = &r
}

// SetRowIdentifier registers the best row identifier of table.
func (a *Attachment) SetRowIdentifier(table string, columns ...wire.RowIdentifierColumn) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.catalog[table] = columns
}

// Fail makes the next call of op fail with err. Known ops are begin, commit,
// rollback, allocate, prepare, execute, fetch, close-cursor, close-statement,
// open-blob, create-blob, get-segment, put-segment, close-blob and close.
func (a *Attachment) Fail(op string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.failures[op] = append(a.failures[op], err)
}

// Invalidate makes IsValid report false, as after a broken connection.
func (a *Attachment) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.invalid = true
}

// PutBlob stores data as an existing blob and returns its id.
func (a *Attachment) PutBlob(data []byte) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nextBlobID++
	a.blobs[a.nextBlobID] = append([]byte(nil), data...)

	return a.nextBlobID
}

func (a *Attachment) BlobData(id uint64) []byte {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.blobs[id]
}

// SegmentWrites returns the sizes of the segments written to blob id.
func (a *Attachment) SegmentWrites(id uint64) []int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]int(nil), a.segmentWrites[id]...)
}

// Events returns the event log.
func (a *Attachment) Events() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]string(nil), a.events...)
}

// EventsWithPrefix returns the events starting with one of prefixes.
func (a *Attachment) EventsWithPrefix(prefixes ...string) (events []string) {
	for _, e := range a.Events() {
		for _, p := range prefixes {
			if strings.HasPrefix(e, p) {
				events = append(events, e)

				break
			}
		}
	}

	return events
}

func (a *Attachment) Executions() []Execution {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]Execution(nil), a.executions...)
}

func (a *Attachment) Closed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.closed
}

// record appends an event and pops the pending failure of op. Callers hold mu.
func (a *Attachment) record(op, event string) error {
	a.events = append(a.events, event)
	if a.closed && op != "close" {
		return errClosed
	}
	if errs := a.failures[op]; len(errs) > 0 {
		a.failures[op] = errs[1:]

		return errs[0]
	}

	return nil
}

func (a *Attachment) BeginTransaction(_ context.Context, params wire.TxParameters) (wire.Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nextTxID++
	if err := a.record("begin", fmt.Sprintf("begin tx%d %s", a.nextTxID, params.Isolation)); err != nil {
		return nil, err
	}

	return &Transaction{att: a, id: a.nextTxID}, nil
}

func (a *Attachment) AllocateStatement(context.Context) (wire.Statement, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nextStmtID++
	if err := a.record("allocate", fmt.Sprintf("allocate stmt%d", a.nextStmtID)); err != nil {
		return nil, err
	}

	return &Statement{att: a, id: a.nextStmtID}, nil
}

func (a *Attachment) OpenBlob(_ context.Context, tx wire.Transaction, id uint64, _ bool) (wire.Blob, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.record("open-blob", fmt.Sprintf("open blob%d", id)); err != nil {
		return nil, err
	}
	if err := checkTx(tx); err != nil {
		return nil, err
	}
	data, ok := a.blobs[id]
	if !ok {
		return nil, errNoBlob
	}

	return &Blob{att: a, id: id, data: data}, nil
}

func (a *Attachment) CreateBlob(_ context.Context, tx wire.Transaction, _ bool) (wire.Blob, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nextBlobID++
	if err := a.record("create-blob", fmt.Sprintf("create blob%d", a.nextBlobID)); err != nil {
		return nil, err
	}
	if err := checkTx(tx); err != nil {
		return nil, err
	}

	return &Blob{att: a, id: a.nextBlobID, write: true}, nil
}

func (a *Attachment) BestRowIdentifier(
	_ context.Context, _ wire.Transaction, table string,
) ([]wire.RowIdentifierColumn, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.record("best-row-identifier", "best row identifier "+table); err != nil {
		return nil, err
	}
	columns, ok := a.catalog[table]
	if !ok {
		return nil, errNoCatalog
	}

	return append([]wire.RowIdentifierColumn(nil), columns...), nil
}

func (a *Attachment) IsValid() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return !a.invalid && !a.closed
}

func (a *Attachment) Close(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.record("close", "close attachment")
	a.closed = true

	return err
}

func checkTx(tx wire.Transaction) error {
	t, ok := tx.(*Transaction)
	if !ok || t == nil {
		return errNoTx
	}
	if t.ended {
		return errTxEnded
	}

	return nil
}

// Transaction is the fake physical transaction of an Attachment.
type Transaction struct {
	att   *Attachment
	id    int
	ended bool
}

func (t *Transaction) ID() int {
	return t.id
}

func (t *Transaction) Commit(context.Context) error {
	t.att.mu.Lock()
	defer t.att.mu.Unlock()

	if err := t.att.record("commit", fmt.Sprintf("commit tx%d", t.id)); err != nil {
		return err
	}
	if t.ended {
		return errTxEnded
	}
	t.ended = true

	return nil
}

func (t *Transaction) Rollback(context.Context) error {
	t.att.mu.Lock()
	defer t.att.mu.Unlock()

	if err := t.att.record("rollback", fmt.Sprintf("rollback tx%d", t.id)); err != nil {
		return err
	}
	if t.ended {
		return errTxEnded
	}
	t.ended = true

	return nil
}
