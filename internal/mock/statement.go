package mock

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
)

var (
	errNotPrepared = errors.New("statement is not prepared")
	errNoCursor    = errors.New("no open cursor")
)

// Statement is a fake statement handle. Unscripted queries starting with
// SELECT open an empty cursor; others affect no rows.
type Statement struct {
	att *Attachment
	id  int

	query  string
	tx     wire.Transaction
	result *Result

	rows   []wire.Row
	cursor bool
}

var _ wire.Statement = (*Statement)(nil)

func (s *Statement) Prepare(_ context.Context, tx wire.Transaction, query string) error {
	s.att.mu.Lock()
	defer s.att.mu.Unlock()

	if err := s.att.record("prepare", "prepare "+query); err != nil {
		return err
	}
	s.query = query
	s.tx = tx
	s.result = s.att.scripts[query]

	return nil
}

func (s *Statement) Fields() []wire.FieldDescriptor {
	s.att.mu.Lock()
	defer s.att.mu.Unlock()

	if s.result == nil {
		return nil
	}

	return s.result.Fields
}

func (s *Statement) SetTransaction(tx wire.Transaction) {
	s.att.mu.Lock()
	defer s.att.mu.Unlock()

	s.tx = tx
}

func (s *Statement) Execute(_ context.Context, params wire.Row, _ bool) (wire.ExecuteResult, error) {
	s.att.mu.Lock()
	defer s.att.mu.Unlock()

	if err := s.att.record("execute", "execute "+s.query); err != nil {
		return wire.ExecuteResult{}, err
	}
	if s.query == "" {
		return wire.ExecuteResult{}, errNotPrepared
	}
	if err := checkTx(s.tx); err != nil {
		return wire.ExecuteResult{}, err
	}
	var txID int
	if t, ok := s.tx.(*Transaction); ok {
		txID = t.id
	}
	s.att.executions = append(s.att.executions, Execution{
		Query:  s.query,
		Params: params.Clone(),
		Tx:     txID,
	})

	s.rows, s.cursor = nil, false
	r := s.result
	switch {
	case r == nil:
		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(s.query)), "SELECT") {
			s.cursor = true
		}

		return wire.ExecuteResult{HasCursor: s.cursor}, nil
	case r.Err != nil:
		return wire.ExecuteResult{}, r.Err
	case r.Output != nil:
		return wire.ExecuteResult{Output: r.Output.Clone(), RowsAffected: r.RowsAffected}, nil
	case len(r.Fields) > 0:
		s.cursor = true
		for _, row := range r.Rows {
			s.rows = append(s.rows, row.Clone())
		}

		return wire.ExecuteResult{HasCursor: true}, nil
	default:
		return wire.ExecuteResult{RowsAffected: r.RowsAffected}, nil
	}
}

func (s *Statement) Fetch(_ context.Context, n int) ([]wire.Row, bool, error) {
	s.att.mu.Lock()
	defer s.att.mu.Unlock()

	if err := s.att.record("fetch", fmt.Sprintf("fetch stmt%d", s.id)); err != nil {
		return nil, false, err
	}
	if !s.cursor {
		return nil, true, errNoCursor
	}
	if err := checkTx(s.tx); err != nil {
		return nil, false, err
	}
	if n > len(s.rows) {
		n = len(s.rows)
	}
	rows := s.rows[:n]
	s.rows = s.rows[n:]

	return rows, len(s.rows) == 0, nil
}

func (s *Statement) CloseCursor(context.Context) error {
	s.att.mu.Lock()
	defer s.att.mu.Unlock()

	s.rows, s.cursor = nil, false

	return s.att.record("close-cursor", fmt.Sprintf("close cursor stmt%d", s.id))
}

func (s *Statement) Close(_ context.Context, deallocate bool) error {
	s.att.mu.Lock()
	defer s.att.mu.Unlock()

	s.rows, s.cursor = nil, false
	if deallocate {
		return s.att.record("close-statement", fmt.Sprintf("free stmt%d", s.id))
	}

	return s.att.record("close-statement", fmt.Sprintf("close stmt%d", s.id))
}
