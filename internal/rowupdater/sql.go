package rowupdater

import (
	"io"
	"strings"

	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xstring"
)

type sqlWriter interface {
	io.StringWriter
	io.ByteWriter
}

// QuoteStrategy decides how column identifiers are written into synthesized statements.
type QuoteStrategy uint8

const (
	// QuoteDialect3 writes delimited identifiers.
	QuoteDialect3 = QuoteStrategy(iota)
	// QuoteDialect1 writes bare identifiers.
	QuoteDialect1
)

func (q QuoteStrategy) String() string {
	if q == QuoteDialect1 {
		return "dialect 1"
	}

	return "dialect 3"
}

func (q QuoteStrategy) appendQuoted(b sqlWriter, name string) {
	if q == QuoteDialect1 {
		b.WriteString(name)

		return
	}
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(name, `"`, `""`))
	b.WriteByte('"')
}

// Quote returns name as an identifier for q.
func (q QuoteStrategy) Quote(name string) string {
	b := xstring.Buffer()
	defer b.Free()
	q.appendQuoted(b, name)

	return b.String()
}

type operation uint8

const (
	operationUpdate = operation(iota)
	operationDelete
	operationInsert
	operationSelect

	operationCount
)

func (op operation) String() string {
	switch op {
	case operationUpdate:
		return "update"
	case operationDelete:
		return "delete"
	case operationInsert:
		return "insert"
	default:
		return "select"
	}
}

func (u *Updater) appendWhere(b sqlWriter, keys []int) {
	b.WriteString(" WHERE ")
	if len(keys) == 1 && u.fields[keys[0]].IsDBKey() {
		b.WriteString(wire.DBKeyColumn)
		b.WriteString(" = ?")

		return
	}
	for i, k := range keys {
		if i > 0 {
			b.WriteString(" AND ")
		}
		u.quote.appendQuoted(b, u.fields[k].OriginalName)
		b.WriteString(" = ?")
	}
}

// assigned returns the positions written by the pending row, in projection
// order. The row locator is never assigned.
func (u *Updater) assigned() (positions []int) {
	for i, fd := range u.fields {
		if u.dirty[i] && !fd.IsDBKey() {
			positions = append(positions, i)
		}
	}

	return positions
}

func (u *Updater) buildUpdate(keys []int) string {
	b := xstring.Buffer()
	defer b.Free()

	b.WriteString("UPDATE ")
	b.WriteString(u.table)
	b.WriteString(" SET ")
	for i, pos := range u.assigned() {
		if i > 0 {
			b.WriteString(", ")
		}
		u.quote.appendQuoted(b, u.fields[pos].OriginalName)
		b.WriteString(" = ?")
	}
	u.appendWhere(b, keys)

	return b.String()
}

func (u *Updater) buildDelete(keys []int) string {
	b := xstring.Buffer()
	defer b.Free()

	b.WriteString("DELETE FROM ")
	b.WriteString(u.table)
	u.appendWhere(b, keys)

	return b.String()
}

func (u *Updater) buildInsert() string {
	b := xstring.Buffer()
	defer b.Free()

	b.WriteString("INSERT INTO ")
	b.WriteString(u.table)
	positions := u.assigned()
	if len(positions) == 0 {
		b.WriteString(" DEFAULT VALUES")

		return b.String()
	}
	b.WriteString(" (")
	for i, pos := range positions {
		if i > 0 {
			b.WriteString(", ")
		}
		u.quote.appendQuoted(b, u.fields[pos].OriginalName)
	}
	b.WriteString(") VALUES (")
	for i := range positions {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('?')
	}
	b.WriteByte(')')

	return b.String()
}

func (u *Updater) buildSelect(keys []int) string {
	b := xstring.Buffer()
	defer b.Free()

	b.WriteString("SELECT ")
	for i, fd := range u.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		if fd.IsDBKey() {
			b.WriteString(wire.DBKeyColumn)
		} else {
			u.quote.appendQuoted(b, fd.OriginalName)
		}
	}
	b.WriteString(" FROM ")
	b.WriteString(u.table)
	u.appendWhere(b, keys)

	return b.String()
}

func (u *Updater) build(op operation, keys []int) string {
	switch op {
	case operationUpdate:
		return u.buildUpdate(keys)
	case operationDelete:
		return u.buildDelete(keys)
	case operationInsert:
		return u.buildInsert()
	default:
		return u.buildSelect(keys)
	}
}

// params returns the new values followed by the key values of the old row.
func (u *Updater) params(op operation, keys []int, pending wire.Row) wire.Row {
	var params wire.Row
	if op == operationUpdate || op == operationInsert {
		for _, pos := range u.assigned() {
			params = append(params, pending[pos])
		}
	}
	if op != operationInsert {
		for _, k := range keys {
			params = append(params, u.old[k])
		}
	}

	return params
}
