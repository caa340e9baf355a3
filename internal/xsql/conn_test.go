package xsql

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rekby/fixenv"
	"github.com/stretchr/testify/require"

	"github.com/FirebirdSQL/jaybird-sub009/config"
	"github.com/FirebirdSQL/jaybird-sub009/internal/tx"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xtest"
)

var (
	fieldA    = wire.FieldDescriptor{Name: "A", OriginalName: "A", Relation: "T", Type: wire.TypeBigint}
	fieldB    = wire.FieldDescriptor{Name: "B", OriginalName: "B", Relation: "T", Type: wire.TypeBlob, Nullable: true}
	fieldName = wire.FieldDescriptor{Name: "NAME", OriginalName: "NAME", Relation: "T", Type: wire.TypeVarchar}
)

func txEvents(events []string) []string {
	var filtered []string
	for _, e := range events {
		if strings.HasPrefix(e, "begin") || strings.HasPrefix(e, "commit") || strings.HasPrefix(e, "rollback") {
			filtered = append(filtered, e)
		}
	}

	return filtered
}

func TestAutoCommitCommitsBeforeNextStatement(t *testing.T) {
	e := fixenv.New(t)
	ctx := xtest.Context(t)
	att := MockAttachment(e)
	att.Script("SELECT A FROM T", mockRows(t, 1, 2))
	conn := DefaultConn(e)

	res, err := conn.ExecContext(ctx, "UPDATE T SET A = 1", nil)
	require.NoError(t, err)
	_, err = res.LastInsertId()
	require.True(t, xerrors.IsUsage(err))

	rows, err := conn.QueryContext(ctx, "SELECT A FROM T", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, rows.Columns())
	require.Equal(t, [][]driver.Value{{int64(1)}, {int64(2)}}, readAll(t, rows))
	require.NoError(t, rows.Close())

	require.Equal(t, []string{
		"begin tx1 read_committed",
		"allocate stmt1",
		"prepare UPDATE T SET A = 1",
		"execute UPDATE T SET A = 1",
		"commit tx1",
		"free stmt1",
		"begin tx2 read_committed",
		"allocate stmt2",
		"prepare SELECT A FROM T",
		"execute SELECT A FROM T",
		"fetch stmt2",
		"close cursor stmt2",
		"commit tx2",
		"free stmt2",
	}, att.Events())
	require.False(t, conn.InTransaction())
}

func mockRows(t testing.TB, values ...int64) mockResult {
	rows := make([]wire.Row, len(values))
	for i, v := range values {
		rows[i] = wire.Row{encode(t, fieldA, v)}
	}

	return mockResult{Fields: []wire.FieldDescriptor{fieldA}, Rows: rows}
}

func TestLiveRowsCompletedByNextStatement(t *testing.T) {
	e := fixenv.New(t)
	ctx := xtest.Context(t)
	att := MockAttachment(e)
	att.Script("SELECT A FROM T", mockRows(t, 1, 2))
	conn := DefaultConn(e)

	rows, err := conn.QueryContext(ctx, "SELECT A FROM T", nil)
	require.NoError(t, err)
	require.False(t, rows.(*Rows).Cached())

	_, err = conn.ExecContext(ctx, "UPDATE T SET A = 2", nil)
	require.NoError(t, err)

	require.Equal(t, []string{
		"begin tx1 read_committed",
		"close cursor stmt1",
		"commit tx1",
		"begin tx2 read_committed",
		"commit tx2",
	}, att.EventsWithPrefix("begin", "commit", "close cursor"))

	err = rows.Next(make([]driver.Value, 1))
	require.True(t, xerrors.IsUsage(err))
	require.NotErrorIs(t, err, io.EOF)
	require.ErrorContains(t, err, "closed by completion of its transaction")
	require.NoError(t, rows.Close())
}

func TestHoldableResultsAreMaterialized(t *testing.T) {
	e := fixenv.New(t)
	ctx := xtest.Context(t)
	att := MockAttachment(e)
	id := att.PutBlob([]byte("hello"))
	att.Script("SELECT A, B FROM T", mockResult{
		Fields: []wire.FieldDescriptor{fieldA, fieldB},
		Rows: []wire.Row{
			{encode(t, fieldA, int64(1)), wire.EncodeBlobID(id)},
			{encode(t, fieldA, int64(2)), nil},
		},
	})
	conn := ConnOf(t, ConnectorWith(e, "holdable", config.WithHoldableResults()))

	rows, err := conn.QueryContext(ctx, "SELECT A, B FROM T", nil)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, "UPDATE T SET A = 3", nil)
	require.NoError(t, err)
	require.True(t, rows.(*Rows).Cached())

	require.Equal(t, []string{
		"begin tx1 read_committed",
		"fetch stmt1",
		"close cursor stmt1",
		"open blob1",
		"commit tx1",
		"begin tx2 read_committed",
		"commit tx2",
	}, att.EventsWithPrefix("begin", "commit", "fetch", "close cursor", "open blob"))

	require.Equal(t, [][]driver.Value{
		{int64(1), []byte("hello")},
		{int64(2), nil},
	}, readAll(t, rows))
	require.NoError(t, rows.Close())
}

func TestLiveBlobColumn(t *testing.T) {
	e := fixenv.New(t)
	ctx := xtest.Context(t)
	att := MockAttachment(e)
	id := att.PutBlob([]byte("hello"))
	att.Script("SELECT B FROM T", mockResult{
		Fields: []wire.FieldDescriptor{fieldB},
		Rows:   []wire.Row{{wire.EncodeBlobID(id)}},
	})
	conn := DefaultConn(e)

	rows, err := conn.QueryContext(ctx, "SELECT B FROM T", nil)
	require.NoError(t, err)
	dest := make([]driver.Value, 1)
	require.NoError(t, rows.Next(dest))
	b, ok := dest[0].(*Blob)
	require.True(t, ok)

	gotID, err := b.ID()
	require.NoError(t, err)
	require.Equal(t, id, gotID)

	data, err := b.ReadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)

	part, err := b.Bytes(ctx, 2, 3)
	require.NoError(t, err)
	require.Equal(t, []byte("ell"), part)

	r, err := b.NewReader(ctx)
	require.NoError(t, err)
	data, err = io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)
	require.NoError(t, r.Close())

	require.NoError(t, rows.Close())
	require.Equal(t, []string{"begin tx1 read_committed", "commit tx1"}, txEvents(att.Events()))
}

func TestBlobParameters(t *testing.T) {
	e := fixenv.New(t)
	ctx := xtest.Context(t)
	att := MockAttachment(e)
	conn := DefaultConn(e)

	t.Run("Reader", func(t *testing.T) {
		_, err := conn.ExecContext(ctx, "INSERT INTO T (B) VALUES (?)", args(strings.NewReader("payload")))
		require.NoError(t, err)

		executions := att.Executions()
		last := executions[len(executions)-1]
		id, err := wire.DecodeBlobID(last.Params[0])
		require.NoError(t, err)
		require.Equal(t, []byte("payload"), att.BlobData(id))
		require.Equal(t, []int{7}, att.SegmentWrites(id))
	})

	t.Run("Blob", func(t *testing.T) {
		b := conn.NewBlob()
		require.False(t, b.Written())
		_, err := conn.ExecContext(ctx, "INSERT INTO T (B) VALUES (?)", args(b))
		require.True(t, xerrors.IsUsage(err))

		require.NoError(t, conn.GuaranteeTransaction(ctx))
		w, err := b.NewWriter(ctx)
		require.NoError(t, err)
		_, err = w.Write([]byte("written"))
		require.NoError(t, err)
		require.NoError(t, w.Close())
		require.NoError(t, conn.ReleaseTransactionReference(ctx, true))

		id, err := b.ID()
		require.NoError(t, err)
		require.Equal(t, []byte("written"), att.BlobData(id))

		_, err = conn.ExecContext(ctx, "INSERT INTO T (B) VALUES (?)", args(b))
		require.NoError(t, err)
		executions := att.Executions()
		require.Equal(t, wire.EncodeBlobID(id), executions[len(executions)-1].Params[0])
	})

	t.Run("CheckNamedValue", func(t *testing.T) {
		require.NoError(t, conn.CheckNamedValue(&driver.NamedValue{Value: conn.NewBlob()}))
		require.NoError(t, conn.CheckNamedValue(&driver.NamedValue{Value: strings.NewReader("")}))
		require.ErrorIs(t, conn.CheckNamedValue(&driver.NamedValue{Value: int64(1)}), driver.ErrSkip)
	})
}

func TestPreparedStatementRebindsTransaction(t *testing.T) {
	e := fixenv.New(t)
	ctx := xtest.Context(t)
	att := MockAttachment(e)
	att.Script("SELECT A FROM T", mockRows(t, 1))
	conn := DefaultConn(e)

	ds, err := conn.PrepareContext(ctx, "SELECT A FROM T")
	require.NoError(t, err)
	s := ds.(*Stmt) //nolint:forcetypeassert
	require.Equal(t, -1, s.NumInput())

	for i := 0; i < 2; i++ {
		rows, err := s.QueryContext(ctx, nil)
		require.NoError(t, err)
		require.Len(t, readAll(t, rows), 1)
		require.NoError(t, rows.Close())
	}
	require.NoError(t, s.Close())

	require.Len(t, att.EventsWithPrefix("allocate"), 1)
	require.Len(t, att.EventsWithPrefix("prepare"), 1)
	require.Equal(t, []string{"free stmt1"}, att.EventsWithPrefix("free"))

	executions := att.Executions()
	require.Len(t, executions, 2)
	require.Equal(t, 1, executions[0].Tx)
	require.Equal(t, 2, executions[1].Tx)

	_, err = s.ExecContext(ctx, nil)
	require.True(t, xerrors.IsUsage(err))
}

func TestStatementReexecutionClosesPreviousResult(t *testing.T) {
	e := fixenv.New(t)
	ctx := xtest.Context(t)
	att := MockAttachment(e)
	att.Script("SELECT A FROM T", mockRows(t, 1, 2))
	conn := DefaultConn(e)

	ds, err := conn.PrepareContext(ctx, "SELECT A FROM T")
	require.NoError(t, err)
	s := ds.(*Stmt) //nolint:forcetypeassert

	first, err := s.QueryContext(ctx, nil)
	require.NoError(t, err)
	second, err := s.QueryContext(ctx, nil)
	require.NoError(t, err)

	require.True(t, xerrors.IsUsage(first.Next(make([]driver.Value, 1))))
	require.NoError(t, first.Close())
	require.Len(t, readAll(t, second), 2)
	require.NoError(t, second.Close())

	// re-executing the same statement keeps its transaction
	require.Equal(t, []string{"begin tx1 read_committed", "commit tx1"}, txEvents(att.Events()))
}

func TestCallable(t *testing.T) {
	const query = "EXECUTE PROCEDURE P(?, ?, ?)"
	fields := []wire.FieldDescriptor{
		{Name: "OUT_A", Type: wire.TypeBigint},
		{Name: "OUT_B", Type: wire.TypeVarchar},
	}
	script := func(t *testing.T, att interface{ Script(string, mockResult) }) {
		att.Script(query, mockResult{
			Fields: fields,
			Output: wire.Row{encode(t, fields[0], int64(7)), []byte("x")},
		})
	}

	t.Run("RegisteredOutParameters", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		att := MockAttachment(e)
		script(t, att)
		conn := DefaultConn(e)

		s, err := conn.PrepareCall(ctx, query)
		require.NoError(t, err)
		_, err = s.OutParameter(2)
		require.True(t, xerrors.IsUsage(err))

		require.NoError(t, s.RegisterOutParameter(2))
		require.NoError(t, s.RegisterOutParameter(3))
		require.True(t, xerrors.IsUsage(s.RegisterOutParameter(0)))

		_, err = s.ExecContext(ctx, args(int64(1)))
		require.NoError(t, err)

		v, err := s.OutParameter(2)
		require.NoError(t, err)
		require.Equal(t, int64(7), v)
		v, err = s.OutParameter(3)
		require.NoError(t, err)
		require.Equal(t, "x", v)

		_, err = s.OutParameter(1)
		require.True(t, xerrors.IsUsage(err))

		require.Equal(t, []string{"begin tx1 read_committed", "commit tx1"}, txEvents(att.Events()))
		require.NoError(t, s.Close())
	})

	t.Run("Fallback", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		att := MockAttachment(e)
		script(t, att)
		conn := ConnOf(t, ConnectorWith(e, "fallback", config.WithOutputParameterFallback()))

		s, err := conn.PrepareCall(ctx, query)
		require.NoError(t, err)
		_, err = s.ExecContext(ctx, nil)
		require.NoError(t, err)

		v, err := s.OutParameter(1)
		require.NoError(t, err)
		require.Equal(t, int64(7), v)
		v, err = s.OutParameter(2)
		require.NoError(t, err)
		require.Equal(t, "x", v)
		_, err = s.OutParameter(3)
		require.True(t, xerrors.IsUsage(err))
	})

	t.Run("QueryByPrefix", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		att := MockAttachment(e)
		script(t, att)
		conn := DefaultConn(e)

		rows, err := conn.QueryContext(ctx, query, nil)
		require.NoError(t, err)
		require.True(t, rows.(*Rows).Cached())
		require.Equal(t, []string{"OUT_A", "OUT_B"}, rows.Columns())
		require.Equal(t, [][]driver.Value{{int64(7), "x"}}, readAll(t, rows))
		require.NoError(t, rows.Close())
		require.Equal(t, []string{"begin tx1 read_committed", "commit tx1"}, txEvents(att.Events()))
	})

	t.Run("InsideExplicitTransaction", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		att := MockAttachment(e)
		script(t, att)
		conn := DefaultConn(e)

		require.NoError(t, conn.SetAutoCommit(ctx, false))
		_, err := conn.ExecContext(ctx, query, nil)
		require.NoError(t, err)
		require.True(t, conn.InTransaction())
		require.Equal(t, []string{"begin tx1 read_committed"}, txEvents(att.Events()))
		require.NoError(t, conn.Commit(ctx))
	})

	t.Run("NotCallable", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		conn := DefaultConn(e)

		ds, err := conn.PrepareContext(ctx, "SELECT A FROM T")
		require.NoError(t, err)
		s := ds.(*Stmt) //nolint:forcetypeassert
		require.True(t, xerrors.IsUsage(s.RegisterOutParameter(1)))
		_, err = s.OutParameter(1)
		require.True(t, xerrors.IsUsage(err))
	})
}

func TestBeginTx(t *testing.T) {
	t.Run("Commit", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		att := MockAttachment(e)
		conn := DefaultConn(e)

		dtx, err := conn.BeginTx(ctx, driver.TxOptions{Isolation: driver.IsolationLevel(sql.LevelSerializable)})
		require.NoError(t, err)
		require.Equal(t, tx.ModeLocal, conn.Mode())

		_, err = conn.ExecContext(ctx, "UPDATE T SET A = 1", nil)
		require.NoError(t, err)
		_, err = conn.ExecContext(ctx, "UPDATE T SET A = 2", nil)
		require.NoError(t, err)
		require.NoError(t, dtx.Commit())
		require.True(t, xerrors.IsUsage(dtx.Commit()))
		require.Equal(t, tx.ModeAutoCommit, conn.Mode())

		_, err = conn.ExecContext(ctx, "UPDATE T SET A = 3", nil)
		require.NoError(t, err)

		require.Equal(t, []string{
			"begin tx1 snapshot_table_stability",
			"commit tx1",
			"begin tx2 read_committed",
			"commit tx2",
		}, txEvents(att.Events()))
		executions := att.Executions()
		require.Equal(t, 1, executions[0].Tx)
		require.Equal(t, 1, executions[1].Tx)
	})

	t.Run("Rollback", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		att := MockAttachment(e)
		conn := DefaultConn(e)

		dtx, err := conn.BeginTx(ctx, driver.TxOptions{})
		require.NoError(t, err)
		_, err = conn.ExecContext(ctx, "UPDATE T SET A = 1", nil)
		require.NoError(t, err)
		require.NoError(t, dtx.Rollback())

		require.Equal(t, []string{"begin tx1 read_committed", "rollback tx1"}, txEvents(att.Events()))
		require.Equal(t, tx.ModeAutoCommit, conn.Mode())
	})

	t.Run("AlreadyInProgress", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		conn := DefaultConn(e)

		dtx, err := conn.BeginTx(ctx, driver.TxOptions{})
		require.NoError(t, err)
		_, err = conn.BeginTx(ctx, driver.TxOptions{})
		require.True(t, xerrors.IsUsage(err))
		require.True(t, xerrors.IsUsage(conn.SetAutoCommit(ctx, true)))
		require.True(t, xerrors.IsUsage(conn.Commit(ctx)))
		require.NoError(t, dtx.Rollback())
	})

	t.Run("UnsupportedIsolation", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		att := MockAttachment(e)
		conn := DefaultConn(e)

		_, err := conn.BeginTx(ctx, driver.TxOptions{Isolation: driver.IsolationLevel(sql.LevelWriteCommitted)})
		require.True(t, xerrors.IsUsage(err))
		require.Equal(t, tx.ModeAutoCommit, conn.Mode())
		require.Empty(t, att.Events())
	})

	t.Run("BeginFailureRestoresMode", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		att := MockAttachment(e)
		errBegin := errors.New("begin failed")
		att.Fail("begin", errBegin)
		conn := DefaultConn(e)

		_, err := conn.BeginTx(ctx, driver.TxOptions{})
		require.ErrorIs(t, err, errBegin)
		require.True(t, xerrors.IsTransport(err))
		require.Equal(t, tx.ModeAutoCommit, conn.Mode())
	})
}

func TestExplicitCommitOnConnection(t *testing.T) {
	e := fixenv.New(t)
	ctx := xtest.Context(t)
	att := MockAttachment(e)
	conn := DefaultConn(e)

	require.True(t, xerrors.IsUsage(conn.Commit(ctx)))
	require.True(t, xerrors.IsUsage(conn.Rollback(ctx)))

	require.NoError(t, conn.SetAutoCommit(ctx, false))
	_, err := conn.ExecContext(ctx, "UPDATE T SET A = 1", nil)
	require.NoError(t, err)
	require.True(t, conn.InTransaction())
	require.NoError(t, conn.Commit(ctx))
	_, err = conn.ExecContext(ctx, "UPDATE T SET A = 2", nil)
	require.NoError(t, err)
	require.NoError(t, conn.Rollback(ctx))

	// switching back commits nothing as no transaction is open
	require.NoError(t, conn.SetAutoCommit(ctx, true))

	require.Equal(t, []string{
		"begin tx1 read_committed",
		"commit tx1",
		"begin tx2 read_committed",
		"rollback tx2",
	}, txEvents(att.Events()))
}

func TestSetAutoCommitCommitsOpenWork(t *testing.T) {
	e := fixenv.New(t)
	ctx := xtest.Context(t)
	att := MockAttachment(e)
	conn := DefaultConn(e)

	require.NoError(t, conn.SetAutoCommit(ctx, false))
	_, err := conn.ExecContext(ctx, "UPDATE T SET A = 1", nil)
	require.NoError(t, err)
	require.NoError(t, conn.SetAutoCommit(ctx, true))
	require.False(t, conn.InTransaction())
	require.Equal(t, []string{"begin tx1 read_committed", "commit tx1"}, txEvents(att.Events()))
}

func TestSetManaged(t *testing.T) {
	e := fixenv.New(t)
	ctx := xtest.Context(t)
	att := MockAttachment(e)
	conn := DefaultConn(e)

	external, err := att.BeginTransaction(ctx, wire.DefaultTxParameters())
	require.NoError(t, err)

	require.NoError(t, conn.SetManaged(ctx, external))
	require.Equal(t, tx.ModeManaged, conn.Mode())

	_, err = conn.ExecContext(ctx, "UPDATE T SET A = 1", nil)
	require.NoError(t, err)
	require.True(t, xerrors.IsUsage(conn.Commit(ctx)))
	_, err = conn.BeginTx(ctx, driver.TxOptions{})
	require.True(t, xerrors.IsUsage(err))
	require.True(t, xerrors.IsUsage(conn.SetAutoCommit(ctx, false)))

	require.NoError(t, conn.SetManaged(ctx, nil))
	require.Equal(t, tx.ModeAutoCommit, conn.Mode())
	require.False(t, conn.InTransaction())

	// the external owner ends its transaction
	require.NoError(t, external.Commit(ctx))

	_, err = conn.ExecContext(ctx, "UPDATE T SET A = 2", nil)
	require.NoError(t, err)

	require.Equal(t, []string{
		"begin tx1 read_committed",
		"commit tx1",
		"begin tx2 read_committed",
		"commit tx2",
	}, txEvents(att.Events()))
	executions := att.Executions()
	require.Equal(t, 1, executions[0].Tx)
	require.Equal(t, 2, executions[1].Tx)
}

func TestRowUpdater(t *testing.T) {
	const query = "SELECT A, NAME FROM T"
	script := func(t *testing.T, e fixenv.Env) {
		att := MockAttachment(e)
		att.SetRowIdentifier("T", wire.RowIdentifierColumn{Name: "A"})
		att.Script(query, mockResult{
			Fields: []wire.FieldDescriptor{fieldA, fieldName},
			Rows:   []wire.Row{{encode(t, fieldA, int64(1)), []byte("old")}},
		})
	}

	t.Run("UsesCursorTransaction", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		script(t, e)
		att := MockAttachment(e)
		conn := DefaultConn(e)

		rows, err := conn.QueryContext(ctx, query, nil)
		require.NoError(t, err)
		require.NoError(t, rows.Next(make([]driver.Value, 2)))

		u, err := rows.(*Rows).Updater()
		require.NoError(t, err)
		require.Equal(t, "T", u.Table())
		require.NoError(t, u.SetValue(1, "new"))
		v, err := u.Value(1)
		require.NoError(t, err)
		require.Equal(t, "new", v)
		old, err := u.OldRow()
		require.NoError(t, err)
		require.Equal(t, []driver.Value{int64(1), "old"}, old)
		updated, err := u.NewRow()
		require.NoError(t, err)
		require.Equal(t, []driver.Value{int64(1), "new"}, updated)
		_, err = u.InsertValues()
		require.True(t, xerrors.IsUsage(err))
		require.NoError(t, u.UpdateRow(ctx))

		executions := att.Executions()
		last := executions[len(executions)-1]
		require.Equal(t, `UPDATE T SET "NAME" = ? WHERE "A" = ?`, last.Query)
		require.Equal(t, 1, last.Tx)
		require.Equal(t, wire.Row{[]byte("new"), encode(t, fieldA, int64(1))}, last.Params)

		require.NoError(t, rows.Close())
		require.Equal(t, []string{"begin tx1 read_committed", "commit tx1"}, txEvents(att.Events()))
	})

	t.Run("ImplicitTransaction", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		script(t, e)
		att := MockAttachment(e)
		conn := ConnOf(t, ConnectorWith(e, "holdable", config.WithHoldableResults()))

		rows, err := conn.QueryContext(ctx, query, nil)
		require.NoError(t, err)
		_, err = conn.ExecContext(ctx, "UPDATE U SET X = 1", nil)
		require.NoError(t, err)
		require.NoError(t, rows.Next(make([]driver.Value, 2)))

		u, err := rows.(*Rows).Updater()
		require.NoError(t, err)
		require.NoError(t, u.DeleteRow(ctx))
		require.NoError(t, rows.Close())

		executions := att.Executions()
		last := executions[len(executions)-1]
		require.Equal(t, `DELETE FROM T WHERE "A" = ?`, last.Query)
		require.Equal(t, 3, last.Tx)
		require.Equal(t, []string{
			"begin tx1 read_committed",
			"commit tx1",
			"begin tx2 read_committed",
			"commit tx2",
			"begin tx3 read_committed",
			"commit tx3",
		}, txEvents(att.Events()))
	})

	t.Run("AfterLastRow", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		script(t, e)
		att := MockAttachment(e)
		conn := DefaultConn(e)

		rows, err := conn.QueryContext(ctx, query, nil)
		require.NoError(t, err)
		require.NoError(t, rows.Next(make([]driver.Value, 2)))
		u, err := rows.(*Rows).Updater()
		require.NoError(t, err)
		require.NoError(t, u.SetValue(1, "new"))
		require.ErrorIs(t, rows.Next(make([]driver.Value, 2)), io.EOF)

		err = u.UpdateRow(ctx)
		require.True(t, xerrors.IsUsage(err))
		require.ErrorContains(t, err, "not positioned on a row")
		for _, execution := range att.Executions() {
			require.NotContains(t, execution.Query, "UPDATE")
		}
		require.NoError(t, rows.Close())
	})

	t.Run("NotUpdatable", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		att := MockAttachment(e)
		other := fieldName
		other.Relation = "U"
		att.Script("SELECT A, NAME FROM T, U", mockResult{
			Fields: []wire.FieldDescriptor{fieldA, other},
			Rows:   []wire.Row{{encode(t, fieldA, int64(1)), []byte("x")}},
		})
		conn := DefaultConn(e)

		rows, err := conn.QueryContext(ctx, "SELECT A, NAME FROM T, U", nil)
		require.NoError(t, err)
		_, err = rows.(*Rows).Updater()
		require.True(t, xerrors.IsNotUpdatable(err))
		require.NoError(t, rows.Close())
	})
}

func TestConnClose(t *testing.T) {
	t.Run("AutoCommitCompletesOpenResult", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		att := MockAttachment(e)
		att.Script("SELECT A FROM T", mockRows(t, 1))
		connector := DefaultConnector(e)
		conn := DefaultConn(e)
		require.Equal(t, 1, connector.Conns())

		_, err := conn.QueryContext(ctx, "SELECT A FROM T", nil)
		require.NoError(t, err)
		require.NoError(t, conn.Close())

		require.Equal(t, []string{
			"close cursor stmt1",
			"commit tx1",
			"free stmt1",
			"close attachment",
		}, att.EventsWithPrefix("close", "commit", "rollback", "free"))
		require.Equal(t, 0, connector.Conns())
		require.Equal(t, tx.ModeDisabled, conn.Mode())

		require.NoError(t, conn.Close())
		require.ErrorIs(t, conn.Ping(ctx), driver.ErrBadConn)
		_, err = conn.ExecContext(ctx, "UPDATE T SET A = 1", nil)
		require.ErrorIs(t, err, driver.ErrBadConn)
	})

	t.Run("LocalRollsBack", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		att := MockAttachment(e)
		conn := DefaultConn(e)

		require.NoError(t, conn.SetAutoCommit(ctx, false))
		_, err := conn.ExecContext(ctx, "UPDATE T SET A = 1", nil)
		require.NoError(t, err)
		require.NoError(t, conn.Close())

		require.Equal(t, []string{"rollback tx1", "close attachment"},
			att.EventsWithPrefix("commit", "rollback", "close attachment"))
	})

	t.Run("JoinsFailures", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		att := MockAttachment(e)
		errRollback := errors.New("rollback failed")
		errClose := errors.New("close failed")
		conn := DefaultConn(e)

		require.NoError(t, conn.SetAutoCommit(ctx, false))
		_, err := conn.ExecContext(ctx, "UPDATE T SET A = 1", nil)
		require.NoError(t, err)
		att.Fail("rollback", errRollback)
		att.Fail("close", errClose)

		err = conn.Close()
		require.ErrorIs(t, err, errRollback)
		require.ErrorIs(t, err, errClose)
		require.True(t, att.Closed())
	})
}

func TestStatementCloseFailure(t *testing.T) {
	errFree := errors.New("free statement")

	t.Run("Exec", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		att := MockAttachment(e)
		conn := DefaultConn(e)

		att.Fail("close-statement", errFree)
		res, err := conn.ExecContext(ctx, "UPDATE T SET A = 1", nil)
		require.ErrorIs(t, err, errFree)
		require.Nil(t, res)
		require.Equal(t, []string{"free stmt1"}, att.EventsWithPrefix("free"))
	})

	t.Run("FailedQuery", func(t *testing.T) {
		e := fixenv.New(t)
		ctx := xtest.Context(t)
		att := MockAttachment(e)
		conn := DefaultConn(e)

		errExecute := errors.New("execute")
		att.Fail("execute", errExecute)
		att.Fail("close-statement", errFree)
		rows, err := conn.QueryContext(ctx, "SELECT A FROM T", nil)
		require.Nil(t, rows)
		require.ErrorIs(t, err, errExecute)
		require.ErrorIs(t, err, errFree)
	})
}

func TestBadConn(t *testing.T) {
	e := fixenv.New(t)
	ctx := xtest.Context(t)
	att := MockAttachment(e)
	conn := DefaultConn(e)

	require.NoError(t, conn.Ping(ctx))
	require.NoError(t, conn.ResetSession(ctx))

	errExecute := errors.New("connection reset")
	att.Fail("execute", errExecute)
	att.Invalidate()

	_, err := conn.ExecContext(ctx, "UPDATE T SET A = 1", nil)
	require.ErrorIs(t, err, errExecute)
	require.ErrorIs(t, err, driver.ErrBadConn)
	require.False(t, conn.IsValid())
	require.ErrorIs(t, conn.Ping(ctx), driver.ErrBadConn)
	require.ErrorIs(t, conn.ResetSession(ctx), driver.ErrBadConn)
}
