// Package fbsql is the transaction-scoped execution core of a database/sql
// driver for Firebird.
/*
A connection runs under one of four transaction policies: auto-commit (every
statement in its own transaction, committed when the statement completes),
local (explicit commit and rollback), managed (an external transaction
manager owns the transaction) and disabled (no work allowed). Results may be
updated row by row through a RowUpdater, and large objects are streamed in
segments through Blob.

The wire protocol is not part of this package: a Dialer supplies attached
Attachment handles and the driver builds everything else on top of them.
*/
package fbsql
