package xsql

import (
	"database/sql/driver"
	"errors"
)

var (
	errDeprecated          = driver.ErrSkip
	errAlreadyClosed       = errors.New("connector already closed")
	errStmtClosed          = errors.New("statement is closed")
	errRowsClosed          = errors.New("result set is closed")
	errResultInterrupted   = errors.New("result set was closed by completion of its transaction")
	errTxInProgress        = errors.New("connection has an open explicit transaction")
	errTxDone              = errors.New("transaction already completed")
	errManaged             = errors.New("connection is enlisted in a managed transaction")
	errNotCallable         = errors.New("statement is not a procedure call")
	errNoOutput            = errors.New("procedure call has not returned output parameters")
	errLastInsertIDMissing = errors.New("last insert id is not supported")
)
