package fbsql

import (
	"database/sql"
	"fmt"

	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xsql"
)

// Unwrap returns the connector behind db.
func Unwrap(db *sql.DB) (*xsql.Connector, error) {
	c, ok := db.Driver().(*xsql.Connector)
	if !ok {
		return nil, xerrors.WithStackTrace(xerrors.Usage(
			fmt.Errorf("%T is not a connector of %s", db.Driver(), DriverName),
		))
	}

	return c, nil
}
