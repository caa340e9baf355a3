package trace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetailsString(t *testing.T) {
	for _, tt := range []struct {
		details Details
		exp     string
	}{
		{details: TxEvents, exp: "fbsql.tx"},
		{details: BlobSegmentEvents, exp: "fbsql.blob.segment"},
		{details: TransactionEvents, exp: "fbsql.tx|fbsql.tx.coordinator"},
		{details: StmtEvents | BlobEvents, exp: "fbsql.blob|fbsql.stmt"},
		{details: 0, exp: ""},
	} {
		t.Run(tt.exp, func(t *testing.T) {
			require.Equal(t, tt.exp, tt.details.String())
		})
	}
}

func TestMatchDetails(t *testing.T) {
	for _, tt := range []struct {
		pattern string
		opts    []matchDetailsOption
		details Details
	}{
		{
			pattern: `^fbsql\.tx`,
			details: TxEvents | CoordinatorEvents,
		},
		{
			pattern: `^fbsql\.blob$`,
			details: BlobEvents,
		},
		{
			pattern: `^fbsql\.stmt\.rows.*$`,
			details: RowsEvents | RowUpdaterEvents,
		},
		{
			pattern: `^unknown$`,
			details: DetailsAll,
		},
		{
			pattern: `^unknown$`,
			opts:    []matchDetailsOption{WithDefaultDetails(ConnEvents)},
			details: ConnEvents,
		},
		{
			pattern: `[`,
			opts:    []matchDetailsOption{WithDefaultDetails(StmtEvents)},
			details: StmtEvents,
		},
		{
			pattern: `^fbsql\.conn.*`,
			opts:    []matchDetailsOption{WithPOSIXMatch()},
			details: ConnEvents | ConnectorEvents,
		},
	} {
		t.Run(tt.pattern, func(t *testing.T) {
			require.Equal(t, tt.details.String(), MatchDetails(tt.pattern, tt.opts...).String())
		})
	}
}
