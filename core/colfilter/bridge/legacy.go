package bridge

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rowspace/colfilter/core/colfilter/bitvec"
	"github.com/rowspace/colfilter/core/colfilter/constraint"
	"github.com/rowspace/colfilter/core/colfilter/rowmap"
	"github.com/rowspace/colfilter/core/sqlitebackend"
	"github.com/rowspace/colfilter/internal/logging"
	"github.com/rowspace/colfilter/internal/table"
)

// LegacyFilter is the fallback filter used for columns Decide rejects. It
// mirrors the rows under consideration into an ephemeral SQLite table and
// delegates the comparison to SQL, which is what the pre-columnar pipeline
// did for every column. Keeping it real (rather than stubbed) lets callers
// check new-pipeline results for agreement against it.
type LegacyFilter struct {
	db *sql.DB
}

// NewLegacyFilter opens a private in-memory SQLite database for staging
// legacy filter queries.
func NewLegacyFilter() (*LegacyFilter, error) {
	db, err := sqlitebackend.Open("file::memory:?cache=private")
	if err != nil {
		return nil, fmt.Errorf("bridge: opening legacy filter database: %w", err)
	}
	return &LegacyFilter{db: db}, nil
}

// Close releases the legacy filter's database handle.
func (f *LegacyFilter) Close() error { return f.db.Close() }

// FilterInto narrows r in place to the rows of r that satisfy c against col,
// by staging col's values for the rows in r into a scratch table and
// querying it with SQL.
func (f *LegacyFilter) FilterInto(ctx context.Context, col *table.Column, c constraint.Constraint, r *rowmap.RowMap) error {
	if r.Empty() {
		return nil
	}

	tableName := "legacy_" + legacyTableSuffix()
	logging.DebugContext(ctx, "legacy_filter staging rows", "table", tableName, "rows", r.Size())

	sqlType, err := sqlColumnType(col.Type)
	if err != nil {
		return err
	}
	if _, err := f.db.ExecContext(ctx, fmt.Sprintf(`CREATE TEMP TABLE %s (row_id INTEGER PRIMARY KEY, value %s)`, tableName, sqlType)); err != nil {
		return fmt.Errorf("bridge: creating scratch table: %w", err)
	}
	defer f.db.ExecContext(context.Background(), fmt.Sprintf(`DROP TABLE IF EXISTS %s`, tableName))

	stmt, err := f.db.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s (row_id, value) VALUES (?, ?)`, tableName))
	if err != nil {
		return fmt.Errorf("bridge: preparing insert: %w", err)
	}
	defer stmt.Close()

	var ranks []int
	if col.NullMask != nil {
		ranks = buildRanks(col.NullMask)
	}

	insertErr := error(nil)
	r.IterateRows(func(row int) bool {
		v, null := rawValue(col, ranks, row)
		if null {
			_, insertErr = stmt.ExecContext(ctx, row, nil)
		} else {
			_, insertErr = stmt.ExecContext(ctx, row, v)
		}
		return insertErr == nil
	})
	if insertErr != nil {
		return fmt.Errorf("bridge: staging row: %w", insertErr)
	}

	clause, args, err := sqlWhereClause(c)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`SELECT row_id FROM %s WHERE %s ORDER BY row_id`, tableName, clause)
	rows, err := f.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("bridge: running legacy query: %w", err)
	}
	defer rows.Close()

	var valid []int
	for rows.Next() {
		var rowID int
		if err := rows.Scan(&rowID); err != nil {
			return fmt.Errorf("bridge: scanning legacy result: %w", err)
		}
		valid = append(valid, rowID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("bridge: reading legacy results: %w", err)
	}

	*r = *rowmap.NewFromSortedIndices(r.N(), valid)
	return nil
}

func legacyTableSuffix() string {
	id := uuid.New().String()
	out := make([]byte, 0, len(id))
	for _, c := range id {
		if c != '-' {
			out = append(out, byte(c))
		}
	}
	return string(out)
}

func sqlColumnType(t table.ColumnType) (string, error) {
	switch t {
	case table.ColumnTypeInt64, table.ColumnTypeUint64:
		return "INTEGER", nil
	case table.ColumnTypeFloat64:
		return "REAL", nil
	case table.ColumnTypeString:
		return "TEXT", nil
	default:
		return "", fmt.Errorf("bridge: no SQL type for column type %s", t)
	}
}

// rawValue returns the value of col at table row row, and whether it is
// null. ranks is the prefix-sum rank table for col.NullMask (nil if col has
// no null mask).
func rawValue(col *table.Column, ranks []int, row int) (any, bool) {
	if col.NullMask != nil && !col.NullMask.IsSet(row) {
		return nil, true
	}
	pos := row
	if ranks != nil {
		pos = ranks[row]
	}
	switch col.Type {
	case table.ColumnTypeInt64:
		return col.Int64Values[pos], false
	case table.ColumnTypeUint64:
		return col.Uint64Values[pos], false
	case table.ColumnTypeFloat64:
		return col.Float64Values[pos], false
	case table.ColumnTypeString:
		return col.StringValues[pos], false
	default:
		return nil, true
	}
}

// buildRanks returns, for each table row, the count of non-null rows
// strictly before it, matching how the columnar NullOverlay addresses
// packed storage.
func buildRanks(mask *bitvec.BitVector) []int {
	n := mask.Size()
	ranks := make([]int, n)
	count := 0
	for i := 0; i < n; i++ {
		ranks[i] = count
		if mask.IsSet(i) {
			count++
		}
	}
	return ranks
}

func sqlWhereClause(c constraint.Constraint) (string, []any, error) {
	switch c.Op {
	case constraint.OpIsNull:
		return "value IS NULL", nil, nil
	case constraint.OpIsNotNull:
		return "value IS NOT NULL", nil, nil
	}

	var op string
	switch c.Op {
	case constraint.OpEQ:
		op = "="
	case constraint.OpNE:
		op = "!="
	case constraint.OpLT:
		op = "<"
	case constraint.OpLE:
		op = "<="
	case constraint.OpGT:
		op = ">"
	case constraint.OpGE:
		op = ">="
	default:
		return "", nil, fmt.Errorf("bridge: unsupported operator %v", c.Op)
	}

	var v any
	switch c.Value.Kind {
	case constraint.KindInt64:
		v = c.Value.I
	case constraint.KindUint64:
		v = c.Value.U
	case constraint.KindFloat64:
		v = c.Value.F
	default:
		return "", nil, fmt.Errorf("bridge: value operator %v requires a non-null value", c.Op)
	}

	return "value " + op + " ?", []any{v}, nil
}
