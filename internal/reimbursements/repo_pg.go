package reimbursements

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const pgTable = "reimbursement_records"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

var (
	pgColumnList   = strings.Join(Columns, ", ")
	pgInsertQuery  = buildInsertQuery()
	pgSelectByID   = "SELECT " + pgColumnList + " FROM " + pgTable + " WHERE id = $1"
	pgListQuery    = "SELECT " + pgColumnList + " FROM " + pgTable + " ORDER BY created_at ASC, id ASC LIMIT $1 OFFSET $2"
	pgDeleteAllSQL = "DELETE FROM " + pgTable
)

func buildInsertQuery() string {
	placeholders := make([]string, len(Columns))
	for i := range Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return "INSERT INTO " + pgTable + " (" + pgColumnList + ") VALUES (" + strings.Join(placeholders, ", ") + ")"
}

// Create inserts a new record.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	values := rec.ColumnValues()
	args := make([]any, len(Columns))
	for i, name := range Columns {
		args[i] = values[name]
	}
	_, err := r.DB.ExecContext(ctx, pgInsertQuery, args...)
	return err
}

// Update sets the patch columns and updated_at in a single statement.
func (r *PGRepo) Update(ctx context.Context, id string, patch Patch, updatedAt time.Time) (Record, error) {
	cols := patch.Columns()
	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+2)
	for i, name := range cols {
		v, _ := patch.Value(name)
		sets = append(sets, fmt.Sprintf("%s = $%d", name, i+1))
		args = append(args, v)
	}
	sets = append(sets, fmt.Sprintf("%s = $%d", ColumnUpdatedAt, len(cols)+1))
	args = append(args, updatedAt, id)

	query := "UPDATE " + pgTable + " SET " + strings.Join(sets, ", ") +
		fmt.Sprintf(" WHERE id = $%d", len(cols)+2) +
		" RETURNING " + pgColumnList

	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// GetByID fetches a record by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Record, error) {
	rec, err := scanRecord(r.DB.QueryRowContext(ctx, pgSelectByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// List returns records ordered by creation time.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Record, error) {
	rows, err := r.DB.QueryContext(ctx, pgListQuery, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAll removes every record.
func (r *PGRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, pgDeleteAllSQL)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	dest := make([]any, len(Columns))
	for i, name := range Columns {
		dest[i] = scanTarget(name)
	}
	if err := row.Scan(dest...); err != nil {
		return Record{}, err
	}
	cols := make(map[string]any, len(Columns))
	for i, name := range Columns {
		cols[name] = scannedValue(dest[i])
	}
	return RecordFromColumns(cols)
}

func scanTarget(name string) any {
	switch name {
	case ColumnID:
		return new(string)
	case ColumnCreatedAt, ColumnUpdatedAt:
		return new(time.Time)
	case ColumnSNo:
		return new(sql.NullInt64)
	case ColumnDocument:
		return new(sql.NullString)
	}
	switch fieldColumns[name].field.kind() {
	case kindCount:
		return new(sql.NullInt64)
	case kindAmount:
		return new(sql.NullFloat64)
	default:
		return new(sql.NullString)
	}
}

func scannedValue(dest any) any {
	switch v := dest.(type) {
	case *string:
		return *v
	case *time.Time:
		return *v
	case *sql.NullString:
		if v.Valid {
			return v.String
		}
	case *sql.NullInt64:
		if v.Valid {
			return v.Int64
		}
	case *sql.NullFloat64:
		if v.Valid {
			return v.Float64
		}
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
