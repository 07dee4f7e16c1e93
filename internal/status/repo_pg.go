package status

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, check Check) error {
	const query = `INSERT INTO status_checks (id, client_name, timestamp) VALUES ($1, $2, $3)`
	_, err := r.DB.ExecContext(ctx, query, check.ID, check.ClientName, check.Timestamp)
	return err
}

func (r *PGRepo) List(ctx context.Context, limit int) ([]Check, error) {
	const query = `
SELECT id, client_name, timestamp
FROM status_checks
ORDER BY timestamp ASC
LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Check{}
	for rows.Next() {
		var c Check
		if err := rows.Scan(&c.ID, &c.ClientName, &c.Timestamp); err != nil {
			return nil, err
		}
		c.Timestamp = c.Timestamp.UTC()
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
