package reimbursements

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func recordRows(recs ...Record) *sqlmock.Rows {
	rows := sqlmock.NewRows(Columns)
	for _, rec := range recs {
		values := rec.ColumnValues()
		row := make([]driver.Value, len(Columns))
		for i, name := range Columns {
			v := values[name]
			if n, ok := v.(int); ok {
				v = int64(n)
			}
			row[i] = v
		}
		rows.AddRow(row...)
	}
	return rows
}

func TestPGRepoCreateWritesEveryColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	rec := Record{
		ID:        "rec-1",
		Submitted: Fields{Basic: BasicInfo{Name: Ptr("Asha")}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	args := make([]driver.Value, len(Columns))
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	args[0] = "rec-1"

	mock.ExpectExec("INSERT INTO reimbursement_records").
		WithArgs(args...).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateSetsOnlyPresentColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	patch := NewPatch()
	if err := patch.Set("observer_claim_user", 1500.5); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := patch.Set("name_user", "Asha"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	stored := Record{
		ID:        "rec-1",
		Reference: Fields{Basic: BasicInfo{NumExamCentres: Ptr(5)}},
		Submitted: Fields{
			Basic:  BasicInfo{Name: Ptr("Asha")},
			Claims: ClaimAmounts{ObserverClaim: Ptr(1500.5)},
		},
		CreatedAt: created,
		UpdatedAt: updated,
	}

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE reimbursement_records SET name_user = $1, observer_claim_user = $2, updated_at = $3 WHERE id = $4 RETURNING id, sno, ",
	)).
		WithArgs("Asha", 1500.5, sqlmock.AnyArg(), "rec-1").
		WillReturnRows(recordRows(stored))

	got, err := repo.Update(context.Background(), "rec-1", patch, updated)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Reference.Basic.NumExamCentres == nil || *got.Reference.Basic.NumExamCentres != 5 {
		t.Fatalf("num_exam_centres_excel not scanned")
	}
	if got.Submitted.Claims.ObserverClaim == nil || *got.Submitted.Claims.ObserverClaim != 1500.5 {
		t.Fatalf("observer_claim_user not scanned")
	}
	if got.Submitted.Basic.Email != nil {
		t.Fatalf("expected email_user unset")
	}
	if !got.UpdatedAt.Equal(updated) {
		t.Fatalf("updated_at = %v, want %v", got.UpdatedAt, updated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	patch := NewPatch()
	_ = patch.Set("name_user", "x")

	mock.ExpectQuery("UPDATE reimbursement_records SET").
		WillReturnRows(sqlmock.NewRows(Columns))

	if _, err := repo.Update(context.Background(), "missing", patch, time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM reimbursement_records WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(Columns))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListAndDeleteAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	first := Record{ID: "a", SNo: Ptr(1), CreatedAt: t0, UpdatedAt: t0}
	second := Record{ID: "b", SNo: Ptr(2), CreatedAt: t0.Add(time.Second), UpdatedAt: t0.Add(time.Second)}

	mock.ExpectQuery("SELECT (.+) FROM reimbursement_records ORDER BY created_at ASC").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(recordRows(first, second))
	mock.ExpectExec("DELETE FROM reimbursement_records").
		WillReturnResult(sqlmock.NewResult(0, 2))

	recs, err := repo.List(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != "a" || recs[1].ID != "b" {
		t.Fatalf("unexpected records %+v", recs)
	}
	if recs[1].SNo == nil || *recs[1].SNo != 2 {
		t.Fatalf("sno not scanned")
	}

	n, err := repo.DeleteAll(context.Background())
	if err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 deleted, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
