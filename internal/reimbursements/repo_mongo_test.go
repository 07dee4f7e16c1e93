package reimbursements

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const mongoNS = "nta.reimbursement_records"

func recordDoc(id string, at time.Time, extra ...bson.E) bson.D {
	doc := bson.D{
		{Key: "id", Value: id},
		{Key: "created_at", Value: primitive.NewDateTimeFromTime(at)},
		{Key: "updated_at", Value: primitive.NewDateTimeFromTime(at)},
	}
	return append(doc, extra...)
}

func TestMongoRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	at := time.Date(2025, 4, 2, 10, 30, 0, 0, time.UTC)

	mt.Run("create", func(mt *mtest.T) {
		repo := &MongoRepo{Coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		rec := Record{ID: "rec-1", CreatedAt: at, UpdatedAt: at}
		if err := repo.Create(context.Background(), rec); err != nil {
			mt.Fatalf("Create: %v", err)
		}
	})

	mt.Run("get by id decodes columns", func(mt *mtest.T) {
		repo := &MongoRepo{Coll: mt.Coll}
		doc := recordDoc("rec-1", at,
			bson.E{Key: "sno", Value: int32(3)},
			bson.E{Key: "name_excel", Value: "Suresh Patel"},
			bson.E{Key: "num_observers_user", Value: int32(2)},
			bson.E{Key: "observer_claim_user", Value: 1200.0},
			bson.E{Key: "email_user", Value: nil},
		)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mongoNS, mtest.FirstBatch, doc))

		rec, err := repo.GetByID(context.Background(), "rec-1")
		if err != nil {
			mt.Fatalf("GetByID: %v", err)
		}
		if rec.ID != "rec-1" || rec.SNo == nil || *rec.SNo != 3 {
			mt.Fatalf("unexpected record %+v", rec)
		}
		if rec.Reference.Basic.Name == nil || *rec.Reference.Basic.Name != "Suresh Patel" {
			mt.Fatalf("name_excel not decoded")
		}
		if rec.Submitted.Claims.NumObservers == nil || *rec.Submitted.Claims.NumObservers != 2 {
			mt.Fatalf("num_observers_user not decoded")
		}
		if rec.Submitted.Basic.Email != nil {
			mt.Fatalf("expected email_user unset")
		}
		if !rec.CreatedAt.Equal(at) {
			mt.Fatalf("created_at = %v, want %v", rec.CreatedAt, at)
		}
	})

	mt.Run("get by id missing", func(mt *mtest.T) {
		repo := &MongoRepo{Coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mongoNS, mtest.FirstBatch))

		if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("update returns document after", func(mt *mtest.T) {
		repo := &MongoRepo{Coll: mt.Coll}
		later := at.Add(time.Minute)
		doc := bson.D{
			{Key: "id", Value: "rec-1"},
			{Key: "observer_claim_user", Value: 3500.0},
			{Key: "created_at", Value: primitive.NewDateTimeFromTime(at)},
			{Key: "updated_at", Value: primitive.NewDateTimeFromTime(later)},
		}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: doc}))

		patch := NewPatch()
		_ = patch.Set("observer_claim_user", 3500.0)
		rec, err := repo.Update(context.Background(), "rec-1", patch, later)
		if err != nil {
			mt.Fatalf("Update: %v", err)
		}
		if rec.Submitted.Claims.ObserverClaim == nil || *rec.Submitted.Claims.ObserverClaim != 3500 {
			mt.Fatalf("observer_claim_user not returned")
		}
		if !rec.UpdatedAt.Equal(later) {
			mt.Fatalf("updated_at = %v, want %v", rec.UpdatedAt, later)
		}
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := &MongoRepo{Coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		patch := NewPatch()
		_ = patch.Set("name_user", "x")
		if _, err := repo.Update(context.Background(), "missing", patch, at); !errors.Is(err, ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := &MongoRepo{Coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mongoNS, mtest.FirstBatch,
			recordDoc("a", at),
			recordDoc("b", at.Add(time.Second)),
		))

		recs, err := repo.List(context.Background(), 100, 0)
		if err != nil {
			mt.Fatalf("List: %v", err)
		}
		if len(recs) != 2 || recs[0].ID != "a" || recs[1].ID != "b" {
			mt.Fatalf("unexpected records %+v", recs)
		}
	})

	mt.Run("delete all", func(mt *mtest.T) {
		repo := &MongoRepo{Coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(4)}))

		n, err := repo.DeleteAll(context.Background())
		if err != nil {
			mt.Fatalf("DeleteAll: %v", err)
		}
		if n != 4 {
			mt.Fatalf("expected 4 deleted, got %d", n)
		}
	})
}
