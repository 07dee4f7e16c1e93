package reimbursements

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollection is the collection records are stored in.
const MongoCollection = "reimbursement_records"

// MongoRepo implements Repo on a MongoDB collection. Documents use the flat
// column names; the driver's _id is never exposed.
type MongoRepo struct {
	Coll *mongo.Collection
}

// NewMongoRepo returns a repo over db's reimbursement collection.
func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{Coll: db.Collection(MongoCollection)}
}

var hideMongoID = bson.M{"_id": 0}

// EnsureIndexes creates the unique id index and the listing index.
func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.Coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: ColumnID, Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: ColumnCreatedAt, Value: 1}}},
	})
	return err
}

func (r *MongoRepo) Create(ctx context.Context, rec Record) error {
	doc := bson.M{}
	for name, v := range rec.ColumnValues() {
		doc[name] = v
	}
	_, err := r.Coll.InsertOne(ctx, doc)
	return err
}

// Update applies the patch with a single $set and returns the document after it.
func (r *MongoRepo) Update(ctx context.Context, id string, patch Patch, updatedAt time.Time) (Record, error) {
	set := bson.M{ColumnUpdatedAt: updatedAt}
	for _, name := range patch.Columns() {
		v, _ := patch.Value(name)
		set[name] = v
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(hideMongoID)

	var doc bson.M
	err := r.Coll.FindOneAndUpdate(ctx, bson.M{ColumnID: id}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return recordFromDocument(doc)
}

func (r *MongoRepo) GetByID(ctx context.Context, id string) (Record, error) {
	var doc bson.M
	err := r.Coll.FindOne(ctx, bson.M{ColumnID: id}, options.FindOne().SetProjection(hideMongoID)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return recordFromDocument(doc)
}

func (r *MongoRepo) List(ctx context.Context, limit, offset int) ([]Record, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: ColumnCreatedAt, Value: 1}, {Key: ColumnID, Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetProjection(hideMongoID)

	cur, err := r.Coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Record{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		rec, err := recordFromDocument(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.Coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// recordFromDocument converts BSON datetimes before rebuilding the record.
func recordFromDocument(doc bson.M) (Record, error) {
	cols := make(map[string]any, len(doc))
	for k, v := range doc {
		if dt, ok := v.(primitive.DateTime); ok {
			cols[k] = dt.Time().UTC()
			continue
		}
		cols[k] = v
	}
	return RecordFromColumns(cols)
}

var _ Repo = (*MongoRepo)(nil)
