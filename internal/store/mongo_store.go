package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"equipment-tracker-backend/internal/model"
)

// CollectionName is the MongoDB collection holding equipment documents.
const CollectionName = "equipment"

// equipmentDocument is the BSON shape of a record.
type equipmentDocument struct {
	ID              primitive.ObjectID `bson:"_id"`
	Name            string             `bson:"name"`
	Type            string             `bson:"type"`
	Status          string             `bson:"status"`
	LastCleanedDate time.Time          `bson:"lastCleanedDate"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func toDocument(e *model.Equipment, id primitive.ObjectID) equipmentDocument {
	return equipmentDocument{
		ID:              id,
		Name:            e.Name,
		Type:            string(e.Type),
		Status:          string(e.Status),
		LastCleanedDate: e.LastCleanedDate.Time,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (d equipmentDocument) toModel() model.Equipment {
	return model.Equipment{
		ID:              d.ID.Hex(),
		Name:            d.Name,
		Type:            model.EquipmentType(d.Type),
		Status:          model.EquipmentStatus(d.Status),
		LastCleanedDate: model.DateOf(d.LastCleanedDate),
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}
}

// mongoStore implements the Store interface on a MongoDB collection.
type mongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store backed by coll.
func NewMongoStore(coll *mongo.Collection) Store {
	return &mongoStore{coll: coll}
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed id %q", ErrNotFound, id)
	}
	return oid, nil
}

func (s *mongoStore) List(ctx context.Context) ([]model.Equipment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", translateMongoError(err))
	}

	var docs []equipmentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode equipment: %w", translateMongoError(err))
	}

	items := make([]model.Equipment, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toModel())
	}
	return items, nil
}

func (s *mongoStore) Get(ctx context.Context, id string) (*model.Equipment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc equipmentDocument
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to get equipment %s: %w", id, translateMongoError(err))
	}
	e := doc.toModel()
	return &e, nil
}

func (s *mongoStore) Insert(ctx context.Context, e *model.Equipment) error {
	oid := primitive.NewObjectID()
	if e.ID != "" {
		var err error
		if oid, err = primitive.ObjectIDFromHex(e.ID); err != nil {
			return fmt.Errorf("failed to insert equipment: malformed id %q", e.ID)
		}
	}

	if _, err := s.coll.InsertOne(ctx, toDocument(e, oid)); err != nil {
		return fmt.Errorf("failed to insert equipment: %w", translateMongoError(err))
	}
	e.ID = oid.Hex()
	return nil
}

func (s *mongoStore) Replace(ctx context.Context, e *model.Equipment) error {
	oid, err := objectID(e.ID)
	if err != nil {
		return err
	}

	res, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, toDocument(e, oid))
	if err != nil {
		return fmt.Errorf("failed to update equipment %s: %w", e.ID, translateMongoError(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("failed to update equipment %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

func (s *mongoStore) Delete(ctx context.Context, id string) (*model.Equipment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc equipmentDocument
	if err := s.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to delete equipment %s: %w", id, translateMongoError(err))
	}
	e := doc.toModel()
	return &e, nil
}

func (s *mongoStore) Ping(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping failed: %w", translateMongoError(err))
	}
	return nil
}
