package repository

import (
	"context"
	"time"

	"admingov/internal/gov/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoRepository) FindOverrides(ctx context.Context, adminID, kind string) ([]*model.Override, error) {
	// Expired documents are returned as-is: expiry is a read-time filter in
	// the resolver, and an external sweep reaps them later.
	filter := bson.M{
		"admin_id":   adminID,
		"kind":       kind,
		"deleted_at": nil,
	}
	cursor, err := r.Overrides.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var overrides []*model.Override
	if err = cursor.All(ctx, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *MongoRepository) GetOverride(ctx context.Context, id string) (*model.Override, error) {
	var o model.Override
	err := r.Overrides.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *MongoRepository) UpsertOverride(ctx context.Context, o *model.Override) (*model.Override, error) {
	filter := bson.M{
		"admin_id":   o.AdminID,
		"permission": o.Permission,
		"kind":       o.Kind,
		"deleted_at": nil,
	}

	update := bson.M{
		"$set": bson.M{
			"reason":     o.Reason,
			"notes":      o.Notes,
			"expires_at": o.ExpiresAt,
			"updated_at": o.UpdatedAt,
			"updated_by": o.UpdatedBy,
		},
		"$setOnInsert": bson.M{
			"_id":        o.ID,
			"admin_id":   o.AdminID,
			"permission": o.Permission,
			"kind":       o.Kind,
			"created_at": o.CreatedAt,
			"created_by": o.CreatedBy,
			"deleted_at": nil,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored model.Override
	if err := r.Overrides.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &stored, nil
}

func (r *MongoRepository) SoftDeleteOverride(ctx context.Context, id, deletedBy string, now time.Time) error {
	filter := bson.M{"_id": id, "deleted_at": nil}
	update := bson.M{
		"$set": bson.M{
			"deleted_at": now,
			"deleted_by": deletedBy,
			"updated_at": now,
		},
	}
	res, err := r.Overrides.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
