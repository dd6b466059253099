package repository

import (
	"context"

	"admingov/internal/gov/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	Admins    *mongo.Collection
	Overrides *mongo.Collection
	Requests  *mongo.Collection
	Client    *mongo.Client // for transactions
}

func NewMongoRepository(db *mongo.Database, adminsCollection, overridesCollection, requestsCollection string) *MongoRepository {
	return &MongoRepository{
		Admins:    db.Collection(adminsCollection),
		Overrides: db.Collection(overridesCollection),
		Requests:  db.Collection(requestsCollection),
		Client:    db.Client(),
	}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	// 1. Pending uniqueness: at most one PENDING request per
	// (target_id, request_type). This index is the create-side arbiter for
	// concurrent requests against the same target.
	idxPendingUnique := mongo.IndexModel{
		Keys: bson.D{
			{Key: "target_id", Value: 1},
			{Key: "request_type", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_pending_per_target_type").
			SetPartialFilterExpression(bson.M{
				"status": model.StatusPending,
			}),
	}

	// 2. Listing lookups
	idxTargetStatus := mongo.IndexModel{
		Keys: bson.D{
			{Key: "target_id", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("target_status"),
	}
	idxRequesterStatus := mongo.IndexModel{
		Keys: bson.D{
			{Key: "requested_by", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("requester_status"),
	}

	_, err := r.Requests.Indexes().CreateMany(ctx, []mongo.IndexModel{
		idxPendingUnique, idxTargetStatus, idxRequesterStatus,
	})
	if err != nil {
		return err
	}

	// 3. One live override document per (admin_id, permission, kind).
	idxOverrideUnique := mongo.IndexModel{
		Keys: bson.D{
			{Key: "admin_id", Value: 1},
			{Key: "permission", Value: 1},
			{Key: "kind", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_live_override").
			SetPartialFilterExpression(bson.M{
				"deleted_at": nil,
			}),
	}
	idxOverrideAdmin := mongo.IndexModel{
		Keys: bson.D{
			{Key: "admin_id", Value: 1},
			{Key: "kind", Value: 1},
		},
		Options: options.Index().SetName("override_admin_kind"),
	}

	_, err = r.Overrides.Indexes().CreateMany(ctx, []mongo.IndexModel{
		idxOverrideUnique, idxOverrideAdmin,
	})
	return err
}
