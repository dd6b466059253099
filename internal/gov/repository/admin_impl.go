package repository

import (
	"context"
	"time"

	"admingov/internal/gov/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoRepository) GetAdmin(ctx context.Context, id string) (*model.Admin, error) {
	var admin model.Admin
	err := r.Admins.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// setAdminFields is the approve-side mutation helper. It runs inside the
// approval transaction's session context and fails if the target is gone so
// the surrounding transaction aborts instead of approving against nothing.
func (r *MongoRepository) setAdminFields(ctx context.Context, adminID string, fields bson.M, now time.Time) error {
	fields["updated_at"] = now
	res, err := r.Admins.UpdateOne(ctx, bson.M{"_id": adminID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
