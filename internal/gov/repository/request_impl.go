package repository

import (
	"context"
	"errors"
	"time"

	"admingov/internal/gov/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoRepository) CreateRequest(ctx context.Context, req *model.Request) error {
	_, err := r.Requests.InsertOne(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Partial unique index: another PENDING request of this type
			// already exists for the target.
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MongoRepository) GetRequest(ctx context.Context, id string) (*model.Request, error) {
	var req model.Request
	err := r.Requests.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *MongoRepository) FindRequests(ctx context.Context, filter model.RequestFilter) ([]*model.Request, error) {
	query := bson.M{}
	if filter.TargetID != "" {
		query["target_id"] = filter.TargetID
	}
	if filter.RequestedBy != "" {
		query["requested_by"] = filter.RequestedBy
	}
	if filter.RequestType != "" {
		query["request_type"] = filter.RequestType
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.Requests.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []*model.Request
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// transitionPending flips a PENDING request to a terminal status and stamps
// the review fields. The status filter makes concurrent reviewers race on the
// store: the loser matches nothing and gets ErrNoPendingRequest.
func (r *MongoRepository) transitionPending(ctx context.Context, requestID, status, reviewedBy, reviewNotes string, extra bson.M, now time.Time) (*model.Request, error) {
	filter := bson.M{"_id": requestID, "status": model.StatusPending}

	set := bson.M{
		"status":       status,
		"reviewed_by":  reviewedBy,
		"reviewed_at":  now,
		"review_notes": reviewNotes,
		"updated_at":   now,
	}
	for k, v := range extra {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var req model.Request
	err := r.Requests.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoPendingRequest
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *MongoRepository) RejectRequest(ctx context.Context, requestID, reviewedBy, reviewNotes, rejectionReason string, now time.Time) (*model.Request, error) {
	extra := bson.M{}
	if rejectionReason != "" {
		extra["rejection_reason"] = rejectionReason
	}
	return r.transitionPending(ctx, requestID, model.StatusRejected, reviewedBy, reviewNotes, extra, now)
}

func (r *MongoRepository) ApproveRequest(ctx context.Context, requestID, reviewedBy, reviewNotes string, now time.Time) (*model.Request, error) {
	session, err := r.Client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	callback := func(sessCtx mongo.SessionContext) (interface{}, error) {
		req, err := r.transitionPending(sessCtx, requestID, model.StatusApproved, reviewedBy, reviewNotes, nil, now)
		if err != nil {
			return nil, err
		}
		if err := r.applyApproved(sessCtx, req, reviewedBy, now); err != nil {
			return nil, err
		}
		return req, nil
	}

	result, err := session.WithTransaction(ctx, callback)
	if err != nil {
		return nil, err
	}
	return result.(*model.Request), nil
}

// applyApproved performs the target-entity mutation for an approved request.
// It runs inside the approval transaction: any failure aborts the status
// flip, so a request is never APPROVED with the target left unchanged.
func (r *MongoRepository) applyApproved(ctx context.Context, req *model.Request, reviewedBy string, now time.Time) error {
	switch req.RequestType {
	case model.RequestTypeActivation:
		return r.setAdminFields(ctx, req.TargetID, bson.M{"is_active": true}, now)

	case model.RequestTypeDeactivation:
		return r.setAdminFields(ctx, req.TargetID, bson.M{"is_active": false}, now)

	case model.RequestTypeRoleChange:
		return r.setAdminFields(ctx, req.TargetID, bson.M{"role": req.RequestedRole}, now)

	case model.RequestTypePermissionGrant:
		stored, err := r.UpsertOverride(ctx, &model.Override{
			ID:         "ovr_" + uuid.NewString(),
			AdminID:    req.TargetID,
			Kind:       model.OverrideKindAllow,
			Permission: req.Permission,
			Reason:     req.Reason,
			Notes:      req.Notes,
			ExpiresAt:  req.ExpiresAt,
			CreatedAt:  now,
			UpdatedAt:  now,
			CreatedBy:  req.RequestedBy,
			UpdatedBy:  reviewedBy,
		})
		if err != nil {
			return err
		}
		// Back-reference the materialized override on the request record.
		req.OverrideID = stored.ID
		_, err = r.Requests.UpdateOne(ctx,
			bson.M{"_id": req.ID},
			bson.M{"$set": bson.M{"override_id": stored.ID}},
		)
		return err

	case model.RequestTypePermissionRevoke:
		err := r.SoftDeleteOverride(ctx, req.OverrideID, reviewedBy, now)
		if err == mongo.ErrNoDocuments {
			// Override already gone (expired and swept, or revoked out of
			// band); the desired end state holds.
			return nil
		}
		return err

	case model.RequestTypeClientOnboardingSelf, model.RequestTypeClientOnboardingAdmin:
		entityType := req.ClientEntityType
		if entityType == "" {
			entityType = model.EntityTypeClient
		}
		return r.setAdminFields(ctx, req.TargetID, bson.M{"entity_type": entityType}, now)
	}

	return errors.New("unknown request type: " + req.RequestType)
}
