package service

import (
	"context"
	"errors"

	"admingov/internal/gov/hierarchy"
	"admingov/internal/gov/model"
	"admingov/internal/gov/repository"
	"admingov/internal/gov/util"
)

// ReviewRequest performs the single terminal transition of a pending
// request. The reviewer must be a different actor than the requester and
// must outrank the target. The store-side conditional update arbitrates
// concurrent reviews: exactly one wins, the loser sees already-processed.
func (s *Service) ReviewRequest(ctx context.Context, callerID, requestID string, req model.ReviewRequestReq) (*model.Request, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, errors.Join(ErrValidation, err)
	}

	request, err := s.Repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrNotFound
	}
	if request.Status != model.StatusPending {
		// EXPIRED is terminal too, even though an external timer wrote it.
		return nil, ErrAlreadyProcessed
	}
	if callerID == request.RequestedBy {
		// A requester never reviews their own request, regardless of rank.
		return nil, errors.Join(ErrValidation, errors.New("self-approval is not allowed"))
	}

	reviewer, err := s.Repo.GetAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if reviewer == nil {
		return nil, ErrNotFound
	}
	if !hierarchy.CanActOnRole(reviewer.Role, request.TargetType) {
		return nil, ErrForbidden
	}

	if req.Decision == model.DecisionReject && model.IsOnboardingType(request.RequestType) {
		if !model.IsValidRejectionReason(req.RejectionReason) {
			return nil, errors.Join(ErrValidation, errors.New("a valid rejection_reason is required"))
		}
	}

	now := s.Clock.Now()
	var updated *model.Request
	if req.Decision == model.DecisionApprove {
		updated, err = s.approveWithRetry(ctx, callerID, requestID, req.ReviewNotes)
	} else {
		updated, err = s.Repo.RejectRequest(ctx, requestID, callerID, req.ReviewNotes, req.RejectionReason, now)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNoPendingRequest) {
			return nil, ErrAlreadyProcessed
		}
		return nil, err
	}

	// Approved role changes and overrides alter the target's effective set.
	if req.Decision == model.DecisionApprove {
		s.Resolver.Invalidate(updated.TargetID)
	}

	util.GetLogger().Info("audit: request reviewed",
		"request_id", requestID,
		"decision", req.Decision,
		"reviewed_by", callerID,
		"target_id", updated.TargetID,
	)
	kind := EventRequestRejected
	if req.Decision == model.DecisionApprove {
		kind = EventRequestApproved
	}
	s.emit(Event{Kind: kind, RequestID: requestID, AdminID: updated.TargetID, Actor: callerID, At: now})

	return updated, nil
}

// approveWithRetry retries the approval transaction once on a transient
// store failure. The retry is safe: the PENDING-conditional update cannot
// apply twice, and if the first attempt actually committed the retry simply
// observes the already-terminal row.
func (s *Service) approveWithRetry(ctx context.Context, callerID, requestID, reviewNotes string) (*model.Request, error) {
	updated, err := s.Repo.ApproveRequest(ctx, requestID, callerID, reviewNotes, s.Clock.Now())
	if err == nil || errors.Is(err, repository.ErrNoPendingRequest) {
		return updated, err
	}

	updated, retryErr := s.Repo.ApproveRequest(ctx, requestID, callerID, reviewNotes, s.Clock.Now())
	if retryErr == nil {
		return updated, nil
	}
	if errors.Is(retryErr, repository.ErrNoPendingRequest) {
		// The first attempt may have committed before its error surfaced.
		// If this reviewer's approval is on the record, report success.
		current, getErr := s.Repo.GetRequest(ctx, requestID)
		if getErr == nil && current != nil &&
			current.Status == model.StatusApproved && current.ReviewedBy == callerID {
			return current, nil
		}
		return nil, repository.ErrNoPendingRequest
	}
	return nil, retryErr
}
