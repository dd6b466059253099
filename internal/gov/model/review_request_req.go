package model

import "strings"

// ReviewRequestReq is the input for the terminal transition of a pending
// request. RejectionReason is required only when rejecting a client
// onboarding request.
type ReviewRequestReq struct {
	Decision        string `json:"decision" validate:"required,oneof=APPROVE REJECT"`
	ReviewNotes     string `json:"review_notes" validate:"omitempty,max=500"`
	RejectionReason string `json:"rejection_reason" validate:"omitempty,max=64"`
}

func (r *ReviewRequestReq) Validate() error {
	r.Decision = strings.ToUpper(strings.TrimSpace(r.Decision))
	r.RejectionReason = strings.ToLower(strings.TrimSpace(r.RejectionReason))

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}
