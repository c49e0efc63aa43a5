package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessSubmitRequest  = "request submitted successfully"
	MessageSuccessGetRequests    = "requests retrieved successfully"
	MessageSuccessApproveRequest = "request approved successfully"
	MessageSuccessRejectRequest  = "request rejected successfully"
	MessageSuccessConfirmReceipt = "receipt confirmed successfully"

	MessageFailedSubmitRequest  = "failed to submit request"
	MessageFailedGetRequests    = "failed to retrieve requests"
	MessageFailedApproveRequest = "failed to approve request"
	MessageFailedRejectRequest  = "failed to reject request"
	MessageFailedConfirmReceipt = "failed to confirm receipt"

	ErrRequestNotFound           = errors.New("request not found")
	ErrUnauthorizedRequestAccess = errors.New("unauthorized access to request")
	ErrDonationNotAvailable      = errors.New("donation is not available")
	ErrOwnRequest                = errors.New("cannot request your own donation")
	ErrDuplicateRequest          = errors.New("you already have a pending request for this donation")
	ErrRequestNotPending         = errors.New("request is no longer pending")
	ErrRequestNotApproved        = errors.New("request is not approved")
	ErrDonationReserved          = errors.New("another request has already been approved for this donation")
)

type (
	SubmitRequestRequest struct {
		DonationID string `json:"donation_id" validate:"required,uuid"`
		Message    string `json:"message" validate:"omitempty,max=500"`
	}

	DonationRequest struct {
		ID            string    `json:"id"`
		DonationID    string    `json:"donation_id"`
		DonationTitle string    `json:"donation_title,omitempty"`
		RequesterID   string    `json:"requester_id"`
		RequesterName string    `json:"requester_name,omitempty"`
		Message       string    `json:"message,omitempty"`
		Status        string    `json:"status"`
		CreatedAt     time.Time `json:"created_at"`
	}
)
