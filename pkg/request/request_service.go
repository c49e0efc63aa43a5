package request

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"givehub/domain"
	"givehub/entities"
	"givehub/pkg/donation"
	"givehub/pkg/notification"
)

type (
	RequestService interface {
		SubmitRequest(ctx context.Context, req domain.SubmitRequestRequest, requesterID string) (*domain.DonationRequest, error)
		GetDonationRequests(ctx context.Context, donationID string, userID string) ([]*domain.DonationRequest, error)
		GetUserRequests(ctx context.Context, requesterID string, page, limit int) ([]*domain.DonationRequest, int64, error)
		ApproveRequest(ctx context.Context, requestID string, userID string) error
		RejectRequest(ctx context.Context, requestID string, userID string) error
		ConfirmReceipt(ctx context.Context, requestID string, userID string) error
	}

	requestService struct {
		requestRepository   RequestRepository
		donationRepository  donation.DonationRepository
		notificationService notification.NotificationService
	}
)

func NewRequestService(
	requestRepository RequestRepository,
	donationRepository donation.DonationRepository,
	notificationService notification.NotificationService,
) RequestService {
	return &requestService{
		requestRepository:   requestRepository,
		donationRepository:  donationRepository,
		notificationService: notificationService,
	}
}

func (s *requestService) SubmitRequest(ctx context.Context, req domain.SubmitRequestRequest, requesterID string) (*domain.DonationRequest, error) {
	target, err := s.donationRepository.GetDonationByID(ctx, req.DonationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	if target.UserID.String() == requesterID {
		return nil, domain.ErrOwnRequest
	}
	// Requests may still queue up while another request is approved; the
	// donor closes them out. Only a completed donation stops accepting them.
	if target.Status == entities.DonationStatusCompleted {
		return nil, domain.ErrDonationNotAvailable
	}

	exists, err := s.requestRepository.HasPendingRequest(ctx, req.DonationID, requesterID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateRequest
	}

	requesterUUID, err := uuid.Parse(requesterID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	request := &entities.DonationRequest{
		ID:          uuid.New(),
		DonationID:  target.ID,
		RequesterID: requesterUUID,
		Message:     req.Message,
		Status:      entities.RequestStatusPending,
	}

	if err := s.requestRepository.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	event := notification.Event{
		UserID:     target.UserID,
		Type:       entities.NotificationTypeRequestReceived,
		Title:      "New request for your donation",
		Body:       fmt.Sprintf("Someone requested %q.", target.Title),
		DonationID: &target.ID,
		RequestID:  &request.ID,
	}
	if target.User != nil {
		event.Email = target.User.Email
	}
	s.notificationService.Dispatch(event)

	return toDomainRequest(request, target, nil), nil
}

func (s *requestService) GetDonationRequests(ctx context.Context, donationID string, userID string) ([]*domain.DonationRequest, error) {
	target, err := s.donationRepository.GetDonationByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	// Only the donor may see who asked for their item.
	if target.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedDonationAccess
	}

	requests, err := s.requestRepository.GetRequestsByDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.DonationRequest, 0, len(requests))
	for _, request := range requests {
		result = append(result, toDomainRequest(request, target, request.Requester))
	}
	return result, nil
}

func (s *requestService) GetUserRequests(ctx context.Context, requesterID string, page, limit int) ([]*domain.DonationRequest, int64, error) {
	requests, count, err := s.requestRepository.GetUserRequests(ctx, requesterID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.DonationRequest, 0, len(requests))
	for _, request := range requests {
		result = append(result, toDomainRequest(request, request.Donation, nil))
	}
	return result, count, nil
}

// ApproveRequest commits the donation to a single requester. Sibling pending
// requests are left pending on purpose: the donor closes them out explicitly,
// they are not auto-rejected.
func (s *requestService) ApproveRequest(ctx context.Context, requestID string, userID string) error {
	request, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return err
	}

	if request.Donation == nil || request.Donation.UserID.String() != userID {
		return domain.ErrUnauthorizedDonationAccess
	}
	if request.Status != entities.RequestStatusPending {
		return domain.ErrRequestNotPending
	}

	// The repository re-checks the sibling count inside the transaction;
	// this early check only produces a friendlier error on the common path.
	active, err := s.requestRepository.CountActiveRequests(ctx, request.DonationID.String())
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.ErrDonationReserved
	}

	if err := s.requestRepository.ApproveRequest(ctx, requestID, request.DonationID.String()); err != nil {
		return err
	}

	event := notification.Event{
		UserID:     request.RequesterID,
		Type:       entities.NotificationTypeRequestApproved,
		Title:      "Your request was approved",
		Body:       fmt.Sprintf("The donor approved your request for %q. Arrange the handover and confirm receipt once you have the item.", request.Donation.Title),
		DonationID: &request.DonationID,
		RequestID:  &request.ID,
	}
	if request.Requester != nil {
		event.Email = request.Requester.Email
	}
	s.notificationService.Dispatch(event)

	return nil
}

func (s *requestService) RejectRequest(ctx context.Context, requestID string, userID string) error {
	request, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return err
	}

	if request.Donation == nil || request.Donation.UserID.String() != userID {
		return domain.ErrUnauthorizedDonationAccess
	}
	if request.Status != entities.RequestStatusPending {
		return domain.ErrRequestNotPending
	}

	if err := s.requestRepository.RejectRequest(ctx, requestID); err != nil {
		return err
	}

	event := notification.Event{
		UserID:     request.RequesterID,
		Type:       entities.NotificationTypeRequestRejected,
		Title:      "Your request was declined",
		Body:       fmt.Sprintf("The donor declined your request for %q.", request.Donation.Title),
		DonationID: &request.DonationID,
		RequestID:  &request.ID,
	}
	if request.Requester != nil {
		event.Email = request.Requester.Email
	}
	s.notificationService.Dispatch(event)

	return nil
}

// ConfirmReceipt is invoked by the requester after the physical handover. It
// is idempotent: confirming a request that is already fulfilled on a
// completed donation is a no-op success, so client retries are harmless.
func (s *requestService) ConfirmReceipt(ctx context.Context, requestID string, userID string) error {
	request, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return err
	}

	if request.RequesterID.String() != userID {
		return domain.ErrUnauthorizedRequestAccess
	}

	if request.Status == entities.RequestStatusFulfilled &&
		request.Donation != nil &&
		request.Donation.Status == entities.DonationStatusCompleted {
		return nil
	}
	if request.Status != entities.RequestStatusApproved {
		return domain.ErrRequestNotApproved
	}

	if err := s.requestRepository.FulfillRequest(ctx, requestID, request.DonationID.String()); err != nil {
		return err
	}

	if request.Donation != nil {
		event := notification.Event{
			UserID:     request.Donation.UserID,
			Type:       entities.NotificationTypeReceiptConfirmed,
			Title:      "Donation completed",
			Body:       fmt.Sprintf("The requester confirmed receiving %q. Thank you for donating!", request.Donation.Title),
			DonationID: &request.DonationID,
			RequestID:  &request.ID,
		}
		if request.Donation.User != nil {
			event.Email = request.Donation.User.Email
		}
		s.notificationService.Dispatch(event)
	}

	return nil
}

func (s *requestService) loadRequest(ctx context.Context, requestID string) (*entities.DonationRequest, error) {
	request, err := s.requestRepository.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

func toDomainRequest(request *entities.DonationRequest, target *entities.Donation, requester *entities.User) *domain.DonationRequest {
	result := &domain.DonationRequest{
		ID:          request.ID.String(),
		DonationID:  request.DonationID.String(),
		RequesterID: request.RequesterID.String(),
		Message:     request.Message,
		Status:      request.Status,
		CreatedAt:   request.CreatedAt,
	}
	if target != nil {
		result.DonationTitle = target.Title
	}
	if requester != nil {
		result.RequesterName = requester.Name
	}
	return result
}
