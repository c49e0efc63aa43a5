package request

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"givehub/domain"
	"givehub/entities"
	"givehub/pkg/notification"
)

type fakeDonationRepository struct {
	donations  map[string]*entities.Donation
	categories map[string]*entities.Category
}

func newFakeDonationRepository() *fakeDonationRepository {
	return &fakeDonationRepository{
		donations:  make(map[string]*entities.Donation),
		categories: make(map[string]*entities.Category),
	}
}

func (f *fakeDonationRepository) CreateDonation(_ context.Context, donation *entities.Donation, images []*entities.DonationImage) error {
	donation.Images = images
	f.donations[donation.ID.String()] = donation
	return nil
}

func (f *fakeDonationRepository) GetDonationByID(_ context.Context, id string) (*entities.Donation, error) {
	donation, ok := f.donations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return donation, nil
}

func (f *fakeDonationRepository) GetDonations(_ context.Context, status, categoryID, search string, page, limit int) ([]*entities.Donation, int64, error) {
	var result []*entities.Donation
	for _, donation := range f.donations {
		if status != "" && status != "All" && donation.Status != status {
			continue
		}
		result = append(result, donation)
	}
	return result, int64(len(result)), nil
}

func (f *fakeDonationRepository) GetUserDonations(_ context.Context, userID string, page, limit int) ([]*entities.Donation, int64, error) {
	var result []*entities.Donation
	for _, donation := range f.donations {
		if donation.UserID.String() == userID {
			result = append(result, donation)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeDonationRepository) UpdateDonation(_ context.Context, donation *entities.Donation) error {
	f.donations[donation.ID.String()] = donation
	return nil
}

func (f *fakeDonationRepository) UpdateDonationStatus(_ context.Context, id string, status string, completedAt *time.Time) error {
	donation, ok := f.donations[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	donation.Status = status
	if completedAt != nil {
		donation.CompletedAt = completedAt
	}
	return nil
}

func (f *fakeDonationRepository) DeleteDonation(_ context.Context, id string) error {
	if _, ok := f.donations[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.donations, id)
	return nil
}

func (f *fakeDonationRepository) GetCategories(_ context.Context) ([]*entities.Category, error) {
	var result []*entities.Category
	for _, category := range f.categories {
		result = append(result, category)
	}
	return result, nil
}

func (f *fakeDonationRepository) GetCategoryByID(_ context.Context, id string) (*entities.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return category, nil
}

type fakeRequestRepository struct {
	requests  map[string]*entities.DonationRequest
	donations *fakeDonationRepository
}

func newFakeRequestRepository(donations *fakeDonationRepository) *fakeRequestRepository {
	return &fakeRequestRepository{
		requests:  make(map[string]*entities.DonationRequest),
		donations: donations,
	}
}

func (f *fakeRequestRepository) CreateRequest(_ context.Context, request *entities.DonationRequest) error {
	f.requests[request.ID.String()] = request
	return nil
}

func (f *fakeRequestRepository) GetRequestByID(_ context.Context, id string) (*entities.DonationRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	request.Donation = f.donations.donations[request.DonationID.String()]
	return request, nil
}

func (f *fakeRequestRepository) GetRequestsByDonation(_ context.Context, donationID string) ([]*entities.DonationRequest, error) {
	var result []*entities.DonationRequest
	for _, request := range f.requests {
		if request.DonationID.String() == donationID {
			result = append(result, request)
		}
	}
	return result, nil
}

func (f *fakeRequestRepository) GetUserRequests(_ context.Context, requesterID string, page, limit int) ([]*entities.DonationRequest, int64, error) {
	var result []*entities.DonationRequest
	for _, request := range f.requests {
		if request.RequesterID.String() == requesterID {
			request.Donation = f.donations.donations[request.DonationID.String()]
			result = append(result, request)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeRequestRepository) HasPendingRequest(_ context.Context, donationID, requesterID string) (bool, error) {
	for _, request := range f.requests {
		if request.DonationID.String() == donationID &&
			request.RequesterID.String() == requesterID &&
			request.Status == entities.RequestStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepository) CountActiveRequests(_ context.Context, donationID string) (int64, error) {
	var count int64
	for _, request := range f.requests {
		if request.DonationID.String() == donationID &&
			(request.Status == entities.RequestStatusApproved || request.Status == entities.RequestStatusFulfilled) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRequestRepository) ApproveRequest(ctx context.Context, requestID, donationID string) error {
	active, _ := f.CountActiveRequests(ctx, donationID)
	if active > 0 {
		return domain.ErrDonationReserved
	}
	request, ok := f.requests[requestID]
	if !ok || request.Status != entities.RequestStatusPending {
		return domain.ErrRequestNotPending
	}
	request.Status = entities.RequestStatusApproved
	f.donations.donations[donationID].Status = entities.DonationStatusReserved
	return nil
}

func (f *fakeRequestRepository) RejectRequest(_ context.Context, requestID string) error {
	request, ok := f.requests[requestID]
	if !ok || request.Status != entities.RequestStatusPending {
		return domain.ErrRequestNotPending
	}
	request.Status = entities.RequestStatusRejected
	return nil
}

func (f *fakeRequestRepository) FulfillRequest(_ context.Context, requestID, donationID string) error {
	request, ok := f.requests[requestID]
	if !ok || request.Status != entities.RequestStatusApproved {
		return domain.ErrRequestNotApproved
	}
	request.Status = entities.RequestStatusFulfilled
	now := time.Now()
	donation := f.donations.donations[donationID]
	donation.Status = entities.DonationStatusCompleted
	donation.CompletedAt = &now
	return nil
}

type fakeNotificationService struct {
	events []notification.Event
}

func (f *fakeNotificationService) Dispatch(event notification.Event) {
	f.events = append(f.events, event)
}

func (f *fakeNotificationService) GetUserNotifications(_ context.Context, _ string, _, _ int) ([]*domain.Notification, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotificationService) MarkAsRead(_ context.Context, _ string, _ string) error {
	return nil
}

func (f *fakeNotificationService) CountUnread(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

type testEnv struct {
	service       RequestService
	donations     *fakeDonationRepository
	requests      *fakeRequestRepository
	notifications *fakeNotificationService
	donorID       uuid.UUID
	donationID    uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	donations := newFakeDonationRepository()
	requests := newFakeRequestRepository(donations)
	notifications := &fakeNotificationService{}

	donorID := uuid.New()
	donationID := uuid.New()
	donations.donations[donationID.String()] = &entities.Donation{
		ID:     donationID,
		UserID: donorID,
		Title:  "Office chair",
		Status: entities.DonationStatusAvailable,
		User:   &entities.User{ID: donorID, Email: "donor@example.com"},
	}

	return &testEnv{
		service:       NewRequestService(requests, donations, notifications),
		donations:     donations,
		requests:      requests,
		notifications: notifications,
		donorID:       donorID,
		donationID:    donationID,
	}
}

func (e *testEnv) submit(t *testing.T, requesterID uuid.UUID) *domain.DonationRequest {
	t.Helper()
	result, err := e.service.SubmitRequest(context.Background(), domain.SubmitRequestRequest{
		DonationID: e.donationID.String(),
		Message:    "I could really use this",
	}, requesterID.String())
	require.NoError(t, err)
	return result
}

func TestSubmitApproveConfirmFlow(t *testing.T) {
	env := newTestEnv(t)
	requesterID := uuid.New()
	ctx := context.Background()

	submitted := env.submit(t, requesterID)
	assert.Equal(t, entities.RequestStatusPending, submitted.Status)
	require.Len(t, env.notifications.events, 1)
	assert.Equal(t, env.donorID, env.notifications.events[0].UserID)
	assert.Equal(t, entities.NotificationTypeRequestReceived, env.notifications.events[0].Type)

	require.NoError(t, env.service.ApproveRequest(ctx, submitted.ID, env.donorID.String()))
	assert.Equal(t, entities.RequestStatusApproved, env.requests.requests[submitted.ID].Status)
	assert.Equal(t, entities.DonationStatusReserved, env.donations.donations[env.donationID.String()].Status)
	require.Len(t, env.notifications.events, 2)
	assert.Equal(t, requesterID, env.notifications.events[1].UserID)

	require.NoError(t, env.service.ConfirmReceipt(ctx, submitted.ID, requesterID.String()))
	assert.Equal(t, entities.RequestStatusFulfilled, env.requests.requests[submitted.ID].Status)

	target := env.donations.donations[env.donationID.String()]
	assert.Equal(t, entities.DonationStatusCompleted, target.Status)
	assert.NotNil(t, target.CompletedAt)
	require.Len(t, env.notifications.events, 3)
	assert.Equal(t, env.donorID, env.notifications.events[2].UserID)
	assert.Equal(t, entities.NotificationTypeReceiptConfirmed, env.notifications.events[2].Type)
}

func TestApproveSecondRequestConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.submit(t, uuid.New())
	require.NoError(t, env.service.ApproveRequest(ctx, first.ID, env.donorID.String()))

	// A second requester may still queue up while the donation is reserved.
	second := env.submit(t, uuid.New())
	assert.Equal(t, entities.RequestStatusPending, second.Status)

	err := env.service.ApproveRequest(ctx, second.ID, env.donorID.String())
	assert.ErrorIs(t, err, domain.ErrDonationReserved)
	assert.Equal(t, entities.RequestStatusPending, env.requests.requests[second.ID].Status)
	assert.Equal(t, entities.DonationStatusReserved, env.donations.donations[env.donationID.String()].Status)
}

func TestApproveDoesNotAutoRejectSiblings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.submit(t, uuid.New())
	sibling := env.submit(t, uuid.New())

	require.NoError(t, env.service.ApproveRequest(ctx, first.ID, env.donorID.String()))
	assert.Equal(t, entities.RequestStatusPending, env.requests.requests[sibling.ID].Status)
}

func TestConfirmReceiptIdempotent(t *testing.T) {
	env := newTestEnv(t)
	requesterID := uuid.New()
	ctx := context.Background()

	submitted := env.submit(t, requesterID)
	require.NoError(t, env.service.ApproveRequest(ctx, submitted.ID, env.donorID.String()))
	require.NoError(t, env.service.ConfirmReceipt(ctx, submitted.ID, requesterID.String()))

	sent := len(env.notifications.events)
	require.NoError(t, env.service.ConfirmReceipt(ctx, submitted.ID, requesterID.String()))
	assert.Equal(t, entities.RequestStatusFulfilled, env.requests.requests[submitted.ID].Status)
	assert.Equal(t, entities.DonationStatusCompleted, env.donations.donations[env.donationID.String()].Status)
	assert.Len(t, env.notifications.events, sent, "a retried confirmation must not emit duplicate notifications")
}

func TestConfirmReceiptRequiresRequester(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	submitted := env.submit(t, uuid.New())
	require.NoError(t, env.service.ApproveRequest(ctx, submitted.ID, env.donorID.String()))

	err := env.service.ConfirmReceipt(ctx, submitted.ID, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRequestAccess)
}

func TestConfirmReceiptRequiresApproval(t *testing.T) {
	env := newTestEnv(t)
	requesterID := uuid.New()

	submitted := env.submit(t, requesterID)
	err := env.service.ConfirmReceipt(context.Background(), submitted.ID, requesterID.String())
	assert.ErrorIs(t, err, domain.ErrRequestNotApproved)
}

func TestApproveRequiresDonor(t *testing.T) {
	env := newTestEnv(t)

	submitted := env.submit(t, uuid.New())
	err := env.service.ApproveRequest(context.Background(), submitted.ID, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedDonationAccess)
}

func TestRejectRequiresDonor(t *testing.T) {
	env := newTestEnv(t)

	submitted := env.submit(t, uuid.New())
	err := env.service.RejectRequest(context.Background(), submitted.ID, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedDonationAccess)
}

func TestRejectOnlyPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	submitted := env.submit(t, uuid.New())
	require.NoError(t, env.service.RejectRequest(ctx, submitted.ID, env.donorID.String()))
	assert.Equal(t, entities.RequestStatusRejected, env.requests.requests[submitted.ID].Status)
	assert.Equal(t, entities.DonationStatusAvailable, env.donations.donations[env.donationID.String()].Status)

	err := env.service.RejectRequest(ctx, submitted.ID, env.donorID.String())
	assert.ErrorIs(t, err, domain.ErrRequestNotPending)
}

func TestApproveDecidedRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	submitted := env.submit(t, uuid.New())
	require.NoError(t, env.service.RejectRequest(ctx, submitted.ID, env.donorID.String()))

	err := env.service.ApproveRequest(ctx, submitted.ID, env.donorID.String())
	assert.ErrorIs(t, err, domain.ErrRequestNotPending)
}

func TestSubmitOwnDonation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.SubmitRequest(context.Background(), domain.SubmitRequestRequest{
		DonationID: env.donationID.String(),
	}, env.donorID.String())
	assert.ErrorIs(t, err, domain.ErrOwnRequest)
}

func TestSubmitCompletedDonation(t *testing.T) {
	env := newTestEnv(t)
	env.donations.donations[env.donationID.String()].Status = entities.DonationStatusCompleted

	_, err := env.service.SubmitRequest(context.Background(), domain.SubmitRequestRequest{
		DonationID: env.donationID.String(),
	}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrDonationNotAvailable)
}

func TestSubmitDuplicatePending(t *testing.T) {
	env := newTestEnv(t)
	requesterID := uuid.New()

	env.submit(t, requesterID)
	_, err := env.service.SubmitRequest(context.Background(), domain.SubmitRequestRequest{
		DonationID: env.donationID.String(),
	}, requesterID.String())
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)
}

func TestSubmitUnknownDonation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.SubmitRequest(context.Background(), domain.SubmitRequestRequest{
		DonationID: uuid.New().String(),
	}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrDonationNotFound)
}

// For any donation, at most one request may be approved or fulfilled,
// whatever order the donor works through the queue in.
func TestSingleRecipientInvariant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		ids = append(ids, env.submit(t, uuid.New()).ID)
	}

	require.NoError(t, env.service.ApproveRequest(ctx, ids[1], env.donorID.String()))
	for _, id := range ids {
		if id == ids[1] {
			continue
		}
		err := env.service.ApproveRequest(ctx, id, env.donorID.String())
		assert.ErrorIs(t, err, domain.ErrDonationReserved)
	}

	active, err := env.requests.CountActiveRequests(ctx, env.donationID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), active)
}
