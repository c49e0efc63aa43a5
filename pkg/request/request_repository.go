package request

import (
	"context"
	"time"

	"gorm.io/gorm"

	"givehub/domain"
	"givehub/entities"
)

type (
	RequestRepository interface {
		CreateRequest(ctx context.Context, request *entities.DonationRequest) error
		GetRequestByID(ctx context.Context, id string) (*entities.DonationRequest, error)
		GetRequestsByDonation(ctx context.Context, donationID string) ([]*entities.DonationRequest, error)
		GetUserRequests(ctx context.Context, requesterID string, page, limit int) ([]*entities.DonationRequest, int64, error)
		HasPendingRequest(ctx context.Context, donationID, requesterID string) (bool, error)
		CountActiveRequests(ctx context.Context, donationID string) (int64, error)
		ApproveRequest(ctx context.Context, requestID, donationID string) error
		RejectRequest(ctx context.Context, requestID string) error
		FulfillRequest(ctx context.Context, requestID, donationID string) error
	}

	requestRepository struct {
		db *gorm.DB
	}
)

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) CreateRequest(ctx context.Context, request *entities.DonationRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *requestRepository) GetRequestByID(ctx context.Context, id string) (*entities.DonationRequest, error) {
	var request entities.DonationRequest
	if err := r.db.WithContext(ctx).
		Preload("Donation").
		Preload("Donation.User").
		Preload("Requester").
		Where("id = ?", id).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) GetRequestsByDonation(ctx context.Context, donationID string) ([]*entities.DonationRequest, error) {
	var requests []*entities.DonationRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("donation_id = ?", donationID).
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) GetUserRequests(ctx context.Context, requesterID string, page, limit int) ([]*entities.DonationRequest, int64, error) {
	var requests []*entities.DonationRequest
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.DonationRequest{}).
		Where("requester_id = ?", requesterID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Donation").
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, count, nil
}

func (r *requestRepository) HasPendingRequest(ctx context.Context, donationID, requesterID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.DonationRequest{}).
		Where("donation_id = ? AND requester_id = ? AND status = ?",
			donationID, requesterID, entities.RequestStatusPending).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *requestRepository) CountActiveRequests(ctx context.Context, donationID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.DonationRequest{}).
		Where("donation_id = ? AND status IN ?",
			donationID, []string{entities.RequestStatusApproved, entities.RequestStatusFulfilled}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ApproveRequest moves a pending request to Approved and the donation to
// Reserved in one transaction. The sibling check runs inside the transaction
// so two concurrent approvals on the same donation cannot both succeed.
func (r *requestRepository) ApproveRequest(ctx context.Context, requestID, donationID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active int64
		if err := tx.Model(&entities.DonationRequest{}).
			Where("donation_id = ? AND status IN ?",
				donationID, []string{entities.RequestStatusApproved, entities.RequestStatusFulfilled}).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return domain.ErrDonationReserved
		}

		result := tx.Model(&entities.DonationRequest{}).
			Where("id = ? AND status = ?", requestID, entities.RequestStatusPending).
			Update("status", entities.RequestStatusApproved)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrRequestNotPending
		}

		return tx.Model(&entities.Donation{}).
			Where("id = ?", donationID).
			Update("status", entities.DonationStatusReserved).Error
	})
}

func (r *requestRepository) RejectRequest(ctx context.Context, requestID string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.DonationRequest{}).
		Where("id = ? AND status = ?", requestID, entities.RequestStatusPending).
		Update("status", entities.RequestStatusRejected)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRequestNotPending
	}
	return nil
}

// FulfillRequest moves an approved request to Fulfilled and the donation to
// Completed in one transaction, so a fulfilled request can never be left
// pointing at an uncompleted donation.
func (r *requestRepository) FulfillRequest(ctx context.Context, requestID, donationID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.DonationRequest{}).
			Where("id = ? AND status = ?", requestID, entities.RequestStatusApproved).
			Update("status", entities.RequestStatusFulfilled)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrRequestNotApproved
		}

		now := time.Now()
		return tx.Model(&entities.Donation{}).
			Where("id = ?", donationID).
			Updates(map[string]interface{}{
				"status":       entities.DonationStatusCompleted,
				"completed_at": now,
			}).Error
	})
}
