package donation

import (
	"context"
	"time"

	"gorm.io/gorm"

	"givehub/entities"
)

type (
	DonationRepository interface {
		CreateDonation(ctx context.Context, donation *entities.Donation, images []*entities.DonationImage) error
		GetDonationByID(ctx context.Context, id string) (*entities.Donation, error)
		GetDonations(ctx context.Context, status, categoryID, search string, page, limit int) ([]*entities.Donation, int64, error)
		GetUserDonations(ctx context.Context, userID string, page, limit int) ([]*entities.Donation, int64, error)
		UpdateDonation(ctx context.Context, donation *entities.Donation) error
		UpdateDonationStatus(ctx context.Context, id string, status string, completedAt *time.Time) error
		DeleteDonation(ctx context.Context, id string) error

		GetCategories(ctx context.Context) ([]*entities.Category, error)
		GetCategoryByID(ctx context.Context, id string) (*entities.Category, error)
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) CreateDonation(ctx context.Context, donation *entities.Donation, images []*entities.DonationImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(donation).Error; err != nil {
			return err
		}
		for _, image := range images {
			image.DonationID = donation.ID
			if err := tx.Create(image).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *donationRepository) GetDonationByID(ctx context.Context, id string) (*entities.Donation, error) {
	var donation entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) GetDonations(ctx context.Context, status, categoryID, search string, page, limit int) ([]*entities.Donation, int64, error) {
	var donations []*entities.Donation
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Donation{})
	if status != "" && status != "All" {
		query = query.Where("status = ?", status)
	}
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("User").
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, count, nil
}

func (r *donationRepository) GetUserDonations(ctx context.Context, userID string, page, limit int) ([]*entities.Donation, int64, error) {
	var donations []*entities.Donation
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, count, nil
}

func (r *donationRepository) UpdateDonation(ctx context.Context, donation *entities.Donation) error {
	return r.db.WithContext(ctx).Save(donation).Error
}

func (r *donationRepository) UpdateDonationStatus(ctx context.Context, id string, status string, completedAt *time.Time) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if completedAt != nil {
		updates["completed_at"] = completedAt
	}

	result := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteDonation removes the donation together with its requests and image
// rows. Requests are never deleted individually, only through this cascade.
func (r *donationRepository) DeleteDonation(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("donation_id = ?", id).Delete(&entities.DonationRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("donation_id = ?", id).Delete(&entities.DonationImage{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entities.Donation{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *donationRepository) GetCategories(ctx context.Context) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *donationRepository) GetCategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
