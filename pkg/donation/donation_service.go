package donation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"givehub/domain"
	"givehub/entities"
	"givehub/internal/utils/storage"
)

type (
	DonationService interface {
		CreateDonation(ctx context.Context, req domain.CreateDonationRequest, userID string) (*domain.Donation, error)
		GetDonations(ctx context.Context, req domain.BrowseDonationsRequest, page, limit int) ([]*domain.Donation, int64, error)
		GetDonationByID(ctx context.Context, id string) (*domain.Donation, error)
		GetUserDonations(ctx context.Context, userID string, page, limit int) ([]*domain.Donation, int64, error)
		UpdateDonation(ctx context.Context, id string, req domain.UpdateDonationRequest, userID string) (*domain.Donation, error)
		DeleteDonation(ctx context.Context, id string, userID string) error
		GetCategories(ctx context.Context) ([]*domain.Category, error)
	}

	donationService struct {
		donationRepository DonationRepository
		s3                 storage.AwsS3
	}
)

func NewDonationService(donationRepository DonationRepository, s3 storage.AwsS3) DonationService {
	return &donationService{
		donationRepository: donationRepository,
		s3:                 s3,
	}
}

func (s *donationService) CreateDonation(ctx context.Context, req domain.CreateDonationRequest, userID string) (*domain.Donation, error) {
	category, err := s.donationRepository.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	categoryUUID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	donationID := uuid.New()

	// Upload images in the order they were attached; position is the ordering
	// the listing page renders.
	images := make([]*entities.DonationImage, 0, len(req.Images))
	for i, file := range req.Images {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("donation-%s-%d", donationID.String(), i),
			file,
			"donations",
			storage.AllowImage...,
		)
		if err != nil {
			return nil, err
		}
		images = append(images, &entities.DonationImage{
			ID:        uuid.New(),
			ObjectKey: objectKey,
			Position:  i,
		})
	}

	donation := &entities.Donation{
		ID:          donationID,
		UserID:      userUUID,
		CategoryID:  categoryUUID,
		Title:       req.Title,
		Description: req.Description,
		Condition:   req.Condition,
		Location:    req.Location,
		Status:      entities.DonationStatusAvailable,
	}

	if err := s.donationRepository.CreateDonation(ctx, donation, images); err != nil {
		return nil, err
	}

	donation.Images = images
	donation.Category = category
	return s.toDomainDonation(donation), nil
}

func (s *donationService) GetDonations(ctx context.Context, req domain.BrowseDonationsRequest, page, limit int) ([]*domain.Donation, int64, error) {
	status := req.Status
	if status == "" {
		status = entities.DonationStatusAvailable
	}

	donations, count, err := s.donationRepository.GetDonations(ctx, status, req.CategoryID, req.Search, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Donation, 0, len(donations))
	for _, donation := range donations {
		result = append(result, s.toDomainDonation(donation))
	}
	return result, count, nil
}

func (s *donationService) GetDonationByID(ctx context.Context, id string) (*domain.Donation, error) {
	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}
	return s.toDomainDonation(donation), nil
}

func (s *donationService) GetUserDonations(ctx context.Context, userID string, page, limit int) ([]*domain.Donation, int64, error) {
	donations, count, err := s.donationRepository.GetUserDonations(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Donation, 0, len(donations))
	for _, donation := range donations {
		result = append(result, s.toDomainDonation(donation))
	}
	return result, count, nil
}

func (s *donationService) UpdateDonation(ctx context.Context, id string, req domain.UpdateDonationRequest, userID string) (*domain.Donation, error) {
	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	if donation.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedDonationAccess
	}

	// Once a request has been approved the listing is committed; editing is
	// only allowed while the donation is still available.
	if donation.Status != entities.DonationStatusAvailable {
		return nil, domain.ErrDonationNotEditable
	}

	if req.Title != "" {
		donation.Title = req.Title
	}
	if req.Description != "" {
		donation.Description = req.Description
	}
	if req.Condition != "" {
		donation.Condition = req.Condition
	}
	if req.Location != "" {
		donation.Location = req.Location
	}
	if req.CategoryID != "" {
		category, err := s.donationRepository.GetCategoryByID(ctx, req.CategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrCategoryNotFound
			}
			return nil, err
		}
		donation.CategoryID = category.ID
		donation.Category = category
	}

	if err := s.donationRepository.UpdateDonation(ctx, donation); err != nil {
		return nil, err
	}

	return s.toDomainDonation(donation), nil
}

func (s *donationService) DeleteDonation(ctx context.Context, id string, userID string) error {
	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDonationNotFound
		}
		return err
	}

	if donation.UserID.String() != userID {
		return domain.ErrUnauthorizedDonationAccess
	}

	return s.donationRepository.DeleteDonation(ctx, id)
}

func (s *donationService) GetCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.donationRepository.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Category, 0, len(categories))
	for _, category := range categories {
		result = append(result, &domain.Category{
			ID:   category.ID.String(),
			Name: category.Name,
			Icon: category.Icon,
		})
	}
	return result, nil
}

func (s *donationService) toDomainDonation(donation *entities.Donation) *domain.Donation {
	imageURLs := make([]string, 0, len(donation.Images))
	for _, image := range donation.Images {
		imageURLs = append(imageURLs, s.s3.GetPublicLinkKey(image.ObjectKey))
	}

	result := &domain.Donation{
		ID:          donation.ID.String(),
		UserID:      donation.UserID.String(),
		CategoryID:  donation.CategoryID.String(),
		Title:       donation.Title,
		Description: donation.Description,
		Condition:   donation.Condition,
		Location:    donation.Location,
		Status:      donation.Status,
		ImageURLs:   imageURLs,
		CreatedAt:   donation.CreatedAt,
		UpdatedAt:   donation.UpdatedAt,
		CompletedAt: donation.CompletedAt,
	}
	if donation.User != nil {
		result.DonorName = donation.User.Name
	}
	if donation.Category != nil {
		result.CategoryName = donation.Category.Name
	}
	return result
}
