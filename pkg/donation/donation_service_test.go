package donation

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"givehub/domain"
	"givehub/entities"
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
		if categoryID != "" && donation.CategoryID.String() != categoryID {
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

type fakeStorage struct {
	uploads []string
}

func (f *fakeStorage) UploadFile(fileName string, file *multipart.FileHeader, dir string, allowed ...string) (string, error) {
	key := dir + "/" + fileName
	f.uploads = append(f.uploads, key)
	return key, nil
}

func (f *fakeStorage) DeleteFile(objectKey string) error { return nil }

func (f *fakeStorage) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.test/" + objectKey
}

type donationEnv struct {
	service    DonationService
	repo       *fakeDonationRepository
	storage    *fakeStorage
	ownerID    uuid.UUID
	categoryID uuid.UUID
}

func newDonationEnv(t *testing.T) *donationEnv {
	t.Helper()

	repo := newFakeDonationRepository()
	store := &fakeStorage{}

	categoryID := uuid.New()
	repo.categories[categoryID.String()] = &entities.Category{ID: categoryID, Name: "Furniture"}

	return &donationEnv{
		service:    NewDonationService(repo, store),
		repo:       repo,
		storage:    store,
		ownerID:    uuid.New(),
		categoryID: categoryID,
	}
}

func (e *donationEnv) create(t *testing.T) *domain.Donation {
	t.Helper()
	result, err := e.service.CreateDonation(context.Background(), domain.CreateDonationRequest{
		Title:      "Desk lamp",
		CategoryID: e.categoryID.String(),
		Condition:  "Used",
		Location:   "Bandung",
	}, e.ownerID.String())
	require.NoError(t, err)
	return result
}

func TestCreateDonation(t *testing.T) {
	env := newDonationEnv(t)

	created := env.create(t)
	assert.Equal(t, entities.DonationStatusAvailable, created.Status)
	assert.Equal(t, "Furniture", created.CategoryName)

	stored := env.repo.donations[created.ID]
	require.NotNil(t, stored)
	assert.Equal(t, env.ownerID, stored.UserID)
}

func TestCreateDonationUnknownCategory(t *testing.T) {
	env := newDonationEnv(t)

	_, err := env.service.CreateDonation(context.Background(), domain.CreateDonationRequest{
		Title:      "Desk lamp",
		CategoryID: uuid.New().String(),
		Condition:  "Used",
		Location:   "Bandung",
	}, env.ownerID.String())
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestBrowseDefaultsToAvailable(t *testing.T) {
	env := newDonationEnv(t)
	ctx := context.Background()

	available := env.create(t)
	completed := env.create(t)
	env.repo.donations[completed.ID].Status = entities.DonationStatusCompleted

	donations, count, err := env.service.GetDonations(ctx, domain.BrowseDonationsRequest{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, donations, 1)
	assert.Equal(t, available.ID, donations[0].ID)

	_, count, err = env.service.GetDonations(ctx, domain.BrowseDonationsRequest{Status: "All"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUpdateDonationOwnerOnly(t *testing.T) {
	env := newDonationEnv(t)

	created := env.create(t)
	_, err := env.service.UpdateDonation(context.Background(), created.ID, domain.UpdateDonationRequest{
		Title: "Hijacked",
	}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedDonationAccess)
}

func TestUpdateDonationOnlyWhileAvailable(t *testing.T) {
	env := newDonationEnv(t)
	ctx := context.Background()

	created := env.create(t)
	updated, err := env.service.UpdateDonation(ctx, created.ID, domain.UpdateDonationRequest{
		Title: "Desk lamp (black)",
	}, env.ownerID.String())
	require.NoError(t, err)
	assert.Equal(t, "Desk lamp (black)", updated.Title)

	env.repo.donations[created.ID].Status = entities.DonationStatusReserved
	_, err = env.service.UpdateDonation(ctx, created.ID, domain.UpdateDonationRequest{
		Title: "Too late",
	}, env.ownerID.String())
	assert.ErrorIs(t, err, domain.ErrDonationNotEditable)
}

func TestDeleteDonationOwnerOnly(t *testing.T) {
	env := newDonationEnv(t)
	ctx := context.Background()

	created := env.create(t)
	err := env.service.DeleteDonation(ctx, created.ID, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedDonationAccess)

	require.NoError(t, env.service.DeleteDonation(ctx, created.ID, env.ownerID.String()))
	assert.Empty(t, env.repo.donations)
}
