package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"givehub/domain"
	"givehub/entities"
	"givehub/pkg/donation"
	"givehub/pkg/notification"
	"givehub/pkg/user"
)

type (
	// AdminService is the privileged operation gateway. Its operations bypass
	// the normal ownership rules, so every entry point re-derives the caller's
	// role from the user store instead of trusting the token's role claim; a
	// demotion takes effect on the very next call.
	AdminService interface {
		ForceComplete(ctx context.Context, donationID string, callerID string) error
		DeleteDonation(ctx context.Context, donationID string, callerID string) error
		ProvisionAccount(ctx context.Context, req domain.ProvisionAccountRequest, callerID string) (*domain.ProvisionAccountResponse, error)
		DeprovisionAccount(ctx context.Context, userID string, callerID string) error
	}

	adminService struct {
		userRepository      user.UserRepository
		donationRepository  donation.DonationRepository
		notificationService notification.NotificationService
	}
)

func NewAdminService(
	userRepository user.UserRepository,
	donationRepository donation.DonationRepository,
	notificationService notification.NotificationService,
) AdminService {
	return &adminService{
		userRepository:      userRepository,
		donationRepository:  donationRepository,
		notificationService: notificationService,
	}
}

func (s *adminService) requireAdmin(ctx context.Context, callerID string) (*entities.User, error) {
	caller, err := s.userRepository.GetUserByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotAllowed
		}
		return nil, err
	}
	if caller.Role != entities.RoleAdmin {
		return nil, domain.ErrUserNotAllowed
	}
	return caller, nil
}

// ForceComplete marks a donation completed directly, bypassing the request
// state machine. No request has to exist or be approved. Idempotent.
func (s *adminService) ForceComplete(ctx context.Context, donationID string, callerID string) error {
	if _, err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}

	target, err := s.donationRepository.GetDonationByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDonationNotFound
		}
		return err
	}

	if target.Status == entities.DonationStatusCompleted {
		return nil
	}

	now := time.Now()
	if err := s.donationRepository.UpdateDonationStatus(ctx, donationID, entities.DonationStatusCompleted, &now); err != nil {
		return err
	}

	event := notification.Event{
		UserID:     target.UserID,
		Type:       entities.NotificationTypeDonationComplete,
		Title:      "Donation marked as completed",
		Body:       fmt.Sprintf("An administrator marked %q as completed.", target.Title),
		DonationID: &target.ID,
	}
	if target.User != nil {
		event.Email = target.User.Email
	}
	s.notificationService.Dispatch(event)

	return nil
}

// DeleteDonation removes a donation and, by cascade, all its requests. A
// second call returns ErrDonationNotFound; the handler answers that as
// success since the end state is the same.
func (s *adminService) DeleteDonation(ctx context.Context, donationID string, callerID string) error {
	if _, err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}

	if err := s.donationRepository.DeleteDonation(ctx, donationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDonationNotFound
		}
		return err
	}
	return nil
}

func (s *adminService) ProvisionAccount(ctx context.Context, req domain.ProvisionAccountRequest, callerID string) (*domain.ProvisionAccountResponse, error) {
	if _, err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	// Enforced before any write.
	if len(req.Password) < 6 {
		return nil, domain.ErrPasswordTooShort
	}
	if req.Role != entities.RoleUser && req.Role != entities.RoleAdmin {
		return nil, domain.ErrInvalidRole
	}

	exists, err := s.userRepository.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyUsed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &entities.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
	}
	profile := &entities.Profile{ID: uuid.New()}

	// Credential and profile are created in a single transaction; there is no
	// window where the identity exists without its profile.
	if err := s.userRepository.CreateUserWithProfile(ctx, account, profile); err != nil {
		return nil, err
	}

	s.notificationService.Dispatch(notification.Event{
		UserID: account.ID,
		Email:  account.Email,
		Type:   entities.NotificationTypeWelcome,
		Title:  "Your GiveHub account",
		Body:   fmt.Sprintf("Hi %s, an administrator created an account for you.", account.Name),
	})

	return &domain.ProvisionAccountResponse{
		UserID: account.ID.String(),
		Email:  account.Email,
		Role:   account.Role,
	}, nil
}

func (s *adminService) DeprovisionAccount(ctx context.Context, userID string, callerID string) error {
	if _, err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}

	// Admins must use the self-service path to close their own account.
	if userID == callerID {
		return domain.ErrSelfDeprovision
	}

	if _, err := s.userRepository.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if err := s.userRepository.DeleteUserWithProfile(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}
