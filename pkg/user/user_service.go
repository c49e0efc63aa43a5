package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"givehub/domain"
	"givehub/entities"
	"givehub/internal/utils/storage"
	"givehub/pkg/jwt"
	"givehub/pkg/notification"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (*domain.User, error)
		UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (*domain.User, error)
	}

	userService struct {
		userRepository      UserRepository
		jwtService          jwt.JWTService
		notificationService notification.NotificationService
		s3                  storage.AwsS3
	}
)

func NewUserService(
	userRepository UserRepository,
	jwtService jwt.JWTService,
	notificationService notification.NotificationService,
	s3 storage.AwsS3,
) UserService {
	return &userService{
		userRepository:      userRepository,
		jwtService:          jwtService,
		notificationService: notificationService,
		s3:                  s3,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if len(req.Password) < 6 {
		return nil, domain.ErrPasswordTooShort
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

	user := &entities.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     entities.RoleUser,
	}
	profile := &entities.Profile{ID: uuid.New()}

	if err := s.userRepository.CreateUserWithProfile(ctx, user, profile); err != nil {
		return nil, err
	}

	s.notificationService.Dispatch(notification.Event{
		UserID: user.ID,
		Email:  user.Email,
		Type:   entities.NotificationTypeWelcome,
		Title:  "Welcome to GiveHub",
		Body:   fmt.Sprintf("Hi %s, your account is ready. List an item or browse donations to get started.", user.Name),
	})

	return toDomainUser(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCredentialsInvalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return &domain.LoginResponse{Token: token, Role: user.Role}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toDomainUser(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (*domain.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	if req.Avatar != nil {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("avatar-%s", user.ID.String()),
			req.Avatar,
			"avatars",
			storage.AllowImage...,
		)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = s.s3.GetPublicLinkKey(objectKey)
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	if req.Bio != "" || req.Phone != "" || req.Address != "" {
		profile := user.Profile
		if profile == nil {
			profile = &entities.Profile{ID: uuid.New(), UserID: user.ID}
		}
		if req.Bio != "" {
			profile.Bio = req.Bio
		}
		if req.Phone != "" {
			profile.Phone = req.Phone
		}
		if req.Address != "" {
			profile.Address = req.Address
		}
		if err := s.userRepository.UpsertProfile(ctx, profile); err != nil {
			return nil, err
		}
		user.Profile = profile
	}

	return toDomainUser(user), nil
}

func toDomainUser(user *entities.User) *domain.User {
	result := &domain.User{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
	if user.Profile != nil {
		result.Bio = user.Profile.Bio
		result.Phone = user.Profile.Phone
		result.Address = user.Profile.Address
	}
	return result
}
