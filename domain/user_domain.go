package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessRegister   = "user registered successfully"
	MessageSuccessLogin      = "login successful"
	MessageSuccessGetMe      = "user retrieved successfully"
	MessageSuccessUpdateUser = "user updated successfully"

	MessageFailedRegister   = "failed to register user"
	MessageFailedLogin      = "failed to login"
	MessageFailedGetMe      = "failed to retrieve user"
	MessageFailedUpdateUser = "failed to update user"

	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyUsed    = errors.New("email already used")
	ErrCredentialsInvalid  = errors.New("invalid email or password")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UpdateUserRequest struct {
		Name    string                `json:"name" validate:"omitempty"`
		Bio     string                `json:"bio" validate:"omitempty"`
		Phone   string                `json:"phone" validate:"omitempty"`
		Address string                `json:"address" validate:"omitempty"`
		Avatar  *multipart.FileHeader `json:"avatar" form:"avatar"`
	}

	User struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Role      string    `json:"role"`
		AvatarURL string    `json:"avatar_url,omitempty"`
		Bio       string    `json:"bio,omitempty"`
		Phone     string    `json:"phone,omitempty"`
		Address   string    `json:"address,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}
)
