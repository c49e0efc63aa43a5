package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateDonation = "donation created successfully"
	MessageSuccessGetDonations   = "donations retrieved successfully"
	MessageSuccessGetDonation    = "donation retrieved successfully"
	MessageSuccessUpdateDonation = "donation updated successfully"
	MessageSuccessDeleteDonation = "donation deleted successfully"
	MessageSuccessGetCategories  = "categories retrieved successfully"

	MessageFailedCreateDonation = "failed to create donation"
	MessageFailedGetDonations   = "failed to retrieve donations"
	MessageFailedGetDonation    = "failed to retrieve donation"
	MessageFailedUpdateDonation = "failed to update donation"
	MessageFailedDeleteDonation = "failed to delete donation"
	MessageFailedGetCategories  = "failed to retrieve categories"

	ErrDonationNotFound           = errors.New("donation not found")
	ErrCategoryNotFound           = errors.New("category not found")
	ErrUnauthorizedDonationAccess = errors.New("unauthorized access to donation")
	ErrInvalidDonationStatus      = errors.New("invalid donation status")
	ErrInvalidDonationCondition   = errors.New("invalid donation condition")
	ErrDonationNotEditable        = errors.New("donation can no longer be edited")
)

type (
	CreateDonationRequest struct {
		Title       string                  `json:"title" validate:"required"`
		Description string                  `json:"description" validate:"omitempty"`
		CategoryID  string                  `json:"category_id" validate:"required,uuid"`
		Condition   string                  `json:"condition" validate:"required,oneof=New LikeNew Used"`
		Location    string                  `json:"location" validate:"required"`
		Images      []*multipart.FileHeader `json:"images" form:"images"`
	}

	UpdateDonationRequest struct {
		Title       string `json:"title" validate:"omitempty"`
		Description string `json:"description" validate:"omitempty"`
		CategoryID  string `json:"category_id" validate:"omitempty,uuid"`
		Condition   string `json:"condition" validate:"omitempty,oneof=New LikeNew Used"`
		Location    string `json:"location" validate:"omitempty"`
	}

	BrowseDonationsRequest struct {
		Status     string `json:"status" validate:"omitempty,oneof=Available Reserved Completed All"`
		CategoryID string `json:"category_id" validate:"omitempty,uuid"`
		Search     string `json:"search" validate:"omitempty"`
	}

	Donation struct {
		ID           string     `json:"id"`
		UserID       string     `json:"user_id"`
		DonorName    string     `json:"donor_name,omitempty"`
		CategoryID   string     `json:"category_id"`
		CategoryName string     `json:"category_name,omitempty"`
		Title        string     `json:"title"`
		Description  string     `json:"description"`
		Condition    string     `json:"condition"`
		Location     string     `json:"location"`
		Status       string     `json:"status"`
		ImageURLs    []string   `json:"image_urls"`
		CreatedAt    time.Time  `json:"created_at"`
		UpdatedAt    time.Time  `json:"updated_at"`
		CompletedAt  *time.Time `json:"completed_at,omitempty"`
	}

	Category struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Icon string `json:"icon,omitempty"`
	}
)
