package handler

import "github.com/deadeye/laserworks/internal/core/domain"

// --- Auth ---

type tokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username  string  `json:"username" validate:"required,min=1,max=25"`
	Password  string  `json:"password" validate:"required,min=5,max=20"`
	FirstName string  `json:"firstName" validate:"required,min=1,max=30"`
	LastName  string  `json:"lastName" validate:"required,min=1,max=30"`
	Email     string  `json:"email" validate:"required,email,max=60"`
	BirthDate *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
}

type sendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type identityResponse struct {
	Identity *domain.Identity `json:"identity"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// --- Users ---

type userUpdateRequest struct {
	FirstName   *string `json:"firstName" validate:"omitempty,min=1,max=30"`
	LastName    *string `json:"lastName" validate:"omitempty,min=1,max=30"`
	Email       *string `json:"email" validate:"omitempty,email,max=60"`
	BirthDate   *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	IsActive    *bool   `json:"isActive"`
	Password    *string `json:"password" validate:"omitempty,min=5,max=20"`
	NewPassword *string `json:"newPassword" validate:"omitempty,min=5,max=20"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type usersResponse struct {
	Users []domain.User `json:"users"`
}

// --- Services ---

type serviceAddRequest struct {
	Title       string  `json:"title" validate:"required,min=1"`
	Description string  `json:"description" validate:"required,min=1"`
	Price       float64 `json:"price" validate:"gte=0"`
	IsActive    *bool   `json:"isActive"`
}

type serviceUpdateRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"isActive"`
}

type serviceResponse struct {
	Service *domain.Service `json:"service"`
}

type servicesResponse struct {
	Services []domain.Service `json:"services"`
}

// --- Orders ---

type userServiceAddRequest struct {
	ServiceID      int64   `json:"serviceId" validate:"required,gt=0"`
	ConfirmedPrice float64 `json:"confirmedPrice" validate:"gte=0"`
	AdditionInfo   string  `json:"additionInfo" validate:"max=1000"`
}

type priceRequest struct {
	Price float64 `json:"price"`
}

type userServiceResponse struct {
	UserService *domain.UserService `json:"userService"`
}

type userServicesResponse struct {
	UserServices []domain.UserServiceDetail `json:"userServices"`
}

// --- Reviews ---

// reviewAddRequest leaves rating untyped so "five" reaches the rating
// check instead of failing the JSON decode with a generic message.
type reviewAddRequest struct {
	UserID     int64  `json:"userId" validate:"required,gt=0"`
	ServiceID  int64  `json:"serviceId" validate:"required,gt=0"`
	ReviewText string `json:"reviewText" validate:"required,min=1"`
	Rating     any    `json:"rating" validate:"required"`
}

type reviewUpdateRequest struct {
	ReviewText *string `json:"reviewText" validate:"omitempty,min=1"`
	Rating     *int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

type reviewResponse struct {
	Review *domain.Review `json:"review"`
}

type reviewsResponse struct {
	Reviews []domain.Review `json:"reviews"`
}

// deletedResponse echoes the key of a removed entity.
type deletedResponse struct {
	Deleted string `json:"deleted"`
}

// errorResponse documents the envelope written by the HTTP error handler.
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Status  int    `json:"status"`
	} `json:"error"`
}
