package domain

import "time"

// Service is a catalog entry offered by the shop.
// Deactivation hides it from new orders without deleting history.
type Service struct {
	ID          int64   `json:"serviceId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	IsActive    bool    `json:"isActive"`
}

// UserService is an order placed by a user for a catalog service.
// FulfilledDate stays nil until the order is completed.
type UserService struct {
	ID               int64      `json:"userServiceId"`
	UserID           int64      `json:"userId"`
	ServiceID        int64      `json:"serviceId"`
	ConfirmedPrice   float64    `json:"confirmedPrice"`
	IsCompleted      bool       `json:"isCompleted"`
	AdditionInfo     string     `json:"additionInfo"`
	ConfirmationCode string     `json:"confirmationCode"`
	RequestedDate    time.Time  `json:"requestedDate"`
	FulfilledDate    *time.Time `json:"fulfilledDate"`
}

// UserServiceDetail is an order joined with its catalog service and,
// for the admin listing, the owning user.
type UserServiceDetail struct {
	UserService
	Username    string  `json:"username,omitempty"`
	FirstName   string  `json:"firstName,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	IsActive    bool    `json:"isActive"`
}
