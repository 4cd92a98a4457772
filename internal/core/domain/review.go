package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating of a service. Username and FirstName are
// filled only by reads that join the authoring user.
type Review struct {
	ID         int64     `json:"reviewId"`
	UserID     int64     `json:"userId"`
	ServiceID  int64     `json:"serviceId"`
	ReviewText string    `json:"reviewText"`
	Rating     int       `json:"rating"`
	Time       time.Time `json:"time"`
	Username   string    `json:"username,omitempty"`
	FirstName  string    `json:"firstName,omitempty"`
}
