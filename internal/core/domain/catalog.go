package domain

import "errors"

var ErrServiceNotFound = errors.New("service not found")
var ErrReviewNotFound = errors.New("review not found")

// Service is a cleaning service offered on the marketplace. It carries no
// lifecycle of its own; the API proxies it straight to the store.
type Service struct {
	ID          string  `json:"id" bson:"_id,omitempty"`
	Name        string  `json:"name" bson:"name"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64 `json:"price" bson:"price"`
	ImageURL    string  `json:"image_url,omitempty" bson:"image_url,omitempty"`
}

// Review is customer feedback on a service. Status marks whether the review
// is published on the landing page.
type Review struct {
	ID      string  `json:"id" bson:"_id,omitempty"`
	Email   string  `json:"email" bson:"email"`
	Name    string  `json:"name,omitempty" bson:"name,omitempty"`
	Rating  float64 `json:"rating" bson:"rating"`
	Comment string  `json:"comment,omitempty" bson:"comment,omitempty"`
	Status  bool    `json:"status" bson:"status"`
}
