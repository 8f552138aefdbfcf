package book

import "time"

// BookReq is used by both create and full-replace update. There is no
// author field: authorship is stamped from the session on create and an
// author key in the request body is dropped at bind time.
type BookReq struct {
	Title                string    `json:"title" validate:"required"`
	Description          string    `json:"description"`
	PublishedDate        time.Time `json:"published_date"`
	Price                float64   `json:"price" validate:"gte=0"`
	RentalPrice          float64   `json:"rental_price" validate:"gte=0"`
	AvailableForPurchase bool      `json:"available_for_purchase"`
	AvailableForRental   bool      `json:"available_for_rental"`
}
