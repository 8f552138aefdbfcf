// model/book.go
package model

import "time"

type Book struct {
	ID                   int64     `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	PublishedDate        time.Time `json:"published_date"`
	Price                float64   `json:"price"`
	RentalPrice          float64   `json:"rental_price"`
	AvailableForPurchase bool      `json:"available_for_purchase"`
	AvailableForRental   bool      `json:"available_for_rental"`
	AuthorID             int64     `json:"author_id"`
	CreatedAt            time.Time `json:"created_at"`
}

// BookListRow is the minimized list projection: title, prices and the
// author expanded to a username.
type BookListRow struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Price          float64 `json:"price"`
	RentalPrice    float64 `json:"rental_price"`
	AuthorUsername string  `json:"author"`
}

type BookDetailRow struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Price          float64 `json:"price"`
	AuthorUsername string  `json:"author"`
}

// BookContent is the protected payload returned once the entitlement check
// passes, with purchaser/renter references expanded to usernames.
type BookContent struct {
	Book       Book             `json:"book"`
	Purchasers []EntitlementRow `json:"purchasers"`
	Renters    []EntitlementRow `json:"renters"`
}
