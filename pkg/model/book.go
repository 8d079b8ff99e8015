package model

// BookStatus is a closed two-variant enum. A book is borrowed exactly when
// one open borrow record references it.
type BookStatus string

const (
	BookStatusAvailable BookStatus = "available"
	BookStatusBorrowed  BookStatus = "borrowed"
)

type Book struct {
	ID            string     `json:"id,omitempty" validate:"omitempty"`
	Title         string     `json:"title" validate:"required,min=1,max=200"`
	Author        string     `json:"author" validate:"required,min=1,max=200"`
	Category      string     `json:"category" validate:"required,min=1,max=100"`
	ISBN          string     `json:"isbn,omitempty" validate:"omitempty,max=32"`
	PublishedYear int        `json:"published_year" validate:"omitempty,min=0,max=3000"`
	Status        BookStatus `json:"status" validate:"omitempty,oneof=available borrowed"`
}

// BookUpdate carries a partial update. Status is deliberately absent: it is
// owned by the loan workflow and never settable through the catalog.
type BookUpdate struct {
	Title         string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Author        string  `json:"author,omitempty" validate:"omitempty,min=1,max=200"`
	Category      string  `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	ISBN          *string `json:"isbn,omitempty" validate:"omitempty,max=32"`
	PublishedYear *int    `json:"published_year,omitempty" validate:"omitempty,min=0,max=3000"`
}
