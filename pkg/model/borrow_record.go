package model

import (
	"math"
	"time"
)

// BorrowRecord is one loan transaction. ReturnDate nil means the loan is
// open; it is set exactly once, by the return operation.
type BorrowRecord struct {
	ID          string     `json:"id,omitempty" validate:"omitempty"`
	BookID      string     `json:"book_id" validate:"required"`
	StudentName string     `json:"student_name" validate:"required,min=1,max=100"`
	StudentID   string     `json:"student_id" validate:"required,min=1,max=50"`
	BorrowDate  time.Time  `json:"borrow_date"`
	DueDate     time.Time  `json:"due_date"`
	ReturnDate  *time.Time `json:"return_date,omitempty"`
}

// BorrowRequest is the borrow intent as submitted by a client. Student
// identity is a denormalized name+id pair; there is no student entity.
type BorrowRequest struct {
	BookID      string `json:"book_id" validate:"required"`
	StudentName string `json:"student_name" validate:"required,min=1,max=100"`
	StudentID   string `json:"student_id" validate:"required,min=1,max=50"`
}

func (r *BorrowRecord) IsOpen() bool {
	return r.ReturnDate == nil
}

func (r *BorrowRecord) IsOverdue(now time.Time) bool {
	return r.IsOpen() && r.DueDate.Before(now)
}

// DaysOverdue counts days past due with a calendar-day ceiling: any partial
// day past the due date is charged as a full day. Never negative.
func (r *BorrowRecord) DaysOverdue(now time.Time) int {
	days := int(math.Ceil(now.Sub(r.DueDate).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
