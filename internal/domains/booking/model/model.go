package model

import (
	"time"

	"guesthouse/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldRoomID     = "room_id"
	FieldGuestName  = "guest_name"
	FieldGuestEmail = "guest_email"
	FieldGuestPhone = "guest_phone"
	FieldCheckIn    = "check_in"
	FieldCheckOut   = "check_out"
	FieldGuests     = "guests"
	FieldStatus     = "status"
	FieldNote       = "note"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// transitions holds the allowed status changes. Cancelled is terminal.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

// IsValidStatus reports whether status is a known booking status.
func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}

	return false
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}

type Booking struct {
	ID         string    `db:"id"`
	RoomID     string    `db:"room_id"`
	GuestName  string    `db:"guest_name"`
	GuestEmail string    `db:"guest_email"`
	GuestPhone string    `db:"guest_phone"`
	CheckIn    time.Time `db:"check_in"`
	CheckOut   time.Time `db:"check_out"`
	Guests     int       `db:"guests"`
	Status     string    `db:"status"`
	Note       string    `db:"note"`
	model.Metadata
}
