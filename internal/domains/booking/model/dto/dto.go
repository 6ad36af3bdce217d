package dto

import (
	"time"

	"guesthouse/internal/domains/booking/model"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID     string `json:"room_id"     validate:"required,uuid4"`
	GuestName  string `json:"guest_name"  validate:"required,max=100"`
	GuestEmail string `json:"guest_email" validate:"required,email"`
	GuestPhone string `json:"guest_phone" validate:"omitempty,max=30"`
	CheckIn    string `json:"check_in"    validate:"required,datetime=2006-01-02"`
	CheckOut   string `json:"check_out"   validate:"required,datetime=2006-01-02"`
	Guests     int    `json:"guests"      validate:"required,min=1"`
	Note       string `json:"note"        validate:"omitempty,max=2000"`
}

// Dates parses the stay interval and rejects a check-out on or before the
// check-in.
func (c *CreateBookingRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(constant.DateOnlyFormat, c.CheckIn)
	if err != nil {
		return checkIn, checkOut, failure.ConstraintViolationf(model.FieldCheckIn, "invalid date") // nolint:wrapcheck
	}

	checkOut, err = time.Parse(constant.DateOnlyFormat, c.CheckOut)
	if err != nil {
		return checkIn, checkOut, failure.ConstraintViolationf(model.FieldCheckOut, "invalid date") // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return checkIn, checkOut, failure.ConstraintViolationf(model.FieldCheckOut, "check-out must be after check-in") // nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

func (c *CreateBookingRequest) ToModel(user string, checkIn, checkOut time.Time) model.Booking {
	return model.Booking{
		ID:         uuid.NewString(),
		RoomID:     c.RoomID,
		GuestName:  c.GuestName,
		GuestEmail: c.GuestEmail,
		GuestPhone: c.GuestPhone,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     c.Guests,
		Status:     model.StatusPending,
		Note:       c.Note,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateBookingRequest edits guest details of a booking. The room reference
// is fixed at creation and cannot be changed.
type UpdateBookingRequest struct {
	GuestName  string `db:"guest_name"  json:"guest_name"  validate:"omitempty,max=100"`
	GuestEmail string `db:"guest_email" json:"guest_email" validate:"omitempty,email"`
	GuestPhone string `db:"guest_phone" json:"guest_phone" validate:"omitempty,max=30"`
	Note       string `db:"note"        json:"note"        validate:"omitempty,max=2000"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type BookingResponse struct {
	ID         string `json:"id"`
	RoomID     string `json:"room_id"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Guests     int    `json:"guests"`
	Status     string `json:"status"`
	Note       string `json:"note"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(mod model.Booking) {
	b.ID = mod.ID
	b.RoomID = mod.RoomID
	b.GuestName = mod.GuestName
	b.GuestEmail = mod.GuestEmail
	b.GuestPhone = mod.GuestPhone
	b.CheckIn = mod.CheckIn.Format(constant.DateOnlyFormat)
	b.CheckOut = mod.CheckOut.Format(constant.DateOnlyFormat)
	b.Guests = mod.Guests
	b.Status = mod.Status
	b.Note = mod.Note
	b.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (b *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	b.TotalData = totalData
	b.TotalPage = shared.CalculateTotalPage(totalData, limit)

	b.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		b.Bookings[i].FromModel(mod)
	}
}
