package dto

import (
	"mime/multipart"

	"guesthouse/internal/domains/room/model"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/language"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name         language.Text         `json:"name"          validate:"required"`
	Description  language.Text         `json:"description"   validate:"required"`
	Address      language.Text         `json:"address"       validate:"omitempty"`
	Price        float64               `json:"price"         validate:"gte=0"`
	MaxOccupancy int                   `json:"max_occupancy" validate:"required,min=1"`
	Amenities    []string              `json:"amenities"     validate:"omitempty,dive,max=100"`
	BookingURL   string                `json:"booking_url"   validate:"omitempty,url"`
	PermitNumber string                `json:"permit_number" validate:"omitempty,max=100"`
	Active       *bool                 `json:"active"        validate:"omitempty"`
	Image        *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile    multipart.File        `json:"-"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	var images gModel.StringSlice
	if imageURL != "" {
		images = gModel.StringSlice{imageURL}
	}

	nameJa, nameEn, nameZh := c.Name.Columns()
	descJa, descEn, descZh := c.Description.Columns()
	addrJa, addrEn, addrZh := c.Address.Columns()

	return model.Room{
		ID:            uuid.NewString(),
		NameJa:        nameJa,
		NameEn:        nameEn,
		NameZh:        nameZh,
		DescriptionJa: descJa,
		DescriptionEn: descEn,
		DescriptionZh: descZh,
		AddressJa:     addrJa,
		AddressEn:     addrEn,
		AddressZh:     addrZh,
		Price:         c.Price,
		MaxOccupancy:  c.MaxOccupancy,
		Amenities:     gModel.StringSlice(c.Amenities),
		Images:        images,
		BookingURL:    c.BookingURL,
		PermitNumber:  c.PermitNumber,
		Active:        active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name         language.Text         `json:"name"          validate:"omitempty"`
	Description  language.Text         `json:"description"   validate:"omitempty"`
	Address      language.Text         `json:"address"       validate:"omitempty"`
	Price        *float64              `json:"price"         validate:"omitempty,gte=0"`
	MaxOccupancy *int                  `json:"max_occupancy" validate:"omitempty,min=1"`
	Amenities    []string              `json:"amenities"     validate:"omitempty,dive,max=100"`
	BookingURL   *string               `json:"booking_url"   validate:"omitempty,url"`
	PermitNumber *string               `json:"permit_number" validate:"omitempty,max=100"`
	Active       *bool                 `json:"active"        validate:"omitempty"`
	Image        *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile    multipart.File        `json:"-"`
}

// ToUpdateMap flattens the set fields into column updates, spreading the
// multi-language texts into their per-language columns.
func (u *UpdateRoomRequest) ToUpdateMap(user string) map[string]any {
	fields := map[string]any{}

	putText(fields, u.Name, model.FieldNameJa, model.FieldNameEn, model.FieldNameZh)
	putText(fields, u.Description, model.FieldDescriptionJa, model.FieldDescriptionEn, model.FieldDescriptionZh)
	putText(fields, u.Address, model.FieldAddressJa, model.FieldAddressEn, model.FieldAddressZh)

	if u.Price != nil {
		fields[model.FieldPrice] = *u.Price
	}
	if u.MaxOccupancy != nil {
		fields[model.FieldMaxOccupancy] = *u.MaxOccupancy
	}
	if u.Amenities != nil {
		fields[model.FieldAmenities] = gModel.StringSlice(u.Amenities)
	}
	if u.BookingURL != nil {
		fields[model.FieldBookingURL] = *u.BookingURL
	}
	if u.PermitNumber != nil {
		fields[model.FieldPermitNumber] = *u.PermitNumber
	}
	if u.Active != nil {
		fields[model.FieldActive] = *u.Active
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = user

	return fields
}

func putText(fields map[string]any, text language.Text, jaCol, enCol, zhCol string) {
	if len(text) == 0 {
		return
	}

	ja, en, zh := text.Columns()
	fields[jaCol] = ja
	fields[enCol] = en
	fields[zhCol] = zh
}

type RoomResponse struct {
	ID           string        `json:"id"`
	Name         language.Text `json:"name"`
	Description  language.Text `json:"description"`
	Address      language.Text `json:"address"`
	Price        float64       `json:"price"`
	MaxOccupancy int           `json:"max_occupancy"`
	Amenities    []string      `json:"amenities"`
	Images       []string      `json:"images"`
	BookingURL   string        `json:"booking_url"`
	PermitNumber string        `json:"permit_number"`
	Active       bool          `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(mod model.Room) {
	r.ID = mod.ID
	r.Name = language.FromColumns(mod.NameJa, mod.NameEn, mod.NameZh)
	r.Description = language.FromColumns(mod.DescriptionJa, mod.DescriptionEn, mod.DescriptionZh)
	r.Address = language.FromColumns(mod.AddressJa, mod.AddressEn, mod.AddressZh)
	r.Price = mod.Price
	r.MaxOccupancy = mod.MaxOccupancy
	r.Amenities = mod.Amenities
	r.Images = mod.Images
	r.BookingURL = mod.BookingURL
	r.PermitNumber = mod.PermitNumber
	r.Active = mod.Active
	r.Metadata.FromModel(mod.Metadata)
}

// Localize collapses the multi-language fields to the requested variant.
func (r *RoomResponse) Localize(lang string) {
	r.Name = r.Name.Pick(lang)
	r.Description = r.Description.Pick(lang)
	r.Address = r.Address.Pick(lang)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

// Localize collapses the multi-language fields of every room to the
// requested variant.
func (r *GetRoomsResponse) Localize(lang string) {
	for i := range r.Rooms {
		r.Rooms[i].Localize(lang)
	}
}
