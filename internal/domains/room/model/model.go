package model

import "guesthouse/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldNameJa        = "name_ja"
	FieldNameEn        = "name_en"
	FieldNameZh        = "name_zh"
	FieldDescriptionJa = "description_ja"
	FieldDescriptionEn = "description_en"
	FieldDescriptionZh = "description_zh"
	FieldAddressJa     = "address_ja"
	FieldAddressEn     = "address_en"
	FieldAddressZh     = "address_zh"
	FieldPrice         = "price"
	FieldMaxOccupancy  = "max_occupancy"
	FieldAmenities     = "amenities"
	FieldImages        = "images"
	FieldBookingURL    = "booking_url"
	FieldPermitNumber  = "permit_number"
	FieldActive        = "active"
)

type Room struct {
	ID            string            `db:"id"`
	NameJa        string            `db:"name_ja"`
	NameEn        string            `db:"name_en"`
	NameZh        string            `db:"name_zh"`
	DescriptionJa string            `db:"description_ja"`
	DescriptionEn string            `db:"description_en"`
	DescriptionZh string            `db:"description_zh"`
	AddressJa     string            `db:"address_ja"`
	AddressEn     string            `db:"address_en"`
	AddressZh     string            `db:"address_zh"`
	Price         float64           `db:"price"`
	MaxOccupancy  int               `db:"max_occupancy"`
	Amenities     model.StringSlice `db:"amenities"`
	Images        model.StringSlice `db:"images"`
	BookingURL    string            `db:"booking_url"`
	PermitNumber  string            `db:"permit_number"`
	Active        bool              `db:"active"`
	model.Metadata
}
