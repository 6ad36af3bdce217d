package model

import "guesthouse/shared/model"

const (
	TableName  = "messages"
	EntityName = "message"

	FieldID          = "id"
	FieldSenderName  = "sender_name"
	FieldSenderEmail = "sender_email"
	FieldBody        = "body"
	FieldRead        = "read"
)

type Message struct {
	ID          string `db:"id"`
	SenderName  string `db:"sender_name"`
	SenderEmail string `db:"sender_email"`
	Body        string `db:"body"`
	Read        bool   `db:"read"`
	model.Metadata
}
