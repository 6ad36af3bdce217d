package dto

import (
	"guesthouse/internal/domains/message/model"
	"guesthouse/shared"
	gDto "guesthouse/shared/dto"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
)

type CreateMessageRequest struct {
	SenderName  string `json:"sender_name"  validate:"required,max=100"`
	SenderEmail string `json:"sender_email" validate:"required,email"`
	Body        string `json:"body"         validate:"required,max=5000"`
}

func (c *CreateMessageRequest) ToModel(user string) model.Message {
	return model.Message{
		ID:          uuid.NewString(),
		SenderName:  c.SenderName,
		SenderEmail: c.SenderEmail,
		Body:        c.Body,
		Read:        false,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateMessageReadRequest struct {
	Read *bool `json:"read" validate:"required"`
}

type MessageResponse struct {
	ID          string `json:"id"`
	SenderName  string `json:"sender_name"`
	SenderEmail string `json:"sender_email"`
	Body        string `json:"body"`
	Read        bool   `json:"read"`
	gDto.Metadata
}

func (m *MessageResponse) FromModel(mod model.Message) {
	m.ID = mod.ID
	m.SenderName = mod.SenderName
	m.SenderEmail = mod.SenderEmail
	m.Body = mod.Body
	m.Read = mod.Read
	m.Metadata.FromModel(mod.Metadata)
}

type GetMessagesResponse struct {
	Messages  []MessageResponse `json:"messages"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (m *GetMessagesResponse) FromModels(models []model.Message, totalData, limit int) {
	m.TotalData = totalData
	m.TotalPage = shared.CalculateTotalPage(totalData, limit)

	m.Messages = make([]MessageResponse, len(models))
	for i, mod := range models {
		m.Messages[i].FromModel(mod)
	}
}
