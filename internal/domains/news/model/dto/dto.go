package dto

import (
	"time"

	"guesthouse/internal/domains/news/model"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/language"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
)

type CreateNewsRequest struct {
	Title     language.Text `json:"title"     validate:"required"`
	Body      language.Text `json:"body"      validate:"required"`
	Published *bool         `json:"published" validate:"omitempty"`
}

func (c *CreateNewsRequest) ToModel(user string) model.News {
	published := false
	if c.Published != nil {
		published = *c.Published
	}

	var publishedAt *time.Time
	if published {
		now := timezone.Now()
		publishedAt = &now
	}

	titleJa, titleEn, titleZh := c.Title.Columns()
	bodyJa, bodyEn, bodyZh := c.Body.Columns()

	return model.News{
		ID:          uuid.NewString(),
		TitleJa:     titleJa,
		TitleEn:     titleEn,
		TitleZh:     titleZh,
		BodyJa:      bodyJa,
		BodyEn:      bodyEn,
		BodyZh:      bodyZh,
		Published:   published,
		PublishedAt: publishedAt,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateNewsRequest struct {
	Title     language.Text `json:"title"     validate:"omitempty"`
	Body      language.Text `json:"body"      validate:"omitempty"`
	Published *bool         `json:"published" validate:"omitempty"`
}

// ToUpdateMap flattens the set fields into column updates.
func (u *UpdateNewsRequest) ToUpdateMap(user string) map[string]any {
	fields := map[string]any{}

	if len(u.Title) > 0 {
		ja, en, zh := u.Title.Columns()
		fields[model.FieldTitleJa] = ja
		fields[model.FieldTitleEn] = en
		fields[model.FieldTitleZh] = zh
	}

	if len(u.Body) > 0 {
		ja, en, zh := u.Body.Columns()
		fields[model.FieldBodyJa] = ja
		fields[model.FieldBodyEn] = en
		fields[model.FieldBodyZh] = zh
	}

	if u.Published != nil {
		fields[model.FieldPublished] = *u.Published
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = user

	return fields
}

type NewsResponse struct {
	ID          string        `json:"id"`
	Title       language.Text `json:"title"`
	Body        language.Text `json:"body"`
	Published   bool          `json:"published"`
	PublishedAt string        `json:"published_at,omitempty"`
	gDto.Metadata
}

func (n *NewsResponse) FromModel(mod model.News) {
	n.ID = mod.ID
	n.Title = language.FromColumns(mod.TitleJa, mod.TitleEn, mod.TitleZh)
	n.Body = language.FromColumns(mod.BodyJa, mod.BodyEn, mod.BodyZh)
	n.Published = mod.Published
	if mod.PublishedAt != nil {
		n.PublishedAt = timezone.Format(*mod.PublishedAt, constant.DateFormat)
	}
	n.Metadata.FromModel(mod.Metadata)
}

// Localize collapses the multi-language fields to the requested variant.
func (n *NewsResponse) Localize(lang string) {
	n.Title = n.Title.Pick(lang)
	n.Body = n.Body.Pick(lang)
}

type GetNewsListResponse struct {
	News      []NewsResponse `json:"news"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (n *GetNewsListResponse) FromModels(models []model.News, totalData, limit int) {
	n.TotalData = totalData
	n.TotalPage = shared.CalculateTotalPage(totalData, limit)

	n.News = make([]NewsResponse, len(models))
	for i, mod := range models {
		n.News[i].FromModel(mod)
	}
}

// Localize collapses the multi-language fields of every article to the
// requested variant.
func (n *GetNewsListResponse) Localize(lang string) {
	for i := range n.News {
		n.News[i].Localize(lang)
	}
}
