package dto

import (
	"encoding/json"

	"guesthouse/internal/domains/sitecontent/model"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/language"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
)

type UpsertSiteContentRequest struct {
	Heading language.Text   `json:"heading" validate:"omitempty"`
	Body    language.Text   `json:"body"    validate:"omitempty"`
	Extra   json.RawMessage `json:"extra"   validate:"omitempty"`
}

func (u *UpsertSiteContentRequest) ToModel(key, user string) model.SiteContent {
	headingJa, headingEn, headingZh := u.Heading.Columns()
	bodyJa, bodyEn, bodyZh := u.Body.Columns()

	extra := "{}"
	if len(u.Extra) > 0 {
		extra = string(u.Extra)
	}

	return model.SiteContent{
		ID:        uuid.NewString(),
		Key:       key,
		HeadingJa: headingJa,
		HeadingEn: headingEn,
		HeadingZh: headingZh,
		BodyJa:    bodyJa,
		BodyEn:    bodyEn,
		BodyZh:    bodyZh,
		Extra:     extra,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// ToUpdateMap flattens the set fields into column updates.
func (u *UpsertSiteContentRequest) ToUpdateMap(user string) map[string]any {
	fields := map[string]any{}

	if len(u.Heading) > 0 {
		ja, en, zh := u.Heading.Columns()
		fields[model.FieldHeadingJa] = ja
		fields[model.FieldHeadingEn] = en
		fields[model.FieldHeadingZh] = zh
	}

	if len(u.Body) > 0 {
		ja, en, zh := u.Body.Columns()
		fields[model.FieldBodyJa] = ja
		fields[model.FieldBodyEn] = en
		fields[model.FieldBodyZh] = zh
	}

	if len(u.Extra) > 0 {
		fields[model.FieldExtra] = string(u.Extra)
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = user

	return fields
}

type SiteContentResponse struct {
	ID      string          `json:"id"`
	Key     string          `json:"key"`
	Heading language.Text   `json:"heading"`
	Body    language.Text   `json:"body"`
	Extra   json.RawMessage `json:"extra"`
	gDto.Metadata
}

func (s *SiteContentResponse) FromModel(mod model.SiteContent) {
	s.ID = mod.ID
	s.Key = mod.Key
	s.Heading = language.FromColumns(mod.HeadingJa, mod.HeadingEn, mod.HeadingZh)
	s.Body = language.FromColumns(mod.BodyJa, mod.BodyEn, mod.BodyZh)
	s.Extra = json.RawMessage(mod.Extra)
	s.Metadata.FromModel(mod.Metadata)
}

// Localize collapses the multi-language fields to the requested variant.
func (s *SiteContentResponse) Localize(lang string) {
	s.Heading = s.Heading.Pick(lang)
	s.Body = s.Body.Pick(lang)
}

type GetSiteContentsResponse struct {
	Contents  []SiteContentResponse `json:"contents"`
	TotalPage int                   `json:"total_page"`
	TotalData int                   `json:"total_data"`
}

func (s *GetSiteContentsResponse) FromModels(models []model.SiteContent, totalData, limit int) {
	s.TotalData = totalData
	s.TotalPage = shared.CalculateTotalPage(totalData, limit)

	s.Contents = make([]SiteContentResponse, len(models))
	for i, mod := range models {
		s.Contents[i].FromModel(mod)
	}
}

// Localize collapses the multi-language fields of every section to the
// requested variant.
func (s *GetSiteContentsResponse) Localize(lang string) {
	for i := range s.Contents {
		s.Contents[i].Localize(lang)
	}
}
