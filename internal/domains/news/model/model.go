package model

import (
	"time"

	"guesthouse/shared/model"
)

const (
	TableName  = "news"
	EntityName = "news"

	FieldID          = "id"
	FieldTitleJa     = "title_ja"
	FieldTitleEn     = "title_en"
	FieldTitleZh     = "title_zh"
	FieldBodyJa      = "body_ja"
	FieldBodyEn      = "body_en"
	FieldBodyZh      = "body_zh"
	FieldPublished   = "published"
	FieldPublishedAt = "published_at"
)

type News struct {
	ID          string     `db:"id"`
	TitleJa     string     `db:"title_ja"`
	TitleEn     string     `db:"title_en"`
	TitleZh     string     `db:"title_zh"`
	BodyJa      string     `db:"body_ja"`
	BodyEn      string     `db:"body_en"`
	BodyZh      string     `db:"body_zh"`
	Published   bool       `db:"published"`
	PublishedAt *time.Time `db:"published_at"`
	model.Metadata
}
