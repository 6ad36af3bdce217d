package model

import "guesthouse/shared/model"

const (
	TableName  = "site_contents"
	EntityName = "site content"

	FieldID        = "id"
	FieldKey       = "key"
	FieldHeadingJa = "heading_ja"
	FieldHeadingEn = "heading_en"
	FieldHeadingZh = "heading_zh"
	FieldBodyJa    = "body_ja"
	FieldBodyEn    = "body_en"
	FieldBodyZh    = "body_zh"
	FieldExtra     = "extra"
)

// Section keys the public site renders. They are seeded on first run and
// never deleted.
const (
	KeyHomepageHero = "homepage_hero"
	KeyContact      = "contact"
	KeyAccess       = "access"
)

var DefaultKeys = []string{KeyHomepageHero, KeyContact, KeyAccess}

type SiteContent struct {
	ID        string `db:"id"`
	Key       string `db:"key"`
	HeadingJa string `db:"heading_ja"`
	HeadingEn string `db:"heading_en"`
	HeadingZh string `db:"heading_zh"`
	BodyJa    string `db:"body_ja"`
	BodyEn    string `db:"body_en"`
	BodyZh    string `db:"body_zh"`
	Extra     string `db:"extra"`
	model.Metadata
}
