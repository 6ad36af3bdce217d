package dto

import (
	"net/http"
	"strconv"
	"strings"

	"guesthouse/config"
	"guesthouse/shared/constant"
	"guesthouse/shared/failure"
	"guesthouse/shared/language"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest populates QueryParams from the HTTP request. Pagination is
// 1-indexed; a missing page or limit falls back to the configured defaults
// and an oversized limit is clamped to the configured maximum, never
// rejected.
func (q *QueryParams) FromRequest(r *http.Request, cfg *config.Config) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = limitInt
		}
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := queryParams.Get(constant.RequestParamSortDir); strings.ToUpper(sortDir) == SortDirAsc || strings.ToUpper(sortDir) == SortDirDesc {
		q.SortDir = strings.ToUpper(sortDir)
	}

	q.Clamp(cfg)
}

// DefaultSort fills in the entity's natural ordering when the request did
// not ask for one. Listings are never returned in arbitrary order.
func (q *QueryParams) DefaultSort(sortBy string) {
	if q.SortBy == "" {
		q.SortBy = sortBy
	}

	if q.SortDir == "" {
		q.SortDir = constant.DefaultValueSortDir
	}
}

// LangFromRequest reads the lang query parameter. An empty value means the
// caller wants every language variant; anything outside the supported set
// is rejected.
func LangFromRequest(r *http.Request) (string, error) {
	lang := r.URL.Query().Get(constant.RequestParamLang)
	if lang == "" {
		return "", nil
	}

	if !language.IsSupported(lang) {
		return "", failure.BadRequestFromString("unsupported lang: " + lang) // nolint:wrapcheck
	}

	return lang, nil
}

// Clamp enforces the pagination defaults and ceiling from configuration.
func (q *QueryParams) Clamp(cfg *config.Config) {
	if q.Page <= 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit <= 0 {
		q.Limit = cfg.App.Pagination.DefaultLimit
	}

	if max := cfg.App.Pagination.MaxLimit; max > 0 && q.Limit > max {
		q.Limit = max
	}
}
