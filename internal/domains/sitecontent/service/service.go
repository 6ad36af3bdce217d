package service

import (
	"context"
	"encoding/json"
	"fmt"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/internal/domains/sitecontent/model"
	"guesthouse/internal/domains/sitecontent/model/dto"
	"guesthouse/internal/domains/sitecontent/repository"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	"guesthouse/shared/language"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetContent    = "content:get"
	cacheGetAllContent = "content:gets"
	cacheCountContent  = "content:count"
)

type SiteContent interface {
	GetByKey(ctx context.Context, key string) (dto.SiteContentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSiteContentsResponse, error)
	Upsert(ctx context.Context, req dto.UpsertSiteContentRequest, key string) error
	EnsureDefaults(ctx context.Context) error
}

type serviceImpl struct {
	repo  repository.SiteContent
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.SiteContent, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) SiteContent {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func filterByKey(key string) gDto.FilterGroup {
	return shared.FilterByID(key, model.FieldKey, model.TableName)
}

func (s *serviceImpl) GetByKey(ctx context.Context, key string) (res dto.SiteContentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByKey")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetContent, key)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for site content")

		return res, nil
	}

	content, err := s.repo.Get(ctx, filterByKey(key))
	if err != nil {
		log.Error().Err(err).Msg("failed to get site content")

		return res, fmt.Errorf("failed to get site content: %w", err)
	}

	if content.ID == constant.Empty {
		return res, failure.NotFound("site content") // nolint:wrapcheck
	}

	res.FromModel(content)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save site content to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSiteContentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.DefaultSort(constant.FieldCreatedAt)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllContent, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count site contents")

		return res, fmt.Errorf("failed to count site contents: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get site contents")

		return res, fmt.Errorf("failed to get site contents: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save site contents to cache")
		}
	}()

	return res, nil
}

// Upsert creates the section when the key is new and updates it otherwise.
// Sections are never deleted.
func (s *serviceImpl) Upsert(ctx context.Context, req dto.UpsertSiteContentRequest, key string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.Empty {
		return failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	if err = shared.ValidateTexts(map[string]language.Text{
		"heading": req.Heading,
		"body":    req.Body,
	}); err != nil {
		return err
	}

	if len(req.Extra) > 0 && !json.Valid(req.Extra) {
		return failure.ConstraintViolationf(model.FieldExtra, "must be valid JSON") // nolint:wrapcheck
	}

	current, err := s.repo.Get(ctx, filterByKey(key))
	if err != nil {
		log.Error().Err(err).Msg("failed to check site content existence")

		return fmt.Errorf("failed to check site content existence: %w", err)
	}

	if current.ID == constant.Empty {
		if err := s.repo.Insert(ctx, req.ToModel(key, user)); err != nil {
			return err
		}
	} else {
		if err := s.repo.Update(ctx, req.ToUpdateMap(user), filterByKey(key)); err != nil {
			log.Error().Err(err).Msg("failed to update site content")

			return fmt.Errorf("failed to update site content: %w", err)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetContent, key)); err != nil {
			log.Error().Err(err).Msg("failed to delete site content cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllContent)
		shared.InvalidateCaches(c, s.cache, cacheCountContent)
	}()

	return nil
}

// EnsureDefaults seeds the section keys the public site renders. Existing
// sections are left untouched, so it is safe to run on every start.
func (s *serviceImpl) EnsureDefaults(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EnsureDefaults")
	defer scope.End()
	defer scope.TraceIfError(err)

	for _, key := range model.DefaultKeys {
		exist, err := s.repo.Exist(ctx, filterByKey(key))
		if err != nil {
			return fmt.Errorf("failed to check site content %s: %w", key, err)
		}

		if exist {
			continue
		}

		seed := dto.UpsertSiteContentRequest{}
		if err := s.repo.Insert(ctx, seed.ToModel(key, "system")); err != nil {
			return fmt.Errorf("failed to seed site content %s: %w", key, err)
		}

		log.Info().Str("key", key).Msg("seeded site content section")
	}

	return nil
}
