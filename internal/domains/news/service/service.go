package service

import (
	"context"
	"fmt"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/internal/domains/news/model"
	"guesthouse/internal/domains/news/model/dto"
	"guesthouse/internal/domains/news/repository"
	"guesthouse/shared"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	"guesthouse/shared/language"
	"guesthouse/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetNews    = "news:get"
	cacheGetAllNews = "news:gets"
	cacheCountNews  = "news:count"
)

type News interface {
	Create(ctx context.Context, req dto.CreateNewsRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetNewsListResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.NewsResponse, error)
	Update(ctx context.Context, req dto.UpdateNewsRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.News
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.News, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) News {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateNewsRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.Empty {
		return failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	if err = shared.ValidateTexts(map[string]language.Text{
		"title": req.Title,
		"body":  req.Body,
	}); err != nil {
		return err
	}

	if req.Published != nil && *req.Published {
		if !req.Title.HasDefault() || !req.Body.HasDefault() {
			return failure.ConstraintViolationf(model.FieldPublished,
				"published news requires a default-language title and body") // nolint:wrapcheck
		}
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllNews)
		shared.InvalidateCaches(c, s.cache, cacheCountNews)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetNewsListResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	// Anonymous callers never see drafts, whatever filters they asked for.
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "published_only",
			Field:    model.FieldPublished,
			Operator: gDto.FilterOperatorEq,
			Value:    true,
			Table:    model.TableName,
		})
	}

	// News reads newest-published first.
	req.DefaultSort(model.FieldPublishedAt)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllNews, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for news")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count news")

		return res, fmt.Errorf("failed to count news: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get news")

		return res, fmt.Errorf("failed to get news: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save news to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountNews, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count news")

		return res, fmt.Errorf("failed to count news: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save news count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.NewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	cacheKey := shared.BuildCacheKey(cacheGetNews, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for news")

		if role == constant.Empty && !res.Published {
			return dto.NewsResponse{}, failure.NotFound("news") // nolint:wrapcheck
		}

		return res, nil
	}

	news, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get news")

		return res, fmt.Errorf("failed to get news: %w", err)
	}

	if news.ID == constant.Empty {
		return res, failure.NotFound("news") // nolint:wrapcheck
	}

	// Drafts stay invisible outside the admin surface.
	if role == constant.Empty && !news.Published {
		return res, failure.NotFound("news") // nolint:wrapcheck
	}

	res.FromModel(news)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save news to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateNewsRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.Empty {
		return failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	if err = shared.ValidateTexts(map[string]language.Text{
		"title": req.Title,
		"body":  req.Body,
	}); err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check news existence")

		return err
	}

	if current.ID == constant.Empty {
		return failure.NotFound("news") // nolint:wrapcheck
	}

	fields := req.ToUpdateMap(user)

	// The published invariant holds against the record as it will be after
	// the update.
	publishing := current.Published
	if req.Published != nil {
		publishing = *req.Published
	}

	if publishing {
		title := language.FromColumns(current.TitleJa, current.TitleEn, current.TitleZh)
		if len(req.Title) > 0 {
			title = req.Title
		}

		body := language.FromColumns(current.BodyJa, current.BodyEn, current.BodyZh)
		if len(req.Body) > 0 {
			body = req.Body
		}

		if !title.HasDefault() || !body.HasDefault() {
			return failure.ConstraintViolationf(model.FieldPublished,
				"published news requires a default-language title and body") // nolint:wrapcheck
		}

		if current.PublishedAt == nil {
			fields[model.FieldPublishedAt] = timezone.Now()
		}
	}

	if err := s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update news")

		return fmt.Errorf("failed to update news: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.Empty {
		return failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if news exists")

		return fmt.Errorf("failed to check if news exists: %w", err)
	}

	if !exist {
		return failure.NotFound("news") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete news")

		return fmt.Errorf("failed to delete news: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetNews, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete news cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllNews)
		shared.InvalidateCaches(c, s.cache, cacheCountNews)
	}()
}
