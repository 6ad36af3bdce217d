package news

import (
	"net/http"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/internal/domains/news/model"
	"guesthouse/internal/domains/news/model/dto"
	"guesthouse/internal/domains/news/service"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.News
	otel    otel.Otel
}

func New(service service.News, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/news", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateNews)
		routerGroup.Get("/", handler.GetNews)
		routerGroup.Get("/{id}", handler.GetNewsByID)
		routerGroup.Patch("/{id}", handler.UpdateNews)
		routerGroup.Delete("/{id}", handler.DeleteNews)
	})
}

// CreateNews publishes or drafts a news article.
func (handler *Handler) CreateNews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateNews")
	defer scope.End()

	var req dto.CreateNewsRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create news")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("News created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "News created successfully")
}

// GetNews retrieves news articles based on query parameters. The published
// filter narrows the listing, which is how the public site requests it.
func (handler *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNews")
	defer scope.End()

	lang, err := gDto.LangFromRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, config.Get())

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if published := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldPublished)); published != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPublished,
			Operator: gDto.FilterOperatorEq,
			Value:    *published,
			Table:    model.TableName,
		})
	}

	news, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get news")

		response.WithError(w, err)

		return
	}

	news.Localize(lang)
	scope.AddEvent("News retrieved successfully")

	response.WithJSON(w, http.StatusOK, news)
}

// GetNewsByID retrieves a news article by its ID.
func (handler *Handler) GetNewsByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNewsByID")
	defer scope.End()

	lang, err := gDto.LangFromRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	news, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get news by ID")

		response.WithError(w, err)

		return
	}

	news.Localize(lang)
	scope.AddEvent("News retrieved successfully")

	response.WithJSON(w, http.StatusOK, news)
}

// UpdateNews edits a news article.
func (handler *Handler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateNews")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateNewsRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update news")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("News updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "News updated successfully")
}

// DeleteNews removes a news article permanently.
func (handler *Handler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteNews")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete news")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("News deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "News deleted successfully")
}
