package sitecontent

import (
	"net/http"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/internal/domains/sitecontent/model/dto"
	"guesthouse/internal/domains/sitecontent/service"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.SiteContent
	otel    otel.Otel
}

func New(service service.SiteContent, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/content", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSiteContents)
		routerGroup.Get("/{key}", handler.GetSiteContentByKey)
		routerGroup.Put("/{key}", handler.UpsertSiteContent)
	})
}

// GetSiteContents retrieves all site content blocks based on query parameters.
func (handler *Handler) GetSiteContents(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSiteContents")
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

	contents, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get site contents")

		response.WithError(w, err)

		return
	}

	contents.Localize(lang)
	scope.AddEvent("Site contents retrieved successfully")

	response.WithJSON(w, http.StatusOK, contents)
}

// GetSiteContentByKey retrieves a single content block by its key.
func (handler *Handler) GetSiteContentByKey(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSiteContentByKey")
	defer scope.End()

	lang, err := gDto.LangFromRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	key := chi.URLParam(r, constant.RequestParamKey)

	content, err := handler.service.GetByKey(ctx, key)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get site content by key")

		response.WithError(w, err)

		return
	}

	content.Localize(lang)
	scope.AddEvent("Site content retrieved successfully")

	response.WithJSON(w, http.StatusOK, content)
}

// UpsertSiteContent creates or replaces the content block stored under a key.
func (handler *Handler) UpsertSiteContent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertSiteContent")
	defer scope.End()

	key := chi.URLParam(r, constant.RequestParamKey)

	var req dto.UpsertSiteContentRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Upsert(ctx, req, key); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upsert site content")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Site content saved successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Content saved successfully")
}
