package message

import (
	"net/http"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/internal/domains/message/model"
	"guesthouse/internal/domains/message/model/dto"
	"guesthouse/internal/domains/message/service"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Message
	otel    otel.Otel
}

func New(service service.Message, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/messages", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateMessage)
		routerGroup.Get("/", handler.GetMessages)
		routerGroup.Get("/{id}", handler.GetMessageByID)
		routerGroup.Patch("/{id}/read", handler.UpdateMessageRead)
		routerGroup.Delete("/{id}", handler.DeleteMessage)
	})
}

// CreateMessage stores a contact message submitted by a visitor.
func (handler *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMessage")
	defer scope.End()

	var req dto.CreateMessageRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create message")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Message created successfully")

	response.WithMessage(w, http.StatusCreated, "Message sent successfully")
}

// GetMessages retrieves all messages based on query parameters.
func (handler *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMessages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, config.Get())

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if read := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldRead)); read != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRead,
			Operator: gDto.FilterOperatorEq,
			Value:    *read,
			Table:    model.TableName,
		})
	}

	messages, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get messages")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Messages retrieved successfully")

	response.WithJSON(w, http.StatusOK, messages)
}

// GetMessageByID retrieves a message by its ID.
func (handler *Handler) GetMessageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMessageByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	message, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get message by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Message retrieved successfully")

	response.WithJSON(w, http.StatusOK, message)
}

// UpdateMessageRead flags a message as read or unread.
func (handler *Handler) UpdateMessageRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMessageRead")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateMessageReadRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateRead(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update message read flag")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Message read flag updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Message updated successfully")
}

// DeleteMessage removes a message permanently.
func (handler *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMessage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete message")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Message deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Message deleted successfully")
}
