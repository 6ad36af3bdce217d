package backup

import (
	"net/http"

	"guesthouse/infras/otel"
	"guesthouse/internal/backup"
	"guesthouse/shared/constant"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	manager backup.Manager
	otel    otel.Otel
}

func New(manager backup.Manager, otel otel.Otel) Handler {
	return Handler{
		manager: manager,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/backups", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBackup)
		routerGroup.Get("/", handler.GetBackups)
	})
}

// CreateBackup snapshots the database into a new archive.
func (handler *Handler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBackup")
	defer scope.End()

	archive, err := handler.manager.Create(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create backup")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Backup created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, archive)
}

// GetBackups lists the archives currently on disk, newest first.
func (handler *Handler) GetBackups(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBackups")
	defer scope.End()

	archives, err := handler.manager.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list backups")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Backups retrieved successfully")

	response.WithJSON(w, http.StatusOK, archives)
}
