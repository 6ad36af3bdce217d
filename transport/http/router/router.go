package router

import (
	"guesthouse/internal/handlers/auth"
	"guesthouse/internal/handlers/backup"
	"guesthouse/internal/handlers/booking"
	"guesthouse/internal/handlers/message"
	"guesthouse/internal/handlers/news"
	"guesthouse/internal/handlers/room"
	"guesthouse/internal/handlers/sitecontent"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Room        room.Handler
	Booking     booking.Handler
	Message     message.Handler
	News        news.Handler
	SiteContent sitecontent.Handler
	Backup      backup.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Message.Router(routerGroup)
		r.DomainHandlers.News.Router(routerGroup)
		r.DomainHandlers.SiteContent.Router(routerGroup)
		r.DomainHandlers.Backup.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
