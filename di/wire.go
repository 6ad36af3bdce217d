//go:build wireinject
// +build wireinject

package di

import (
	"guesthouse/config"
	"guesthouse/infras/jwt"
	"guesthouse/infras/otel"
	"guesthouse/infras/redis"
	"guesthouse/infras/s3"
	"guesthouse/infras/sqlite"
	"guesthouse/internal/accounts"
	"guesthouse/internal/backup"
	"guesthouse/permissions"
	"guesthouse/shared/cache"
	"guesthouse/transport/http"
	"guesthouse/transport/http/middleware"
	"guesthouse/transport/http/router"

	authService "guesthouse/internal/domains/auth/service"
	bookingRepository "guesthouse/internal/domains/booking/repository"
	bookingService "guesthouse/internal/domains/booking/service"
	messageRepository "guesthouse/internal/domains/message/repository"
	messageService "guesthouse/internal/domains/message/service"
	newsRepository "guesthouse/internal/domains/news/repository"
	newsService "guesthouse/internal/domains/news/service"
	roomRepository "guesthouse/internal/domains/room/repository"
	roomService "guesthouse/internal/domains/room/service"
	siteContentRepository "guesthouse/internal/domains/sitecontent/repository"
	siteContentService "guesthouse/internal/domains/sitecontent/service"

	authHandler "guesthouse/internal/handlers/auth"
	backupHandler "guesthouse/internal/handlers/backup"
	bookingHandler "guesthouse/internal/handlers/booking"
	messageHandler "guesthouse/internal/handlers/message"
	newsHandler "guesthouse/internal/handlers/news"
	roomHandler "guesthouse/internal/handlers/room"
	siteContentHandler "guesthouse/internal/handlers/sitecontent"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	sqlite.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var accountsDomain = wire.NewSet(
	accounts.NewStore,
	authService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var messageDomain = wire.NewSet(
	messageRepository.New,
	messageService.New,
)

var newsDomain = wire.NewSet(
	newsRepository.New,
	newsService.New,
)

var siteContentDomain = wire.NewSet(
	siteContentRepository.New,
	siteContentService.New,
)

var backupDomain = wire.NewSet(
	backup.NewManager,
)

var domains = wire.NewSet(
	accountsDomain,
	roomDomain,
	bookingDomain,
	messageDomain,
	newsDomain,
	siteContentDomain,
	backupDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	messageHandler.New,
	newsHandler.New,
	siteContentHandler.New,
	backupHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
