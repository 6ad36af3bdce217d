package di

import (
	"guesthouse/internal/accounts"
	siteContentService "guesthouse/internal/domains/sitecontent/service"
	"guesthouse/transport/http"
)

// App bundles the HTTP server with the dependencies main touches during
// startup.
type App struct {
	HTTP        *http.HTTP
	Accounts    accounts.Store
	SiteContent siteContentService.SiteContent
}
