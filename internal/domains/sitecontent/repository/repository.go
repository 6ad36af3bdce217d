package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"guesthouse/infras/otel"
	"guesthouse/infras/sqlite"
	"guesthouse/internal/domains/sitecontent/model"
	gDto "guesthouse/shared/dto"
	gRepo "guesthouse/shared/repository"
)

type SiteContent interface {
	Insert(ctx context.Context, model model.SiteContent) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.SiteContent, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.SiteContent, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.SiteContent]
	db   *sqlite.Connection
	otel otel.Otel
}

func New(db *sqlite.Connection, otel otel.Otel) SiteContent {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.SiteContent](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
