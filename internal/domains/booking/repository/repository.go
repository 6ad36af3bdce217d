package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"guesthouse/infras/otel"
	"guesthouse/infras/sqlite"
	"guesthouse/internal/domains/booking/model"
	gDto "guesthouse/shared/dto"
	gRepo "guesthouse/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateStatus(ctx context.Context, id, fromStatus string, fields map[string]any) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *sqlite.Connection
	otel otel.Otel
}

func New(db *sqlite.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// UpdateStatus applies fields to the booking only while it still holds
// fromStatus, returning the number of rows changed. A zero count means a
// concurrent writer moved the booking first.
func (repo *repositoryImpl) UpdateStatus(ctx context.Context, id, fromStatus string, fields map[string]any) (int64, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
			},
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    fromStatus,
			},
		},
	}

	return repo.UpdateWithCount(ctx, fields, filter)
}
