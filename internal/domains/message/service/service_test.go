package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"guesthouse/config"
	otelMocks "guesthouse/infras/otel/mocks"
	"guesthouse/internal/domains/message/mocks"
	"guesthouse/internal/domains/message/model"
	"guesthouse/internal/domains/message/model/dto"
	"guesthouse/internal/domains/message/service"
	cacheMocks "guesthouse/shared/cache/mocks"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
)

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUsername, "test-admin")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func newService(t *testing.T) (service.Message, *mocks.MockMessage, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockMessage(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, otelMocks.NewOtel()), mockRepo, mockCache
}

func boolPtr(b bool) *bool {
	return &b
}

func TestMessageService_Create(t *testing.T) {
	req := dto.CreateMessageRequest{
		SenderName:  "Yamada Taro",
		SenderEmail: "yamada@example.com",
		Body:        "Do you have rooms available next weekend?",
	}

	t.Run("success without authentication", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Create(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("repository error", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("insert failed"))

		err := svc.Create(context.Background(), req)
		assert.Error(t, err)
	})
}

func TestMessageService_GetAll(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 20}
	// A request without an explicit sort lists newest-created first.
	sorted := gDto.QueryParams{Page: 1, Limit: 20, SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	t.Run("success", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)
		mockRepo.EXPECT().
			Count(gomock.Any(), filter).
			Return(1, nil)
		mockRepo.EXPECT().
			GetAll(gomock.Any(), sorted, filter).
			Return([]model.Message{{ID: "msg-1", SenderName: "Yamada Taro"}}, nil)
		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.GetAll(adminContext(), params, filter)
		assert.NoError(t, err)
		assert.Len(t, res.Messages, 1)
		assert.Equal(t, 1, res.TotalData)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.GetAll(context.Background(), params, filter)
		assert.Error(t, err)
		assert.Equal(t, failure.KindUnauthorized, failure.GetKind(err))
	})
}

func TestMessageService_Get(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Message{ID: "msg-1", Body: "hello"}, nil)

		res, err := svc.Get(adminContext(), "msg-1")
		assert.NoError(t, err)
		assert.Equal(t, "msg-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Message{}, nil)

		_, err := svc.Get(adminContext(), "missing")
		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Get(context.Background(), "msg-1")
		assert.Error(t, err)
		assert.Equal(t, failure.KindUnauthorized, failure.GetKind(err))
	})
}

func TestMessageService_UpdateRead(t *testing.T) {
	req := dto.UpdateMessageReadRequest{Read: boolPtr(true)}

	t.Run("success", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, true, fields[model.FieldRead])
				assert.Equal(t, "test-admin", fields[constant.FieldModifiedBy])

				return nil
			})
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.UpdateRead(adminContext(), req, "msg-1")
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.UpdateRead(adminContext(), req, "missing")
		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.UpdateRead(context.Background(), req, "msg-1")
		assert.Error(t, err)
		assert.Equal(t, failure.KindUnauthorized, failure.GetKind(err))
	})
}

func TestMessageService_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Delete(adminContext(), "msg-1")
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(adminContext(), "missing")
		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.Delete(context.Background(), "msg-1")
		assert.Error(t, err)
		assert.Equal(t, failure.KindUnauthorized, failure.GetKind(err))
	})
}
