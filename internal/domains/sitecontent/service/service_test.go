package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"guesthouse/config"
	otelMocks "guesthouse/infras/otel/mocks"
	"guesthouse/internal/domains/sitecontent/mocks"
	"guesthouse/internal/domains/sitecontent/model"
	"guesthouse/internal/domains/sitecontent/model/dto"
	"guesthouse/internal/domains/sitecontent/service"
	cacheMocks "guesthouse/shared/cache/mocks"
	"guesthouse/shared/constant"
	"guesthouse/shared/failure"
	"guesthouse/shared/language"
)

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUsername, "test-admin")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func newService(t *testing.T) (service.SiteContent, *mocks.MockSiteContent, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockSiteContent(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, otelMocks.NewOtel()), mockRepo, mockCache
}

func TestSiteContentService_GetByKey(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.SiteContent{
				ID:        "content-1",
				Key:       model.KeyHomepageHero,
				HeadingJa: "ようこそ",
				HeadingEn: "Welcome",
				Extra:     "{}",
			}, nil)
		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.GetByKey(context.Background(), model.KeyHomepageHero)
		assert.NoError(t, err)
		assert.Equal(t, model.KeyHomepageHero, res.Key)
		assert.Equal(t, "Welcome", res.Heading.Get(language.English))
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.SiteContent{}, nil)

		_, err := svc.GetByKey(context.Background(), "missing")
		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})
}

func TestSiteContentService_Upsert(t *testing.T) {
	req := dto.UpsertSiteContentRequest{
		Heading: language.Text{"ja": "アクセス", "en": "Access"},
		Body:    language.Text{"ja": "駅から徒歩5分"},
	}

	t.Run("inserts a new section", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.SiteContent{}, nil)
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod model.SiteContent) error {
				assert.Equal(t, model.KeyAccess, mod.Key)
				assert.Equal(t, "アクセス", mod.HeadingJa)
				assert.Equal(t, "{}", mod.Extra)

				return nil
			})
		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Upsert(adminContext(), req, model.KeyAccess)
		assert.NoError(t, err)
	})

	t.Run("updates an existing section", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.SiteContent{ID: "content-1", Key: model.KeyAccess}, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Upsert(adminContext(), req, model.KeyAccess)
		assert.NoError(t, err)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.Upsert(context.Background(), req, model.KeyAccess)
		assert.Error(t, err)
		assert.Equal(t, failure.KindUnauthorized, failure.GetKind(err))
	})

	t.Run("unsupported language code", func(t *testing.T) {
		svc, _, _ := newService(t)

		bad := dto.UpsertSiteContentRequest{
			Heading: language.Text{"fr": "Accès"},
		}

		err := svc.Upsert(adminContext(), bad, model.KeyAccess)
		assert.Error(t, err)
		assert.Equal(t, failure.KindConstraintViolation, failure.GetKind(err))
	})

	t.Run("invalid extra JSON", func(t *testing.T) {
		svc, _, _ := newService(t)

		bad := dto.UpsertSiteContentRequest{
			Extra: json.RawMessage(`{"map":`),
		}

		err := svc.Upsert(adminContext(), bad, model.KeyAccess)
		assert.Error(t, err)
		assert.Equal(t, failure.KindConstraintViolation, failure.GetKind(err))
	})
}

func TestSiteContentService_EnsureDefaults(t *testing.T) {
	t.Run("seeds missing sections only", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		for i, key := range model.DefaultKeys {
			exists := i == 0

			mockRepo.EXPECT().
				Exist(gomock.Any(), gomock.Any()).
				Return(exists, nil)

			if !exists {
				key := key
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mod model.SiteContent) error {
						assert.Equal(t, key, mod.Key)
						assert.Equal(t, "system", mod.CreatedBy)

						return nil
					})
			}
		}

		err := svc.EnsureDefaults(context.Background())
		assert.NoError(t, err)
	})

	t.Run("propagates existence check error", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, errors.New("db closed"))

		err := svc.EnsureDefaults(context.Background())
		assert.Error(t, err)
	})
}
