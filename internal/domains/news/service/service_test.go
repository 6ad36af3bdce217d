package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"guesthouse/config"
	"guesthouse/infras/otel/mocks"
	newsMocks "guesthouse/internal/domains/news/mocks"
	"guesthouse/internal/domains/news/model"
	"guesthouse/internal/domains/news/model/dto"
	"guesthouse/internal/domains/news/service"
	cacheMocks "guesthouse/shared/cache/mocks"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	"guesthouse/shared/language"
)

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUsername, "test-admin")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func boolPtr(v bool) *bool {
	return &v
}

func newService(t *testing.T) (service.News, *newsMocks.MockNews, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := newsMocks.NewMockNews(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	return svc, mockRepo, mockCache
}

func TestNewsService_Create(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateNewsRequest
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "draft without default language",
			ctx:  adminContext(),
			req: dto.CreateNewsRequest{
				Title: language.Text{"en": "Summer opening"},
				Body:  language.Text{"en": "We open in July."},
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "published with default language",
			ctx:  adminContext(),
			req: dto.CreateNewsRequest{
				Title:     language.Text{"ja": "夏の営業について", "en": "Summer opening"},
				Body:      language.Text{"ja": "7月から営業します。"},
				Published: boolPtr(true),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "published without default language",
			ctx:  adminContext(),
			req: dto.CreateNewsRequest{
				Title:     language.Text{"en": "Summer opening"},
				Body:      language.Text{"en": "We open in July."},
				Published: boolPtr(true),
			},
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindConstraintViolation,
		},
		{
			name: "unsupported language code",
			ctx:  adminContext(),
			req: dto.CreateNewsRequest{
				Title: language.Text{"de": "Sommer"},
				Body:  language.Text{"ja": "本文"},
			},
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindConstraintViolation,
		},
		{
			name: "unauthenticated",
			ctx:  context.Background(),
			req: dto.CreateNewsRequest{
				Title: language.Text{"ja": "お知らせ"},
				Body:  language.Text{"ja": "本文"},
			},
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Create(tt.ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, failure.GetKind(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewsService_GetAll(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 20}
	// A request without an explicit sort lists newest-published first.
	sorted := gDto.QueryParams{Page: 1, Limit: 20, SortBy: model.FieldPublishedAt, SortDir: gDto.SortDirDesc}

	hasPublishedOnlyFilter := func(fg gDto.FilterGroup) bool {
		for _, raw := range fg.Filters {
			if f, ok := raw.(gDto.Filter); ok && f.Field == model.FieldPublished && f.Value == true {
				return true
			}
		}

		return false
	}

	t.Run("anonymous callers only see published articles", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)
		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fg gDto.FilterGroup) (int, error) {
				assert.True(t, hasPublishedOnlyFilter(fg))

				return 1, nil
			})
		mockRepo.EXPECT().
			GetAll(gomock.Any(), sorted, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, fg gDto.FilterGroup, _ ...string) ([]model.News, error) {
				assert.True(t, hasPublishedOnlyFilter(fg))

				return []model.News{{ID: "news-1", TitleJa: "夏の営業", Published: true}}, nil
			})
		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd})
		assert.NoError(t, err)
		assert.Len(t, res.News, 1)
	})

	t.Run("admins see the listing unfiltered", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)
		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fg gDto.FilterGroup) (int, error) {
				assert.False(t, hasPublishedOnlyFilter(fg))

				return 2, nil
			})
		mockRepo.EXPECT().
			GetAll(gomock.Any(), sorted, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, fg gDto.FilterGroup, _ ...string) ([]model.News, error) {
				assert.False(t, hasPublishedOnlyFilter(fg))

				return []model.News{
					{ID: "news-1", TitleJa: "夏の営業", Published: true},
					{ID: "news-2", TitleJa: "下書き", Published: false},
				}, nil
			})
		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.GetAll(adminContext(), params, gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd})
		assert.NoError(t, err)
		assert.Len(t, res.News, 2)
	})
}

func TestNewsService_Get(t *testing.T) {
	t.Run("anonymous callers see published articles", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.News{ID: "news-1", TitleJa: "夏の営業", Published: true}, nil)
		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(context.Background(), "news-1")
		assert.NoError(t, err)
		assert.Equal(t, "news-1", res.ID)
	})

	t.Run("drafts are hidden from anonymous callers", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.News{ID: "news-2", TitleJa: "下書き", Published: false}, nil)

		_, err := svc.Get(context.Background(), "news-2")
		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("cached drafts are hidden from anonymous callers", func(t *testing.T) {
		svc, _, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, out any) error {
				*(out.(*dto.NewsResponse)) = dto.NewsResponse{ID: "news-2", Published: false}

				return nil
			})

		_, err := svc.Get(context.Background(), "news-2")
		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("admins see drafts", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.News{ID: "news-2", TitleJa: "下書き", Published: false}, nil)
		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(adminContext(), "news-2")
		assert.NoError(t, err)
		assert.False(t, res.Published)
	})
}

func TestNewsService_Update(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	draft := model.News{
		ID:      "test-id",
		TitleEn: "Summer opening",
		BodyEn:  "We open in July.",
	}

	published := model.News{
		ID:        "test-id",
		TitleJa:   "夏の営業について",
		BodyJa:    "7月から営業します。",
		Published: true,
	}

	tests := []struct {
		name      string
		req       dto.UpdateNewsRequest
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "publish draft after adding default language",
			req: dto.UpdateNewsRequest{
				Title:     language.Text{"ja": "夏の営業について"},
				Body:      language.Text{"ja": "7月から営業します。"},
				Published: boolPtr(true),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(draft, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "publish draft without default language",
			req: dto.UpdateNewsRequest{
				Published: boolPtr(true),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(draft, nil)
			},
			wantErr:  true,
			wantKind: failure.KindConstraintViolation,
		},
		{
			name: "clearing default title of published news",
			req: dto.UpdateNewsRequest{
				Title: language.Text{"en": "Summer opening"},
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(published, nil)
			},
			wantErr:  true,
			wantKind: failure.KindConstraintViolation,
		},
		{
			name: "not found",
			req: dto.UpdateNewsRequest{
				Title: language.Text{"ja": "お知らせ"},
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.News{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(adminContext(), tt.req, "test-id")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, failure.GetKind(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewsService_Delete(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful delete",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(adminContext(), "test-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
