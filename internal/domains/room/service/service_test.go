package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"guesthouse/config"
	"guesthouse/infras/otel/mocks"
	s3Mocks "guesthouse/infras/s3/mocks"
	bookingMocks "guesthouse/internal/domains/booking/mocks"
	roomMocks "guesthouse/internal/domains/room/mocks"
	"guesthouse/internal/domains/room/model"
	"guesthouse/internal/domains/room/model/dto"
	"guesthouse/internal/domains/room/service"
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

func newService(t *testing.T) (service.Room, *roomMocks.MockRoom, *bookingMocks.MockBooking, *cacheMocks.MockRedisCache, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "test-bucket"

	svc := service.New(mockRepo, mockBookingRepo, cfg, mockCache, mockOtel, mockS3)

	return svc, mockRepo, mockBookingRepo, mockCache, mockS3
}

func TestRoomService_Create(t *testing.T) {
	svc, mockRepo, _, mockCache, _ := newService(t)

	validReq := dto.CreateRoomRequest{
		Name:         language.Text{"ja": "海の間", "en": "Ocean Room"},
		Description:  language.Text{"ja": "海が見える和室です。"},
		Address:      language.Text{"ja": "東京都"},
		Price:        12000,
		MaxOccupancy: 2,
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateRoomRequest
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "successful creation",
			ctx:  adminContext(),
			req:  validReq,
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
			name:      "unauthenticated",
			ctx:       context.Background(),
			req:       validReq,
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindUnauthorized,
		},
		{
			name: "unsupported language code",
			ctx:  adminContext(),
			req: dto.CreateRoomRequest{
				Name:        language.Text{"fr": "Chambre"},
				Description: language.Text{"ja": "説明"},
			},
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindConstraintViolation,
		},
		{
			name: "missing name",
			ctx:  adminContext(),
			req: dto.CreateRoomRequest{
				Description: language.Text{"ja": "説明"},
			},
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindConstraintViolation,
		},
		{
			name: "repository error",
			ctx:  adminContext(),
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
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

func TestRoomService_Get(t *testing.T) {
	svc, mockRepo, _, mockCache, _ := newService(t)

	room := model.Room{
		ID:     "test-id",
		NameJa: "海の間",
		NameEn: "Ocean Room",
		Active: true,
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "cache miss, found in db",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "not found",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Get(context.Background(), "test-id")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, failure.GetKind(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, room.ID, result.ID)
				assert.Equal(t, "海の間", result.Name.Get(language.Japanese))
				assert.Equal(t, "Ocean Room", result.Name.Get(language.English))
			}
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	current := model.Room{
		ID:            "test-id",
		NameJa:        "海の間",
		DescriptionJa: "海の見える和室",
		Active:        true,
	}

	t.Run("replacing the name keeps the other fields", func(t *testing.T) {
		svc, mockRepo, _, mockCache, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(current, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "Ocean Suite", fields[model.FieldNameEn])

				return nil
			})
		mockCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()
		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := svc.Update(adminContext(), dto.UpdateRoomRequest{
			Name: language.Text{"en": "Ocean Suite"},
		}, "test-id")
		assert.NoError(t, err)
	})

	t.Run("blanking every name variant is rejected", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(current, nil)

		err := svc.Update(adminContext(), dto.UpdateRoomRequest{
			Name: language.Text{"ja": ""},
		}, "test-id")
		assert.Error(t, err)
		assert.Equal(t, failure.KindConstraintViolation, failure.GetKind(err))
	})

	t.Run("blanking every description variant is rejected", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(current, nil)

		err := svc.Update(adminContext(), dto.UpdateRoomRequest{
			Description: language.Text{"ja": "", "en": ""},
		}, "test-id")
		assert.Error(t, err)
		assert.Equal(t, failure.KindConstraintViolation, failure.GetKind(err))
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc, _, _, _, _ := newService(t)

		err := svc.Update(context.Background(), dto.UpdateRoomRequest{}, "test-id")
		assert.Error(t, err)
		assert.Equal(t, failure.KindUnauthorized, failure.GetKind(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	svc, mockRepo, mockBookingRepo, mockCache, mockS3 := newService(t)

	room := model.Room{
		ID:     "test-id",
		NameJa: "海の間",
		Images: []string{"https://cdn.example.com/test-bucket/room/img.png"},
	}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "successful delete",
			ctx:  adminContext(),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockBookingRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockS3.EXPECT().
					GetObjectNameFromURL("test-bucket", room.Images[0]).
					Return("img.png")

				mockS3.EXPECT().
					DeleteFile(gomock.Any(), "test-bucket", model.EntityName, "img.png").
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
			name:      "unauthenticated",
			ctx:       context.Background(),
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindUnauthorized,
		},
		{
			name: "not found",
			ctx:  adminContext(),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
		{
			name: "blocked by active bookings",
			ctx:  adminContext(),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockBookingRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(2, nil)
			},
			wantErr:  true,
			wantKind: failure.KindReferentialConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(tt.ctx, "test-id")

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

func TestRoomService_GetAll(t *testing.T) {
	svc, mockRepo, _, mockCache, _ := newService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantTotal int
	}{
		{
			name: "successful get all",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Room{{ID: "test-id", NameJa: "海の間"}}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:   false,
			wantTotal: 1,
		},
		{
			name: "get all error",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("get all error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTotal, result.TotalData)
			}
		})
	}
}
