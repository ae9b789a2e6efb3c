package service

import (
	"context"
	"testing"

	"github.com/ecodeclub/jobgenie/internal/resource/internal/domain"
	"github.com/ecodeclub/jobgenie/internal/resource/internal/event"
	repomocks "github.com/ecodeclub/jobgenie/internal/resource/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type nopProducer struct{}

func (nopProducer) Produce(ctx context.Context, evt event.ResourceChangeEvent) error {
	return nil
}

func TestCreateValidation(t *testing.T) {
	testCases := []struct {
		name    string
		kind    domain.Kind
		fields  map[string]any
		wantErr bool
	}{
		{
			name: "title+organization 就放行，其它必填服务端不管",
			kind: domain.KindJob,
			fields: map[string]any{
				"title":        "X",
				"organization": "Y",
			},
		},
		{
			name:    "缺 title 拒绝",
			kind:    domain.KindJob,
			fields:  map[string]any{"organization": "Y"},
			wantErr: true,
		},
		{
			name:    "缺 organization 拒绝",
			kind:    domain.KindResult,
			fields:  map[string]any{"title": "X"},
			wantErr: true,
		},
		{
			name: "重要链接校验的是 link 而不是 organization",
			kind: domain.KindImportantLink,
			fields: map[string]any{
				"title": "X",
				"link":  "https://example.gov.in",
			},
		},
		{
			name:    "重要链接缺 link 拒绝",
			kind:    domain.KindImportantLink,
			fields:  map[string]any{"title": "X"},
			wantErr: true,
		},
		{
			name: "学习资料校验 title+链接字段",
			kind: domain.KindVideo,
			fields: map[string]any{
				"title":      "X",
				"video_link": "https://example.gov.in/v/1",
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := repomocks.NewMockRepository(ctrl)
			if !tc.wantErr {
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
			}
			svc := NewService(repo, nopProducer{})
			_, err := svc.Create(context.Background(),
				tc.kind, domain.Record{Kind: tc.kind, Fields: tc.fields})
			if tc.wantErr {
				// 校验不过：不碰存储
				assert.ErrorIs(t, err, ErrInvalidRecord)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCreateDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockRepository(ctrl)
	var saved domain.Record
	repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, sch domain.Schema, rec domain.Record) (int64, error) {
			saved = rec
			return 7, nil
		})
	svc := NewService(repo, nopProducer{})
	id, err := svc.Create(context.Background(), domain.KindJob, domain.Record{
		Kind: domain.KindJob,
		Fields: map[string]any{
			"title":        "X",
			"organization": "Y",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	// featured 缺省 false，job 的 status 缺省 active
	assert.Equal(t, false, saved.Fields["featured"])
	assert.Equal(t, "active", saved.Fields["status"])
}

func TestCreateKeepsExplicitValues(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockRepository(ctrl)
	var saved domain.Record
	repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, sch domain.Schema, rec domain.Record) (int64, error) {
			saved = rec
			return 1, nil
		})
	svc := NewService(repo, nopProducer{})
	_, err := svc.Create(context.Background(), domain.KindJob, domain.Record{
		Kind: domain.KindJob,
		Fields: map[string]any{
			"title":        "X",
			"organization": "Y",
			"featured":     true,
			"status":       "upcoming",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, true, saved.Fields["featured"])
	assert.Equal(t, "upcoming", saved.Fields["status"])
}

func TestDeletePropagatesNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockRepository(ctrl)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(ErrRecordNotFound)
	svc := NewService(repo, nopProducer{})
	err := svc.Delete(context.Background(), domain.KindJob, 42)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestUnknownKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockRepository(ctrl)
	svc := NewService(repo, nopProducer{})
	_, err := svc.List(context.Background(), domain.Kind("bogus"), domain.Filter{})
	assert.Error(t, err)
}
