package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecodeclub/jobgenie/internal/resource/internal/domain"
	"github.com/ecodeclub/jobgenie/internal/resource/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService 只按脚本返回，校验的是 handler 的状态码映射
type stubService struct {
	listRes   []domain.Record
	getErr    error
	createID  int64
	createErr error
	updateErr error
	deleteErr error
}

func (s *stubService) List(ctx context.Context, kind domain.Kind, f domain.Filter) ([]domain.Record, error) {
	return s.listRes, nil
}

func (s *stubService) Get(ctx context.Context, kind domain.Kind, id int64) (domain.Record, error) {
	if s.getErr != nil {
		return domain.Record{}, s.getErr
	}
	return domain.Record{ID: id, Kind: kind, Fields: map[string]any{"title": "X"}}, nil
}

func (s *stubService) Create(ctx context.Context, kind domain.Kind, rec domain.Record) (int64, error) {
	return s.createID, s.createErr
}

func (s *stubService) Update(ctx context.Context, kind domain.Kind, id int64, rec domain.Record) error {
	return s.updateErr
}

func (s *stubService) Delete(ctx context.Context, kind domain.Kind, id int64) error {
	return s.deleteErr
}

func newServer(svc service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	server := gin.New()
	hdl := NewHandler(svc)
	hdl.PublicRoutes(server)
	hdl.AdminRoutes(server)
	return server
}

func TestStatusMapping(t *testing.T) {
	testCases := []struct {
		name     string
		svc      *stubService
		method   string
		path     string
		body     string
		wantCode int
	}{
		{
			name:     "列表 200",
			svc:      &stubService{},
			method:   http.MethodGet,
			path:     "/api/jobs",
			wantCode: http.StatusOK,
		},
		{
			name:     "详情不存在 404",
			svc:      &stubService{getErr: service.ErrRecordNotFound},
			method:   http.MethodGet,
			path:     "/api/jobs/99",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "非数字 id 404",
			svc:      &stubService{},
			method:   http.MethodGet,
			path:     "/api/jobs/job-123",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "新建 201",
			svc:      &stubService{createID: 5},
			method:   http.MethodPost,
			path:     "/api/jobs",
			body:     `{"title":"X","organization":"Y"}`,
			wantCode: http.StatusCreated,
		},
		{
			name:     "必填缺失 400",
			svc:      &stubService{createErr: errors.Wrap(service.ErrInvalidRecord, "title")},
			method:   http.MethodPost,
			path:     "/api/jobs",
			body:     `{}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "非法请求体 400",
			svc:      &stubService{},
			method:   http.MethodPost,
			path:     "/api/jobs",
			body:     `{`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "更新目标不存在 404",
			svc:      &stubService{updateErr: service.ErrRecordNotFound},
			method:   http.MethodPut,
			path:     "/api/jobs/3",
			body:     `{"title":"X","organization":"Y"}`,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "删除成功 200",
			svc:      &stubService{},
			method:   http.MethodDelete,
			path:     "/api/jobs/3",
			wantCode: http.StatusOK,
		},
		{
			name:     "删除目标不存在 404",
			svc:      &stubService{deleteErr: service.ErrRecordNotFound},
			method:   http.MethodDelete,
			path:     "/api/jobs/3",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "存储故障 500",
			svc:      &stubService{deleteErr: errors.New("driver: bad connection")},
			method:   http.MethodDelete,
			path:     "/api/jobs/3",
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "学习资料子类路由",
			svc:      &stubService{createID: 1},
			method:   http.MethodPost,
			path:     "/api/study-materials/videos",
			body:     `{"title":"X","video_link":"https://x"}`,
			wantCode: http.StatusCreated,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := newServer(tc.svc)
			var rdr *strings.Reader
			if tc.body != "" {
				rdr = strings.NewReader(tc.body)
			} else {
				rdr = strings.NewReader("")
			}
			req, err := http.NewRequest(tc.method, tc.path, rdr)
			require.NoError(t, err)
			req.Header.Set("content-type", "application/json")
			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)
			assert.Equal(t, tc.wantCode, recorder.Code)
		})
	}
}

func TestRoutesRegisteredForEveryKind(t *testing.T) {
	server := newServer(&stubService{})
	for _, sch := range domain.Schemas() {
		req, err := http.NewRequest(http.MethodGet, "/api/"+sch.Collection, nil)
		require.NoError(t, err)
		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusOK, recorder.Code, string(sch.Kind))
	}
}
