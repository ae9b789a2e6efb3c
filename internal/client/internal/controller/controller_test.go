package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ecodeclub/jobgenie/internal/client/internal/domain"
	"github.com/ecodeclub/jobgenie/internal/client/internal/engine"
	"github.com/ecodeclub/jobgenie/internal/resource"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobController(srvURL string) *Controller {
	sch, _ := resource.SchemaOf(resource.KindJob)
	return New(sch, engine.New(srvURL, nil, time.Second))
}

func fillJobForm(t *testing.T, c *Controller) {
	t.Helper()
	for name, val := range map[string]any{
		"title":        "SBI Clerk Recruitment 2026",
		"organization": "State Bank of India",
		"category":     "banking",
		"last_date":    "2026-09-30",
		"apply_link":   "https://example.gov.in/jobs/1",
	} {
		require.NoError(t, c.SetField(name, val))
	}
}

// TestSaveDuplicateSubmitGuard 保存在途时再点一次保存，
// 服务端只能收到一个请求
func TestSaveDuplicateSubmitGuard(t *testing.T) {
	var posts atomic.Int64
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			if posts.Add(1) == 1 {
				close(started)
				<-release
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":1,"message":"record created"}`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()

	c := jobController(srv.URL)
	c.OpenCreate()
	fillJobForm(t, c)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		firstErr = c.Save(context.Background())
	}()
	<-started
	assert.Equal(t, StateSubmitting, c.State())

	// 第二次点击：空操作，不报错也不发请求
	require.NoError(t, c.Save(context.Background()))
	assert.Equal(t, int64(1), posts.Load())

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.Equal(t, StateClosed, c.State())
	assert.Equal(t, int64(1), posts.Load())
}

// TestSaveValidationBlocksRequest 本地必填没填全，根本不发请求
func TestSaveValidationBlocksRequest(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := jobController(srv.URL)
	c.OpenCreate()
	require.NoError(t, c.SetField("title", "only a title"))

	err := c.Save(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "organization")
	assert.Equal(t, int64(0), hits.Load())
	// 校验失败留在编辑态让人补
	assert.Equal(t, StateEditing, c.State())
}

// TestSaveFailureReturnsToEditing 服务端拒了，回编辑态可重试
func TestSaveFailureReturnsToEditing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"missing required field: organization"}`))
	}))
	defer srv.Close()

	c := jobController(srv.URL)
	c.OpenCreate()
	fillJobForm(t, c)

	err := c.Save(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrServerRejected))
	assert.Equal(t, StateEditing, c.State())

	// 闸门已放开，能再次提交
	err = c.Save(context.Background())
	require.Error(t, err)
}

func TestModalStates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":7,"title":"X","organization":"Y"}`))
	}))
	defer srv.Close()
	c := jobController(srv.URL)

	// 关着的时候改字段没有表单可改
	assert.True(t, errors.Is(c.SetField("title", "X"), ErrNoForm))
	assert.True(t, errors.Is(c.Save(context.Background()), ErrNoForm))

	c.OpenCreate()
	assert.Equal(t, StateEditing, c.State())
	c.Close()
	assert.Equal(t, StateClosed, c.State())

	// 查看模式只读
	require.NoError(t, c.OpenView(context.Background(), "7"))
	assert.Equal(t, StateViewing, c.State())
	assert.True(t, errors.Is(c.SetField("title", "X"), ErrReadOnly))
	assert.Equal(t, "7", c.Current().ID)

	// 编辑模式先取记录再开
	require.NoError(t, c.OpenEdit(context.Background(), "7"))
	assert.Equal(t, StateEditing, c.State())
	assert.Equal(t, "X", c.Current().Str("title"))
}

// TestOpenEditVisibleFailure 取不到记录就报错并保持关闭，
// 不开一个空表单骗人
func TestOpenEditVisibleFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"record not found"}`))
	}))
	defer srv.Close()
	c := jobController(srv.URL)

	err := c.OpenEdit(context.Background(), "424242")
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrNotFound))
	assert.Equal(t, StateClosed, c.State())
}

// TestDeleteMissingIsBenign 删除碰到 404 当作已经删完：
// 不报错、清掉确认目标、刷新列表
func TestDeleteMissingIsBenign(t *testing.T) {
	var lists atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"record not found"}`))
			return
		}
		lists.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()
	c := jobController(srv.URL)

	c.ConfirmDelete("424242")
	require.NoError(t, c.Delete(context.Background()))
	assert.Equal(t, int64(1), lists.Load())

	// 目标已清空，再删没有目标
	assert.True(t, errors.Is(c.Delete(context.Background()), ErrNoForm))
}

// TestDeleteRealFailureKeepsTarget 不是 404 的失败要把错误
// 甩出去，确认弹窗留着可以重试
func TestDeleteRealFailureKeepsTarget(t *testing.T) {
	var code atomic.Int64
	code.Store(http.StatusInternalServerError)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(int(code.Load()))
			_, _ = w.Write([]byte(`{"message":"internal server error"}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()
	c := jobController(srv.URL)

	c.ConfirmDelete("9")
	err := c.Delete(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrServerRejected))

	// 重试成功
	code.Store(http.StatusOK)
	require.NoError(t, c.Delete(context.Background()))
}

// TestListFallsBackToSamples 后端连不上时列表退回样例数据
func TestListFallsBackToSamples(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	c := jobController(baseURL)
	recs, err := c.List(context.Background(), resource.Filter{})
	require.NoError(t, err)
	assert.Len(t, recs, 245)
	assert.True(t, c.Offline())

	sch, _ := resource.SchemaOf(resource.KindJob)
	for _, rec := range recs {
		assert.Empty(t, domain.MissingRequired(sch, rec))
		assert.True(t, rec.Saved())
	}
}

func TestListSendsFilter(t *testing.T) {
	var query atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query.Store(r.URL.RawQuery)
		_, _ = w.Write([]byte(`[{"id":1,"title":"X"}]`))
	}))
	defer srv.Close()
	c := jobController(srv.URL)

	featured := true
	recs, err := c.List(context.Background(), resource.Filter{
		Category: "banking",
		Featured: &featured,
		Status:   "active",
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.False(t, c.Offline())
	assert.Equal(t, "category=banking&featured=true&status=active", query.Load())
	// 整数 id 原样转成字符串携带
	assert.Equal(t, "1", recs[0].ID)
}

// TestCountsOffline 仪表盘统计：后端整个不可用也能出数，
// 全部落到样例数据的固定条数上
func TestCountsOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	set := NewSet(engine.New(baseURL, nil, time.Second))
	counts, err := set.Counts(context.Background())
	require.NoError(t, err)
	assert.Len(t, counts, len(resource.Schemas()))
	assert.Equal(t, 245, counts[resource.KindJob])
}

// TestStudyMaterialsSelectType 切换子类后端点和链接字段跟着换
func TestStudyMaterialsSelectType(t *testing.T) {
	var paths []string
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			mu.Lock()
			paths = append(paths, r.URL.Path)
			mu.Unlock()
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":1,"message":"record created"}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	set := NewSet(engine.New(srv.URL, nil, time.Second))
	m := NewStudyMaterials(set)
	assert.Equal(t, resource.KindNote, m.Selected())
	assert.Equal(t, "download_link", m.LinkField())
	assert.False(t, m.HasThumbnail())

	require.NoError(t, m.SelectType(resource.KindVideo))
	assert.Equal(t, "video_link", m.LinkField())
	assert.True(t, m.HasThumbnail())
	assert.True(t, errors.Is(m.SelectType("job"), ErrUnknownMaterialType))

	m.OpenCreate()
	for name, val := range map[string]any{
		"title":      "Quantitative Aptitude Crash Course",
		"category":   "banking",
		"video_link": "https://example.gov.in/study-materials/videos/1",
	} {
		require.NoError(t, m.SetField(name, val))
	}
	require.NoError(t, m.Save(context.Background()))
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, paths, 1)
	assert.Equal(t, "/api/study-materials/videos", paths[0])
}
