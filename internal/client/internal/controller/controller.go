package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/ecodeclub/jobgenie/internal/client/internal/domain"
	"github.com/ecodeclub/jobgenie/internal/client/internal/engine"
	"github.com/ecodeclub/jobgenie/internal/client/internal/fallback"
	"github.com/ecodeclub/jobgenie/internal/resource"
	"github.com/gotomicro/ego/core/elog"
	"github.com/pkg/errors"
)

// ModalState 表单弹窗的状态机：
// Closed → Loading → Viewing/Editing → Submitting → Closed，
// 任意已打开状态都可以 Close，保存失败回到 Editing
type ModalState uint8

const (
	StateClosed ModalState = iota
	StateLoading
	StateViewing
	StateEditing
	StateSubmitting
)

var (
	// ErrValidation 提交前本地校验没过，不发请求
	ErrValidation = errors.New("missing required fields")
	// ErrReadOnly 查看模式不允许改字段
	ErrReadOnly = errors.New("form is read-only")
	// ErrNoForm 当前没有可提交的表单
	ErrNoForm = errors.New("no open form")
)

// Controller 一个资源种类一个实例：列表、增改查弹窗、删除确认。
// busy 是提交闸门，挡掉保存/删除在途时的重复点击
type Controller struct {
	sch    resource.Schema
	eng    *engine.Engine
	gen    *fallback.Generator
	logger *elog.Component

	mu           sync.Mutex
	state        ModalState
	busy         bool
	current      domain.Record
	deleteTarget string
	offline      bool
}

func New(sch resource.Schema, eng *engine.Engine) *Controller {
	return &Controller{
		sch:    sch,
		eng:    eng,
		gen:    fallback.New(),
		logger: elog.DefaultLogger,
	}
}

func (c *Controller) Kind() resource.Kind {
	return c.sch.Kind
}

func (c *Controller) State() ModalState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Offline 上一次列表是否退回了样例数据
func (c *Controller) Offline() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offline
}

func (c *Controller) Current() domain.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// List 拉列表。后端不可用时退回样例数据而不是把错误甩给管理端，
// 这样没起后端也能点着玩
func (c *Controller) List(ctx context.Context, f resource.Filter) ([]domain.Record, error) {
	recs, err := c.fetchList(ctx, f)
	if err != nil {
		c.logger.Warn("列表加载失败，退回样例数据",
			elog.FieldErr(err),
			elog.FieldKey(string(c.sch.Kind)),
		)
		c.setOffline(true)
		return c.gen.Records(c.sch.Kind), nil
	}
	c.setOffline(false)
	return recs, nil
}

// OpenCreate 打开一个空白的可编辑表单
func (c *Controller) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateEditing
	c.current = domain.Record{
		Kind:   c.sch.Kind,
		Fields: make(map[string]any, len(c.sch.Fields)),
	}
}

// OpenEdit 先取单条记录再开表单，取不到就"可见地失败"：
// 报错并保持关闭
func (c *Controller) OpenEdit(ctx context.Context, id string) error {
	return c.open(ctx, id, StateEditing)
}

// OpenView 只读模式，所有输入禁用
func (c *Controller) OpenView(ctx context.Context, id string) error {
	return c.open(ctx, id, StateViewing)
}

func (c *Controller) open(ctx context.Context, id string, target ModalState) error {
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()

	rec, err := c.fetchOne(ctx, id)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateClosed
		return err
	}
	c.state = target
	c.current = rec
	return nil
}

// SetField 改表单字段，只有编辑态允许
func (c *Controller) SetField(name string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateViewing:
		return ErrReadOnly
	case StateEditing:
		c.current.Fields[name] = value
		return nil
	default:
		return ErrNoForm
	}
}

// Close 取消/点关闭，任何时候都行
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateClosed
	c.current = domain.Record{}
	c.deleteTarget = ""
}

// Save 提交当前表单。在途时的第二次调用是空操作；
// 成功关弹窗并刷新列表，可恢复的失败回到编辑态让管理端重试。
// 闸门在 defer 里放开，成败都不会卡死
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil
	}
	if c.state != StateEditing {
		c.mu.Unlock()
		return ErrNoForm
	}
	if missing := domain.MissingRequired(c.sch, c.current); len(missing) > 0 {
		c.mu.Unlock()
		return errors.Wrapf(ErrValidation, "%s", strings.Join(missing, ", "))
	}
	c.busy = true
	c.state = StateSubmitting
	rec := c.current
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	err := c.submit(ctx, rec)
	c.mu.Lock()
	if err != nil {
		c.state = StateEditing
		c.mu.Unlock()
		return err
	}
	c.state = StateClosed
	c.current = domain.Record{}
	c.mu.Unlock()

	_, _ = c.List(ctx, resource.Filter{})
	return nil
}

// ConfirmDelete 把目标 id 存到确认弹窗上
func (c *Controller) ConfirmDelete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteTarget = id
}

// Delete 确认删除。404 当作"已经删掉了"：关弹窗、刷列表、
// 不报错；其它错误保持弹窗打开、按钮恢复可点
func (c *Controller) Delete(ctx context.Context) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil
	}
	id := c.deleteTarget
	if id == "" {
		c.mu.Unlock()
		return ErrNoForm
	}
	c.busy = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	_, err := c.eng.Do(ctx, http.MethodDelete, c.itemPath(id), nil)
	if err != nil &&
		!errors.Is(err, engine.ErrNotFound) &&
		!strings.Contains(err.Error(), "not found") {
		return err
	}

	c.mu.Lock()
	c.deleteTarget = ""
	c.mu.Unlock()
	_, _ = c.List(ctx, resource.Filter{})
	return nil
}

func (c *Controller) submit(ctx context.Context, rec domain.Record) error {
	if rec.Saved() {
		_, err := c.eng.Do(ctx, http.MethodPut, c.itemPath(rec.ID), rec.Fields)
		return err
	}
	_, err := c.eng.Do(ctx, http.MethodPost, c.collectionPath(), rec.Fields)
	return err
}

func (c *Controller) fetchList(ctx context.Context, f resource.Filter) ([]domain.Record, error) {
	path := c.collectionPath()
	if q := encodeFilter(c.sch, f); q != "" {
		path += "?" + q
	}
	data, err := c.eng.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "解析列表响应失败")
	}
	recs := make([]domain.Record, 0, len(raw))
	for _, m := range raw {
		recs = append(recs, decodeRecord(c.sch.Kind, m))
	}
	return recs, nil
}

func (c *Controller) fetchOne(ctx context.Context, id string) (domain.Record, error) {
	data, err := c.eng.Do(ctx, http.MethodGet, c.itemPath(id), nil)
	if err != nil {
		return domain.Record{}, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return domain.Record{}, errors.Wrap(err, "解析详情响应失败")
	}
	return decodeRecord(c.sch.Kind, m), nil
}

func (c *Controller) collectionPath() string {
	return "/api/" + c.sch.Collection
}

func (c *Controller) itemPath(id string) string {
	return c.collectionPath() + "/" + url.PathEscape(id)
}

func (c *Controller) setOffline(v bool) {
	c.mu.Lock()
	c.offline = v
	c.mu.Unlock()
}

func encodeFilter(sch resource.Schema, f resource.Filter) string {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Featured != nil {
		q.Set("featured", strconv.FormatBool(*f.Featured))
	}
	if f.Status != "" && sch.HasStatus {
		q.Set("status", f.Status)
	}
	return q.Encode()
}

// decodeRecord id 可能是整数（真实服务端）也可能是字符串
// （离线样例），这里统一成字符串原样携带
func decodeRecord(kind resource.Kind, m map[string]any) domain.Record {
	rec := domain.Record{Kind: kind, Fields: make(map[string]any, len(m))}
	for k, v := range m {
		if k == "id" {
			switch id := v.(type) {
			case string:
				rec.ID = id
			case float64:
				rec.ID = strconv.FormatInt(int64(id), 10)
			case json.Number:
				rec.ID = id.String()
			}
			continue
		}
		rec.Fields[k] = v
	}
	return rec
}
