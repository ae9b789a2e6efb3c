package controller

import (
	"context"
	"sync"

	"github.com/ecodeclub/jobgenie/internal/client/internal/domain"
	"github.com/ecodeclub/jobgenie/internal/resource"
	"github.com/pkg/errors"
)

// materialKinds 学习资料的四个子类，共用同一个表单
var materialKinds = []resource.Kind{
	resource.KindNote,
	resource.KindEbook,
	resource.KindVideo,
	resource.KindMockTest,
}

var ErrUnknownMaterialType = errors.New("unknown study material type")

// StudyMaterials 学习资料是同一个弹窗复用四个子类：
// 选中的类型决定链接字段、是否显示缩略图，
// 以及保存时请求打到四个端点里的哪一个
type StudyMaterials struct {
	mu       sync.Mutex
	selected resource.Kind
	inner    map[resource.Kind]*Controller
}

func NewStudyMaterials(set *Set) *StudyMaterials {
	inner := make(map[resource.Kind]*Controller, len(materialKinds))
	for _, kind := range materialKinds {
		inner[kind] = set.Controller(kind)
	}
	return &StudyMaterials{
		selected: resource.KindNote,
		inner:    inner,
	}
}

// SelectType 切换子类。切换后表单的链接字段和端点都跟着换
func (m *StudyMaterials) SelectType(kind resource.Kind) error {
	if _, ok := m.inner[kind]; !ok {
		return errors.Wrapf(ErrUnknownMaterialType, "%s", kind)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = kind
	return nil
}

func (m *StudyMaterials) Selected() resource.Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

// LinkField 当前子类的链接字段名，表单 label 跟着它换
func (m *StudyMaterials) LinkField() string {
	sch, _ := resource.SchemaOf(m.Selected())
	return domain.LinkField(sch)
}

// HasThumbnail 当前子类要不要显示缩略图输入
func (m *StudyMaterials) HasThumbnail() bool {
	sch, _ := resource.SchemaOf(m.Selected())
	return domain.HasThumbnail(sch)
}

func (m *StudyMaterials) List(ctx context.Context, f resource.Filter) ([]domain.Record, error) {
	return m.controller().List(ctx, f)
}

func (m *StudyMaterials) OpenCreate() {
	m.controller().OpenCreate()
}

func (m *StudyMaterials) OpenEdit(ctx context.Context, id string) error {
	return m.controller().OpenEdit(ctx, id)
}

func (m *StudyMaterials) OpenView(ctx context.Context, id string) error {
	return m.controller().OpenView(ctx, id)
}

func (m *StudyMaterials) SetField(name string, value any) error {
	return m.controller().SetField(name, value)
}

// Save 转发给选中子类的控制器，落到对应的端点
func (m *StudyMaterials) Save(ctx context.Context) error {
	return m.controller().Save(ctx)
}

func (m *StudyMaterials) ConfirmDelete(id string) {
	m.controller().ConfirmDelete(id)
}

func (m *StudyMaterials) Delete(ctx context.Context) error {
	return m.controller().Delete(ctx)
}

func (m *StudyMaterials) Close() {
	m.controller().Close()
}

func (m *StudyMaterials) controller() *Controller {
	return m.inner[m.Selected()]
}
