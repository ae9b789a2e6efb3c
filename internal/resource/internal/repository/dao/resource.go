package dao

import (
	"context"
	"strings"

	"github.com/ecodeclub/jobgenie/internal/resource/internal/domain"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var ErrRecordNotFound = gorm.ErrRecordNotFound

// ResourceDAO 十一张表共用的一套 DAO，按 Schema 动态选表。
// 行用 map 表示，列集合由 Schema 决定
type ResourceDAO interface {
	List(ctx context.Context, sch domain.Schema, f domain.Filter) ([]map[string]any, error)
	GetByID(ctx context.Context, sch domain.Schema, id int64) (map[string]any, error)
	Create(ctx context.Context, sch domain.Schema, vals map[string]any) (int64, error)
	// Update 整行覆盖：Schema 里的每一列都会被写入，
	// vals 缺失的列写 NULL。这是对源系统 PUT 语义的保留
	Update(ctx context.Context, sch domain.Schema, id int64, vals map[string]any) error
	Delete(ctx context.Context, sch domain.Schema, id int64) error
}

type resourceGORMDAO struct {
	db *egorm.Component
}

func NewResourceGORMDAO(db *egorm.Component) ResourceDAO {
	return &resourceGORMDAO{db: db}
}

func (d *resourceGORMDAO) List(ctx context.Context, sch domain.Schema, f domain.Filter) ([]map[string]any, error) {
	var rows []map[string]any
	tx := d.db.WithContext(ctx).Table(sch.Table)
	conds, args := filterConditions(sch, f)
	if len(conds) > 0 {
		tx = tx.Where(strings.Join(conds, " AND "), args...)
	}
	err := tx.Order(sch.PrimaryDate + " DESC").Find(&rows).Error
	return rows, err
}

func (d *resourceGORMDAO) GetByID(ctx context.Context, sch domain.Schema, id int64) (map[string]any, error) {
	var row map[string]any
	err := d.db.WithContext(ctx).Table(sch.Table).
		Where("id = ?", id).Take(&row).Error
	return row, err
}

func (d *resourceGORMDAO) Create(ctx context.Context, sch domain.Schema, vals map[string]any) (int64, error) {
	query, args := insertSQL(sch, vals)
	var id int64
	// LAST_INSERT_ID 必须和 INSERT 走同一个连接
	err := d.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		if err := tx.Exec(query, args...).Error; err != nil {
			return err
		}
		return tx.Raw("SELECT LAST_INSERT_ID()").Scan(&id).Error
	})
	return id, err
}

func (d *resourceGORMDAO) Update(ctx context.Context, sch domain.Schema, id int64, vals map[string]any) error {
	res := d.db.WithContext(ctx).Table(sch.Table).
		Where("id = ?", id).Updates(updateColumns(sch, vals))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (d *resourceGORMDAO) Delete(ctx context.Context, sch domain.Schema, id int64) error {
	res := d.db.WithContext(ctx).Table(sch.Table).
		Where("id = ?", id).Delete(nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// filterConditions 把 Filter 翻译成 AND 起来的等值谓词。
// status 只对带 status 列的表生效
func filterConditions(sch domain.Schema, f domain.Filter) ([]string, []any) {
	var conds []string
	var args []any
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.Featured != nil {
		conds = append(conds, "featured = ?")
		args = append(args, *f.Featured)
	}
	if f.Status != "" && sch.HasStatus {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	return conds, args
}

// insertSQL 只插入调用方给了值的列，审计列交给数据库默认值
func insertSQL(sch domain.Schema, vals map[string]any) (string, []any) {
	var cols []string
	var args []any
	for _, f := range sch.Fields {
		v, ok := vals[f.Name]
		if !ok {
			continue
		}
		cols = append(cols, "`"+f.Name+"`")
		args = append(args, v)
	}
	var b strings.Builder
	b.WriteString("INSERT INTO `")
	b.WriteString(sch.Table)
	b.WriteString("` (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(") VALUES (")
	b.WriteString(strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))
	b.WriteString(")")
	return b.String(), args
}

// updateColumns 生成整行覆盖的 SET 集合：缺失列置 NULL
func updateColumns(sch domain.Schema, vals map[string]any) map[string]any {
	cols := make(map[string]any, len(sch.Fields))
	for _, f := range sch.Fields {
		v, ok := vals[f.Name]
		if !ok {
			cols[f.Name] = nil
			continue
		}
		cols[f.Name] = v
	}
	return cols
}
