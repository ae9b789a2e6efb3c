// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package repository

import (
	"context"
	"time"

	"github.com/ecodeclub/jobgenie/internal/resource/internal/domain"
	"github.com/ecodeclub/jobgenie/internal/resource/internal/repository/cache"
	"github.com/ecodeclub/jobgenie/internal/resource/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
)

var ErrRecordNotFound = dao.ErrRecordNotFound

type Repository interface {
	List(ctx context.Context, sch domain.Schema, f domain.Filter) ([]domain.Record, error)
	GetByID(ctx context.Context, sch domain.Schema, id int64) (domain.Record, error)
	Create(ctx context.Context, sch domain.Schema, rec domain.Record) (int64, error)
	Update(ctx context.Context, sch domain.Schema, id int64, rec domain.Record) error
	Delete(ctx context.Context, sch domain.Schema, id int64) error
}

type cachedRepository struct {
	dao    dao.ResourceDAO
	cache  cache.ResourceCache
	logger *elog.Component
}

func NewCachedRepository(d dao.ResourceDAO, c cache.ResourceCache) Repository {
	return &cachedRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

func (r *cachedRepository) List(ctx context.Context, sch domain.Schema, f domain.Filter) ([]domain.Record, error) {
	// 只缓存无条件列表，带过滤的组合太多
	if f.IsZero() {
		recs, err := r.cache.GetList(ctx, sch.Kind)
		if err == nil {
			return recs, nil
		}
	}
	rows, err := r.dao.List(ctx, sch, f)
	if err != nil {
		return nil, err
	}
	recs := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, r.toDomain(sch, row))
	}
	if f.IsZero() {
		if cerr := r.cache.SetList(ctx, sch.Kind, recs); cerr != nil {
			r.logger.Warn("回填资源列表缓存失败", elog.FieldErr(cerr))
		}
	}
	return recs, nil
}

func (r *cachedRepository) GetByID(ctx context.Context, sch domain.Schema, id int64) (domain.Record, error) {
	rec, err := r.cache.GetRecord(ctx, sch.Kind, id)
	if err == nil {
		return rec, nil
	}
	row, err := r.dao.GetByID(ctx, sch, id)
	if err != nil {
		return domain.Record{}, err
	}
	rec = r.toDomain(sch, row)
	if cerr := r.cache.SetRecord(ctx, rec); cerr != nil {
		r.logger.Warn("回填资源详情缓存失败", elog.FieldErr(cerr))
	}
	return rec, nil
}

func (r *cachedRepository) Create(ctx context.Context, sch domain.Schema, rec domain.Record) (int64, error) {
	id, err := r.dao.Create(ctx, sch, r.toEntity(sch, rec))
	if err != nil {
		return 0, err
	}
	// 自增 id 可能被复用（比如表被清空重建过），
	// 新行的详情 key 也要清
	r.evict(ctx, sch.Kind, id)
	return id, nil
}

func (r *cachedRepository) Update(ctx context.Context, sch domain.Schema, id int64, rec domain.Record) error {
	err := r.dao.Update(ctx, sch, id, r.toEntity(sch, rec))
	if err != nil {
		return err
	}
	r.evict(ctx, sch.Kind, id)
	return nil
}

func (r *cachedRepository) Delete(ctx context.Context, sch domain.Schema, id int64) error {
	err := r.dao.Delete(ctx, sch, id)
	if err != nil {
		return err
	}
	r.evict(ctx, sch.Kind, id)
	return nil
}

func (r *cachedRepository) evict(ctx context.Context, kind domain.Kind, id int64) {
	if err := r.cache.DelRecord(ctx, kind, id); err != nil {
		r.logger.Warn("清理资源详情缓存失败", elog.FieldErr(err))
	}
	r.evictList(ctx, kind)
}

func (r *cachedRepository) evictList(ctx context.Context, kind domain.Kind) {
	if err := r.cache.DelList(ctx, kind); err != nil {
		r.logger.Warn("清理资源列表缓存失败", elog.FieldErr(err))
	}
}

func (r *cachedRepository) toEntity(sch domain.Schema, rec domain.Record) map[string]any {
	vals := make(map[string]any, len(rec.Fields))
	for _, f := range sch.Fields {
		v, ok := rec.Fields[f.Name]
		if !ok {
			continue
		}
		vals[f.Name] = v
	}
	return vals
}

// toDomain 把驱动返回的行归一化成 Record：
// []byte 转 string，tinyint 转 bool，日期列统一成 2006-01-02
func (r *cachedRepository) toDomain(sch domain.Schema, row map[string]any) domain.Record {
	fields := make(map[string]any, len(row))
	for _, f := range sch.Fields {
		raw, ok := row[f.Name]
		if !ok || raw == nil {
			continue
		}
		switch f.Kind {
		case domain.FieldBool:
			fields[f.Name] = asBool(raw)
		case domain.FieldDate:
			fields[f.Name] = asDate(raw, time.DateOnly)
		case domain.FieldInt:
			fields[f.Name] = asInt64(raw)
		default:
			fields[f.Name] = asString(raw)
		}
	}
	if raw, ok := row[sch.AuditColumn]; ok && raw != nil {
		fields[sch.AuditColumn] = asDate(raw, time.DateTime)
	}
	return domain.Record{
		ID:     asInt64(row["id"]),
		Kind:   sch.Kind,
		Fields: fields,
	}
}

func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return ""
	}
}

func asBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case int64:
		return val != 0
	case []byte:
		return len(val) > 0 && val[0] == '1'
	default:
		return false
	}
}

func asInt64(v any) int64 {
	switch val := v.(type) {
	case int64:
		return val
	case uint64:
		return int64(val)
	case int:
		return int64(val)
	default:
		return 0
	}
}

func asDate(v any, layout string) string {
	switch val := v.(type) {
	case time.Time:
		return val.Format(layout)
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return ""
	}
}
