package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/jobgenie/internal/resource/internal/domain"
	"github.com/pkg/errors"
)

const expiration = 10 * time.Minute

var ErrRecordNotCached = errors.New("record not cached")

// ResourceCache 详情和无条件列表的旁路缓存，
// key 按种类分命名空间
type ResourceCache interface {
	SetRecord(ctx context.Context, rec domain.Record) error
	GetRecord(ctx context.Context, kind domain.Kind, id int64) (domain.Record, error)
	DelRecord(ctx context.Context, kind domain.Kind, id int64) error
	SetList(ctx context.Context, kind domain.Kind, recs []domain.Record) error
	GetList(ctx context.Context, kind domain.Kind) ([]domain.Record, error)
	DelList(ctx context.Context, kind domain.Kind) error
}

type resourceECache struct {
	ec ecache.Cache
}

func NewResourceECache(ec ecache.Cache) ResourceCache {
	return &resourceECache{
		ec: &ecache.NamespaceCache{
			C:         ec,
			Namespace: "resource:",
		},
	}
}

// cachedRecord 缓存里的序列化形态，Fields 直接走 JSON
type cachedRecord struct {
	ID     int64          `json:"id"`
	Kind   domain.Kind    `json:"kind"`
	Fields map[string]any `json:"fields"`
}

func (c *resourceECache) SetRecord(ctx context.Context, rec domain.Record) error {
	data, err := json.Marshal(cachedRecord{ID: rec.ID, Kind: rec.Kind, Fields: rec.Fields})
	if err != nil {
		return errors.Wrap(err, "序列化资源记录失败")
	}
	return c.ec.Set(ctx, c.recordKey(rec.Kind, rec.ID), string(data), expiration)
}

func (c *resourceECache) GetRecord(ctx context.Context, kind domain.Kind, id int64) (domain.Record, error) {
	val := c.ec.Get(ctx, c.recordKey(kind, id))
	if val.KeyNotFound() {
		return domain.Record{}, ErrRecordNotCached
	}
	if val.Err != nil {
		return domain.Record{}, val.Err
	}
	s, err := val.String()
	if err != nil {
		return domain.Record{}, err
	}
	var cr cachedRecord
	if err := json.Unmarshal([]byte(s), &cr); err != nil {
		return domain.Record{}, errors.Wrap(err, "反序列化资源记录失败")
	}
	return domain.Record{ID: cr.ID, Kind: cr.Kind, Fields: cr.Fields}, nil
}

func (c *resourceECache) DelRecord(ctx context.Context, kind domain.Kind, id int64) error {
	_, err := c.ec.Delete(ctx, c.recordKey(kind, id))
	return err
}

func (c *resourceECache) SetList(ctx context.Context, kind domain.Kind, recs []domain.Record) error {
	crs := make([]cachedRecord, 0, len(recs))
	for _, rec := range recs {
		crs = append(crs, cachedRecord{ID: rec.ID, Kind: rec.Kind, Fields: rec.Fields})
	}
	data, err := json.Marshal(crs)
	if err != nil {
		return errors.Wrap(err, "序列化资源列表失败")
	}
	return c.ec.Set(ctx, c.listKey(kind), string(data), expiration)
}

func (c *resourceECache) GetList(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	val := c.ec.Get(ctx, c.listKey(kind))
	if val.KeyNotFound() {
		return nil, ErrRecordNotCached
	}
	if val.Err != nil {
		return nil, val.Err
	}
	s, err := val.String()
	if err != nil {
		return nil, err
	}
	var crs []cachedRecord
	if err := json.Unmarshal([]byte(s), &crs); err != nil {
		return nil, errors.Wrap(err, "反序列化资源列表失败")
	}
	recs := make([]domain.Record, 0, len(crs))
	for _, cr := range crs {
		recs = append(recs, domain.Record{ID: cr.ID, Kind: cr.Kind, Fields: cr.Fields})
	}
	return recs, nil
}

func (c *resourceECache) DelList(ctx context.Context, kind domain.Kind) error {
	_, err := c.ec.Delete(ctx, c.listKey(kind))
	return err
}

func (c *resourceECache) recordKey(kind domain.Kind, id int64) string {
	return fmt.Sprintf("%s:id:%d", kind, id)
}

func (c *resourceECache) listKey(kind domain.Kind) string {
	return fmt.Sprintf("%s:list", kind)
}
