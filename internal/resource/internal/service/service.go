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

package service

import (
	"context"
	"strings"

	"github.com/ecodeclub/jobgenie/internal/resource/internal/domain"
	"github.com/ecodeclub/jobgenie/internal/resource/internal/event"
	"github.com/ecodeclub/jobgenie/internal/resource/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"github.com/pkg/errors"
)

var (
	ErrRecordNotFound = repository.ErrRecordNotFound
	// ErrInvalidRecord 必填字段缺失
	ErrInvalidRecord = errors.New("missing required field")
)

type Service interface {
	List(ctx context.Context, kind domain.Kind, f domain.Filter) ([]domain.Record, error)
	Get(ctx context.Context, kind domain.Kind, id int64) (domain.Record, error)
	Create(ctx context.Context, kind domain.Kind, rec domain.Record) (int64, error)
	Update(ctx context.Context, kind domain.Kind, id int64, rec domain.Record) error
	Delete(ctx context.Context, kind domain.Kind, id int64) error
}

type service struct {
	repo     repository.Repository
	producer event.Producer
	logger   *elog.Component
}

func NewService(repo repository.Repository, producer event.Producer) Service {
	return &service{
		repo:     repo,
		producer: producer,
		logger:   elog.DefaultLogger,
	}
}

func (s *service) List(ctx context.Context, kind domain.Kind, f domain.Filter) ([]domain.Record, error) {
	sch, ok := domain.SchemaOf(kind)
	if !ok {
		return nil, errors.Errorf("unknown resource kind %q", kind)
	}
	return s.repo.List(ctx, sch, f)
}

func (s *service) Get(ctx context.Context, kind domain.Kind, id int64) (domain.Record, error) {
	sch, ok := domain.SchemaOf(kind)
	if !ok {
		return domain.Record{}, errors.Errorf("unknown resource kind %q", kind)
	}
	return s.repo.GetByID(ctx, sch, id)
}

func (s *service) Create(ctx context.Context, kind domain.Kind, rec domain.Record) (int64, error) {
	sch, ok := domain.SchemaOf(kind)
	if !ok {
		return 0, errors.Errorf("unknown resource kind %q", kind)
	}
	if err := s.validate(sch, rec); err != nil {
		return 0, err
	}
	rec = withDefaults(sch, rec)
	id, err := s.repo.Create(ctx, sch, rec)
	if err != nil {
		return 0, err
	}
	s.notify(ctx, kind, id, event.ActionCreated)
	return id, nil
}

func (s *service) Update(ctx context.Context, kind domain.Kind, id int64, rec domain.Record) error {
	sch, ok := domain.SchemaOf(kind)
	if !ok {
		return errors.Errorf("unknown resource kind %q", kind)
	}
	if err := s.validate(sch, rec); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, sch, id, rec); err != nil {
		return err
	}
	s.notify(ctx, kind, id, event.ActionUpdated)
	return nil
}

func (s *service) Delete(ctx context.Context, kind domain.Kind, id int64) error {
	sch, ok := domain.SchemaOf(kind)
	if !ok {
		return errors.Errorf("unknown resource kind %q", kind)
	}
	if err := s.repo.Delete(ctx, sch, id); err != nil {
		return err
	}
	s.notify(ctx, kind, id, event.ActionDeleted)
	return nil
}

// validate 服务端的宽松校验：只看 ServerRequired，
// 完整的必填清单由管理端在提交前校验
func (s *service) validate(sch domain.Schema, rec domain.Record) error {
	missing := sch.MissingServerRequired(rec)
	if len(missing) > 0 {
		return errors.Wrapf(ErrInvalidRecord, "%s", strings.Join(missing, ", "))
	}
	return nil
}

// withDefaults featured 缺省 false，job 的 status 缺省 active
func withDefaults(sch domain.Schema, rec domain.Record) domain.Record {
	if rec.Fields == nil {
		rec.Fields = make(map[string]any, 2)
	}
	if _, ok := rec.Fields["featured"]; !ok {
		rec.Fields["featured"] = false
	}
	if sch.HasStatus {
		if v, ok := rec.Fields["status"].(string); !ok || v == "" {
			rec.Fields["status"] = string(domain.StatusActive)
		}
	}
	return rec
}

// notify 发消息失败只记日志，不影响本次操作
func (s *service) notify(ctx context.Context, kind domain.Kind, id int64, action string) {
	evt := event.ResourceChangeEvent{Kind: string(kind), ID: id, Action: action}
	if err := s.producer.Produce(ctx, evt); err != nil {
		s.logger.Error("发送资源变更消息失败",
			elog.FieldErr(err),
			elog.FieldKey("event"),
			elog.FieldValueAny(evt),
		)
	}
}
