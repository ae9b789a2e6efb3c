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

//go:build wireinject

package resource

import (
	"sync"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/jobgenie/internal/resource/internal/event"
	"github.com/ecodeclub/jobgenie/internal/resource/internal/repository"
	"github.com/ecodeclub/jobgenie/internal/resource/internal/repository/cache"
	"github.com/ecodeclub/jobgenie/internal/resource/internal/repository/dao"
	"github.com/ecodeclub/jobgenie/internal/resource/internal/service"
	"github.com/ecodeclub/jobgenie/internal/resource/internal/web"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

type Module struct {
	Hdl *Handler
	Svc Service
}

var ModuleSet = wire.NewSet(
	InitTablesOnce,
	cache.NewResourceECache,
	repository.NewCachedRepository,
	initProducer,
	service.NewService,
	web.NewHandler,
)

func InitModule(db *egorm.Component, ec ecache.Cache, q mq.MQ) (*Module, error) {
	wire.Build(
		ModuleSet,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.ResourceDAO {
	once.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
	return dao.NewResourceGORMDAO(db)
}

func initProducer(q mq.MQ) (event.Producer, error) {
	return event.NewResourceChangeProducer(q)
}

type Handler = web.Handler

type Service = service.Service
