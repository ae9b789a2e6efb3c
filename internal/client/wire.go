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

package client

import (
	"net/http"
	"time"

	"github.com/ecodeclub/jobgenie/internal/client/internal/controller"
	"github.com/ecodeclub/jobgenie/internal/client/internal/domain"
	"github.com/ecodeclub/jobgenie/internal/client/internal/engine"
	"github.com/gotomicro/ego/core/econf"
)

type Module struct {
	Set       *controller.Set
	Materials *controller.StudyMaterials
}

// InitModule 管理端 SDK 的装配。baseURL 来自配置，
// 超时缺省 10s
func InitModule() *Module {
	type Config struct {
		BaseURL string        `yaml:"baseURL"`
		Timeout time.Duration `yaml:"timeout"`
	}
	var cfg Config
	err := econf.UnmarshalKey("client", &cfg)
	if err != nil {
		panic(err)
	}
	return InitModuleWith(cfg.BaseURL, http.DefaultClient, cfg.Timeout)
}

// InitModuleWith 测试和嵌入场景用，直接给依赖
func InitModuleWith(baseURL string, hc engine.HTTPClient, timeout time.Duration) *Module {
	eng := engine.New(baseURL, hc, timeout)
	set := controller.NewSet(eng)
	return &Module{
		Set:       set,
		Materials: controller.NewStudyMaterials(set),
	}
}

type Controller = controller.Controller

type StudyMaterials = controller.StudyMaterials

type ModalState = controller.ModalState

const (
	StateClosed     = controller.StateClosed
	StateLoading    = controller.StateLoading
	StateViewing    = controller.StateViewing
	StateEditing    = controller.StateEditing
	StateSubmitting = controller.StateSubmitting
)

type Record = domain.Record
