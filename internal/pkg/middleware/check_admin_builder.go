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

package middleware

import (
	"net/http"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

// CheckAdminMiddlewareBuilder 后台写接口的权限闸门。
// 登录校验由 session.CheckLoginMiddleware 负责，
// 这里只看会话里有没有管理员标记
type CheckAdminMiddlewareBuilder struct {
	logger *elog.Component
}

func NewCheckAdminMiddlewareBuilder() *CheckAdminMiddlewareBuilder {
	return &CheckAdminMiddlewareBuilder{
		logger: elog.DefaultLogger,
	}
}

func (c *CheckAdminMiddlewareBuilder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		gctx := &ginx.Context{Context: ctx}
		sess, err := session.Get(gctx)
		if err != nil {
			gctx.AbortWithStatus(http.StatusForbidden)
			c.logger.Debug("用户未登录", elog.FieldErr(err))
			return
		}
		if sess.Claims().Get("creator").StringOrDefault("") != "true" {
			gctx.AbortWithStatus(http.StatusForbidden)
			c.logger.Error("非法访问后台接口，未设置权限",
				elog.Int64("uid", sess.Claims().Uid))
			return
		}
	}
}
