package ioc

import (
	"net/http"
	"strings"

	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/jobgenie/internal/pkg/middleware"
	"github.com/ecodeclub/jobgenie/internal/resource"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/server/egin"
)

func initWebServer(sp session.Provider, module *resource.Module) *egin.Component {
	session.SetDefaultProvider(sp)
	res := egin.Load("web").Build()
	res.Use(cors.New(cors.Config{
		ExposeHeaders:    []string{"X-Refresh-Token", "X-Access-Token"},
		AllowCredentials: true,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowOriginFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost") {
				return true
			}
			return strings.Contains(origin, "jobgenie.in")
		},
	}))
	res.Use(middleware.NewMetricsBuilder().Build())
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	// 前台列表和详情不要求登录
	module.Hdl.PublicRoutes(res.Engine)
	// 后台写操作要求管理员会话
	res.Use(session.CheckLoginMiddleware())
	res.Use(middleware.NewCheckAdminMiddlewareBuilder().Build())
	module.Hdl.AdminRoutes(res.Engine)
	return res
}
