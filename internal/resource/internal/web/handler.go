package web

import (
	"net/http"
	"strconv"

	"github.com/ecodeclub/jobgenie/internal/resource/internal/domain"
	"github.com/ecodeclub/jobgenie/internal/resource/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
	"github.com/pkg/errors"
)

type Handler struct {
	svc    service.Service
	logger *elog.Component
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{
		svc:    svc,
		logger: elog.DefaultLogger,
	}
}

// PublicRoutes 站点前台只读：列表和详情
func (h *Handler) PublicRoutes(server *gin.Engine) {
	for _, sch := range domain.Schemas() {
		g := server.Group("/api/" + sch.Collection)
		g.GET("", h.list(sch))
		g.GET("/:id", h.detail(sch))
	}
}

// AdminRoutes 后台写操作，挂在登录校验之后
func (h *Handler) AdminRoutes(server *gin.Engine) {
	for _, sch := range domain.Schemas() {
		g := server.Group("/api/" + sch.Collection)
		g.POST("", h.create(sch))
		g.PUT("/:id", h.update(sch))
		g.DELETE("/:id", h.remove(sch))
	}
}

func (h *Handler) list(sch domain.Schema) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var f domain.Filter
		f.Category = ctx.Query("category")
		if v, ok := ctx.GetQuery("featured"); ok {
			featured := v == "true" || v == "1"
			f.Featured = &featured
		}
		if sch.HasStatus {
			f.Status = ctx.Query("status")
		}
		recs, err := h.svc.List(ctx.Request.Context(), sch.Kind, f)
		if err != nil {
			h.systemError(ctx, sch, err)
			return
		}
		vos := make([]map[string]any, 0, len(recs))
		for _, rec := range recs {
			vos = append(vos, newRecordVO(rec))
		}
		ctx.JSON(http.StatusOK, vos)
	}
}

func (h *Handler) detail(sch domain.Schema) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := recordID(ctx)
		if !ok {
			ctx.JSON(http.StatusNotFound, MsgResp{Message: "record not found"})
			return
		}
		rec, err := h.svc.Get(ctx.Request.Context(), sch.Kind, id)
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, MsgResp{Message: "record not found"})
		case err != nil:
			h.systemError(ctx, sch, err)
		default:
			ctx.JSON(http.StatusOK, newRecordVO(rec))
		}
	}
}

func (h *Handler) create(sch domain.Schema) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body map[string]any
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, MsgResp{Message: "invalid request body"})
			return
		}
		id, err := h.svc.Create(ctx.Request.Context(), sch.Kind, toDomain(sch, body))
		switch {
		case errors.Is(err, service.ErrInvalidRecord):
			ctx.JSON(http.StatusBadRequest, MsgResp{Message: err.Error()})
		case err != nil:
			h.systemError(ctx, sch, err)
		default:
			ctx.JSON(http.StatusCreated, SaveResp{ID: id, Message: "record created"})
		}
	}
}

func (h *Handler) update(sch domain.Schema) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := recordID(ctx)
		if !ok {
			ctx.JSON(http.StatusNotFound, MsgResp{Message: "record not found"})
			return
		}
		var body map[string]any
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, MsgResp{Message: "invalid request body"})
			return
		}
		err := h.svc.Update(ctx.Request.Context(), sch.Kind, id, toDomain(sch, body))
		switch {
		case errors.Is(err, service.ErrInvalidRecord):
			ctx.JSON(http.StatusBadRequest, MsgResp{Message: err.Error()})
		case errors.Is(err, service.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, MsgResp{Message: "record not found"})
		case err != nil:
			h.systemError(ctx, sch, err)
		default:
			ctx.JSON(http.StatusOK, MsgResp{Message: "record updated"})
		}
	}
}

func (h *Handler) remove(sch domain.Schema) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := recordID(ctx)
		if !ok {
			ctx.JSON(http.StatusNotFound, MsgResp{Message: "record not found"})
			return
		}
		err := h.svc.Delete(ctx.Request.Context(), sch.Kind, id)
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, MsgResp{Message: "record not found"})
		case err != nil:
			h.systemError(ctx, sch, err)
		default:
			ctx.JSON(http.StatusOK, MsgResp{Message: "record deleted"})
		}
	}
}

func (h *Handler) systemError(ctx *gin.Context, sch domain.Schema, err error) {
	h.logger.Error("资源接口系统错误",
		elog.FieldErr(err),
		elog.FieldKey(string(sch.Kind)),
	)
	ctx.JSON(http.StatusInternalServerError, ErrResp{
		Message: "internal server error",
		Error:   err.Error(),
	})
}

func recordID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
