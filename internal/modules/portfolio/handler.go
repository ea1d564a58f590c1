package portfolio

import (
	"github.com/gin-gonic/gin"

	"github.com/folio-space/core/internal/pkg/apperr"
	"github.com/folio-space/core/internal/pkg/response"
)

// Handler exposes the portfolio lifecycle over HTTP.
type Handler struct {
	svc          *Service
	cacheMW      gin.HandlerFunc
	afterPublish func(c *gin.Context)
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// WithCache mounts mw on the public published endpoint and calls invalidate
// after every successful publish.
func (h *Handler) WithCache(mw gin.HandlerFunc, invalidate func(c *gin.Context)) *Handler {
	h.cacheMW = mw
	h.afterPublish = invalidate
	return h
}

// RegisterRoutes mounts the portfolio endpoints. The published view is
// public; everything else requires an authenticated admin. publishGuards are
// applied to the publish endpoint only (idempotence protection).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, publishGuards ...gin.HandlerFunc) {
	g := rg.Group("/portfolio")
	if h.cacheMW != nil {
		g.GET("/published", h.cacheMW, h.published)
	} else {
		g.GET("/published", h.published)
	}

	admin := g.Group("", authMW)
	admin.GET("/draft", h.draft)
	admin.POST("/save-draft", h.saveDraft)
	admin.GET("/diff", h.diff)

	publish := append([]gin.HandlerFunc{}, publishGuards...)
	publish = append(publish, h.publish)
	admin.POST("/publish", publish...)
}

// published returns the live aggregate, 404 when nothing has been published.
func (h *Handler) published(c *gin.Context) {
	agg, err := h.svc.Published()
	if err != nil {
		apperr.Write(c, err)
		return
	}
	if agg == nil {
		response.NotFoundMsg(c, "nothing published yet")
		return
	}
	response.OK(c, agg)
}

// draft returns the working copy, falling back to the published aggregate
// when no draft exists. The fallback never creates a draft row.
func (h *Handler) draft(c *gin.Context) {
	agg, err := h.svc.Draft()
	if err != nil {
		apperr.Write(c, err)
		return
	}
	if agg == nil {
		response.NotFoundMsg(c, "no content yet, save a draft first")
		return
	}
	response.OK(c, agg)
}

func (h *Handler) saveDraft(c *gin.Context) {
	var dto SaveDraftDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		apperr.Write(c, apperr.Validation("invalid save-draft payload: %v", err))
		return
	}
	draft, err := h.svc.SaveDraft(&dto)
	if err != nil {
		apperr.Write(c, err)
		return
	}
	response.OK(c, draft)
}

func (h *Handler) publish(c *gin.Context) {
	agg, err := h.svc.Publish()
	if err != nil {
		apperr.Write(c, err)
		return
	}
	if h.afterPublish != nil {
		h.afterPublish(c)
	}
	response.OK(c, agg)
}

func (h *Handler) diff(c *gin.Context) {
	report, err := h.svc.Diff()
	if err != nil {
		apperr.Write(c, err)
		return
	}
	response.OK(c, report)
}
