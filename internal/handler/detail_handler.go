package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-dashboard-api/internal/middleware"
	"github.com/noah-isme/school-dashboard-api/internal/models"
	"github.com/noah-isme/school-dashboard-api/internal/service"
	"github.com/noah-isme/school-dashboard-api/pkg/response"
)

type detailService[T any] interface {
	Get(ctx context.Context, id models.ID) (*service.RecordDetail[T], error)
}

// DetailHandler serves single record pages.
type DetailHandler[T any] struct {
	details detailService[T]
}

// NewDetailHandler constructs a detail handler.
func NewDetailHandler[T any](details detailService[T]) *DetailHandler[T] {
	return &DetailHandler[T]{details: details}
}

// Get godoc
// @Summary Record detail
// @Description Fetches one record with display values. meta.cache_hit tells whether the record cache answered.
// @Tags Records
// @Produce json
// @Param entity path string true "students or teachers"
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /{entity}/{id} [get]
func (h *DetailHandler[T]) Get(c *gin.Context) {
	detail, err := h.details.Get(c.Request.Context(), models.ID(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, detail.Cached)
	response.JSON(c, http.StatusOK, detail, nil, middleware.ExtractMeta(c))
}

// Register wires the detail route under the entity group.
func (h *DetailHandler[T]) Register(rg *gin.RouterGroup) {
	rg.GET("/:id", middleware.WithResponseMeta(), h.Get)
}
