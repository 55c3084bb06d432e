package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-dashboard-api/internal/listing"
	"github.com/noah-isme/school-dashboard-api/internal/models"
	"github.com/noah-isme/school-dashboard-api/internal/service"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
	"github.com/noah-isme/school-dashboard-api/pkg/export"
	"github.com/noah-isme/school-dashboard-api/pkg/response"
)

type viewService[T any] interface {
	Entity() string
	Mount(ctx context.Context) (service.ViewPage[T], error)
	Get(id string) (service.ViewPage[T], error)
	SetFilters(id string, patch listing.FilterPatch) (service.ViewPage[T], error)
	SetPage(id string, page int) (service.ViewPage[T], error)
	Step(id, direction string) (service.ViewPage[T], error)
	Create(ctx context.Context, id string, payload T) (service.MutationResult[T], error)
	Update(ctx context.Context, id string, recordID models.ID, payload T) (service.MutationResult[T], error)
	Delete(ctx context.Context, id string, recordID models.ID, confirmed bool) (service.ViewPage[T], error)
	Teardown(id string) bool
	Dataset(id string) (export.Dataset, error)
}

type viewExporter interface {
	Export(source service.DatasetSource, viewID, format string) (*service.ExportFile, error)
}

// pageRequest selects a page directly or steps from the current one.
type pageRequest struct {
	Page      *int   `json:"page" binding:"omitempty,min=1"`
	Direction string `json:"direction" binding:"omitempty,oneof=next prev"`
}

// ViewHandler exposes the list view endpoints of one entity.
type ViewHandler[T any] struct {
	views     viewService[T]
	exports   viewExporter
	newRecord func() T
}

// NewViewHandler constructs a view handler. newRecord returns an empty
// record to bind request bodies into.
func NewViewHandler[T any](views viewService[T], exports viewExporter, newRecord func() T) *ViewHandler[T] {
	return &ViewHandler[T]{views: views, exports: exports, newRecord: newRecord}
}

func (h *ViewHandler[T]) page(c *gin.Context, page service.ViewPage[T], err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, &page.Pagination)
}

// Mount godoc
// @Summary Mount a list view
// @Description Creates a view and starts loading the collection in the background.
// @Tags Views
// @Produce json
// @Param entity path string true "students or teachers"
// @Success 202 {object} response.Envelope
// @Router /{entity}/views [post]
func (h *ViewHandler[T]) Mount(c *gin.Context) {
	page, err := h.views.Mount(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+page.ID)
	response.Accepted(c, page)
}

// Get godoc
// @Summary Current page of a view
// @Tags Views
// @Produce json
// @Param entity path string true "students or teachers"
// @Param viewId path string true "View ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /{entity}/views/{viewId} [get]
func (h *ViewHandler[T]) Get(c *gin.Context) {
	page, err := h.views.Get(c.Param("viewId"))
	h.page(c, page, err)
}

// Teardown godoc
// @Summary Close a view
// @Tags Views
// @Param entity path string true "students or teachers"
// @Param viewId path string true "View ID"
// @Success 204
// @Router /{entity}/views/{viewId} [delete]
func (h *ViewHandler[T]) Teardown(c *gin.Context) {
	if !h.views.Teardown(c.Param("viewId")) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "view not found"))
		return
	}
	response.NoContent(c)
}

// SetFilters godoc
// @Summary Update filter criteria
// @Tags Views
// @Accept json
// @Produce json
// @Param entity path string true "students or teachers"
// @Param viewId path string true "View ID"
// @Param payload body listing.FilterPatch true "Criteria to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /{entity}/views/{viewId}/filters [patch]
func (h *ViewHandler[T]) SetFilters(c *gin.Context) {
	var patch listing.FilterPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid filter payload"))
		return
	}
	page, err := h.views.SetFilters(c.Param("viewId"), patch)
	h.page(c, page, err)
}

// SetPage godoc
// @Summary Change page
// @Description Send either page or direction (next, prev).
// @Tags Views
// @Accept json
// @Produce json
// @Param entity path string true "students or teachers"
// @Param viewId path string true "View ID"
// @Param payload body pageRequest true "Page selection"
// @Success 200 {object} response.Envelope
// @Router /{entity}/views/{viewId}/page [put]
func (h *ViewHandler[T]) SetPage(c *gin.Context) {
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid page payload"))
		return
	}
	id := c.Param("viewId")
	switch {
	case req.Page != nil && req.Direction != "":
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "send either page or direction"))
	case req.Page != nil:
		page, err := h.views.SetPage(id, *req.Page)
		h.page(c, page, err)
	case req.Direction != "":
		page, err := h.views.Step(id, req.Direction)
		h.page(c, page, err)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "page or direction is required"))
	}
}

// CreateRecord godoc
// @Summary Add a record through a view
// @Tags Views
// @Accept json
// @Produce json
// @Param entity path string true "students or teachers"
// @Param viewId path string true "View ID"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /{entity}/views/{viewId}/records [post]
func (h *ViewHandler[T]) CreateRecord(c *gin.Context) {
	payload, ok := h.bindRecord(c)
	if !ok {
		return
	}
	result, err := h.views.Create(c.Request.Context(), c.Param("viewId"), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, result, &result.View.Pagination)
}

// UpdateRecord godoc
// @Summary Replace a record through a view
// @Tags Views
// @Accept json
// @Produce json
// @Param entity path string true "students or teachers"
// @Param viewId path string true "View ID"
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Router /{entity}/views/{viewId}/records/{id} [put]
func (h *ViewHandler[T]) UpdateRecord(c *gin.Context) {
	payload, ok := h.bindRecord(c)
	if !ok {
		return
	}
	result, err := h.views.Update(c.Request.Context(), c.Param("viewId"), models.ID(c.Param("id")), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, &result.View.Pagination)
}

// DeleteRecord godoc
// @Summary Delete a record through a view
// @Tags Views
// @Produce json
// @Param entity path string true "students or teachers"
// @Param viewId path string true "View ID"
// @Param id path string true "Record ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /{entity}/views/{viewId}/records/{id} [delete]
func (h *ViewHandler[T]) DeleteRecord(c *gin.Context) {
	confirmed, err := strconv.ParseBool(c.DefaultQuery("confirm", "false"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "confirm must be a boolean"))
		return
	}
	page, err := h.views.Delete(c.Request.Context(), c.Param("viewId"), models.ID(c.Param("id")), confirmed)
	h.page(c, page, err)
}

// Export godoc
// @Summary Export the filtered and sorted records of a view
// @Tags Views
// @Produce text/csv
// @Produce application/pdf
// @Param entity path string true "students or teachers"
// @Param viewId path string true "View ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /{entity}/views/{viewId}/export [get]
func (h *ViewHandler[T]) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	file, err := h.exports.Export(h.views, c.Param("viewId"), c.DefaultQuery("format", service.FormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.ContentType, file.Filename, file.Body)
}

func (h *ViewHandler[T]) bindRecord(c *gin.Context) (T, bool) {
	payload := h.newRecord()
	if err := c.ShouldBindJSON(payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return payload, false
	}
	return payload, true
}

// Register wires the view routes under the entity group.
func (h *ViewHandler[T]) Register(rg *gin.RouterGroup) {
	views := rg.Group("/views")
	views.POST("", h.Mount)
	views.GET("/:viewId", h.Get)
	views.DELETE("/:viewId", h.Teardown)
	views.PATCH("/:viewId/filters", h.SetFilters)
	views.PUT("/:viewId/page", h.SetPage)
	views.POST("/:viewId/records", h.CreateRecord)
	views.PUT("/:viewId/records/:id", h.UpdateRecord)
	views.DELETE("/:viewId/records/:id", h.DeleteRecord)
	views.GET("/:viewId/export", h.Export)
}
