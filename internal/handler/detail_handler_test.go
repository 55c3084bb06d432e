package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/school-dashboard-api/internal/models"
	"github.com/noah-isme/school-dashboard-api/internal/service"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

type fakeDetailSrv struct {
	detail *service.RecordDetail[*models.Teacher]
	err    error
	lastID models.ID
}

func (f *fakeDetailSrv) Get(_ context.Context, id models.ID) (*service.RecordDetail[*models.Teacher], error) {
	f.lastID = id
	return f.detail, f.err
}

func TestDetailHandlerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDetailSrv{detail: &service.RecordDetail[*models.Teacher]{
		Record:           &models.Teacher{ID: "3", Name: "Omar", Subject: "Math"},
		DisplayGender:    "Male",
		NormalizedRating: 4.2,
		Initials:         "O",
	}}
	handler := NewDetailHandler[*models.Teacher](srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/teachers/3", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	handler.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ID("3"), srv.lastID)
	assert.Contains(t, rec.Body.String(), `"normalized_rating":4.2`)
	assert.NotContains(t, rec.Body.String(), "coins_percent")
	assert.Contains(t, rec.Body.String(), `"cache_hit":false`)
}

func TestDetailHandlerReportsCacheHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDetailSrv{detail: &service.RecordDetail[*models.Teacher]{
		Record: &models.Teacher{ID: "3", Name: "Omar"},
		Cached: true,
	}}
	r := gin.New()
	NewDetailHandler[*models.Teacher](srv).Register(r.Group("/teachers"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teachers/3", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cache_hit":true`)
	assert.Contains(t, rec.Body.String(), `"processing_time_ms"`)
	assert.NotContains(t, rec.Body.String(), `"Cached"`)
}

func TestDetailHandlerMapsStoreErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[error]int{
		appErrors.Clone(appErrors.ErrNotFound, "failed to fetch teachers"):    http.StatusNotFound,
		appErrors.Clone(appErrors.ErrFetchFailed, "failed to fetch teachers"): http.StatusBadGateway,
	}
	for err, status := range cases {
		handler := NewDetailHandler[*models.Teacher](&fakeDetailSrv{err: err})
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/teachers/9", nil)
		c.Params = gin.Params{{Key: "id", Value: "9"}}

		handler.Get(c)

		assert.Equal(t, status, rec.Code)
		assert.Contains(t, rec.Body.String(), "failed to fetch teachers")
	}
}
