package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-dashboard-api/internal/listing"
	"github.com/noah-isme/school-dashboard-api/internal/models"
	"github.com/noah-isme/school-dashboard-api/internal/service"
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
	"github.com/noah-isme/school-dashboard-api/pkg/export"
)

type fakeViewSrv struct {
	page        service.ViewPage[*models.Student]
	err         error
	lastPatch   listing.FilterPatch
	lastPage    int
	lastStep    string
	lastCreated *models.Student
	lastUpdated models.ID
	confirmed   *bool
	torn        bool
}

func (f *fakeViewSrv) Entity() string { return models.EntityStudents }

func (f *fakeViewSrv) Mount(context.Context) (service.ViewPage[*models.Student], error) {
	return f.page, f.err
}

func (f *fakeViewSrv) Get(string) (service.ViewPage[*models.Student], error) { return f.page, f.err }

func (f *fakeViewSrv) SetFilters(_ string, patch listing.FilterPatch) (service.ViewPage[*models.Student], error) {
	f.lastPatch = patch
	return f.page, f.err
}

func (f *fakeViewSrv) SetPage(_ string, page int) (service.ViewPage[*models.Student], error) {
	f.lastPage = page
	return f.page, f.err
}

func (f *fakeViewSrv) Step(_ string, direction string) (service.ViewPage[*models.Student], error) {
	f.lastStep = direction
	return f.page, f.err
}

func (f *fakeViewSrv) Create(_ context.Context, _ string, payload *models.Student) (service.MutationResult[*models.Student], error) {
	f.lastCreated = payload
	return service.MutationResult[*models.Student]{Record: payload, View: f.page}, f.err
}

func (f *fakeViewSrv) Update(_ context.Context, _ string, id models.ID, payload *models.Student) (service.MutationResult[*models.Student], error) {
	f.lastUpdated = id
	return service.MutationResult[*models.Student]{Record: payload, View: f.page}, f.err
}

func (f *fakeViewSrv) Delete(_ context.Context, _ string, _ models.ID, confirmed bool) (service.ViewPage[*models.Student], error) {
	f.confirmed = &confirmed
	if !confirmed {
		return service.ViewPage[*models.Student]{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "deleting a student requires confirmation")
	}
	return f.page, f.err
}

func (f *fakeViewSrv) Teardown(string) bool {
	f.torn = true
	return f.err == nil
}

func (f *fakeViewSrv) Dataset(string) (export.Dataset, error) {
	return export.Dataset{Title: "students", Headers: []string{"ID"}, Rows: [][]string{{"1"}}}, f.err
}

type viewEnvelope struct {
	Data       map[string]interface{} `json:"data"`
	Error      *appErrors.Error       `json:"error"`
	Pagination *models.Pagination     `json:"pagination"`
}

func readyPage() service.ViewPage[*models.Student] {
	return service.ViewPage[*models.Student]{
		ID:         "view-1",
		Entity:     models.EntityStudents,
		Status:     models.ViewReady,
		Items:      []*models.Student{{ID: "1", Name: "Ana"}},
		Pagination: models.Pagination{Page: 1, PageSize: 8, TotalCount: 1, TotalPages: 1, From: 1, To: 1},
	}
}

func viewRouter(srv *fakeViewSrv) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewViewHandler[*models.Student](srv, service.NewExportService(true, nil), func() *models.Student { return &models.Student{} })
	h.Register(r.Group("/students"))
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) viewEnvelope {
	t.Helper()
	var env viewEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestViewHandlerMount(t *testing.T) {
	page := readyPage()
	page.Status = models.ViewLoading
	rec := doJSON(viewRouter(&fakeViewSrv{page: page}), http.MethodPost, "/students/views", "")

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "/students/views/view-1", rec.Header().Get("Location"))
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "loading", env.Data["status"])
}

func TestViewHandlerGetCarriesPagination(t *testing.T) {
	rec := doJSON(viewRouter(&fakeViewSrv{page: readyPage()}), http.MethodGet, "/students/views/view-1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.TotalCount)
	assert.Len(t, env.Data["items"], 1)
}

func TestViewHandlerUnknownView(t *testing.T) {
	srv := &fakeViewSrv{err: appErrors.Clone(appErrors.ErrNotFound, "student view not found")}
	rec := doJSON(viewRouter(srv), http.MethodGet, "/students/views/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestViewHandlerSetFilters(t *testing.T) {
	srv := &fakeViewSrv{page: readyPage()}
	rec := doJSON(viewRouter(srv), http.MethodPatch, "/students/views/view-1/filters",
		`{"search":"an","criteria":{"grade":"5"}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, srv.lastPatch.Search)
	assert.Equal(t, "an", *srv.lastPatch.Search)
	assert.Nil(t, srv.lastPatch.Gender)
	assert.Equal(t, map[string]string{"grade": "5"}, srv.lastPatch.Criteria)
}

func TestViewHandlerSetPage(t *testing.T) {
	srv := &fakeViewSrv{page: readyPage()}
	r := viewRouter(srv)

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodPut, "/students/views/view-1/page", `{"page":3}`).Code)
	assert.Equal(t, 3, srv.lastPage)

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodPut, "/students/views/view-1/page", `{"direction":"next"}`).Code)
	assert.Equal(t, listing.StepNext, srv.lastStep)

	for _, body := range []string{`{}`, `{"page":0}`, `{"direction":"up"}`, `{"page":2,"direction":"prev"}`} {
		rec := doJSON(r, http.MethodPut, "/students/views/view-1/page", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestViewHandlerCreateRecord(t *testing.T) {
	srv := &fakeViewSrv{page: readyPage()}
	rec := doJSON(viewRouter(srv), http.MethodPost, "/students/views/view-1/records",
		`{"name":"Kim","email":"kim@school.test","grade":4,"gender":true,"rating":"4.5"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, srv.lastCreated)
	assert.Equal(t, models.GenderMale, srv.lastCreated.Gender)
	assert.Equal(t, 4.5, srv.lastCreated.Rating.Value)

	rec = doJSON(viewRouter(srv), http.MethodPost, "/students/views/view-1/records", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestViewHandlerUpdateRecord(t *testing.T) {
	srv := &fakeViewSrv{page: readyPage()}
	rec := doJSON(viewRouter(srv), http.MethodPut, "/students/views/view-1/records/7", `{"name":"Bea","gender":"female"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ID("7"), srv.lastUpdated)
}

func TestViewHandlerDeleteRecordNeedsConfirm(t *testing.T) {
	srv := &fakeViewSrv{page: readyPage()}
	r := viewRouter(srv)

	rec := doJSON(r, http.MethodDelete, "/students/views/view-1/records/1", "")
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	require.NotNil(t, srv.confirmed)
	assert.False(t, *srv.confirmed)

	rec = doJSON(r, http.MethodDelete, "/students/views/view-1/records/1?confirm=true", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *srv.confirmed)

	rec = doJSON(r, http.MethodDelete, "/students/views/view-1/records/1?confirm=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestViewHandlerTeardown(t *testing.T) {
	srv := &fakeViewSrv{}
	rec := doJSON(viewRouter(srv), http.MethodDelete, "/students/views/view-1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, srv.torn)

	srv = &fakeViewSrv{err: appErrors.ErrNotFound}
	rec = doJSON(viewRouter(srv), http.MethodDelete, "/students/views/view-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestViewHandlerExport(t *testing.T) {
	rec := doJSON(viewRouter(&fakeViewSrv{page: readyPage()}), http.MethodGet, "/students/views/view-1/export?format=csv", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "students-")
	assert.Equal(t, "ID\n1\n", rec.Body.String())

	rec = doJSON(viewRouter(&fakeViewSrv{}), http.MethodGet, "/students/views/view-1/export?format=docx", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
