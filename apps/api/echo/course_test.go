package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/enrollment"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/teacher"
	"github.com/trezcool/darasa/storage/database/inmem"
	"github.com/trezcool/darasa/tests"
)

type apiFixtures struct {
	deps    ServerDeps
	crsRepo course.Repository
	tchRepo teacher.Repository
	stdRepo student.Repository
}

func setup(t *testing.T) apiFixtures {
	t.Helper()

	db := inmemdb.Open()
	crsRepo := inmemdb.NewCourseRepository(db)
	tchRepo := inmemdb.NewTeacherRepository(db)
	stdRepo := inmemdb.NewStudentRepository(db)
	enrRepo := inmemdb.NewEnrollmentRepository(db)
	cmpRepo := inmemdb.NewCompletionRepository(db)
	grdRepo := inmemdb.NewGradeRepository(db)

	validate, _ := core.NewValidator()

	deps := ServerDeps{
		Validate:      validate,
		CourseSvc:     course.NewService(crsRepo, tchRepo),
		EnrollmentSvc: enrollment.NewService(enrRepo, stdRepo, crsRepo, cmpRepo, grdRepo, testutil.NewLogger()),
	}
	return apiFixtures{deps: deps, crsRepo: crsRepo, tchRepo: tchRepo, stdRepo: stdRepo}
}

func newRequest(e *echo.Echo, method, path string, data ...[]byte) (echo.Context, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	return ctx, rec
}

func Test_courseApi_query(t *testing.T) {
	fix := setup(t)
	api := courseApi{deps: fix.deps}
	e := echo.New()

	tch := testutil.CreateTeacher(t, fix.tchRepo, "Grace Hopper", "mwalimu", "mwl@darasa.cd")
	testutil.CreateCourse(t, fix.crsRepo, "PHYS201", "Mechanics", tch.ID)
	testutil.CreateCourse(t, fix.crsRepo, "MATH101", "Calculus I")
	testutil.CreateCourse(t, fix.crsRepo, "MATH205", "Linear Algebra")

	codes := func(rec *httptest.ResponseRecorder) []string {
		var views []course.View
		if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
			t.Fatalf("unmarshalling response failed, %v", err)
		}
		out := make([]string, 0, len(views))
		for _, v := range views {
			out = append(out, v.Code)
		}
		return out
	}

	tests := []struct {
		name      string
		path      string
		wantCodes []string
	}{
		{name: "all courses", path: "/v1/courses", wantCodes: []string{"PHYS201", "MATH101", "MATH205"}},
		{name: "filtered by code", path: "/v1/courses?search=math", wantCodes: []string{"MATH101", "MATH205"}},
		{name: "filtered by teacher name", path: "/v1/courses?search=hopper", wantCodes: []string{"PHYS201"}},
		{name: "sorted by name", path: "/v1/courses?sort=name", wantCodes: []string{"MATH101", "MATH205", "PHYS201"}},
		{name: "no match", path: "/v1/courses?search=biology", wantCodes: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, rec := newRequest(e, http.MethodGet, tt.path)
			if assert.NoError(t, api.query(ctx)) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, tt.wantCodes, codes(rec))
			}
		})
	}
}

func Test_courseApi_enroll(t *testing.T) {
	fix := setup(t)
	api := courseApi{deps: fix.deps}
	e := echo.New()

	std := testutil.CreateStudent(t, fix.stdRepo, "Student", "awesome", "awe@darasa.cd")
	crs := testutil.CreateCourse(t, fix.crsRepo, "MATH101", "Calculus I")

	body, _ := json.Marshal(EnrollRequest{StudentID: std.ID})

	enroll := func() (error, *httptest.ResponseRecorder) {
		ctx, rec := newRequest(e, http.MethodPost, "/v1/courses/:id/enrollments", body)
		ctx.SetParamNames("id")
		ctx.SetParamValues(strconv.Itoa(crs.ID))
		return api.enroll(ctx), rec
	}

	t.Run("enrolls the student", func(t *testing.T) {
		err, rec := enroll()
		if assert.NoError(t, err) {
			assert.Equal(t, http.StatusCreated, rec.Code)
			var enr enrollment.Enrollment
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &enr))
			assert.Equal(t, std.ID, enr.StudentID)
			assert.Equal(t, enrollment.StatusActive, enr.Status)
		}
	})

	t.Run("conflicts on a duplicate enrollment", func(t *testing.T) {
		err, _ := enroll()
		httpErr, ok := err.(*echo.HTTPError)
		if assert.True(t, ok, "expected an HTTP error, got %v", err) {
			assert.Equal(t, http.StatusConflict, httpErr.Code)
		}
	})

	t.Run("unknown student is not found", func(t *testing.T) {
		data, _ := json.Marshal(EnrollRequest{StudentID: 404})
		ctx, _ := newRequest(e, http.MethodPost, "/v1/courses/:id/enrollments", data)
		ctx.SetParamNames("id")
		ctx.SetParamValues(strconv.Itoa(crs.ID))
		assert.Equal(t, errHttpNotFound, api.enroll(ctx))
	})
}
