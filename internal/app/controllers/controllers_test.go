package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/app/repositories"
	"github.com/yigit/portaladmin/internal/app/services"
	"github.com/yigit/portaladmin/internal/pkg/docstore"
)

func newCourseRouter(t *testing.T) (*gin.Engine, *services.Services) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := services.NewServices(repositories.NewRepositories(docstore.NewMemoryStore()), nil, nil)
	ctrl := NewCourseController(svc.Courses, svc.Lectures)

	r := gin.New()
	r.GET("/courses/:id/lectures", ctrl.ListLectures)
	r.DELETE("/courses/:id", ctrl.DeleteCourse)
	return r, svc
}

func TestDeleteCourseNeedsConfirm(t *testing.T) {
	r, svc := newCourseRouter(t)
	id, err := svc.Courses.SaveCourse(context.Background(), &models.CourseDraft{Title: "Go"})
	require.NoError(t, err)

	for _, q := range []string{"", "?confirm=false", "?confirm=maybe"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/courses/"+id+q, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
	_, err = svc.Courses.GetCourse(context.Background(), id)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/courses/"+id+"?confirm=true", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/courses/"+id+"?confirm=true", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListLecturesAccessFilter(t *testing.T) {
	r, svc := newCourseRouter(t)
	ctx := context.Background()
	id, err := svc.Courses.SaveCourse(ctx, &models.CourseDraft{Title: "Go"})
	require.NoError(t, err)
	for _, access := range [][]string{{models.AccessOnline}, {models.AccessOnsite}, {models.AccessOnline, models.AccessOnsite}} {
		_, err := svc.Lectures.SaveLecture(ctx, &models.LectureDraft{CourseID: id, Title: "L", AccessBy: access})
		require.NoError(t, err)
	}

	var resp struct {
		Data struct {
			Count int `json:"count"`
			Total int `json:"total"`
		} `json:"data"`
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses/"+id+"/lectures?access=Onsite", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Count)
	assert.Equal(t, 3, resp.Data.Total)
}
