package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/portaladmin/internal/app/filters"
	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/app/models/dto"
	"github.com/yigit/portaladmin/internal/app/services"
	"github.com/yigit/portaladmin/internal/middleware"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
)

// CourseController serves courses and their lectures
type CourseController struct {
	courseService  services.CourseService
	lectureService services.LectureService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, lectureService services.LectureService) *CourseController {
	return &CourseController{
		courseService:  courseService,
		lectureService: lectureService,
	}
}

// confirmed reads the confirm query flag required by every delete.
func confirmed(ctx *gin.Context) bool {
	var req dto.DeleteRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		return false
	}
	return req.Confirm
}

// ListCourses lists courses
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse{items=[]models.Course}}
// @Failure 502 {object} dto.ErrorResponse "Store unavailable"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ListResponse{Items: courses, Count: len(courses), Total: len(courses)}, ""))
}

// GetCourse returns one course
// @Summary Get course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.courseService.GetCourse(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course, ""))
}

// CreateCourse creates a course
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CourseRequest true "Course fields"
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.ErrorResponse "Title is blank"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	c.saveCourse(ctx, "")
}

// UpdateCourse updates a course
// @Summary Update course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body dto.CourseRequest true "Course fields"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.ErrorResponse "Title is blank"
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	c.saveCourse(ctx, ctx.Param("id"))
}

func (c *CourseController) saveCourse(ctx *gin.Context, id string) {
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	draft := &models.CourseDraft{ID: id, Title: req.Title, Description: req.Description, Category: req.Category}
	savedID, err := c.courseService.SaveCourse(ctx.Request.Context(), draft)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), savedID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if id == "" {
		ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course, "Course created"))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course, "Course updated"))
}

// DeleteCourse deletes a course and its lectures
// @Summary Delete course
// @Description Deletes the course and every lecture inside it. Requires confirm=true.
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Confirmation missing"
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	if !confirmed(ctx) {
		middleware.HandleAPIError(ctx, apperrors.ErrConfirmationRequired)
		return
	}
	if err := c.courseService.DeleteCourse(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Course deleted"))
}

// ListLectures lists the lectures of a course
// @Summary List lectures
// @Tags lectures
// @Produce json
// @Param id path string true "Course ID"
// @Param access query string false "Access tag, all for no filtering"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse{items=[]models.Lecture}}
// @Failure 502 {object} dto.ErrorResponse "Store unavailable"
// @Router /courses/{id}/lectures [get]
func (c *CourseController) ListLectures(ctx *gin.Context) {
	var query dto.LectureFilterQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	lectures, err := c.lectureService.ListLectures(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	filtered := filters.Lectures(lectures, query.Access)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ListResponse{Items: filtered, Count: len(filtered), Total: len(lectures)}, ""))
}

// GetLecture returns one lecture
// @Summary Get lecture
// @Tags lectures
// @Produce json
// @Param id path string true "Course ID"
// @Param lectureId path string true "Lecture ID"
// @Success 200 {object} dto.APIResponse{data=models.Lecture}
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/lectures/{lectureId} [get]
func (c *CourseController) GetLecture(ctx *gin.Context) {
	lecture, err := c.lectureService.GetLecture(ctx.Request.Context(), ctx.Param("id"), ctx.Param("lectureId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lecture, ""))
}

// CreateLecture adds a lecture to a course
// @Summary Create lecture
// @Tags lectures
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body dto.LectureRequest true "Lecture fields"
// @Success 201 {object} dto.APIResponse{data=models.Lecture}
// @Failure 400 {object} dto.ErrorResponse "Title is blank"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/lectures [post]
func (c *CourseController) CreateLecture(ctx *gin.Context) {
	c.saveLecture(ctx, "")
}

// UpdateLecture updates a lecture
// @Summary Update lecture
// @Tags lectures
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param lectureId path string true "Lecture ID"
// @Param request body dto.LectureRequest true "Lecture fields"
// @Success 200 {object} dto.APIResponse{data=models.Lecture}
// @Failure 400 {object} dto.ErrorResponse "Title is blank"
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/lectures/{lectureId} [put]
func (c *CourseController) UpdateLecture(ctx *gin.Context) {
	c.saveLecture(ctx, ctx.Param("lectureId"))
}

func (c *CourseController) saveLecture(ctx *gin.Context, id string) {
	var req dto.LectureRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	courseID := ctx.Param("id")
	draft := &models.LectureDraft{
		ID:       id,
		CourseID: courseID,
		Title:    req.Title,
		Lecturer: req.Lecturer,
		AccessBy: req.AccessBy,
		URL:      req.URL,
	}
	savedID, err := c.lectureService.SaveLecture(ctx.Request.Context(), draft)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	lecture, err := c.lectureService.GetLecture(ctx.Request.Context(), courseID, savedID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if id == "" {
		ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(lecture, "Lecture created"))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lecture, "Lecture updated"))
}

// DeleteLecture deletes a lecture
// @Summary Delete lecture
// @Tags lectures
// @Produce json
// @Param id path string true "Course ID"
// @Param lectureId path string true "Lecture ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Confirmation missing"
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/lectures/{lectureId} [delete]
func (c *CourseController) DeleteLecture(ctx *gin.Context) {
	if !confirmed(ctx) {
		middleware.HandleAPIError(ctx, apperrors.ErrConfirmationRequired)
		return
	}
	if err := c.lectureService.DeleteLecture(ctx.Request.Context(), ctx.Param("id"), ctx.Param("lectureId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Lecture deleted"))
}
