package views

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/portaladmin/internal/app/filters"
	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/app/models/dto"
)

type courseForm struct {
	ID          string `form:"id"`
	Title       string `form:"title"`
	Description string `form:"description"`
	Category    string `form:"category"`
}

type lectureForm struct {
	ID       string `form:"id"`
	Title    string `form:"title"`
	Lecturer string `form:"lecturer"`
	AccessBy string `form:"access_by"`
	URL      string `form:"urls"`
}

// Courses lists courses. Lectures are fetched only for expanded courses.
func (v *ViewController) Courses(c *gin.Context) {
	w := workspaceOf(c)
	ctx := c.Request.Context()
	p := v.page(c, "Courses", "courses")

	courses, err := load(ctx, w.Courses)
	if err != nil {
		status := formError(&p, err)
		c.HTML(status, "courses.html", coursesPage{Page: p, AccessChoices: filters.AccessChoices})
		return
	}

	rows := make([]courseRow, 0, len(courses))
	for _, course := range courses {
		row := courseRow{Course: course, Expanded: w.Expanded(course.ID), Access: w.LectureAccess(course.ID)}
		if row.Expanded {
			lectures, err := load(ctx, w.Lectures(course.ID))
			if err != nil {
				var lp Page
				formError(&lp, err)
				row.LectureErr = lp.Error
			} else {
				row.Lectures = filters.Lectures(lectures, row.Access)
			}
		}
		rows = append(rows, row)
	}

	c.HTML(http.StatusOK, "courses.html", coursesPage{Page: p, Courses: rows, AccessChoices: filters.AccessChoices})
}

// ToggleCourse expands or collapses a course.
func (v *ViewController) ToggleCourse(c *gin.Context) {
	workspaceOf(c).ToggleCourse(c.Param("id"))
	redirect(c, "/courses")
}

// SetLectureAccess changes the access filter of one course.
func (v *ViewController) SetLectureAccess(c *gin.Context) {
	w := workspaceOf(c)
	var query dto.LectureFilterQuery
	_ = c.ShouldBind(&query)
	w.ExpandCourse(c.Param("id"))
	w.SetLectureAccess(c.Param("id"), query.Access)
	redirect(c, "/courses")
}

// NewCourse opens the editor on a blank course.
func (v *ViewController) NewCourse(c *gin.Context) {
	draft := &models.CourseDraft{}
	workspaceOf(c).CourseEditor.Open(draft.Clone())
	c.HTML(http.StatusOK, "course_edit.html", courseEditPage{Page: v.page(c, "New course", "courses"), Draft: draft})
}

// EditCourse opens the editor on an existing course.
func (v *ViewController) EditCourse(c *gin.Context) {
	course, err := v.svc.Courses.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		v.fail(c, v.page(c, "Edit course", "courses"), err, "/courses")
		return
	}
	draft := course.Draft()
	workspaceOf(c).CourseEditor.Open(draft.Clone())
	c.HTML(http.StatusOK, "course_edit.html", courseEditPage{Page: v.page(c, "Edit course", "courses"), Draft: draft})
}

// SaveCourse creates or updates the posted course.
func (v *ViewController) SaveCourse(c *gin.Context) {
	w := workspaceOf(c)
	var form courseForm
	if err := c.ShouldBind(&form); err != nil {
		v.fail(c, v.page(c, "Edit course", "courses"), err, "/courses")
		return
	}

	ensureOpen(w.CourseEditor, form.ID, func() *models.CourseDraft { return &models.CourseDraft{ID: form.ID} })
	_ = w.CourseEditor.Update(func(d *models.CourseDraft) {
		d.Title = form.Title
		d.Description = form.Description
		d.Category = form.Category
	})

	_, err := w.CourseEditor.Save(c.Request.Context())
	if err = v.finishMutation(c, err, "/courses", "Course saved."); err == nil {
		return
	}

	p := v.page(c, "Edit course", "courses")
	status := formError(&p, err)
	draft, _ := w.CourseEditor.Current()
	c.HTML(status, "course_edit.html", courseEditPage{Page: p, Draft: draft})
}

// CancelCourse closes the course editor without writing.
func (v *ViewController) CancelCourse(c *gin.Context) {
	workspaceOf(c).CourseEditor.Cancel()
	redirect(c, "/courses")
}

// ConfirmDeleteCourse asks before deleting a course and its lectures.
func (v *ViewController) ConfirmDeleteCourse(c *gin.Context) {
	course, err := v.svc.Courses.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		v.fail(c, v.page(c, "Delete course", "courses"), err, "/courses")
		return
	}
	c.HTML(http.StatusOK, "confirm_delete.html", courseConfirm(v.page(c, "Delete course", "courses"), course))
}

func courseConfirm(p Page, course models.Course) confirmPage {
	return confirmPage{
		Page:   p,
		Kind:   "course",
		Name:   course.Title,
		Note:   "Every lecture in it is deleted too.",
		Action: "/courses/" + course.ID + "/delete",
		Back:   "/courses",
	}
}

// DeleteCourse deletes a confirmed course.
func (v *ViewController) DeleteCourse(c *gin.Context) {
	w := workspaceOf(c)
	var req dto.DeleteRequest
	_ = c.ShouldBind(&req)

	id := c.Param("id")
	err := w.CourseEditor.Delete(c.Request.Context(), &models.CourseDraft{ID: id}, req.Confirm)
	if err = v.finishMutation(c, err, "/courses", "Course deleted."); err == nil {
		return
	}

	p := v.page(c, "Delete course", "courses")
	status := formError(&p, err)
	c.HTML(status, "confirm_delete.html", courseConfirm(p, models.Course{ID: id, Title: id}))
}

// NewLecture opens the editor on a blank lecture of a course.
func (v *ViewController) NewLecture(c *gin.Context) {
	course, err := v.svc.Courses.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		v.fail(c, v.page(c, "New lecture", "courses"), err, "/courses")
		return
	}
	draft := &models.LectureDraft{CourseID: course.ID}
	workspaceOf(c).LectureEditor.Open(draft.Clone())
	c.HTML(http.StatusOK, "lecture_edit.html", lectureEditPage{Page: v.page(c, "New lecture", "courses"), Course: course, Draft: draft})
}

// EditLecture opens the editor on an existing lecture.
func (v *ViewController) EditLecture(c *gin.Context) {
	ctx := c.Request.Context()
	course, err := v.svc.Courses.GetCourse(ctx, c.Param("id"))
	if err == nil {
		var lecture models.Lecture
		if lecture, err = v.svc.Lectures.GetLecture(ctx, course.ID, c.Param("lectureId")); err == nil {
			draft := lecture.Draft()
			workspaceOf(c).LectureEditor.Open(draft.Clone())
			c.HTML(http.StatusOK, "lecture_edit.html", lectureEditPage{Page: v.page(c, "Edit lecture", "courses"), Course: course, Draft: draft})
			return
		}
	}
	v.fail(c, v.page(c, "Edit lecture", "courses"), err, "/courses")
}

// SaveLecture creates or updates the posted lecture. The course is
// expanded afterwards so the change is visible.
func (v *ViewController) SaveLecture(c *gin.Context) {
	w := workspaceOf(c)
	courseID := c.Param("id")
	var form lectureForm
	if err := c.ShouldBind(&form); err != nil {
		v.fail(c, v.page(c, "Edit lecture", "courses"), err, "/courses")
		return
	}

	ensureOpen(w.LectureEditor, form.ID, func() *models.LectureDraft {
		return &models.LectureDraft{ID: form.ID, CourseID: courseID}
	})
	_ = w.LectureEditor.Update(func(d *models.LectureDraft) {
		d.CourseID = courseID
		d.Title = form.Title
		d.Lecturer = form.Lecturer
		d.AccessBy = models.ParseTags(form.AccessBy)
		d.URL = form.URL
	})

	_, err := w.LectureEditor.Save(c.Request.Context())
	if err == nil {
		w.ExpandCourse(courseID)
	}
	if err = v.finishMutation(c, err, "/courses", "Lecture saved."); err == nil {
		return
	}

	p := v.page(c, "Edit lecture", "courses")
	status := formError(&p, err)
	draft, _ := w.LectureEditor.Current()
	course, cerr := v.svc.Courses.GetCourse(c.Request.Context(), courseID)
	if cerr != nil {
		course = models.Course{ID: courseID}
	}
	c.HTML(status, "lecture_edit.html", lectureEditPage{Page: p, Course: course, Draft: draft})
}

// CancelLecture closes the lecture editor without writing.
func (v *ViewController) CancelLecture(c *gin.Context) {
	workspaceOf(c).LectureEditor.Cancel()
	redirect(c, "/courses")
}

// ConfirmDeleteLecture asks before deleting a lecture.
func (v *ViewController) ConfirmDeleteLecture(c *gin.Context) {
	lecture, err := v.svc.Lectures.GetLecture(c.Request.Context(), c.Param("id"), c.Param("lectureId"))
	if err != nil {
		v.fail(c, v.page(c, "Delete lecture", "courses"), err, "/courses")
		return
	}
	c.HTML(http.StatusOK, "confirm_delete.html", lectureConfirm(v.page(c, "Delete lecture", "courses"), lecture))
}

func lectureConfirm(p Page, lecture models.Lecture) confirmPage {
	return confirmPage{
		Page:   p,
		Kind:   "lecture",
		Name:   lecture.Title,
		Action: "/courses/" + lecture.CourseID + "/lectures/" + lecture.ID + "/delete",
		Back:   "/courses",
	}
}

// DeleteLecture deletes a confirmed lecture.
func (v *ViewController) DeleteLecture(c *gin.Context) {
	w := workspaceOf(c)
	var req dto.DeleteRequest
	_ = c.ShouldBind(&req)

	courseID, id := c.Param("id"), c.Param("lectureId")
	err := w.LectureEditor.Delete(c.Request.Context(), &models.LectureDraft{ID: id, CourseID: courseID}, req.Confirm)
	if err = v.finishMutation(c, err, "/courses", "Lecture deleted."); err == nil {
		return
	}

	p := v.page(c, "Delete lecture", "courses")
	status := formError(&p, err)
	c.HTML(status, "confirm_delete.html", lectureConfirm(p, models.Lecture{ID: id, CourseID: courseID, Title: id}))
}
