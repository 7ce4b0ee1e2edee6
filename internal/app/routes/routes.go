package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/portaladmin/internal/app/controllers"
	"github.com/yigit/portaladmin/internal/app/views"
	"github.com/yigit/portaladmin/internal/middleware"
)

// SetupRouter configures the JSON API under /api/v1
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	courseController *controllers.CourseController,
	announcementController *controllers.AnnouncementController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", healthController.Health)

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authMiddleware.OptionalAuth(), authController.Login)
		auth.POST("/logout", authMiddleware.OptionalAuth(), authController.Logout)
		auth.GET("/me", authMiddleware.APIAuth(), authController.Me)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.APIAuth())

	users := authenticated.Group("/users")
	{
		users.GET("", userController.ListUsers)
		users.GET("/:id", userController.GetUser)
		users.PUT("/:id", userController.UpdateUser)
	}

	courses := authenticated.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.POST("", courseController.CreateCourse)
		courses.GET("/:id", courseController.GetCourse)
		courses.PUT("/:id", courseController.UpdateCourse)
		courses.DELETE("/:id", courseController.DeleteCourse)

		courses.GET("/:id/lectures", courseController.ListLectures)
		courses.POST("/:id/lectures", courseController.CreateLecture)
		courses.GET("/:id/lectures/:lectureId", courseController.GetLecture)
		courses.PUT("/:id/lectures/:lectureId", courseController.UpdateLecture)
		courses.DELETE("/:id/lectures/:lectureId", courseController.DeleteLecture)
	}

	announcements := authenticated.Group("/announcements")
	{
		announcements.GET("", announcementController.ListAnnouncements)
		announcements.POST("", announcementController.CreateAnnouncement)
		announcements.GET("/:id", announcementController.GetAnnouncement)
		announcements.PUT("/:id", announcementController.UpdateAnnouncement)
		announcements.DELETE("/:id", announcementController.DeleteAnnouncement)
	}
}

// SetupPages configures the HTML dashboard
func SetupPages(router *gin.Engine, pages *views.ViewController, authMiddleware *middleware.AuthMiddleware) {
	public := router.Group("")
	public.Use(authMiddleware.OptionalAuth())
	{
		public.GET(middleware.LoginPath, pages.LoginPage)
		public.POST(middleware.LoginPath, pages.Login)
		public.GET("/logout", pages.Logout)
		public.POST("/logout", pages.Logout)
	}

	app := router.Group("")
	app.Use(authMiddleware.PageAuth())
	{
		app.GET("/", pages.Dashboard)

		app.GET("/users", pages.Users)
		app.GET("/users/:id/edit", pages.EditUser)
		app.POST("/users/save", pages.SaveUser)
		app.POST("/users/cancel", pages.CancelUser)

		app.GET("/courses", pages.Courses)
		app.GET("/courses/new", pages.NewCourse)
		app.POST("/courses/save", pages.SaveCourse)
		app.POST("/courses/cancel", pages.CancelCourse)
		app.GET("/courses/:id/edit", pages.EditCourse)
		app.POST("/courses/:id/toggle", pages.ToggleCourse)
		app.POST("/courses/:id/access", pages.SetLectureAccess)
		app.GET("/courses/:id/delete", pages.ConfirmDeleteCourse)
		app.POST("/courses/:id/delete", pages.DeleteCourse)

		app.GET("/courses/:id/lectures/new", pages.NewLecture)
		app.POST("/courses/:id/lectures/save", pages.SaveLecture)
		app.POST("/courses/:id/lectures/cancel", pages.CancelLecture)
		app.GET("/courses/:id/lectures/:lectureId/edit", pages.EditLecture)
		app.GET("/courses/:id/lectures/:lectureId/delete", pages.ConfirmDeleteLecture)
		app.POST("/courses/:id/lectures/:lectureId/delete", pages.DeleteLecture)

		app.GET("/announcements", pages.Announcements)
		app.POST("/announcements/filter", pages.FilterAnnouncements)
		app.GET("/announcements/new", pages.NewAnnouncement)
		app.POST("/announcements/save", pages.SaveAnnouncement)
		app.POST("/announcements/cancel", pages.CancelAnnouncement)
		app.GET("/announcements/:id/edit", pages.EditAnnouncement)
		app.GET("/announcements/:id/delete", pages.ConfirmDeleteAnnouncement)
		app.POST("/announcements/:id/delete", pages.DeleteAnnouncement)
	}
}
