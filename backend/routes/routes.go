package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"cogniverse/backend/config"
	"cogniverse/backend/controllers"
	"cogniverse/backend/middleware"
	"cogniverse/backend/models"
	"cogniverse/backend/pdf"
	"cogniverse/backend/repository"
)

// Repositories bundles the store interfaces the route handlers depend on.
type Repositories struct {
	Users   repository.UserRepository
	Courses repository.CourseRepository
	Jobs    repository.JobRepository
	Resumes repository.ResumeRepository
}

func SetupRoutes(app *fiber.App, repos Repositories, renderer pdf.Renderer, cfg *config.Config, logger *log.Logger) {
	authMiddleware := middleware.AuthMiddleware(cfg)
	posterMiddleware := middleware.RequireRole(cfg, repos.Users, models.RoleInstructor, models.RoleAdmin)

	// Auth routes
	authController := controllers.NewAuthController(repos.Users, cfg, logger)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Get("/api/auth/me", authMiddleware, authController.Me)
	app.Put("/api/auth/profile", authMiddleware, authController.UpdateProfile)

	// Courses routes
	coursesController := controllers.NewCoursesController(repos.Courses, repos.Users, cfg, logger)
	courses := app.Group("/api/courses")
	courses.Get("/", coursesController.ListCourses)
	courses.Get("/featured", coursesController.FeaturedCourses)
	courses.Get("/user/enrolled", authMiddleware, coursesController.ListEnrolled)
	courses.Get("/:id", coursesController.GetCourse)
	courses.Post("/:id/enroll", authMiddleware, coursesController.Enroll)
	courses.Post("/", posterMiddleware, coursesController.CreateCourse)

	// Jobs routes
	jobsController := controllers.NewJobsController(repos.Jobs, repos.Users, cfg, logger)
	jobs := app.Group("/api/jobs")
	jobs.Get("/", jobsController.ListJobs)
	jobs.Get("/user/saved", authMiddleware, jobsController.ListSaved)
	jobs.Post("/:id/apply", authMiddleware, jobsController.Apply)
	jobs.Post("/:id/save", authMiddleware, jobsController.SaveJob)
	jobs.Post("/", posterMiddleware, jobsController.CreateJob)

	// Resume routes
	resumeController := controllers.NewResumeController(repos.Resumes, renderer, cfg, logger)
	resume := app.Group("/api/resume", authMiddleware)
	resume.Get("/", resumeController.GetResume)
	resume.Post("/", resumeController.UpsertResume)
	resume.Get("/text", resumeController.GetResumeText)
	resume.Post("/text", resumeController.UpdateResumeText)
	resume.Post("/generate-pdf", resumeController.GeneratePDF)
}
