package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"cogniverse/backend/config"
	"cogniverse/backend/models"
	"cogniverse/backend/repository"
	"cogniverse/backend/utils"
)

const (
	defaultPageSize  = 12
	maxPageSize      = 100
	featuredMaxCount = 6
)

type CoursesController struct {
	Courses repository.CourseRepository
	Users   repository.UserRepository
	Cfg     *config.Config
	Logger  *log.Logger
}

func NewCoursesController(
	courses repository.CourseRepository,
	users repository.UserRepository,
	cfg *config.Config,
	logger *log.Logger,
) *CoursesController {
	return &CoursesController{Courses: courses, Users: users, Cfg: cfg, Logger: logger}
}

func pagination(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", defaultPageSize)
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	page, limit := pagination(c)

	courses, total, err := cc.Courses.List(c.Context(), repository.ListCoursesParams{
		Category: c.Query("category"),
		Level:    c.Query("level"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		cc.Logger.Printf("list courses: %v", err)
		return utils.ServerError(c)
	}

	return utils.Paginate(c, courses, total, page, limit)
}

func (cc *CoursesController) FeaturedCourses(c *fiber.Ctx) error {
	courses, err := cc.Courses.Featured(c.Context(), featuredMaxCount)
	if err != nil {
		cc.Logger.Printf("featured courses: %v", err)
		return utils.ServerError(c)
	}

	return c.JSON(courses)
}

func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	course, err := cc.Courses.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		cc.Logger.Printf("get course: %v", err)
		return utils.ServerError(c)
	}

	return c.JSON(course)
}

func (cc *CoursesController) Enroll(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	course, err := cc.Courses.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		cc.Logger.Printf("enroll: could not query course: %v", err)
		return utils.ServerError(c)
	}

	if err := cc.Users.AddEnrollment(c.Context(), userID, course.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return utils.BadRequest(c, "Already enrolled in this course")
		case errors.Is(err, repository.ErrNotFound):
			return utils.Unauthorized(c, "Unauthorized")
		}
		cc.Logger.Printf("enroll: could not record enrollment: %v", err)
		return utils.ServerError(c)
	}

	// The counter increment must land together with the enrollment record;
	// on failure the enrollment is rolled back so neither side is left
	// half-applied.
	if err := cc.Courses.IncrementEnrolled(c.Context(), course.ID.Hex(), 1); err != nil {
		if rbErr := cc.Users.RemoveEnrollment(c.Context(), userID, course.ID); rbErr != nil {
			cc.Logger.Printf("enroll: rollback failed for user %s course %s: %v", userID, course.ID.Hex(), rbErr)
		}
		cc.Logger.Printf("enroll: could not increment counter: %v", err)
		return utils.ServerError(c)
	}

	return utils.Message(c, "Successfully enrolled in course")
}

func (cc *CoursesController) ListEnrolled(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	user, err := cc.Users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Unauthorized(c, "Unauthorized")
		}
		cc.Logger.Printf("list enrolled: could not query user: %v", err)
		return utils.ServerError(c)
	}

	courseIDs := make([]bson.ObjectID, 0, len(user.EnrolledCourses))
	for _, enrollment := range user.EnrolledCourses {
		courseIDs = append(courseIDs, enrollment.Course)
	}

	courses, err := cc.Courses.GetManyByIDs(c.Context(), courseIDs)
	if err != nil {
		cc.Logger.Printf("list enrolled: could not query courses: %v", err)
		return utils.ServerError(c)
	}

	byID := make(map[bson.ObjectID]*models.Course, len(courses))
	for _, course := range courses {
		byID[course.ID] = course
	}

	// A course deleted after enrollment simply drops out of the list.
	enrolled := make([]models.EnrolledCourse, 0, len(user.EnrolledCourses))
	for _, enrollment := range user.EnrolledCourses {
		course, ok := byID[enrollment.Course]
		if !ok {
			continue
		}
		enrolled = append(enrolled, models.EnrolledCourse{
			Course:    course,
			Progress:  enrollment.Progress,
			Completed: enrollment.Completed,
		})
	}

	return c.JSON(enrolled)
}

type CreateCourseInput struct {
	Title       string                  `json:"title" validate:"required"`
	Description string                  `json:"description" validate:"required"`
	Category    string                  `json:"category" validate:"required"`
	Level       string                  `json:"level" validate:"required"`
	Duration    string                  `json:"duration" validate:"required"`
	Price       float64                 `json:"price" validate:"gte=0"`
	Instructor  models.Instructor       `json:"instructor"`
	Curriculum  []models.CurriculumWeek `json:"curriculum"`
	Image       string                  `json:"image"`
	Featured    bool                    `json:"featured"`
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var input CreateCourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if details := utils.ValidateStruct(input); details != nil {
		return utils.ValidationError(c, details)
	}
	if !models.ValidCourseCategory(input.Category) {
		return utils.BadRequest(c, "Invalid course category")
	}
	if !models.ValidCourseLevel(input.Level) {
		return utils.BadRequest(c, "Invalid course level")
	}

	course, err := cc.Courses.Create(c.Context(), &models.Course{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Level:       input.Level,
		Duration:    input.Duration,
		Price:       input.Price,
		Instructor:  input.Instructor,
		Curriculum:  input.Curriculum,
		Image:       input.Image,
		Featured:    input.Featured,
	})
	if err != nil {
		cc.Logger.Printf("create course: %v", err)
		return utils.ServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}
