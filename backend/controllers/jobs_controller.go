package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"cogniverse/backend/config"
	"cogniverse/backend/models"
	"cogniverse/backend/repository"
	"cogniverse/backend/utils"
)

// New postings stay listed for 30 days unless an explicit expiry is given.
const defaultJobLifetime = 30 * 24 * time.Hour

type JobsController struct {
	Jobs   repository.JobRepository
	Users  repository.UserRepository
	Cfg    *config.Config
	Logger *log.Logger
}

func NewJobsController(
	jobs repository.JobRepository,
	users repository.UserRepository,
	cfg *config.Config,
	logger *log.Logger,
) *JobsController {
	return &JobsController{Jobs: jobs, Users: users, Cfg: cfg, Logger: logger}
}

func (jc *JobsController) ListJobs(c *fiber.Ctx) error {
	page, limit := pagination(c)

	jobs, total, err := jc.Jobs.List(c.Context(), repository.ListJobsParams{
		Category:   c.Query("category"),
		Type:       c.Query("type"),
		Experience: c.Query("experience"),
		Search:     c.Query("search"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		jc.Logger.Printf("list jobs: %v", err)
		return utils.ServerError(c)
	}

	listed, err := jc.expandPosters(c, jobs)
	if err != nil {
		jc.Logger.Printf("list jobs: could not expand posters: %v", err)
		return utils.ServerError(c)
	}

	return utils.Paginate(c, listed, total, page, limit)
}

// expandPosters resolves postedBy references to name and email only.
func (jc *JobsController) expandPosters(c *fiber.Ctx, jobs []*models.Job) ([]models.ListedJob, error) {
	posterIDs := make([]bson.ObjectID, 0, len(jobs))
	seen := make(map[bson.ObjectID]bool)
	for _, job := range jobs {
		if job.PostedBy.IsZero() || seen[job.PostedBy] {
			continue
		}
		seen[job.PostedBy] = true
		posterIDs = append(posterIDs, job.PostedBy)
	}

	posters, err := jc.Users.GetManyByIDs(c.Context(), posterIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[bson.ObjectID]*models.User, len(posters))
	for _, poster := range posters {
		byID[poster.ID] = poster
	}

	listed := make([]models.ListedJob, 0, len(jobs))
	for _, job := range jobs {
		entry := models.ListedJob{Job: *job}
		if poster, ok := byID[job.PostedBy]; ok {
			entry.Poster = &models.JobPoster{
				ID:    poster.ID.Hex(),
				Name:  poster.Name,
				Email: poster.Email,
			}
		}
		listed = append(listed, entry)
	}

	return listed, nil
}

func (jc *JobsController) Apply(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, jc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	userObjectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	err = jc.Jobs.AddApplication(c.Context(), c.Params("id"), models.Application{
		User:      userObjectID,
		AppliedAt: time.Now(),
		Status:    models.ApplicationPending,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			// Covers jobs reaped by TTL expiry between list and apply.
			return utils.NotFound(c, "Job not found")
		case errors.Is(err, repository.ErrDuplicate):
			return utils.BadRequest(c, "Already applied for this job")
		}
		jc.Logger.Printf("apply: %v", err)
		return utils.ServerError(c)
	}

	return utils.Message(c, "Application submitted successfully")
}

func (jc *JobsController) SaveJob(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, jc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	job, err := jc.Jobs.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound(c, "Job not found")
		}
		jc.Logger.Printf("save job: could not query job: %v", err)
		return utils.ServerError(c)
	}

	if err := jc.Users.SaveJob(c.Context(), userID, job.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return utils.BadRequest(c, "Job already saved")
		case errors.Is(err, repository.ErrNotFound):
			return utils.Unauthorized(c, "Unauthorized")
		}
		jc.Logger.Printf("save job: %v", err)
		return utils.ServerError(c)
	}

	return utils.Message(c, "Job saved successfully")
}

func (jc *JobsController) ListSaved(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, jc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	user, err := jc.Users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Unauthorized(c, "Unauthorized")
		}
		jc.Logger.Printf("list saved: could not query user: %v", err)
		return utils.ServerError(c)
	}

	// Expired jobs are gone from the store; their saved references simply
	// resolve to nothing.
	jobs, err := jc.Jobs.GetManyByIDs(c.Context(), user.SavedJobs)
	if err != nil {
		jc.Logger.Printf("list saved: could not query jobs: %v", err)
		return utils.ServerError(c)
	}

	return c.JSON(jobs)
}

type CreateJobInput struct {
	Title        string        `json:"title" validate:"required"`
	Company      string        `json:"company" validate:"required"`
	Type         string        `json:"type" validate:"required"`
	Location     string        `json:"location" validate:"required"`
	Salary       models.Salary `json:"salary"`
	Experience   string        `json:"experience" validate:"required"`
	Description  string        `json:"description" validate:"required"`
	Requirements []string      `json:"requirements"`
	Skills       []string      `json:"skills"`
	Category     string        `json:"category" validate:"required"`
	ExpiresAt    *time.Time    `json:"expiresAt"`
}

func (jc *JobsController) CreateJob(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, jc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	userObjectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input CreateJobInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if details := utils.ValidateStruct(input); details != nil {
		return utils.ValidationError(c, details)
	}
	if !models.ValidJobType(input.Type) {
		return utils.BadRequest(c, "Invalid job type")
	}
	if !models.ValidJobExperience(input.Experience) {
		return utils.BadRequest(c, "Invalid experience level")
	}
	if !models.ValidJobCategory(input.Category) {
		return utils.BadRequest(c, "Invalid job category")
	}

	expiresAt := time.Now().Add(defaultJobLifetime)
	if input.ExpiresAt != nil {
		expiresAt = *input.ExpiresAt
	}

	job, err := jc.Jobs.Create(c.Context(), &models.Job{
		Title:        input.Title,
		Company:      input.Company,
		Type:         input.Type,
		Location:     input.Location,
		Salary:       input.Salary,
		Experience:   input.Experience,
		Description:  input.Description,
		Requirements: input.Requirements,
		Skills:       input.Skills,
		Category:     input.Category,
		PostedBy:     userObjectID,
		ExpiresAt:    expiresAt,
	})
	if err != nil {
		jc.Logger.Printf("create job: %v", err)
		return utils.ServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}
