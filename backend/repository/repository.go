package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"cogniverse/backend/models"
)

// Sentinel errors mapped by controllers to the HTTP error taxonomy.
var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate document")
)

// UserRepository defines user-related store operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetManyByIDs(ctx context.Context, ids []bson.ObjectID) ([]*models.User, error)
	UpdateProfile(ctx context.Context, id string, params UpdateProfileParams) (*models.User, error)
	AddEnrollment(ctx context.Context, userID string, courseID bson.ObjectID) error
	RemoveEnrollment(ctx context.Context, userID string, courseID bson.ObjectID) error
	SaveJob(ctx context.Context, userID string, jobID bson.ObjectID) error
}

// UpdateProfileParams is the allow-list of updatable user fields.
// Only non-nil fields are written.
type UpdateProfileParams struct {
	Name       *string
	Password   *string // already hashed by the caller
	Bio        *string
	Skills     *[]string
	Education  *[]models.ProfileEducation
	Experience *[]models.ProfileExperience
}

// CourseRepository defines course-related store operations.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) (*models.Course, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
	GetManyByIDs(ctx context.Context, ids []bson.ObjectID) ([]*models.Course, error)
	List(ctx context.Context, params ListCoursesParams) ([]*models.Course, int64, error)
	Featured(ctx context.Context, limit int) ([]*models.Course, error)
	IncrementEnrolled(ctx context.Context, id string, delta int) error
}

// ListCoursesParams defines the filter and pagination for course listing.
type ListCoursesParams struct {
	Category string
	Level    string
	Search   string
	Page     int
	Limit    int
}

// JobRepository defines job-related store operations.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	GetManyByIDs(ctx context.Context, ids []bson.ObjectID) ([]*models.Job, error)
	List(ctx context.Context, params ListJobsParams) ([]*models.Job, int64, error)
	AddApplication(ctx context.Context, jobID string, app models.Application) error
}

// ListJobsParams defines the filter and pagination for job listing.
type ListJobsParams struct {
	Category   string
	Type       string
	Experience string
	Search     string
	Page       int
	Limit      int
}

// ResumeRepository defines resume store operations.
type ResumeRepository interface {
	GetByUser(ctx context.Context, userID bson.ObjectID) (*models.Resume, error)
	Upsert(ctx context.Context, resume *models.Resume) (*models.Resume, error)
}
