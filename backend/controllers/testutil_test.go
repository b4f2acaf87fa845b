package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"cogniverse/backend/config"
	"cogniverse/backend/models"
	"cogniverse/backend/repository"
	"cogniverse/backend/routes"
	"cogniverse/backend/utils"
)

// In-memory repositories implementing the same contracts as the Mongo
// implementations, so handlers can be exercised without a database.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[bson.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[bson.ObjectID]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, repository.ErrDuplicate
		}
	}
	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now()
	if user.EnrolledCourses == nil {
		user.EnrolledCourses = []models.Enrollment{}
	}
	if user.SavedJobs == nil {
		user.SavedJobs = []bson.ObjectID{}
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[objectID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetManyByIDs(_ context.Context, ids []bson.ObjectID) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := []*models.User{}
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			found = append(found, user)
		}
	}
	return found, nil
}

func (r *fakeUserRepo) UpdateProfile(
	ctx context.Context,
	id string,
	params repository.UpdateProfileParams,
) (*models.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Password != nil {
		user.Password = *params.Password
	}
	if params.Bio != nil {
		user.Profile.Bio = *params.Bio
	}
	if params.Skills != nil {
		user.Profile.Skills = *params.Skills
	}
	if params.Education != nil {
		user.Profile.Education = *params.Education
	}
	if params.Experience != nil {
		user.Profile.Experience = *params.Experience
	}
	return user, nil
}

func (r *fakeUserRepo) AddEnrollment(ctx context.Context, userID string, courseID bson.ObjectID) error {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, enrollment := range user.EnrolledCourses {
		if enrollment.Course == courseID {
			return repository.ErrDuplicate
		}
	}
	user.EnrolledCourses = append(user.EnrolledCourses, models.Enrollment{Course: courseID})
	return nil
}

func (r *fakeUserRepo) RemoveEnrollment(ctx context.Context, userID string, courseID bson.ObjectID) error {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := user.EnrolledCourses[:0]
	for _, enrollment := range user.EnrolledCourses {
		if enrollment.Course != courseID {
			kept = append(kept, enrollment)
		}
	}
	user.EnrolledCourses = kept
	return nil
}

func (r *fakeUserRepo) SaveJob(ctx context.Context, userID string, jobID bson.ObjectID) error {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, saved := range user.SavedJobs {
		if saved == jobID {
			return repository.ErrDuplicate
		}
	}
	user.SavedJobs = append(user.SavedJobs, jobID)
	return nil
}

type fakeCourseRepo struct {
	mu      sync.Mutex
	courses map[bson.ObjectID]*models.Course
	seq     int
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[bson.ObjectID]*models.Course{}}
}

func (r *fakeCourseRepo) Create(_ context.Context, course *models.Course) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	course.ID = bson.NewObjectID()
	r.seq++
	course.CreatedAt = time.Unix(int64(r.seq), 0)
	r.courses[course.ID] = course
	return course, nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id string) (*models.Course, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	course, ok := r.courses[objectID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return course, nil
}

func (r *fakeCourseRepo) GetManyByIDs(_ context.Context, ids []bson.ObjectID) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := []*models.Course{}
	for _, id := range ids {
		if course, ok := r.courses[id]; ok {
			found = append(found, course)
		}
	}
	return found, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (r *fakeCourseRepo) List(_ context.Context, params repository.ListCoursesParams) ([]*models.Course, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := []*models.Course{}
	for _, course := range r.courses {
		if params.Category != "" && course.Category != params.Category {
			continue
		}
		if params.Level != "" && course.Level != params.Level {
			continue
		}
		if params.Search != "" &&
			!containsFold(course.Title, params.Search) &&
			!containsFold(course.Description, params.Search) {
			continue
		}
		matched = append(matched, course)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return page(matched, params.Page, params.Limit), int64(len(matched)), nil
}

func (r *fakeCourseRepo) Featured(_ context.Context, limit int) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	featured := []*models.Course{}
	for _, course := range r.courses {
		if course.Featured && len(featured) < limit {
			featured = append(featured, course)
		}
	}
	return featured, nil
}

func (r *fakeCourseRepo) IncrementEnrolled(_ context.Context, id string, delta int) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	course, ok := r.courses[objectID]
	if !ok {
		return repository.ErrNotFound
	}
	course.StudentsEnrolled += delta
	return nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[bson.ObjectID]*models.Job
	seq  int
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[bson.ObjectID]*models.Job{}}
}

func (r *fakeJobRepo) Create(_ context.Context, job *models.Job) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job.ID = bson.NewObjectID()
	r.seq++
	job.CreatedAt = time.Unix(int64(r.seq), 0)
	if job.Applications == nil {
		job.Applications = []models.Application{}
	}
	if job.Salary.Currency == "" {
		job.Salary.Currency = "USD"
	}
	r.jobs[job.ID] = job
	return job, nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id string) (*models.Job, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[objectID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return job, nil
}

func (r *fakeJobRepo) GetManyByIDs(_ context.Context, ids []bson.ObjectID) ([]*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := []*models.Job{}
	for _, id := range ids {
		if job, ok := r.jobs[id]; ok {
			found = append(found, job)
		}
	}
	return found, nil
}

func (r *fakeJobRepo) List(_ context.Context, params repository.ListJobsParams) ([]*models.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := []*models.Job{}
	for _, job := range r.jobs {
		if params.Category != "" && job.Category != params.Category {
			continue
		}
		if params.Type != "" && job.Type != params.Type {
			continue
		}
		if params.Experience != "" && job.Experience != params.Experience {
			continue
		}
		if params.Search != "" &&
			!containsFold(job.Title, params.Search) &&
			!containsFold(job.Company, params.Search) &&
			!containsFold(job.Description, params.Search) {
			continue
		}
		matched = append(matched, job)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return page(matched, params.Page, params.Limit), int64(len(matched)), nil
}

func (r *fakeJobRepo) AddApplication(_ context.Context, jobID string, app models.Application) error {
	objectID, err := bson.ObjectIDFromHex(jobID)
	if err != nil {
		return repository.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[objectID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, existing := range job.Applications {
		if existing.User == app.User {
			return repository.ErrDuplicate
		}
	}
	job.Applications = append(job.Applications, app)
	return nil
}

type fakeResumeRepo struct {
	mu      sync.Mutex
	resumes map[bson.ObjectID]*models.Resume
}

func newFakeResumeRepo() *fakeResumeRepo {
	return &fakeResumeRepo{resumes: map[bson.ObjectID]*models.Resume{}}
}

func (r *fakeResumeRepo) GetByUser(_ context.Context, userID bson.ObjectID) (*models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return resume, nil
}

func (r *fakeResumeRepo) Upsert(_ context.Context, resume *models.Resume) (*models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume.LastUpdated = time.Now()
	if resume.Template == "" {
		resume.Template = "modern"
	}
	if existing, ok := r.resumes[resume.User]; ok {
		resume.ID = existing.ID
	} else {
		resume.ID = bson.NewObjectID()
	}
	r.resumes[resume.User] = resume
	return resume, nil
}

type fakeRenderer struct {
	output []byte
}

func (f *fakeRenderer) RenderResume(_ context.Context, _ *models.Resume) ([]byte, error) {
	return f.output, nil
}

func page[T any](items []T, pageNum, limit int) []T {
	start := (pageNum - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// testEnv holds the fiber app plus direct handles on the fakes, so tests
// can seed and inspect store state.
type testEnv struct {
	app     *fiber.App
	cfg     *config.Config
	users   *fakeUserRepo
	courses *fakeCourseRepo
	jobs    *fakeJobRepo
	resumes *fakeResumeRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		cfg: &config.Config{
			JWTSecret:    "testsecret",
			JWTExpiresIn: time.Hour,
		},
		users:   newFakeUserRepo(),
		courses: newFakeCourseRepo(),
		jobs:    newFakeJobRepo(),
		resumes: newFakeResumeRepo(),
	}

	env.app = fiber.New()
	routes.SetupRoutes(env.app, routes.Repositories{
		Users:   env.users,
		Courses: env.courses,
		Jobs:    env.jobs,
		Resumes: env.resumes,
	}, &fakeRenderer{output: []byte("%PDF-1.4 test")}, env.cfg, log.New(io.Discard, "", 0))

	return env
}

// registerUser creates a user through the API and returns its id and token.
func (env *testEnv) registerUser(t *testing.T, name, email, password string) (string, string) {
	t.Helper()

	resp := env.request(t, "POST", "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]interface{})
	id, _ := user["id"].(string)
	require.NotEmpty(t, id)

	return id, token
}

func (env *testEnv) tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(userID, env.cfg)
	require.NoError(t, err)
	return token
}

func (env *testEnv) request(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonData)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := env.app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func decodeList(t *testing.T, resp *http.Response) []interface{} {
	t.Helper()
	var body []interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}
