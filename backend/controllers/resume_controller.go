package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"cogniverse/backend/config"
	"cogniverse/backend/models"
	"cogniverse/backend/pdf"
	"cogniverse/backend/repository"
	"cogniverse/backend/resumetext"
	"cogniverse/backend/utils"
)

type ResumeController struct {
	Resumes  repository.ResumeRepository
	Renderer pdf.Renderer
	Cfg      *config.Config
	Logger   *log.Logger
}

func NewResumeController(
	resumes repository.ResumeRepository,
	renderer pdf.Renderer,
	cfg *config.Config,
	logger *log.Logger,
) *ResumeController {
	return &ResumeController{Resumes: resumes, Renderer: renderer, Cfg: cfg, Logger: logger}
}

func (rc *ResumeController) currentUser(c *fiber.Ctx) (bson.ObjectID, error) {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return bson.ObjectID{}, err
	}
	return bson.ObjectIDFromHex(userID)
}

// GetResume returns the caller's resume, or an explicit null when none has
// been created yet. Absence is not an error here.
func (rc *ResumeController) GetResume(c *fiber.Ctx) error {
	userID, err := rc.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	resume, err := rc.Resumes.GetByUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(nil)
		}
		rc.Logger.Printf("get resume: %v", err)
		return utils.ServerError(c)
	}

	return c.JSON(resume)
}

// UpsertResumeInput is the allow-list of resume fields; the owning user and
// lastUpdated are always set server-side.
type UpsertResumeInput struct {
	PersonalInfo   models.PersonalInfo      `json:"personalInfo"`
	Summary        string                   `json:"summary"`
	Experience     []models.ExperienceEntry `json:"experience"`
	Education      []models.EducationEntry  `json:"education"`
	Skills         models.ResumeSkills      `json:"skills"`
	Projects       []models.Project         `json:"projects"`
	Certifications []models.Certification   `json:"certifications"`
	Template       string                   `json:"template"`
}

func (rc *ResumeController) UpsertResume(c *fiber.Ctx) error {
	userID, err := rc.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input UpsertResumeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	resume, err := rc.Resumes.Upsert(c.Context(), &models.Resume{
		User:           userID,
		PersonalInfo:   input.PersonalInfo,
		Summary:        input.Summary,
		Experience:     input.Experience,
		Education:      input.Education,
		Skills:         input.Skills,
		Projects:       input.Projects,
		Certifications: input.Certifications,
		Template:       input.Template,
	})
	if err != nil {
		rc.Logger.Printf("upsert resume: %v", err)
		return utils.ServerError(c)
	}

	return c.JSON(resume)
}

// GetResumeText renders the experience and education sections in the
// textarea-editable text form.
func (rc *ResumeController) GetResumeText(c *fiber.Ctx) error {
	userID, err := rc.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	resume, err := rc.Resumes.GetByUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound(c, "Resume not found")
		}
		rc.Logger.Printf("get resume text: %v", err)
		return utils.ServerError(c)
	}

	return c.JSON(fiber.Map{
		"version":    resumetext.GrammarVersion,
		"experience": resumetext.FormatExperience(resume.Experience),
		"education":  resumetext.FormatEducation(resume.Education),
	})
}

type ResumeTextInput struct {
	Experience string `json:"experience"`
	Education  string `json:"education"`
}

// UpdateResumeText parses textarea-form experience and education blocks and
// saves them into the caller's resume. Fields outside the text grammar are
// left untouched.
func (rc *ResumeController) UpdateResumeText(c *fiber.Ctx) error {
	userID, err := rc.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input ResumeTextInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	existing, err := rc.Resumes.GetByUser(c.Context(), userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		rc.Logger.Printf("update resume text: %v", err)
		return utils.ServerError(c)
	}

	resume := &models.Resume{User: userID}
	if existing != nil {
		resume = existing
	}
	resume.Experience = resumetext.ParseExperience(input.Experience)
	resume.Education = resumetext.ParseEducation(input.Education)

	updated, err := rc.Resumes.Upsert(c.Context(), resume)
	if err != nil {
		rc.Logger.Printf("update resume text: %v", err)
		return utils.ServerError(c)
	}

	return c.JSON(updated)
}

func (rc *ResumeController) GeneratePDF(c *fiber.Ctx) error {
	userID, err := rc.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	resume, err := rc.Resumes.GetByUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound(c, "Resume not found")
		}
		rc.Logger.Printf("generate pdf: %v", err)
		return utils.ServerError(c)
	}

	pdfBytes, err := rc.Renderer.RenderResume(c.Context(), resume)
	if err != nil {
		rc.Logger.Printf("generate pdf: rendering failed: %v", err)
		return utils.ServerError(c)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resume.pdf"`)
	return c.Send(pdfBytes)
}
