package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"cogniverse/backend/config"
	"cogniverse/backend/models"
	"cogniverse/backend/repository"
	"cogniverse/backend/utils"
)

// Passwords are hashed with a fixed bcrypt cost so stored hashes stay
// compatible across deployments.
const bcryptCost = 12

type AuthController struct {
	Users  repository.UserRepository
	Cfg    *config.Config
	Logger *log.Logger
}

func NewAuthController(users repository.UserRepository, cfg *config.Config, logger *log.Logger) *AuthController {
	return &AuthController{Users: users, Cfg: cfg, Logger: logger}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=student instructor admin"`
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if details := utils.ValidateStruct(input); details != nil {
		return utils.ValidationError(c, details)
	}

	if input.Role == "" {
		input.Role = models.RoleStudent
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		ac.Logger.Printf("register: could not hash password: %v", err)
		return utils.ServerError(c)
	}

	user, err := ac.Users.Create(c.Context(), &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: string(hashedPassword),
		Role:     input.Role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return utils.BadRequest(c, "User already exists")
		}
		ac.Logger.Printf("register: could not create user: %v", err)
		return utils.ServerError(c)
	}

	token, err := utils.GenerateJWTToken(user.ID.Hex(), ac.Cfg)
	if err != nil {
		ac.Logger.Printf("register: could not generate token: %v", err)
		return utils.ServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if details := utils.ValidateStruct(input); details != nil {
		return utils.ValidationError(c, details)
	}

	// Unknown email and wrong password answer identically, so the response
	// never reveals whether an account exists.
	user, err := ac.Users.GetByEmail(c.Context(), strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		ac.Logger.Printf("login: could not query user: %v", err)
		return utils.ServerError(c)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	token, err := utils.GenerateJWTToken(user.ID.Hex(), ac.Cfg)
	if err != nil {
		ac.Logger.Printf("login: could not generate token: %v", err)
		return utils.ServerError(c)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	user, err := ac.Users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Unauthorized(c, "Unauthorized")
		}
		ac.Logger.Printf("me: could not query user: %v", err)
		return utils.ServerError(c)
	}

	return c.JSON(user)
}

// UpdateProfileInput is the allow-list of profile fields; unknown fields in
// the request body are rejected rather than merged blindly.
type UpdateProfileInput struct {
	Name       *string                     `json:"name" validate:"omitempty,min=1"`
	Password   *string                     `json:"password" validate:"omitempty,min=6"`
	Bio        *string                     `json:"bio"`
	Skills     *[]string                   `json:"skills"`
	Education  *[]models.ProfileEducation  `json:"education"`
	Experience *[]models.ProfileExperience `json:"experience"`
}

func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input UpdateProfileInput
	decoder := json.NewDecoder(strings.NewReader(string(c.Body())))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if details := utils.ValidateStruct(input); details != nil {
		return utils.ValidationError(c, details)
	}

	params := repository.UpdateProfileParams{
		Name:       input.Name,
		Bio:        input.Bio,
		Skills:     input.Skills,
		Education:  input.Education,
		Experience: input.Experience,
	}

	// The password is re-hashed only when it is part of the change-set.
	if input.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			ac.Logger.Printf("update profile: could not hash password: %v", err)
			return utils.ServerError(c)
		}
		hashed := string(hashedPassword)
		params.Password = &hashed
	}

	user, err := ac.Users.UpdateProfile(c.Context(), userID, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Unauthorized(c, "Unauthorized")
		}
		ac.Logger.Printf("update profile: could not update user: %v", err)
		return utils.ServerError(c)
	}

	return c.JSON(user)
}
