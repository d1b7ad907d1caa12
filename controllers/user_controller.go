package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"skillcapital/utils"
)

// UserController proxies user lookups and login to the hosted auth provider.
type UserController struct {
	Directory ProfileDirectory
	Logger    *log.Logger
}

func NewUserController(directory ProfileDirectory, logger *log.Logger) *UserController {
	return &UserController{
		Directory: directory,
		Logger:    logger,
	}
}

// GetUsers returns one user's public profile when userId is set, otherwise
// the full directory listing.
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	if userID := c.Query("userId"); userID != "" {
		profile, err := uc.Directory.GetUser(c.Context(), userID)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch user", err)
		}
		return utils.DataResponse(c, fiber.StatusOK, "User fetched successfully", profile)
	}

	profiles, err := uc.Directory.ListUsers(c.Context())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch users", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Users fetched successfully", profiles)
}

// Login exchanges email and password for a provider session.
func (uc *UserController) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	session, err := uc.Directory.Login(c.Context(), input.Email, input.Password)
	if err != nil {
		uc.Logger.Printf("login failed for %s: %v", input.Email, err)
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials", nil)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Login successful", session)
}
