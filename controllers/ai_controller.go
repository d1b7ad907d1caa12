package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"skillcapital/utils"
)

// AIController answers free-form drafting questions with a single generative
// completion call.
type AIController struct {
	Generator TextGenerator
	Logger    *log.Logger
}

func NewAIController(generator TextGenerator, logger *log.Logger) *AIController {
	return &AIController{
		Generator: generator,
		Logger:    logger,
	}
}

// Ask runs one prompt through the text model and returns the reply.
func (ac *AIController) Ask(c *fiber.Ctx) error {
	var input struct {
		SearchQuery string `json:"searchQuery" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	text, err := ac.Generator.GenerateText(c.Context(), input.SearchQuery)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate response", err)
	}
	return utils.DataResponse(c, fiber.StatusOK, "Response generated successfully", text)
}
