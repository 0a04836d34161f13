package support

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/casetrail/casetrail-backend/pkg/models"
)

type ticketRequest struct {
	Question  string `json:"question"`
	AccountID *uint  `json:"account_id"`
}

type Handler struct{ db *gorm.DB }

func NewHandler(db *gorm.DB) *Handler { return &Handler{db: db} }

// @Summary      File a support question
// @Description  Append-only; tickets have no lifecycle beyond creation
// @Tags         support
// @Accept       json
// @Produce      json
// @Param        payload  body  ticketRequest  true  "question, optional account_id"
// @Success      201  {object}  map[string]any  "support_id"
// @Failure      400  {object}  models.ErrorResponse
// @Router       /support [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in ticketRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No data provided")
	}
	in.Question = strings.TrimSpace(in.Question)
	if in.Question == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Question is required")
	}

	ticket := models.SupportTicket{Message: in.Question, AccountID: in.AccountID}
	if err := h.db.Create(&ticket).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Question added successfully",
		"success":    true,
		"support_id": ticket.ID,
	})
}
