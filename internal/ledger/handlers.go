package ledger

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/casetrail/casetrail-backend/pkg/models"
	"github.com/casetrail/casetrail-backend/pkg/utils"
)

type recordRequest struct {
	BadgeID *int `json:"badge_id"`
}

type Handler struct {
	db     *gorm.DB
	ledger *Ledger
}

func NewHandler(db *gorm.DB, l *Ledger) *Handler { return &Handler{db: db, ledger: l} }

// resolve validates the case and badge the record points at.
func (h *Handler) resolve(c *fiber.Ctx) (uint, int, error) {
	caseID, err := strconv.ParseUint(c.Params("caseID"), 10, 64)
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "Case ID must be numeric")
	}

	var in recordRequest
	if err := c.BodyParser(&in); err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if in.BadgeID == nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "Police badge ID required")
	}

	if err := h.db.First(&models.Case{}, "id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, fiber.NewError(fiber.StatusNotFound, "Case not found")
		}
		return 0, 0, fiber.ErrInternalServerError
	}
	if err := h.db.First(&models.Police{}, "badge_id = ?", *in.BadgeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, fiber.NewError(fiber.StatusNotFound, "Invalid Police ID")
		}
		return 0, 0, fiber.ErrInternalServerError
	}
	return uint(caseID), *in.BadgeID, nil
}

// @Summary      Assign an officer to a case
// @Tags         ledger
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        caseID   path  int            true  "case id"
// @Param        payload  body  recordRequest  true  "badge_id"
// @Success      201  {object}  models.CaseAssignment
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /police/cases/{caseID}/assign [post]
func (h *Handler) Assign(c *fiber.Ctx) error {
	caseID, badgeID, err := h.resolve(c)
	if err != nil {
		return err
	}

	rec, err := h.ledger.AssignOfficer(caseID, badgeID)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	utils.LogCaseEvent(h.db, caseID, "police:"+strconv.Itoa(badgeID), "officer_assigned", "")

	return c.Status(fiber.StatusCreated).JSON(rec)
}

// @Summary      Mark a case solved
// @Tags         ledger
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        caseID   path  int            true  "case id"
// @Param        payload  body  recordRequest  true  "badge_id"
// @Success      201  {object}  models.CaseClosure
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /police/cases/{caseID}/solve [post]
func (h *Handler) Solve(c *fiber.Ctx) error {
	caseID, badgeID, err := h.resolve(c)
	if err != nil {
		return err
	}

	rec, err := h.ledger.MarkSolved(caseID, badgeID)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	utils.LogCaseEvent(h.db, caseID, "police:"+strconv.Itoa(badgeID), "closed", "")

	return c.Status(fiber.StatusCreated).JSON(rec)
}
