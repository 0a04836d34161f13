package registry

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/casetrail/casetrail-backend/pkg/models"
	"github.com/casetrail/casetrail-backend/pkg/utils"
)

/* ================================ DTOs ================================= */

// ComplaintRequest is the body for filing a complaint. Police complaints
// send badge_id; civilian complaints send civilian_id.
type ComplaintRequest struct {
	BadgeID    *int  `json:"badge_id"`
	CivilianID *uint `json:"civilian_id"`

	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	Address      string `json:"address"`
	IncidentDate string `json:"incidentDate"`
}

type caseSummary struct {
	CaseID      uint   `json:"case_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	LawyerID    string `json:"lawyer_id"`
}

/* ============================== Handler ================================= */

type Handler struct {
	db     *gorm.DB
	policy AssignmentPolicy
}

func NewHandler(db *gorm.DB, policy AssignmentPolicy) *Handler {
	return &Handler{db: db, policy: policy}
}

// OpenCase derives a case from a freshly persisted incident inside tx: read
// the current lawyer pool, pick one per policy, and create the case under
// the incident's ID. Callers own the transaction; any error here must roll
// the incident back too.
func OpenCase(tx *gorm.DB, policy AssignmentPolicy, inc *models.Incident, civilianID *uint) (*models.Case, error) {
	var pool []models.Lawyer
	if err := tx.Find(&pool).Error; err != nil {
		return nil, err
	}
	assignee, err := policy.Select(pool)
	if err != nil {
		return nil, err
	}

	name := inc.Name
	if name == "" {
		name = "Unnamed"
	}
	cs := models.Case{
		ID:          inc.ID,
		Title:       fmt.Sprintf("Case: %s - %s", name, inc.IncidentDate),
		Description: inc.Description,
		CivilianID:  civilianID,
		LawyerID:    assignee.BarID,
	}
	if err := tx.Create(&cs).Error; err != nil {
		return nil, err
	}
	return &cs, nil
}

// fileComplaint runs the whole incident→case(→assignment) sequence in one
// transaction so a midway failure leaves no partial rows.
func (h *Handler) fileComplaint(in *ComplaintRequest, badgeID *int, civilianID *uint) (*models.Incident, *models.Case, error) {
	var (
		inc models.Incident
		cs  *models.Case
	)
	err := h.db.Transaction(func(tx *gorm.DB) error {
		inc = models.Incident{
			Name:         in.Name,
			Email:        in.Email,
			Phone:        in.Phone,
			Description:  in.Description,
			Location:     in.Location,
			Address:      in.Address,
			IncidentDate: in.IncidentDate,
		}
		if err := tx.Create(&inc).Error; err != nil {
			return err
		}

		var err error
		cs, err = OpenCase(tx, h.policy, &inc, civilianID)
		if err != nil {
			return err
		}

		if badgeID != nil {
			if err := tx.Create(&models.CaseAssignment{CaseID: cs.ID, BadgeID: *badgeID}).Error; err != nil {
				return err
			}
			utils.LogCaseEvent(tx, cs.ID, "police:"+strconv.Itoa(*badgeID), "created", "complaint filed by officer")
		} else if civilianID != nil {
			utils.LogCaseEvent(tx, cs.ID, "civilian:"+strconv.FormatUint(uint64(*civilianID), 10), "created", "complaint filed by civilian")
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &inc, cs, nil
}

// @Summary      Register police complaint
// @Description  Officer files an incident; a case is opened and assigned to a random lawyer, with the officer attached
// @Tags         registry
// @Accept       json
// @Produce      json
// @Param        payload  body  ComplaintRequest  true  "Complaint payload"
// @Success      201  {object}  map[string]any  "incident_id, case_id, lawyer_id"
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse  "unknown badge"
// @Failure      500  {object}  models.ErrorResponse  "no lawyers available"
// @Router       /police/complaint [post]
func (h *Handler) RegisterPoliceComplaint(c *fiber.Ctx) error {
	var in ComplaintRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if in.BadgeID == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Police badge ID required")
	}

	var pol models.Police
	if err := h.db.Where("badge_id = ?", *in.BadgeID).First(&pol).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid police ID")
		}
		return fiber.ErrInternalServerError
	}

	if in.Description == "" || in.Location == "" || in.IncidentDate == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Description, location, and incident date are required")
	}

	inc, cs, err := h.fileComplaint(&in, in.BadgeID, nil)
	if err != nil {
		if errors.Is(err, ErrNoLawyers) {
			return fiber.NewError(fiber.StatusInternalServerError, ErrNoLawyers.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error registering complaint")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Complaint registered and case assigned successfully",
		"incident_id": inc.ID,
		"case_id":     cs.ID,
		"lawyer_id":   cs.LawyerID,
	})
}

// @Summary      Register civilian complaint
// @Description  Citizen files an incident; a case is opened with the civilian as complainant and assigned to a random lawyer
// @Tags         registry
// @Accept       json
// @Produce      json
// @Param        payload  body  ComplaintRequest  true  "Complaint payload"
// @Success      201  {object}  map[string]any  "incident_id, case_id, lawyer_id"
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse  "unknown civilian"
// @Failure      500  {object}  models.ErrorResponse  "no lawyers available"
// @Router       /civilian/complaint [post]
func (h *Handler) RegisterCivilianComplaint(c *fiber.Ctx) error {
	var in ComplaintRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if in.CivilianID == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Civilian ID required")
	}

	var civ models.Civilian
	if err := h.db.First(&civ, "id = ?", *in.CivilianID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Invalid civilian ID")
		}
		return fiber.ErrInternalServerError
	}

	if in.Description == "" || in.Location == "" || in.IncidentDate == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Description, location, and incident date are required")
	}

	inc, cs, err := h.fileComplaint(&in, nil, in.CivilianID)
	if err != nil {
		if errors.Is(err, ErrNoLawyers) {
			return fiber.NewError(fiber.StatusInternalServerError, ErrNoLawyers.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error registering complaint")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Complaint registered and case assigned successfully",
		"incident_id": inc.ID,
		"case_id":     cs.ID,
		"lawyer_id":   cs.LawyerID,
	})
}

/* =============================== Listings =============================== */

// @Summary      Cases assigned to a lawyer
// @Tags         registry
// @Produce      json
// @Param        lawyerID  path  string  true  "bar ID"
// @Success      200  {object}  map[string]any  "assignedCases"
// @Router       /lawyer/cases/{lawyerID} [get]
func (h *Handler) LawyerCases(c *fiber.Ctx) error {
	lawyerID := c.Params("lawyerID")

	rows := []caseSummary{}
	if err := h.db.Model(&models.Case{}).
		Select("id AS case_id, title, description, lawyer_id").
		Where("lawyer_id = ?", lawyerID).
		Order("id").
		Scan(&rows).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{"assignedCases": rows})
}

// @Summary      Cases worked and closed by an officer
// @Tags         registry
// @Produce      json
// @Param        badgeID  path  int  true  "badge number"
// @Success      200  {object}  map[string]any  "assignedCases, resolvedCases"
// @Failure      400  {object}  models.ErrorResponse
// @Router       /police/cases/{badgeID} [get]
func (h *Handler) PoliceCases(c *fiber.Ctx) error {
	badgeID, err := strconv.Atoi(c.Params("badgeID"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Badge ID must be numeric")
	}

	assigned := []caseSummary{}
	if err := h.db.Table("cases").
		Select("cases.id AS case_id, cases.title, cases.description, cases.lawyer_id").
		Joins("JOIN case_assignments ON case_assignments.case_id = cases.id").
		Where("case_assignments.badge_id = ?", badgeID).
		Group("cases.id").
		Order("cases.id").
		Scan(&assigned).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	resolved := []caseSummary{}
	if err := h.db.Table("cases").
		Select("cases.id AS case_id, cases.title, cases.description, cases.lawyer_id").
		Joins("JOIN case_closures ON case_closures.case_id = cases.id").
		Where("case_closures.badge_id = ?", badgeID).
		Group("cases.id").
		Order("cases.id").
		Scan(&resolved).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"assignedCases": assigned,
		"resolvedCases": resolved,
	})
}
