// Package directory records where lawyers and officers operate: court
// branches per bar ID and station records per badge. One normalized table
// each, keyed by a foreign key, instead of a table per branch or station.
package directory

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/casetrail/casetrail-backend/pkg/models"
)

type lawyerInfoRequest struct {
	BarID         string `json:"barId"`
	BranchName    string `json:"branchName"`
	State         string `json:"state"`
	CourtLocation string `json:"courtLocation"`
	Judiciary     string `json:"judiciary"`
	JudiciaryID   string `json:"judiciaryId"`
}

type policeInfoRequest struct {
	PoliceID        string `json:"policeId"`
	State           string `json:"state"`
	PinCode         string `json:"pinCode"`
	StationNumber   string `json:"stationNumber"`
	StationLocation string `json:"stationLocation"`
}

type Handler struct{ db *gorm.DB }

func NewHandler(db *gorm.DB) *Handler { return &Handler{db: db} }

// @Summary      Register a lawyer's court branch
// @Tags         directory
// @Accept       json
// @Produce      json
// @Param        payload  body  lawyerInfoRequest  true  "branch registration"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  models.ErrorResponse  "branch already registered"
// @Failure      404  {object}  models.ErrorResponse  "unknown lawyer"
// @Router       /lawyerInfo [post]
func (h *Handler) AddLawyerBranch(c *fiber.Ctx) error {
	var in lawyerInfoRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	in.BarID = strings.TrimSpace(in.BarID)
	if in.BarID == "" || in.State == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Bar ID and State are required")
	}

	if err := h.db.First(&models.Lawyer{}, "bar_id = ?", in.BarID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Lawyer not found. Please sign up first.")
		}
		return fiber.ErrInternalServerError
	}

	var cnt int64
	if err := h.db.Model(&models.CourtBranch{}).
		Where("bar_id = ? AND branch_name = ?", in.BarID, in.BranchName).
		Count(&cnt).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	if cnt > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Court Branch already registered for this lawyer")
	}

	branch := models.CourtBranch{
		BarID:         in.BarID,
		BranchName:    in.BranchName,
		State:         in.State,
		CourtLocation: in.CourtLocation,
		Judiciary:     in.Judiciary,
		JudiciaryID:   in.JudiciaryID,
	}
	if err := h.db.Create(&branch).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Court Registered Successfully",
		"success": true,
		"info_id": branch.ID,
	})
}

// @Summary      Register an officer's station
// @Tags         directory
// @Accept       json
// @Produce      json
// @Param        payload  body  policeInfoRequest  true  "station registration"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  models.ErrorResponse  "station number already registered"
// @Failure      404  {object}  models.ErrorResponse  "unknown officer"
// @Router       /policeInfo [post]
func (h *Handler) AddStationRecord(c *fiber.Ctx) error {
	var in policeInfoRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if in.PoliceID == "" || in.State == "" || in.PinCode == "" || in.StationNumber == "" || in.StationLocation == "" {
		return fiber.NewError(fiber.StatusBadRequest, "All fields are required")
	}

	pinCode, err1 := strconv.Atoi(in.PinCode)
	stationNumber, err2 := strconv.Atoi(in.StationNumber)
	if err1 != nil || err2 != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Pin Code and Station Number must be numeric")
	}
	badgeID, err := strconv.Atoi(strings.TrimSpace(in.PoliceID))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Police not found")
	}

	if err := h.db.First(&models.Police{}, "badge_id = ?", badgeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Police not found")
		}
		return fiber.ErrInternalServerError
	}

	var cnt int64
	if err := h.db.Model(&models.StationRecord{}).
		Where("station_number = ?", stationNumber).
		Count(&cnt).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	if cnt > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Station number already registered")
	}

	rec := models.StationRecord{
		BadgeID:         badgeID,
		State:           in.State,
		PinCode:         pinCode,
		StationNumber:   stationNumber,
		StationLocation: in.StationLocation,
	}
	if err := h.db.Create(&rec).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Police-Station info registered successfully",
		"success": true,
		"id":      rec.ID,
	})
}
