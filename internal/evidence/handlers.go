package evidence

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/casetrail/casetrail-backend/internal/storage"
	"github.com/casetrail/casetrail-backend/pkg/models"
	"github.com/casetrail/casetrail-backend/pkg/sanitize"
	"github.com/casetrail/casetrail-backend/pkg/utils"
)

// allowedExtensions is the submission allow-list; matching is
// case-insensitive on the extension.
var allowedExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "pdf": true, "txt": true,
}

// Authorizer answers whether an officer holds an assignment for a case.
// Satisfied by *ledger.Ledger.
type Authorizer interface {
	IsAssigned(caseID uint, badgeID int) (bool, error)
}

type Handler struct {
	db    *gorm.DB
	store storage.Store
	auth  Authorizer
}

func NewHandler(db *gorm.DB, store storage.Store, auth Authorizer) *Handler {
	return &Handler{db: db, store: store, auth: auth}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func details(e *models.Evidence) string {
	return fmt.Sprintf("File: %s, Case ID: %d, Submitted by: %s",
		filepath.Base(e.FilePath), e.CaseID, capitalize(string(e.SubmitterType)))
}

// @Summary      Submit evidence
// @Description  Police or the case's assigned lawyer uploads a file; the submitter's relation to the case is re-validated on every call
// @Tags         evidence
// @Accept       multipart/form-data
// @Produce      json
// @Param        evidenceFile   formData  file    true  "png/jpg/jpeg/pdf/txt"
// @Param        complaintId    formData  string  true  "case id"
// @Param        submitterId    formData  string  true  "badge number or bar ID"
// @Param        submitterType  formData  string  true  "police | lawyer"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /evidence [post]
func (h *Handler) Submit(c *fiber.Ctx) error {
	// Check order matters: each step short-circuits with its own reason.

	// 1) File part present with a real filename
	fh, err := c.FormFile("evidenceFile")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No file part in the request")
	}
	if strings.TrimSpace(fh.Filename) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "No selected file")
	}

	// 2) Required fields
	complaintID := strings.TrimSpace(c.FormValue("complaintId"))
	submitterID := strings.TrimSpace(c.FormValue("submitterId"))
	submitterType := strings.TrimSpace(c.FormValue("submitterType"))
	if complaintID == "" || submitterID == "" || submitterType == "" {
		return fiber.NewError(fiber.StatusBadRequest,
			"Complaint ID, Submitter ID, Submitter Type, and evidence file are required")
	}

	// 3) Extension allow-list
	if !allowedExtensions[sanitize.Ext(fh.Filename)] {
		return fiber.NewError(fiber.StatusBadRequest,
			"File type not allowed. Allowed types: png, jpg, jpeg, pdf, txt")
	}

	// 4) Numeric case id
	caseID64, err := strconv.ParseUint(complaintID, 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Complaint ID must be numeric")
	}
	caseID := uint(caseID64)

	// 5–7) Submitter must hold a live relation to the case; never cached.
	rec := models.Evidence{CaseID: caseID}
	switch models.SubmitterType(submitterType) {
	case models.SubmitterPolice:
		badgeID, err := strconv.Atoi(submitterID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Invalid Police ID")
		}
		if err := h.db.First(&models.Police{}, "badge_id = ?", badgeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Invalid Police ID")
			}
			return fiber.ErrInternalServerError
		}
		assigned, err := h.auth.IsAssigned(caseID, badgeID)
		if err != nil {
			return fiber.ErrInternalServerError
		}
		if !assigned {
			return fiber.NewError(fiber.StatusForbidden, "This case is not assigned to you")
		}
		rec.BadgeID = &badgeID
		rec.SubmitterType = models.SubmitterPolice

	case models.SubmitterLawyer:
		if err := h.db.First(&models.Lawyer{}, "bar_id = ?", submitterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Invalid Lawyer ID")
			}
			return fiber.ErrInternalServerError
		}
		var cnt int64
		if err := h.db.Model(&models.Case{}).
			Where("id = ? AND lawyer_id = ?", caseID, submitterID).
			Count(&cnt).Error; err != nil {
			return fiber.ErrInternalServerError
		}
		if cnt == 0 {
			return fiber.NewError(fiber.StatusForbidden, "This case is not assigned to you")
		}
		rec.BarID = &submitterID
		rec.SubmitterType = models.SubmitterLawyer

	default:
		return fiber.NewError(fiber.StatusBadRequest, "Invalid submitter type")
	}

	// 8) Persist the file, then the record. If the insert fails the stored
	// file is removed again so no orphan survives.
	f, err := fh.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error reading evidence file")
	}
	defer f.Close()

	key := storage.MakeObjectKey(caseID, fh.Filename)
	storedPath, err := h.store.Save(key, f)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error storing evidence file")
	}

	rec.FilePath = storedPath
	if err := h.db.Create(&rec).Error; err != nil {
		_ = h.store.Remove(storedPath)
		return fiber.NewError(fiber.StatusInternalServerError, "Error submitting evidence")
	}
	utils.LogCaseEvent(h.db, caseID, submitterType+":"+submitterID, "evidence_submitted", filepath.Base(storedPath))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Evidence submitted successfully",
		"evidence": fiber.Map{
			"evidence_id":    rec.ID,
			"complaint_id":   rec.CaseID,
			"police_id":      rec.BadgeID,
			"lawyer_id":      rec.BarID,
			"submitter_type": rec.SubmitterType,
			"file_path":      rec.FilePath,
			"upload_date":    rec.UploadedAt,
			"details":        details(&rec),
		},
	})
}

// @Summary      List evidence for a case
// @Tags         evidence
// @Produce      json
// @Param        caseID  path  int  true  "case id"
// @Success      200  {array}  map[string]any
// @Failure      400  {object}  models.ErrorResponse
// @Router       /evidence/case/{caseID} [get]
func (h *Handler) ListByCase(c *fiber.Ctx) error {
	caseID, err := strconv.ParseUint(c.Params("caseID"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Case ID must be numeric")
	}

	var list []models.Evidence
	if err := h.db.Where("case_id = ?", caseID).Order("id").Find(&list).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	out := make([]fiber.Map, 0, len(list))
	for i := range list {
		e := &list[i]
		out = append(out, fiber.Map{
			"evidence_id":    e.ID,
			"complaint_id":   e.CaseID,
			"police_id":      e.BadgeID,
			"lawyer_id":      e.BarID,
			"submitter_type": e.SubmitterType,
			"file_path":      e.FilePath,
			"upload_date":    e.UploadedAt,
			"details":        details(e),
		})
	}
	return c.JSON(out)
}
