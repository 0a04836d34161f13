package auth

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/casetrail/casetrail-backend/pkg/models"
	"github.com/casetrail/casetrail-backend/pkg/validation"
)

/* ================================ DTOs ================================= */

// Request body for /civilian/signup
type CivilianSignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	PhoneNo  string `json:"phoneno" validate:"required,phone10"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Request body for /lawyer/signup and /police/signup. Lawyers send their bar
// ID, police their badge number (as a string).
type OfficialSignupRequest struct {
	ID       string `json:"id" validate:"required,max=20"`
	Email    string `json:"email" validate:"required,email,max=100"`
	PhoneNo  string `json:"phoneno" validate:"required,phone10"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Request body for all three login routes
type LoginRequest struct {
	IDOrUsername string `json:"idOrUsername"`
	Password     string `json:"password"`
}

/* ============================== Handler ================================= */

type Handler struct{ db *gorm.DB }

func NewHandler(db *gorm.DB) *Handler { return &Handler{db: db} }

func hashPassword(plain string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(hash)
}

func checkPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// usernameTaken reports whether any account already holds the handle.
// The namespace is shared across civilian handles, bar IDs, and badge
// numbers.
func (h *Handler) usernameTaken(username string) (bool, error) {
	var cnt int64
	err := h.db.Model(&models.Account{}).Where("username = ?", username).Count(&cnt).Error
	return cnt > 0, err
}

func (h *Handler) emailTaken(email string) (bool, error) {
	var cnt int64
	err := h.db.Model(&models.Account{}).Where("email = ?", email).Count(&cnt).Error
	return cnt > 0, err
}

/* =============================== Signups ================================ */

// @Summary      Civilian signup
// @Description  Register a citizen account with its civilian profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  CivilianSignupRequest  true  "Signup payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      409  {object}  models.ErrorResponse  "username already exists"
// @Router       /civilian/signup [post]
func (h *Handler) CivilianSignup(c *fiber.Ctx) error {
	var in CivilianSignupRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	in.Username = strings.TrimSpace(in.Username)

	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	taken, err := h.usernameTaken(in.Username)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if taken {
		return fiber.NewError(fiber.StatusConflict, "User with same username exists!")
	}

	var acc models.Account
	err = h.db.Transaction(func(tx *gorm.DB) error {
		acc = models.Account{
			Username:     in.Username,
			PhoneNo:      in.PhoneNo,
			PasswordHash: hashPassword(in.Password),
		}
		if err := tx.Create(&acc).Error; err != nil {
			return err
		}
		return tx.Create(&models.Civilian{Username: in.Username, AccountID: acc.ID}).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusConflict, "User with same username exists!")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Signup successful"})
}

// @Summary      Lawyer signup
// @Description  Register a lawyer account keyed by bar ID
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  OfficialSignupRequest  true  "Signup payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /lawyer/signup [post]
func (h *Handler) LawyerSignup(c *fiber.Ctx) error {
	var in OfficialSignupRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	in.ID = strings.TrimSpace(in.ID)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	if taken, err := h.emailTaken(in.Email); err != nil {
		return fiber.ErrInternalServerError
	} else if taken {
		return fiber.NewError(fiber.StatusConflict, "An account with this email already exists")
	}
	if taken, err := h.usernameTaken(in.ID); err != nil {
		return fiber.ErrInternalServerError
	} else if taken {
		return fiber.NewError(fiber.StatusConflict, "This Bar ID is already registered")
	}
	var cnt int64
	if err := h.db.Model(&models.Lawyer{}).Where("bar_id = ?", in.ID).Count(&cnt).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	if cnt > 0 {
		return fiber.NewError(fiber.StatusConflict, "This Bar ID is already registered as a lawyer")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		acc := models.Account{
			Username:     in.ID,
			Email:        &in.Email,
			PhoneNo:      in.PhoneNo,
			PasswordHash: hashPassword(in.Password),
		}
		if err := tx.Create(&acc).Error; err != nil {
			return err
		}
		return tx.Create(&models.Lawyer{BarID: in.ID, AccountID: acc.ID}).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusConflict, "This Bar ID is already registered")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Lawyer signup successful"})
}

// @Summary      Police signup
// @Description  Register a police account keyed by badge number
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  OfficialSignupRequest  true  "Signup payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /police/signup [post]
func (h *Handler) PoliceSignup(c *fiber.Ctx) error {
	var in OfficialSignupRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	in.ID = strings.TrimSpace(in.ID)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	badgeID, err := strconv.Atoi(in.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Badge ID must be a valid number")
	}
	if badgeID <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Badge ID must be a positive number")
	}

	if taken, err := h.emailTaken(in.Email); err != nil {
		return fiber.ErrInternalServerError
	} else if taken {
		return fiber.NewError(fiber.StatusConflict, "An account with this email already exists")
	}
	if taken, err := h.usernameTaken(in.ID); err != nil {
		return fiber.ErrInternalServerError
	} else if taken {
		return fiber.NewError(fiber.StatusConflict, "This Badge ID is already registered")
	}
	var cnt int64
	if err := h.db.Model(&models.Police{}).Where("badge_id = ?", badgeID).Count(&cnt).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	if cnt > 0 {
		return fiber.NewError(fiber.StatusConflict, "This Badge ID is already registered as a police officer")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		acc := models.Account{
			Username:     in.ID,
			Email:        &in.Email,
			PhoneNo:      in.PhoneNo,
			PasswordHash: hashPassword(in.Password),
		}
		if err := tx.Create(&acc).Error; err != nil {
			return err
		}
		return tx.Create(&models.Police{BadgeID: badgeID, AccountID: acc.ID}).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusConflict, "This Badge ID is already registered")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Police signup successful"})
}

/* ================================ Logins ================================ */

// @Summary      Civilian login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  LoginRequest  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse  "account has no civilian profile"
// @Router       /civilian/login [post]
func (h *Handler) CivilianLogin(c *fiber.Ctx) error {
	var in LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	if in.IDOrUsername == "" || in.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Username and Password required")
	}

	var acc models.Account
	if err := h.db.Where("username = ?", in.IDOrUsername).First(&acc).Error; err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !checkPassword(acc.PasswordHash, in.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	// Credentials alone are not enough: the account must carry the profile.
	var civ models.Civilian
	if err := h.db.Where("account_id = ?", acc.ID).First(&civ).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "No civilian profile found")
	}

	token, _ := IssueToken(strconv.FormatUint(uint64(acc.ID), 10), models.RoleCivilian, strconv.FormatUint(uint64(civ.ID), 10))
	return c.JSON(fiber.Map{
		"message":     "Login successful",
		"account_id":  acc.ID,
		"civilian_id": civ.ID,
		"userType":    "Civilian",
		"token":       token,
	})
}

// @Summary      Lawyer login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  LoginRequest  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /lawyer/login [post]
func (h *Handler) LawyerLogin(c *fiber.Ctx) error {
	var in LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	if in.IDOrUsername == "" || in.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Lawyer ID and Password required")
	}

	var lw models.Lawyer
	if err := h.db.Where("bar_id = ?", in.IDOrUsername).First(&lw).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "No lawyer profile found")
	}
	var acc models.Account
	if err := h.db.First(&acc, "id = ?", lw.AccountID).Error; err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !checkPassword(acc.PasswordHash, in.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, _ := IssueToken(strconv.FormatUint(uint64(acc.ID), 10), models.RoleLawyer, lw.BarID)
	return c.JSON(fiber.Map{
		"message":  "Lawyer login successful",
		"userType": "Lawyer",
		"bar_id":   lw.BarID,
		"token":    token,
	})
}

// @Summary      Police login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  LoginRequest  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /police/login [post]
func (h *Handler) PoliceLogin(c *fiber.Ctx) error {
	var in LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}
	if in.IDOrUsername == "" || in.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Badge ID and Password required")
	}

	badgeID, err := strconv.Atoi(strings.TrimSpace(in.IDOrUsername))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "No police profile found")
	}
	var pol models.Police
	if err := h.db.Where("badge_id = ?", badgeID).First(&pol).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "No police profile found")
		}
		return fiber.ErrInternalServerError
	}
	var acc models.Account
	if err := h.db.First(&acc, "id = ?", pol.AccountID).Error; err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !checkPassword(acc.PasswordHash, in.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	badge := strconv.Itoa(pol.BadgeID)
	token, _ := IssueToken(strconv.FormatUint(uint64(acc.ID), 10), models.RolePolice, badge)
	return c.JSON(fiber.Map{
		"message":  "Police login successful",
		"userType": "Police",
		"badge_id": badge,
		"token":    token,
	})
}
