package registry

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/casetrail/casetrail-backend/internal/auth"
	"github.com/casetrail/casetrail-backend/pkg/models"
)

/* ============================================================================
   Helpers
   ============================================================================ */

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	_ = godotenv.Load()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		sql := `
TRUNCATE TABLE
	case_events,
	evidences,
	case_closures,
	case_assignments,
	cases,
	incidents,
	support_tickets,
	court_branches,
	station_records,
	civilians,
	lawyers,
	polices,
	accounts
RESTART IDENTITY CASCADE`
		if err := db.Exec(sql).Error; err != nil {
			t.Logf("truncate failed (ignored): %v", err)
		}
	})

	return db
}

func newTestApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: auth.ErrorHandler})
	app.Post("/api/police/complaint", h.RegisterPoliceComplaint)
	app.Post("/api/civilian/complaint", h.RegisterCivilianComplaint)
	app.Get("/api/lawyer/cases/:lawyerID", h.LawyerCases)
	app.Get("/api/police/cases/:badgeID", h.PoliceCases)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, map[string]any) {
	t.Helper()
	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

// seedAccount inserts a bare account for profile rows to hang off.
func seedAccount(t *testing.T, db *gorm.DB, username string) models.Account {
	t.Helper()
	acc := models.Account{Username: username, PhoneNo: "9876543210", PasswordHash: "x"}
	if err := db.Create(&acc).Error; err != nil {
		t.Fatal(err)
	}
	return acc
}

func seedPolice(t *testing.T, db *gorm.DB, badgeID int) models.Police {
	t.Helper()
	acc := seedAccount(t, db, strconv.Itoa(badgeID))
	pol := models.Police{BadgeID: badgeID, AccountID: acc.ID}
	if err := db.Create(&pol).Error; err != nil {
		t.Fatal(err)
	}
	return pol
}

func seedLawyer(t *testing.T, db *gorm.DB, barID string) models.Lawyer {
	t.Helper()
	acc := seedAccount(t, db, barID)
	lw := models.Lawyer{BarID: barID, AccountID: acc.ID}
	if err := db.Create(&lw).Error; err != nil {
		t.Fatal(err)
	}
	return lw
}

func seedCivilian(t *testing.T, db *gorm.DB, username string) models.Civilian {
	t.Helper()
	acc := seedAccount(t, db, username)
	civ := models.Civilian{Username: username, AccountID: acc.ID}
	if err := db.Create(&civ).Error; err != nil {
		t.Fatal(err)
	}
	return civ
}

func complaintBody(badgeID int) fiber.Map {
	return fiber.Map{
		"badge_id":     badgeID,
		"name":         "Reporter",
		"description":  "stolen bicycle",
		"location":     "5th Street",
		"incidentDate": "2025-11-02",
	}
}

/* ============================================================================
   Tests — assignment policy
   ============================================================================ */

func Test_RandomPolicy_EmptyPool(t *testing.T) {
	_, err := RandomPolicy{}.Select(nil)
	if err != ErrNoLawyers {
		t.Fatalf("want ErrNoLawyers, got %v", err)
	}
}

func Test_RandomPolicy_DrawsFromPool(t *testing.T) {
	pool := []models.Lawyer{{BarID: "A"}, {BarID: "B"}, {BarID: "C"}}
	members := map[string]bool{"A": true, "B": true, "C": true}
	for i := 0; i < 50; i++ {
		lw, err := RandomPolicy{}.Select(pool)
		if err != nil {
			t.Fatal(err)
		}
		if !members[lw.BarID] {
			t.Fatalf("selected lawyer %q not in pool", lw.BarID)
		}
	}
}

/* ============================================================================
   Tests — complaint registration
   ============================================================================ */

// With zero lawyers the complaint fails and the incident write is rolled
// back; after one lawyer registers, the same call succeeds and assigns them.
func Test_PoliceComplaint_EmptyPool_ThenOneLawyer(t *testing.T) {
	db := openTestDB(t)
	seedPolice(t, db, 100)
	app := newTestApp(NewHandler(db, RandomPolicy{}))

	code, out := postJSON(t, app, "/api/police/complaint", complaintBody(100))
	if code != 500 {
		t.Fatalf("empty pool want 500, got %d", code)
	}
	if out["message"] != "No lawyers available to assign" {
		t.Fatalf("want no-lawyers message, got %#v", out)
	}

	// Atomicity: no orphan incident or assignment survived the rollback.
	var incidents, assignments int64
	db.Model(&models.Incident{}).Count(&incidents)
	db.Model(&models.CaseAssignment{}).Count(&assignments)
	if incidents != 0 || assignments != 0 {
		t.Fatalf("rollback incomplete: incidents=%d assignments=%d", incidents, assignments)
	}

	seedLawyer(t, db, "BAR1")

	code, out = postJSON(t, app, "/api/police/complaint", complaintBody(100))
	if code != 201 {
		t.Fatalf("with lawyer want 201, got %d: %#v", code, out)
	}
	if out["lawyer_id"] != "BAR1" {
		t.Fatalf("want lawyer BAR1, got %#v", out["lawyer_id"])
	}
	if out["incident_id"] == nil || out["case_id"] == nil {
		t.Fatalf("response incomplete: %#v", out)
	}
	if out["incident_id"].(float64) != out["case_id"].(float64) {
		t.Fatalf("case id must mirror incident id, got %#v", out)
	}

	// The filing officer is attached via the ledger.
	var cnt int64
	db.Model(&models.CaseAssignment{}).
		Where("case_id = ? AND badge_id = ?", uint(out["case_id"].(float64)), 100).
		Count(&cnt)
	if cnt != 1 {
		t.Fatalf("want 1 assignment for filing officer, got %d", cnt)
	}
}

func Test_PoliceComplaint_UnknownBadge(t *testing.T) {
	db := openTestDB(t)
	seedLawyer(t, db, "BAR1")
	app := newTestApp(NewHandler(db, RandomPolicy{}))

	code, _ := postJSON(t, app, "/api/police/complaint", complaintBody(999))
	if code != 401 {
		t.Fatalf("unknown badge want 401, got %d", code)
	}
}

func Test_PoliceComplaint_MissingFields(t *testing.T) {
	db := openTestDB(t)
	seedPolice(t, db, 100)
	seedLawyer(t, db, "BAR1")
	app := newTestApp(NewHandler(db, RandomPolicy{}))

	code, _ := postJSON(t, app, "/api/police/complaint", fiber.Map{
		"badge_id": 100, "description": "only a description",
	})
	if code != 400 {
		t.Fatalf("missing fields want 400, got %d", code)
	}
}

// Civilian complaints record the complainant and skip officer assignment.
func Test_CivilianComplaint_RecordsComplainant(t *testing.T) {
	db := openTestDB(t)
	civ := seedCivilian(t, db, "alice")
	seedLawyer(t, db, "BAR1")
	app := newTestApp(NewHandler(db, RandomPolicy{}))

	code, out := postJSON(t, app, "/api/civilian/complaint", fiber.Map{
		"civilian_id":  civ.ID,
		"description":  "noise complaint",
		"location":     "Elm Street",
		"incidentDate": "2025-11-03",
	})
	if code != 201 {
		t.Fatalf("want 201, got %d: %#v", code, out)
	}

	var cs models.Case
	if err := db.First(&cs, "id = ?", uint(out["case_id"].(float64))).Error; err != nil {
		t.Fatal(err)
	}
	if cs.CivilianID == nil || *cs.CivilianID != civ.ID {
		t.Fatalf("complainant not recorded: %#v", cs)
	}

	var assignments int64
	db.Model(&models.CaseAssignment{}).Where("case_id = ?", cs.ID).Count(&assignments)
	if assignments != 0 {
		t.Fatalf("civilian complaint must not attach an officer, got %d", assignments)
	}
}

/* ============================================================================
   Tests — case listings
   ============================================================================ */

func Test_Listings_LawyerAndPoliceSplit(t *testing.T) {
	db := openTestDB(t)
	seedPolice(t, db, 100)
	seedLawyer(t, db, "BAR1")
	app := newTestApp(NewHandler(db, RandomPolicy{}))

	code, out := postJSON(t, app, "/api/police/complaint", complaintBody(100))
	if code != 201 {
		t.Fatalf("complaint want 201, got %d", code)
	}
	caseID := uint(out["case_id"].(float64))

	// Close the case with a second officer; the assigned/resolved split must
	// stay independent.
	seedPolice(t, db, 200)
	if err := db.Create(&models.CaseClosure{CaseID: caseID, BadgeID: 200}).Error; err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/api/lawyer/cases/BAR1", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != 200 {
		t.Fatalf("lawyer cases want 200, got %d", resp.StatusCode)
	}
	var lawyerOut struct {
		AssignedCases []struct {
			CaseID   uint   `json:"case_id"`
			LawyerID string `json:"lawyer_id"`
		} `json:"assignedCases"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&lawyerOut)
	if len(lawyerOut.AssignedCases) != 1 || lawyerOut.AssignedCases[0].CaseID != caseID {
		t.Fatalf("lawyer listing wrong: %#v", lawyerOut)
	}

	req = httptest.NewRequest("GET", "/api/police/cases/100", nil)
	resp, _ = app.Test(req)
	var polOut struct {
		AssignedCases []struct {
			CaseID uint `json:"case_id"`
		} `json:"assignedCases"`
		ResolvedCases []struct {
			CaseID uint `json:"case_id"`
		} `json:"resolvedCases"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&polOut)
	if len(polOut.AssignedCases) != 1 || len(polOut.ResolvedCases) != 0 {
		t.Fatalf("badge 100 split wrong: %#v", polOut)
	}

	req = httptest.NewRequest("GET", "/api/police/cases/200", nil)
	resp, _ = app.Test(req)
	_ = json.NewDecoder(resp.Body).Decode(&polOut)
	if len(polOut.AssignedCases) != 0 || len(polOut.ResolvedCases) != 1 {
		t.Fatalf("badge 200 split wrong: %#v", polOut)
	}
}
