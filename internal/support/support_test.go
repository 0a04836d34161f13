package support

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/casetrail/casetrail-backend/internal/auth"
	"github.com/casetrail/casetrail-backend/pkg/models"
)

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
		if err := db.Exec(`TRUNCATE TABLE support_tickets, accounts RESTART IDENTITY CASCADE`).Error; err != nil {
			t.Logf("truncate failed (ignored): %v", err)
		}
	})

	return db
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

func Test_CreateTicket(t *testing.T) {
	db := openTestDB(t)
	app := fiber.New(fiber.Config{ErrorHandler: auth.ErrorHandler})
	app.Post("/api/support", NewHandler(db).Create)

	code, out := postJSON(t, app, "/api/support", fiber.Map{
		"question": "How do I check my case status?",
	})
	if code != 201 {
		t.Fatalf("want 201, got %d: %#v", code, out)
	}
	if out["support_id"] == nil || out["success"] != true {
		t.Fatalf("response incomplete: %#v", out)
	}

	// Whitespace-only questions are rejected.
	code, out = postJSON(t, app, "/api/support", fiber.Map{"question": "   "})
	if code != 400 || out["message"] != "Question is required" {
		t.Fatalf("blank question want 400, got %d %#v", code, out)
	}

	var cnt int64
	db.Model(&models.SupportTicket{}).Count(&cnt)
	if cnt != 1 {
		t.Fatalf("want 1 persisted ticket, got %d", cnt)
	}
}
