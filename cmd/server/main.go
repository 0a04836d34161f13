// @title           Case Trail API
// @version         1.0
// @description     Law-enforcement case management: citizens, lawyers, and police sign up; complaints open cases with a randomly assigned lawyer; officers are attached via an append-only ledger; authorized actors submit evidence files.
// @BasePath        /api
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Format: Bearer <token>
package main

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/casetrail/casetrail-backend/internal/auth"
	"github.com/casetrail/casetrail-backend/internal/config"
	"github.com/casetrail/casetrail-backend/internal/directory"
	"github.com/casetrail/casetrail-backend/internal/evidence"
	"github.com/casetrail/casetrail-backend/internal/ledger"
	"github.com/casetrail/casetrail-backend/internal/registry"
	"github.com/casetrail/casetrail-backend/internal/storage"
	"github.com/casetrail/casetrail-backend/internal/support"
	"github.com/casetrail/casetrail-backend/pkg/database"
	"github.com/casetrail/casetrail-backend/pkg/models"
)

func main() {
	cfg := config.Load()

	db := database.Init(cfg.DatabaseURL)
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatal("migration failed:", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: auth.ErrorHandler,
	})

	app.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := app.Group("/api")

	// Identity store
	authH := auth.NewHandler(db)
	api.Post("/civilian/signup", authH.CivilianSignup)
	api.Post("/lawyer/signup", authH.LawyerSignup)
	api.Post("/police/signup", authH.PoliceSignup)
	api.Post("/civilian/login", authH.CivilianLogin)
	api.Post("/lawyer/login", authH.LawyerLogin)
	api.Post("/police/login", authH.PoliceLogin)

	// Case registry
	regH := registry.NewHandler(db, registry.RandomPolicy{})
	api.Post("/police/complaint", regH.RegisterPoliceComplaint)
	api.Post("/civilian/complaint", regH.RegisterCivilianComplaint)
	api.Get("/lawyer/cases/:lawyerID", regH.LawyerCases)
	api.Get("/police/cases/:badgeID", regH.PoliceCases)

	// Assignment ledger
	led := ledger.New(db)
	ledH := ledger.NewHandler(db, led)
	api.Post("/police/cases/:caseID/assign", auth.RequireAuth(), auth.RequireRole(models.RolePolice), ledH.Assign)
	api.Post("/police/cases/:caseID/solve", auth.RequireAuth(), auth.RequireRole(models.RolePolice), ledH.Solve)

	// Evidence vault
	evH := evidence.NewHandler(db, storage.NewDisk(cfg.UploadDir), led)
	api.Post("/evidence", evH.Submit)
	api.Get("/evidence/case/:caseID", evH.ListByCase)

	// Support desk
	supH := support.NewHandler(db)
	api.Post("/support", supH.Create)

	// Branch / station directory
	dirH := directory.NewHandler(db)
	api.Post("/lawyerInfo", dirH.AddLawyerBranch)
	api.Post("/policeInfo", dirH.AddStationRecord)

	log.Println("Server running on :" + cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
