package utils

import (
	"gorm.io/gorm"

	"github.com/casetrail/casetrail-backend/pkg/models"
)

// LogCaseEvent inserts an audit record into case_events.
// Used to track important actions on a case (creation, assignment, closure,
// evidence submission). Errors are ignored on purpose (best-effort logging).
func LogCaseEvent(db *gorm.DB, caseID uint, actor, action, detail string) {
	_ = db.Create(&models.CaseEvent{
		CaseID: caseID,
		Actor:  actor,
		Action: action,
		Detail: detail,
	}).Error
}
