// Package ledger is the append-only record of which officers work and close
// cases. Its IsAssigned check is the single authorization primitive the
// evidence vault consults.
package ledger

import (
	"gorm.io/gorm"

	"github.com/casetrail/casetrail-backend/pkg/models"
)

type Ledger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Ledger { return &Ledger{db: db} }

// AssignOfficer appends an assignment record. Multiple officers may be
// assigned to the same case over time; records are never removed.
func (l *Ledger) AssignOfficer(caseID uint, badgeID int) (*models.CaseAssignment, error) {
	rec := models.CaseAssignment{CaseID: caseID, BadgeID: badgeID}
	if err := l.db.Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// MarkSolved appends a closure record, independent of assignments.
func (l *Ledger) MarkSolved(caseID uint, badgeID int) (*models.CaseClosure, error) {
	rec := models.CaseClosure{CaseID: caseID, BadgeID: badgeID}
	if err := l.db.Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// IsAssigned reports whether the officer currently holds an assignment
// record for the case. Always a fresh read; evidence submission may follow
// an assignment immediately, so the latest committed state must be visible.
func (l *Ledger) IsAssigned(caseID uint, badgeID int) (bool, error) {
	var cnt int64
	err := l.db.Model(&models.CaseAssignment{}).
		Where("case_id = ? AND badge_id = ?", caseID, badgeID).
		Count(&cnt).Error
	return cnt > 0, err
}
