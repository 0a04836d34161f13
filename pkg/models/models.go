package models

import "time"

/* =============================== Enums ================================== */

// Role defines the type of user in the system.
type Role string

const (
	RoleCivilian Role = "civilian"
	RoleLawyer   Role = "lawyer"
	RolePolice   Role = "police"
)

// SubmitterType tags which kind of actor uploaded a piece of evidence.
type SubmitterType string

const (
	SubmitterPolice SubmitterType = "police"
	SubmitterLawyer SubmitterType = "lawyer"
)

/* =============================== Entities =============================== */

// Account is the shared login identity. Usernames live in one namespace
// across all roles: civilians pick a handle, lawyers use their bar ID and
// police officers their badge number as a string.
type Account struct {
	ID           uint      `gorm:"primaryKey" json:"account_id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        *string   `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	PhoneNo      string    `gorm:"size:15;not null" json:"phoneno"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Civilian is the citizen role profile attached to an account.
type Civilian struct {
	ID        uint   `gorm:"primaryKey" json:"civilian_id"`
	Username  string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	AccountID uint   `gorm:"not null;index" json:"account_id"`
}

// Lawyer is keyed by the bar ID the lawyer signed up with.
type Lawyer struct {
	BarID         string `gorm:"size:20;primaryKey;column:bar_id" json:"bar_id"`
	AccountID     uint   `gorm:"not null;index" json:"account_id"`
	CourtBranchID *uint  `json:"court_branch_id,omitempty"`
}

// Police is keyed by badge number. Badge IDs come from signup, never from a
// sequence.
type Police struct {
	BadgeID   int   `gorm:"primaryKey;autoIncrement:false" json:"badge_id"`
	AccountID uint  `gorm:"not null;index" json:"account_id"`
	StationID *uint `json:"station_id,omitempty"`
}

// Incident is the raw report a complaint starts from. Created once, never
// updated; exactly one case is derived from it.
type Incident struct {
	ID           uint      `gorm:"primaryKey" json:"incident_id"`
	Name         string    `gorm:"size:100" json:"name"`
	Email        string    `gorm:"size:100" json:"email"`
	Phone        string    `gorm:"size:15" json:"phone"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Location     string    `gorm:"size:100;not null" json:"location"`
	Address      string    `gorm:"size:200" json:"address"`
	IncidentDate string    `gorm:"size:20;not null" json:"incident_date"`
	ReportedAt   time.Time `gorm:"autoCreateTime" json:"reported_at"`
}

// Case shares its primary key with the incident it was derived from (1:1).
// A case always references its assigned lawyer; the FK makes a concurrently
// vanished lawyer fail the whole creation transaction.
type Case struct {
	ID          uint   `gorm:"primaryKey;autoIncrement:false" json:"case_id"`
	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	CivilianID  *uint  `gorm:"index" json:"civilian_id,omitempty"`
	LawyerID    string `gorm:"size:20;not null;index" json:"lawyer_id"`

	Lawyer Lawyer `gorm:"foreignKey:LawyerID;references:BarID" json:"-"`
}

// CaseAssignment links an officer to a case. Append-only; its presence is
// the authorization proof for police evidence submission.
type CaseAssignment struct {
	ID      uint `gorm:"primaryKey" json:"assign_id"`
	CaseID  uint `gorm:"not null;index:idx_assign_case_badge" json:"case_id"`
	BadgeID int  `gorm:"not null;index:idx_assign_case_badge" json:"badge_id"`
}

// CaseClosure records which officer closed a case. Kept separate from
// CaseAssignment so "who worked it" and "who closed it" stay independently
// queryable.
type CaseClosure struct {
	ID      uint `gorm:"primaryKey" json:"solved_id"`
	CaseID  uint `gorm:"not null;index" json:"case_id"`
	BadgeID int  `gorm:"not null;index" json:"badge_id"`
}

// Evidence is an append-only record of one submitted file. The submitter's
// relation to the case is re-validated at submission time, never cached.
type Evidence struct {
	ID            uint          `gorm:"primaryKey" json:"evidence_id"`
	CaseID        uint          `gorm:"not null;index" json:"complaint_id"`
	BadgeID       *int          `json:"police_id,omitempty"`
	BarID         *string       `gorm:"size:20" json:"lawyer_id,omitempty"`
	SubmitterType SubmitterType `gorm:"size:10;not null;default:'police'" json:"submitter_type"`
	FilePath      string        `gorm:"size:200;not null" json:"file_path"`
	UploadedAt    time.Time     `gorm:"autoCreateTime" json:"upload_date"`
}

// SupportTicket is an append-only free-text question, optionally tied to an
// account.
type SupportTicket struct {
	ID        uint      `gorm:"primaryKey" json:"support_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	AccountID *uint     `json:"account_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CourtBranch holds the per-branch registration a lawyer files after signup.
// One normalized table keyed by bar ID, not one table per branch.
type CourtBranch struct {
	ID            uint   `gorm:"primaryKey" json:"info_id"`
	BarID         string `gorm:"size:20;not null;index:idx_branch_bar_name,unique" json:"bar_id"`
	BranchName    string `gorm:"size:100;index:idx_branch_bar_name,unique" json:"branch_name"`
	State         string `gorm:"size:100;not null" json:"state"`
	CourtLocation string `gorm:"size:100" json:"court_location"`
	Judiciary     string `gorm:"size:100" json:"judiciary"`
	JudiciaryID   string `gorm:"size:50" json:"judiciary_id"`
}

// StationRecord holds the station registration an officer files after
// signup. One normalized table keyed by badge ID, not one table per station.
type StationRecord struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	BadgeID         int    `gorm:"not null;index" json:"badge_id"`
	State           string `gorm:"size:100;not null" json:"state"`
	PinCode         int    `gorm:"not null" json:"pin_code"`
	StationNumber   int    `gorm:"not null;uniqueIndex" json:"station_number"`
	StationLocation string `gorm:"size:200;not null" json:"station_location"`
}

// CaseEvent is a best-effort audit log entry for case lifecycle actions.
type CaseEvent struct {
	ID        uint      `gorm:"primaryKey" json:"event_id"`
	CaseID    uint      `gorm:"not null;index" json:"case_id"`
	Actor     string    `gorm:"size:50;not null" json:"actor"`  // e.g. "police:100", "lawyer:BAR1"
	Action    string    `gorm:"size:50;not null" json:"action"` // created, officer_assigned, closed, evidence_submitted
	Detail    string    `gorm:"type:text" json:"detail,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// All lists every model for AutoMigrate, in FK-safe order.
func All() []any {
	return []any{
		&Account{}, &Civilian{}, &Lawyer{}, &Police{},
		&Incident{}, &Case{}, &CaseAssignment{}, &CaseClosure{},
		&Evidence{}, &SupportTicket{}, &CourtBranch{}, &StationRecord{},
		&CaseEvent{},
	}
}
