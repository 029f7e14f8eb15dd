package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Experience is a position held at a company.
type Experience struct {
	Record
	Company      string                      `json:"company" gorm:"type:text;not null"`
	Position     string                      `json:"position" gorm:"type:text;not null"`
	Description  string                      `json:"description" gorm:"type:text;not null"`
	Skills       datatypes.JSONSlice[string] `json:"skills"`
	Location     string                      `json:"location" gorm:"type:text;not null"`
	StartDate    time.Time                   `json:"startDate" gorm:"not null"`
	EndDate      *time.Time                  `json:"endDate,omitempty"`
	IsCurrentJob bool                        `json:"isCurrentJob" gorm:"not null;default:false"`
	Status       string                      `json:"status" gorm:"type:text;not null;default:active;index"`
}

func (Experience) TableName() string { return "experiences" }

func (*Experience) Kind() string { return "Experience" }

func (e *Experience) Published() bool { return e.Status == StatusActive }

func (e *Experience) Validate() error {
	if err := requireFields(e, RequiredFields["experiences"]); err != nil {
		return err
	}
	return e.CheckEnums()
}

func (e *Experience) CheckEnums() error {
	return checkEnum("status", e.Status, StatusActive, StatusInactive)
}

// EffectiveEndDate ignores the stored end date while the job is current.
func (e *Experience) EffectiveEndDate() *time.Time {
	if e.IsCurrentJob {
		return nil
	}
	return e.EndDate
}

func (e *Experience) PublicView() any {
	view := *e
	view.EndDate = e.EffectiveEndDate()
	return view
}
