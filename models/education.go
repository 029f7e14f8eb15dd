package models

import (
	"time"

	"gorm.io/datatypes"
)

type Education struct {
	Record
	Institution         string                      `json:"institution" gorm:"type:text;not null"`
	Degree              string                      `json:"degree" gorm:"type:text;not null"`
	Field               string                      `json:"field" gorm:"type:text;not null"`
	GPA                 *string                     `json:"gpa,omitempty" gorm:"type:text"`
	Achievements        datatypes.JSONSlice[string] `json:"achievements"`
	Location            string                      `json:"location" gorm:"type:text;not null"`
	StartDate           time.Time                   `json:"startDate" gorm:"not null"`
	EndDate             *time.Time                  `json:"endDate,omitempty"`
	IsCurrentlyStudying bool                        `json:"isCurrentlyStudying" gorm:"not null;default:false"`
	Status              string                      `json:"status" gorm:"type:text;not null;default:active;index"`
}

func (Education) TableName() string { return "educations" }

func (*Education) Kind() string { return "Education" }

func (e *Education) Published() bool { return e.Status == StatusActive }

func (e *Education) Validate() error {
	if err := requireFields(e, RequiredFields["educations"]); err != nil {
		return err
	}
	return e.CheckEnums()
}

func (e *Education) CheckEnums() error {
	return checkEnum("status", e.Status, StatusActive, StatusInactive)
}

func (e *Education) EffectiveEndDate() *time.Time {
	if e.IsCurrentlyStudying {
		return nil
	}
	return e.EndDate
}

func (e *Education) PublicView() any {
	view := *e
	view.EndDate = e.EffectiveEndDate()
	return view
}
