package models

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-backend/errs"
)

const (
	QueryStatusNew     = "new"
	QueryStatusRead    = "read"
	QueryStatusReplied = "replied"
)

// Query is a contact form submission.
type Query struct {
	StoreID   uuid.UUID `json:"-" gorm:"type:uuid;primaryKey"`
	ID        string    `json:"id" gorm:"type:text;not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" gorm:"type:text;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	IP        string    `json:"ip" gorm:"type:text"`
	Status    string    `json:"status" gorm:"type:text;not null;default:new;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null;autoCreateTime:false;index"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null;autoUpdateTime:false"`
}

func (Query) TableName() string { return "queries" }

func (q *Query) BeforeCreate(tx *gorm.DB) error {
	if q.StoreID == uuid.Nil {
		q.StoreID = uuid.New()
	}
	return nil
}

func (q *Query) Validate() error {
	if err := requireFields(q, RequiredFields["queries"]); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(q.Email); err != nil {
		return errs.NewInvalidFieldError("email", "not a valid email address")
	}
	if q.Status != "" {
		return CheckQueryStatus(q.Status)
	}
	return nil
}

func CheckQueryStatus(status string) error {
	return checkEnum("status", status, QueryStatusNew, QueryStatusRead, QueryStatusReplied)
}
