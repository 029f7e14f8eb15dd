package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-backend/errs"
)

func TestMissingFieldFollowsDeclaredOrder(t *testing.T) {
	body := map[string]any{
		"title":      "X",
		"techStacks": []any{"Go"},
		"img":        "",
	}

	field, missing := MissingField(body, RequiredFields["projects"])
	require.True(t, missing)
	assert.Equal(t, "description", field)

	body["description"] = "Y"
	field, _ = MissingField(body, RequiredFields["projects"])
	assert.Equal(t, "difficulty", field)

	body["difficulty"] = "Easy"
	field, _ = MissingField(body, RequiredFields["projects"])
	assert.Equal(t, "img", field, "empty strings count as missing")

	body["img"] = "http://x/i.png"
	body["status"] = nil
	field, _ = MissingField(body, RequiredFields["projects"])
	assert.Equal(t, "status", field, "null counts as missing")

	body["status"] = "draft"
	_, missing = MissingField(body, RequiredFields["projects"])
	assert.False(t, missing)

	experience := map[string]any{"company": "Acme", "position": "Dev", "description": "d", "location": "Remote"}
	field, _ = MissingField(experience, RequiredFields["experiences"])
	assert.Equal(t, "skills", field)
	experience["skills"] = []any{}
	field, _ = MissingField(experience, RequiredFields["experiences"])
	assert.Equal(t, "startDate", field, "an empty list is present")

	education := map[string]any{"institution": "Uni", "degree": "BSc", "field": "CS", "location": "Porto"}
	field, _ = MissingField(education, RequiredFields["educations"])
	assert.Equal(t, "achievements", field)
}

func TestProjectValidate(t *testing.T) {
	p := &Project{Title: "X", Description: "Y", Difficulty: "Easy", Img: "i.png", Status: "draft"}

	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errs.IsMissingRequiredFieldError(err))
	assert.Equal(t, "Missing required field: techStacks", err.Error())

	p.TechStacks = []string{}
	require.NoError(t, p.Validate(), "an empty list is present")

	p.Difficulty = "Impossible"
	err = p.Validate()
	require.Error(t, err)
	assert.True(t, errs.IsInvalidFieldError(err))
}

func TestExperienceValidateRequiresStartDate(t *testing.T) {
	e := &Experience{Company: "Acme", Position: "Dev", Description: "d", Location: "Remote", Status: StatusActive}

	err := e.Validate()
	require.Error(t, err)
	assert.Equal(t, "Missing required field: skills", err.Error())

	e.Skills = []string{}
	err = e.Validate()
	require.Error(t, err)
	assert.Equal(t, "Missing required field: startDate", err.Error())

	e.StartDate = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, e.Validate())
}

func TestTechStackCategory(t *testing.T) {
	ts := &TechStack{Name: "Go", Category: "backend", Icon: "go.svg", Status: StatusActive}
	assert.NoError(t, ts.Validate())

	ts.Category = "cooking"
	assert.True(t, errs.IsInvalidFieldError(ts.Validate()))
}

func TestQueryValidate(t *testing.T) {
	q := &Query{Name: "Ana", Email: "not-an-email", Message: "hi"}
	assert.True(t, errs.IsInvalidFieldError(q.Validate()))

	q.Email = "ana@example.com"
	assert.NoError(t, q.Validate())

	q.Status = "archived"
	assert.True(t, errs.IsInvalidFieldError(q.Validate()))
}

func TestCurrentFlagHidesEndDate(t *testing.T) {
	end := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

	exp := &Experience{EndDate: &end, IsCurrentJob: true}
	assert.Nil(t, exp.EffectiveEndDate())
	assert.Nil(t, exp.PublicView().(Experience).EndDate)
	assert.NotNil(t, exp.EndDate, "stored value is untouched")

	edu := &Education{EndDate: &end}
	assert.Equal(t, &end, edu.EffectiveEndDate())

	edu.IsCurrentlyStudying = true
	assert.Nil(t, edu.PublicView().(Education).EndDate)
}

func TestNormalizeDates(t *testing.T) {
	body := map[string]any{
		"startDate": "2021-03-15",
		"endDate":   "",
		"company":   "Acme",
	}
	require.NoError(t, NormalizeDates(body, DateFields["experiences"]))
	assert.Equal(t, "2021-03-15T00:00:00Z", body["startDate"])
	assert.Nil(t, body["endDate"])

	body["startDate"] = "2021-03-15T10:00:00+02:00"
	require.NoError(t, NormalizeDates(body, DateFields["experiences"]))
	assert.Equal(t, "2021-03-15T08:00:00Z", body["startDate"])

	body["startDate"] = "yesterday"
	assert.True(t, errs.IsInvalidFieldError(NormalizeDates(body, DateFields["experiences"])))

	body["startDate"] = 12
	assert.True(t, errs.IsInvalidFieldError(NormalizeDates(body, DateFields["experiences"])))
}

func TestColumnMismatchReport(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, AutoMigrate(db))
	require.NoError(t, db.Exec("ALTER TABLE projects ADD COLUMN legacy_link text").Error)

	report, err := ColumnMismatchReport(db)
	require.NoError(t, err)
	assert.Contains(t, report, "--- Table: projects ---")
	assert.Contains(t, report, "  - legacy_link")
	assert.Contains(t, report, "Total mismatched columns across all tables: 1")
}
