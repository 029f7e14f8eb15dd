package models

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-backend/errs"
)

// Record holds the fields every content kind shares. StoreID is the store's own identity and
// never leaves the process; ID is the external id used by every lookup.
type Record struct {
	StoreID   uuid.UUID `json:"-" gorm:"type:uuid;primaryKey"`
	ID        string    `json:"id" gorm:"type:text;not null;uniqueIndex"`
	Order     int       `json:"order" gorm:"column:sort_order;not null;default:0;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null;autoUpdateTime:false"`
}

func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.StoreID == uuid.Nil {
		r.StoreID = uuid.New()
	}
	return nil
}

func (r *Record) Base() *Record {
	return r
}

// Content is implemented by the pointer types of every orderable content kind.
type Content interface {
	Base() *Record
	// Kind is the display name used in error messages, e.g. "Project".
	Kind() string
	// Published reports whether the public surface may return the record.
	Published() bool
	// Validate checks required fields in declared order, then enumerations.
	Validate() error
	// CheckEnums validates only the enumerated fields.
	CheckEnums() error
	// PublicView is what the public surface serializes.
	PublicView() any
}

// RequiredFields lists, in check order, the JSON fields a create request must carry.
var RequiredFields = map[string][]string{
	"projects":    {"title", "description", "techStacks", "difficulty", "img", "status"},
	"experiences": {"company", "position", "description", "skills", "location", "startDate", "status"},
	"educations":  {"institution", "degree", "field", "achievements", "location", "startDate", "status"},
	"techstacks":  {"name", "category", "icon", "status"},
	"queries":     {"name", "email", "message"},
}

// DateFields lists the JSON fields holding dates, per collection.
var DateFields = map[string][]string{
	"experiences": {"startDate", "endDate"},
	"educations":  {"startDate", "endDate"},
}

// MissingField returns the first required field that is absent, null or an empty string.
func MissingField(body map[string]any, fields []string) (string, bool) {
	for _, field := range fields {
		value, ok := body[field]
		if !ok || value == nil {
			return field, true
		}
		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			return field, true
		}
	}
	return "", false
}

// requireFields checks struct values by JSON name, in the order given.
func requireFields(v any, fields []string) error {
	rv := reflect.Indirect(reflect.ValueOf(v))
	byJSON := jsonFieldIndex(rv.Type())

	for _, name := range fields {
		index, ok := byJSON[name]
		if !ok {
			continue
		}
		fv := rv.FieldByIndex(index)
		switch fv.Kind() {
		case reflect.String:
			if strings.TrimSpace(fv.String()) == "" {
				return errs.NewMissingRequiredFieldError(name)
			}
		case reflect.Slice, reflect.Pointer, reflect.Map:
			if fv.IsNil() {
				return errs.NewMissingRequiredFieldError(name)
			}
		default:
			if fv.IsZero() {
				return errs.NewMissingRequiredFieldError(name)
			}
		}
	}
	return nil
}

func jsonFieldIndex(t reflect.Type) map[string][]int {
	index := make(map[string][]int)
	for _, field := range reflect.VisibleFields(t) {
		if field.Anonymous {
			continue
		}
		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		index[name] = field.Index
	}
	return index
}

func checkEnum(field, value string, allowed ...string) error {
	for _, candidate := range allowed {
		if value == candidate {
			return nil
		}
	}
	return errs.NewInvalidFieldError(field, fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")))
}

// NormalizeDates rewrites date-like strings in body to RFC 3339 so they decode into time.Time.
// Empty strings become null, which clears optional dates.
func NormalizeDates(body map[string]any, fields []string) error {
	for _, field := range fields {
		raw, ok := body[field]
		if !ok || raw == nil {
			continue
		}
		s, isString := raw.(string)
		if !isString {
			return errs.NewInvalidFieldError(field, "expected a date string")
		}
		if strings.TrimSpace(s) == "" {
			body[field] = nil
			continue
		}
		parsed, err := ParseDate(s)
		if err != nil {
			return errs.NewInvalidFieldError(field, "expected YYYY-MM-DD or RFC 3339")
		}
		body[field] = parsed.Format(time.RFC3339Nano)
	}
	return nil
}

// StoredDateNormalizer coerces the date fields of a stored record of collection, timestamps included.
func StoredDateNormalizer(collection string) func(map[string]any) error {
	fields := append([]string{"createdAt", "updatedAt"}, DateFields[collection]...)
	return func(record map[string]any) error {
		return NormalizeDates(record, fields)
	}
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02", "2006-01"}

// ParseDate accepts the date formats the admin forms and snapshot files produce.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
