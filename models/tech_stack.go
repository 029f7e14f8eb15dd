package models

// TechStack is a technology shown in the skills section of the site.
type TechStack struct {
	Record
	Name        string  `json:"name" gorm:"type:text;not null"`
	Category    string  `json:"category" gorm:"type:text;not null"`
	Icon        string  `json:"icon" gorm:"type:text;not null"`
	Color       *string `json:"color,omitempty" gorm:"type:text"`
	Description *string `json:"description,omitempty" gorm:"type:text"`
	Status      string  `json:"status" gorm:"type:text;not null;default:active;index"`
}

func (TechStack) TableName() string { return "techstacks" }

func (*TechStack) Kind() string { return "Tech stack" }

func (t *TechStack) Published() bool { return t.Status == StatusActive }

func (t *TechStack) Validate() error {
	if err := requireFields(t, RequiredFields["techstacks"]); err != nil {
		return err
	}
	return t.CheckEnums()
}

func (t *TechStack) CheckEnums() error {
	if err := checkEnum("category", t.Category, "frontend", "backend", "database", "devops", "mobile", "other"); err != nil {
		return err
	}
	return checkEnum("status", t.Status, StatusActive, StatusInactive)
}

func (t *TechStack) PublicView() any { return *t }
