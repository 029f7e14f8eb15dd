package models

import "gorm.io/datatypes"

const (
	ProjectStatusLive  = "live"
	ProjectStatusDraft = "draft"
)

// ProjectURL holds the optional links of a project.
type ProjectURL struct {
	Repo string `json:"repo,omitempty"`
	Live string `json:"live,omitempty"`
}

// Project represents a portfolio project
type Project struct {
	Record
	Title       string                         `json:"title" gorm:"type:text;not null"`
	Description string                         `json:"description" gorm:"type:text;not null"`
	TechStacks  datatypes.JSONSlice[string]    `json:"techStacks"`
	Difficulty  string                         `json:"difficulty" gorm:"type:text;not null"`
	URL         datatypes.JSONType[ProjectURL] `json:"url"`
	Img         string                         `json:"img" gorm:"type:text;not null"`
	Status      string                         `json:"status" gorm:"type:text;not null;default:draft;index"`
}

func (Project) TableName() string { return "projects" }

func (*Project) Kind() string { return "Project" }

func (p *Project) Published() bool { return p.Status == ProjectStatusLive }

func (p *Project) Validate() error {
	if err := requireFields(p, RequiredFields["projects"]); err != nil {
		return err
	}
	return p.CheckEnums()
}

func (p *Project) CheckEnums() error {
	if err := checkEnum("difficulty", p.Difficulty, "Easy", "Intermediate", "Advanced"); err != nil {
		return err
	}
	return checkEnum("status", p.Status, ProjectStatusLive, ProjectStatusDraft)
}

func (p *Project) PublicView() any { return *p }
