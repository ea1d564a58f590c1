package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseEntry is an optional course reference rendered under an education
// entry. URL may be absent.
type CourseEntry struct {
	Name string  `json:"name"`
	URL  *string `json:"url,omitempty"`
}

// EducationModel is one education entry, scoped to a portfolio version.
type EducationModel struct {
	Base
	PortfolioID string `json:"portfolio_id" gorm:"type:char(36);index;not null"`
	StableID    string `json:"stable_id"    gorm:"type:char(36);index;not null"`

	School  string        `json:"school"  gorm:"not null"`
	Degree  string        `json:"degree"  gorm:"not null"`
	Dates   string        `json:"dates"`
	Details *string       `json:"details" gorm:"type:text"`
	Courses []CourseEntry `json:"courses" gorm:"type:longtext;serializer:json"`
	Order   int           `json:"order"   gorm:"column:order_num;default:0"`
}

func (EducationModel) TableName() string { return "education" }

func (e *EducationModel) BeforeCreate(tx *gorm.DB) error {
	if err := e.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if e.StableID == "" {
		e.StableID = uuid.New().String()
	}
	return nil
}

// CloneFor returns a new unsaved copy scoped to another portfolio version,
// preserving StableID.
func (e *EducationModel) CloneFor(portfolioID string) EducationModel {
	var courses []CourseEntry
	if e.Courses != nil {
		courses = make([]CourseEntry, len(e.Courses))
		for i, c := range e.Courses {
			courses[i] = CourseEntry{Name: c.Name, URL: copyStringPtr(c.URL)}
		}
	}
	return EducationModel{
		PortfolioID: portfolioID,
		StableID:    e.StableID,
		School:      e.School,
		Degree:      e.Degree,
		Dates:       e.Dates,
		Details:     copyStringPtr(e.Details),
		Courses:     courses,
		Order:       e.Order,
	}
}
