package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExperienceModel is one work experience entry, scoped to a portfolio version.
// StableID survives the clone that happens at draft creation and again at
// publish, so a draft row and its published counterpart can be matched even
// though they are distinct rows with distinct primary keys.
type ExperienceModel struct {
	Base
	PortfolioID string `json:"portfolio_id" gorm:"type:char(36);index;not null"`
	StableID    string `json:"stable_id"    gorm:"type:char(36);index;not null"`

	Company   string      `json:"company"    gorm:"not null"`
	Role      string      `json:"role"       gorm:"not null"`
	Type      string      `json:"type"`
	Location  string      `json:"location"`
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Bullets   StringArray `json:"bullets"    gorm:"type:longtext"`
	LogoURL   *string     `json:"logo_url"`
	Order     int         `json:"order"      gorm:"column:order_num;default:0"`
}

func (ExperienceModel) TableName() string { return "experiences" }

func (e *ExperienceModel) BeforeCreate(tx *gorm.DB) error {
	if err := e.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if e.StableID == "" {
		e.StableID = uuid.New().String()
	}
	return nil
}

// CloneFor returns a new unsaved copy scoped to another portfolio version.
// StableID is preserved; the primary key is regenerated on insert.
func (e *ExperienceModel) CloneFor(portfolioID string) ExperienceModel {
	bullets := make(StringArray, len(e.Bullets))
	copy(bullets, e.Bullets)
	return ExperienceModel{
		PortfolioID: portfolioID,
		StableID:    e.StableID,
		Company:     e.Company,
		Role:        e.Role,
		Type:        e.Type,
		Location:    e.Location,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Bullets:     bullets,
		LogoURL:     copyStringPtr(e.LogoURL),
		Order:       e.Order,
	}
}
