package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SkillModel is one skill tag, scoped to a portfolio version.
type SkillModel struct {
	Base
	PortfolioID string `json:"portfolio_id" gorm:"type:char(36);index;not null"`
	StableID    string `json:"stable_id"    gorm:"type:char(36);index;not null"`

	Name  string `json:"name"  gorm:"not null"`
	Order int    `json:"order" gorm:"column:order_num;default:0"`
}

func (SkillModel) TableName() string { return "skills" }

func (s *SkillModel) BeforeCreate(tx *gorm.DB) error {
	if err := s.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if s.StableID == "" {
		s.StableID = uuid.New().String()
	}
	return nil
}

// CloneFor returns a new unsaved copy scoped to another portfolio version,
// preserving StableID.
func (s *SkillModel) CloneFor(portfolioID string) SkillModel {
	return SkillModel{
		PortfolioID: portfolioID,
		StableID:    s.StableID,
		Name:        s.Name,
		Order:       s.Order,
	}
}
