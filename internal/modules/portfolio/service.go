package portfolio

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/apperr"
)

// Service owns the two-version lifecycle: resolving the published and draft
// aggregates, lazily branching a draft on first edit, and promoting the draft
// back onto the published row atomically.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Published returns the live aggregate, or nil when nothing has been
// published yet.
func (s *Service) Published() (*Aggregate, error) {
	return s.resolve(s.db, false)
}

// Draft returns the working-copy aggregate. When no draft exists it falls
// back to the published aggregate without creating anything; reads never
// branch a draft.
func (s *Service) Draft() (*Aggregate, error) {
	draft, err := s.resolve(s.db, true)
	if err != nil {
		return nil, err
	}
	if draft != nil {
		return draft, nil
	}
	return s.resolve(s.db, false)
}

// HasDraft reports whether a working copy currently exists.
func (s *Service) HasDraft() (bool, error) {
	var count int64
	err := s.db.Model(&models.PortfolioModel{}).Where("is_draft = ?", true).Count(&count).Error
	return count > 0, err
}

func (s *Service) resolve(tx *gorm.DB, isDraft bool) (*Aggregate, error) {
	var row models.PortfolioModel
	err := tx.Where("is_draft = ?", isDraft).Order("updated_at DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.hydrate(tx, row)
}

func (s *Service) hydrate(tx *gorm.DB, row models.PortfolioModel) (*Aggregate, error) {
	agg := &Aggregate{PortfolioModel: row}
	if err := tx.Where("portfolio_id = ?", row.ID).Order("order_num ASC, created_at ASC").Find(&agg.Experiences).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("portfolio_id = ?", row.ID).Order("order_num ASC, created_at ASC").Find(&agg.Education).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("portfolio_id = ?", row.ID).Order("order_num ASC, created_at ASC").Find(&agg.Skills).Error; err != nil {
		return nil, err
	}
	return agg, nil
}

// SaveDraft applies a partial update to the draft row, branching one from the
// published version first if none exists. The branch copies every content
// field and clones all children with their stable ids intact, so the fresh
// draft starts as an exact working copy of the live site. Returns the draft
// row after the update.
func (s *Service) SaveDraft(dto *SaveDraftDTO) (*models.PortfolioModel, error) {
	var out models.PortfolioModel

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var draft models.PortfolioModel
		err := lockForUpdate(tx).Where("is_draft = ?", true).Order("updated_at DESC").First(&draft).Error

		if err == nil {
			if updates := dto.updates(); len(updates) > 0 {
				if err := tx.Model(&draft).Updates(updates).Error; err != nil {
					return err
				}
			}
			return tx.First(&out, "id = ?", draft.ID).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var published models.PortfolioModel
		err = lockForUpdate(tx).Where("is_draft = ?", false).Order("updated_at DESC").First(&published).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Precondition("nothing published yet, no version to branch a draft from")
		}
		if err != nil {
			return err
		}

		clone := published.CloneContent()
		clone.IsDraft = true
		dto.overlay(&clone)
		if err := tx.Create(&clone).Error; err != nil {
			return err
		}
		if err := cloneChildren(tx, published.ID, clone.ID); err != nil {
			return err
		}

		out = clone
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Publish promotes the draft onto the published version in one transaction:
// the published row keeps its id and createdAt but takes every content field
// from the draft, its children are replaced by clones of the draft's children,
// and the draft rows are removed. With no prior published row the draft's
// content becomes the first one. Fails with a precondition error when there is
// no draft.
func (s *Service) Publish() (*Aggregate, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var draft models.PortfolioModel
		err := lockForUpdate(tx).Where("is_draft = ?", true).Order("updated_at DESC").First(&draft).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Precondition("no draft to publish")
		}
		if err != nil {
			return err
		}

		var targetID string
		var published models.PortfolioModel
		err = lockForUpdate(tx).Where("is_draft = ?", false).Order("updated_at DESC").First(&published).Error
		switch {
		case err == nil:
			if err := tx.Model(&published).Updates(draft.ContentFields()).Error; err != nil {
				return err
			}
			if err := deleteChildren(tx, published.ID); err != nil {
				return err
			}
			targetID = published.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			first := draft.CloneContent()
			first.IsDraft = false
			if err := tx.Create(&first).Error; err != nil {
				return err
			}
			targetID = first.ID
		default:
			return err
		}

		if err := cloneChildren(tx, draft.ID, targetID); err != nil {
			return err
		}
		if err := deleteChildren(tx, draft.ID); err != nil {
			return err
		}
		return tx.Delete(&models.PortfolioModel{}, "id = ?", draft.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Published()
}

// Diff compares the current draft against the published version. Unlike
// Draft, the draft side does not fall back to the published aggregate; no
// draft means nothing is pending.
func (s *Service) Diff() (*Report, error) {
	draft, err := s.resolve(s.db, true)
	if err != nil {
		return nil, err
	}
	published, err := s.resolve(s.db, false)
	if err != nil {
		return nil, err
	}
	return BuildReport(draft, published), nil
}

// cloneChildren copies every child row of fromID onto toID, preserving stable
// ids and ordering.
func cloneChildren(tx *gorm.DB, fromID, toID string) error {
	var experiences []models.ExperienceModel
	if err := tx.Where("portfolio_id = ?", fromID).Order("order_num ASC, created_at ASC").Find(&experiences).Error; err != nil {
		return err
	}
	for i := range experiences {
		clone := experiences[i].CloneFor(toID)
		if err := tx.Create(&clone).Error; err != nil {
			return err
		}
	}

	var education []models.EducationModel
	if err := tx.Where("portfolio_id = ?", fromID).Order("order_num ASC, created_at ASC").Find(&education).Error; err != nil {
		return err
	}
	for i := range education {
		clone := education[i].CloneFor(toID)
		if err := tx.Create(&clone).Error; err != nil {
			return err
		}
	}

	var skills []models.SkillModel
	if err := tx.Where("portfolio_id = ?", fromID).Order("order_num ASC, created_at ASC").Find(&skills).Error; err != nil {
		return err
	}
	for i := range skills {
		clone := skills[i].CloneFor(toID)
		if err := tx.Create(&clone).Error; err != nil {
			return err
		}
	}
	return nil
}

func deleteChildren(tx *gorm.DB, portfolioID string) error {
	if err := tx.Where("portfolio_id = ?", portfolioID).Delete(&models.ExperienceModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("portfolio_id = ?", portfolioID).Delete(&models.EducationModel{}).Error; err != nil {
		return err
	}
	return tx.Where("portfolio_id = ?", portfolioID).Delete(&models.SkillModel{}).Error
}

// lockForUpdate adds SELECT ... FOR UPDATE on dialects that support it.
// SQLite serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
