// Package experience implements CRUD and reordering for work experience
// entries. Entries belong to a specific portfolio version; the editor always
// targets the draft's id.
package experience

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/apperr"
	"github.com/folio-space/core/internal/pkg/response"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateDTO carries a new experience entry. Order is appended at the end of
// the list when omitted.
type CreateDTO struct {
	PortfolioID string   `json:"portfolio_id" binding:"required"`
	Company     string   `json:"company"      binding:"required"`
	Role        string   `json:"role"         binding:"required"`
	Type        string   `json:"type"`
	Location    string   `json:"location"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Bullets     []string `json:"bullets"`
	LogoURL     *string  `json:"logo_url"`
	Order       *int     `json:"order"`
}

// UpdateDTO is a partial update; absent fields are left untouched. LogoURL is
// nullable, so it tracks presence and can be cleared with an explicit null.
type UpdateDTO struct {
	Company   *string                 `json:"company"`
	Role      *string                 `json:"role"`
	Type      *string                 `json:"type"`
	Location  *string                 `json:"location"`
	StartDate *string                 `json:"start_date"`
	EndDate   *string                 `json:"end_date"`
	Bullets   *[]string               `json:"bullets"`
	LogoURL   models.Optional[string] `json:"logo_url"`
	Order     *int                    `json:"order"`
}

// ReorderDTO assigns each listed entry its index as the new order.
type ReorderDTO struct {
	PortfolioID string   `json:"portfolio_id" binding:"required"`
	OrderedIDs  []string `json:"ordered_ids"  binding:"required"`
}

func (s *Service) Create(dto *CreateDTO) (*models.ExperienceModel, error) {
	if err := ensurePortfolioExists(s.db, dto.PortfolioID); err != nil {
		return nil, err
	}

	entry := models.ExperienceModel{
		PortfolioID: dto.PortfolioID,
		Company:     dto.Company,
		Role:        dto.Role,
		Type:        dto.Type,
		Location:    dto.Location,
		StartDate:   dto.StartDate,
		EndDate:     dto.EndDate,
		Bullets:     models.StringArray(dto.Bullets),
		LogoURL:     dto.LogoURL,
	}
	if dto.Order != nil {
		entry.Order = *dto.Order
	} else {
		next, err := nextOrder(s.db, &models.ExperienceModel{}, dto.PortfolioID)
		if err != nil {
			return nil, err
		}
		entry.Order = next
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Service) Update(id string, dto *UpdateDTO) (*models.ExperienceModel, error) {
	var entry models.ExperienceModel
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("experience %q not found", id)
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Company != nil {
		updates["company"] = *dto.Company
	}
	if dto.Role != nil {
		updates["role"] = *dto.Role
	}
	if dto.Type != nil {
		updates["type"] = *dto.Type
	}
	if dto.Location != nil {
		updates["location"] = *dto.Location
	}
	if dto.StartDate != nil {
		updates["start_date"] = *dto.StartDate
	}
	if dto.EndDate != nil {
		updates["end_date"] = *dto.EndDate
	}
	if dto.Bullets != nil {
		updates["bullets"] = models.StringArray(*dto.Bullets)
	}
	if dto.LogoURL.Set {
		updates["logo_url"] = dto.LogoURL.Value
	}
	if dto.Order != nil {
		updates["order_num"] = *dto.Order
	}

	if len(updates) > 0 {
		if err := s.db.Model(&entry).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Service) Delete(id string) error {
	res := s.db.Delete(&models.ExperienceModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("experience %q not found", id)
	}
	return nil
}

// Reorder rewrites order to match the given sequence. Every id must belong
// to the given portfolio; the whole call rolls back otherwise.
func (s *Service) Reorder(dto *ReorderDTO) error {
	if err := ensurePortfolioExists(s.db, dto.PortfolioID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range dto.OrderedIDs {
			res := tx.Model(&models.ExperienceModel{}).
				Where("id = ? AND portfolio_id = ?", id, dto.PortfolioID).
				Update("order_num", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperr.NotFound("experience %q not found in portfolio %q", id, dto.PortfolioID)
			}
		}
		return nil
	})
}

func ensurePortfolioExists(db *gorm.DB, id string) error {
	var count int64
	if err := db.Model(&models.PortfolioModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.Reference("portfolio %q does not exist", id)
	}
	return nil
}

func nextOrder(db *gorm.DB, model interface{}, portfolioID string) (int, error) {
	var count int64
	if err := db.Model(model).Where("portfolio_id = ?", portfolioID).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/experiences", authMW)
	g.POST("", h.create)
	g.POST("/reorder", h.reorder)
	g.PUT("/:id", h.update)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		apperr.Write(c, apperr.Validation("invalid experience payload: %v", err))
		return
	}
	entry, err := h.svc.Create(&dto)
	if err != nil {
		apperr.Write(c, err)
		return
	}
	response.Created(c, entry)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		apperr.Write(c, apperr.Validation("invalid experience payload: %v", err))
		return
	}
	entry, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		apperr.Write(c, err)
		return
	}
	response.OK(c, entry)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		apperr.Write(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) reorder(c *gin.Context) {
	var dto ReorderDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		apperr.Write(c, apperr.Validation("invalid reorder payload: %v", err))
		return
	}
	if err := h.svc.Reorder(&dto); err != nil {
		apperr.Write(c, err)
		return
	}
	response.NoContent(c)
}
