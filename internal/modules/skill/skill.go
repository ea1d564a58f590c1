// Package skill implements CRUD and reordering for skill tags.
package skill

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

type CreateDTO struct {
	PortfolioID string `json:"portfolio_id" binding:"required"`
	Name        string `json:"name"         binding:"required"`
	Order       *int   `json:"order"`
}

type UpdateDTO struct {
	Name  *string `json:"name"`
	Order *int    `json:"order"`
}

type ReorderDTO struct {
	PortfolioID string   `json:"portfolio_id" binding:"required"`
	OrderedIDs  []string `json:"ordered_ids"  binding:"required"`
}

func (s *Service) Create(dto *CreateDTO) (*models.SkillModel, error) {
	if err := ensurePortfolioExists(s.db, dto.PortfolioID); err != nil {
		return nil, err
	}

	entry := models.SkillModel{
		PortfolioID: dto.PortfolioID,
		Name:        dto.Name,
	}
	if dto.Order != nil {
		entry.Order = *dto.Order
	} else {
		var count int64
		if err := s.db.Model(&models.SkillModel{}).Where("portfolio_id = ?", dto.PortfolioID).Count(&count).Error; err != nil {
			return nil, err
		}
		entry.Order = int(count)
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Service) Update(id string, dto *UpdateDTO) (*models.SkillModel, error) {
	var entry models.SkillModel
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("skill %q not found", id)
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
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
	res := s.db.Delete(&models.SkillModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("skill %q not found", id)
	}
	return nil
}

func (s *Service) Reorder(dto *ReorderDTO) error {
	if err := ensurePortfolioExists(s.db, dto.PortfolioID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range dto.OrderedIDs {
			res := tx.Model(&models.SkillModel{}).
				Where("id = ? AND portfolio_id = ?", id, dto.PortfolioID).
				Update("order_num", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperr.NotFound("skill %q not found in portfolio %q", id, dto.PortfolioID)
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

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/skills", authMW)
	g.POST("", h.create)
	g.POST("/reorder", h.reorder)
	g.PUT("/:id", h.update)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		apperr.Write(c, apperr.Validation("invalid skill payload: %v", err))
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
		apperr.Write(c, apperr.Validation("invalid skill payload: %v", err))
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
