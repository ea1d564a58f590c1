// Package education implements CRUD and reordering for education entries.
package education

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
	PortfolioID string               `json:"portfolio_id" binding:"required"`
	School      string               `json:"school"       binding:"required"`
	Degree      string               `json:"degree"       binding:"required"`
	Dates       string               `json:"dates"`
	Details     *string              `json:"details"`
	Courses     []models.CourseEntry `json:"courses"`
	Order       *int                 `json:"order"`
}

// UpdateDTO is a partial update; absent fields are left untouched. Details is
// nullable, so it tracks presence and can be cleared with an explicit null.
type UpdateDTO struct {
	School  *string                 `json:"school"`
	Degree  *string                 `json:"degree"`
	Dates   *string                 `json:"dates"`
	Details models.Optional[string] `json:"details"`
	Courses *[]models.CourseEntry   `json:"courses"`
	Order   *int                    `json:"order"`
}

type ReorderDTO struct {
	PortfolioID string   `json:"portfolio_id" binding:"required"`
	OrderedIDs  []string `json:"ordered_ids"  binding:"required"`
}

func (s *Service) Create(dto *CreateDTO) (*models.EducationModel, error) {
	if err := ensurePortfolioExists(s.db, dto.PortfolioID); err != nil {
		return nil, err
	}

	entry := models.EducationModel{
		PortfolioID: dto.PortfolioID,
		School:      dto.School,
		Degree:      dto.Degree,
		Dates:       dto.Dates,
		Details:     dto.Details,
		Courses:     dto.Courses,
	}
	if dto.Order != nil {
		entry.Order = *dto.Order
	} else {
		var count int64
		if err := s.db.Model(&models.EducationModel{}).Where("portfolio_id = ?", dto.PortfolioID).Count(&count).Error; err != nil {
			return nil, err
		}
		entry.Order = int(count)
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Service) Update(id string, dto *UpdateDTO) (*models.EducationModel, error) {
	var entry models.EducationModel
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("education entry %q not found", id)
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.School != nil {
		updates["school"] = *dto.School
	}
	if dto.Degree != nil {
		updates["degree"] = *dto.Degree
	}
	if dto.Dates != nil {
		updates["dates"] = *dto.Dates
	}
	if dto.Details.Set {
		updates["details"] = dto.Details.Value
	}
	if dto.Courses != nil {
		updates["courses"] = models.JSONColumn(*dto.Courses)
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
	res := s.db.Delete(&models.EducationModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("education entry %q not found", id)
	}
	return nil
}

func (s *Service) Reorder(dto *ReorderDTO) error {
	if err := ensurePortfolioExists(s.db, dto.PortfolioID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range dto.OrderedIDs {
			res := tx.Model(&models.EducationModel{}).
				Where("id = ? AND portfolio_id = ?", id, dto.PortfolioID).
				Update("order_num", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperr.NotFound("education entry %q not found in portfolio %q", id, dto.PortfolioID)
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
	g := rg.Group("/education", authMW)
	g.POST("", h.create)
	g.POST("/reorder", h.reorder)
	g.PUT("/:id", h.update)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		apperr.Write(c, apperr.Validation("invalid education payload: %v", err))
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
		apperr.Write(c, apperr.Validation("invalid education payload: %v", err))
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
