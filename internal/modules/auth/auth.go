// Package auth implements admin session management: password login,
// magic-word login, logout and the current-session probe. Sessions are JWTs
// carried in an httpOnly cookie (or an Authorization header for API clients).
package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/apperr"
	"github.com/folio-space/core/internal/pkg/jwt"
	"github.com/folio-space/core/internal/pkg/response"
)

const tokenTTL = 7 * 24 * time.Hour

// dummyHash keeps the bcrypt cost constant when the username does not exist,
// so response timing does not leak which usernames are valid.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type Service struct {
	db  *gorm.DB
	cfg *config.AppConfig
	log *zap.Logger
}

func NewService(db *gorm.DB, cfg *config.AppConfig, log *zap.Logger) *Service {
	return &Service{db: db, cfg: cfg, log: log}
}

// LoginWithPassword verifies credentials and returns a signed session token.
func (s *Service) LoginWithPassword(username, password, ip string) (string, *models.AdminModel, error) {
	var admin models.AdminModel
	err := s.db.First(&admin, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		s.recordLogin(ip, "password", username, false)
		return "", nil, apperr.Validation("username or password incorrect")
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		s.recordLogin(ip, "password", username, false)
		return "", nil, apperr.Validation("username or password incorrect")
	}

	token, err := jwt.Sign(admin.ID, admin.Username, tokenTTL)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	s.db.Model(&admin).Updates(map[string]interface{}{
		"last_login_time": now,
		"last_login_ip":   ip,
	})
	admin.LastLoginTime = &now
	admin.LastLoginIP = ip
	s.recordLogin(ip, "password", username, true)
	return token, &admin, nil
}

// LoginWithMagicWord grants an admin session when the word matches one of the
// configured magic words. The session is bound to the seeded admin account.
func (s *Service) LoginWithMagicWord(word, ip string) (string, *models.AdminModel, error) {
	if !s.cfg.IsMagicWord(word) {
		s.recordLogin(ip, "magic", strings.TrimSpace(word), false)
		return "", nil, apperr.Validation("that's not the magic word")
	}

	var admin models.AdminModel
	if err := s.db.Order("created_at ASC").First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.Precondition("no admin account provisioned")
		}
		return "", nil, err
	}

	token, err := jwt.Sign(admin.ID, admin.Username, tokenTTL)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	s.db.Model(&admin).Updates(map[string]interface{}{
		"last_login_time": now,
		"last_login_ip":   ip,
	})
	s.recordLogin(ip, "magic", "", true)
	return token, &admin, nil
}

// Admin loads an admin by id, for the session probe.
func (s *Service) Admin(id string) (*models.AdminModel, error) {
	var admin models.AdminModel
	if err := s.db.First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("admin %q not found", id)
		}
		return nil, err
	}
	return &admin, nil
}

func (s *Service) recordLogin(ip, method, hint string, success bool) {
	log := models.LoginLogModel{IP: ip, Method: method, Hint: hint, Success: success}
	if err := s.db.Create(&log).Error; err != nil {
		s.log.Warn("failed to record login attempt", zap.Error(err))
	}
	if !success {
		s.log.Info("login rejected",
			zap.String("method", method),
			zap.String("ip", ip),
		)
	}
}

type Handler struct {
	svc *Service
	cfg *config.AppConfig
}

func NewHandler(svc *Service, cfg *config.AppConfig) *Handler {
	return &Handler{svc: svc, cfg: cfg}
}

// RegisterRoutes mounts the auth endpoints. loginLimiter is the strict per-IP
// limiter for credential-bearing endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, loginLimiter gin.HandlerFunc) {
	g := rg.Group("/auth")
	g.POST("/login", loginLimiter, h.login)
	g.POST("/magic-login", loginLimiter, h.magicLogin)
	g.POST("/logout", h.logout)
	g.GET("/me", authMW, h.me)
}

type loginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type magicLoginDTO struct {
	Word string `json:"word" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var dto loginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		apperr.Write(c, apperr.Validation("invalid login payload: %v", err))
		return
	}

	token, admin, err := h.svc.LoginWithPassword(dto.Username, dto.Password, c.ClientIP())
	if err != nil {
		if apperr.IsKind(err, apperr.KindValidation) {
			response.UnauthorizedMsg(c, err.Error())
			return
		}
		apperr.Write(c, err)
		return
	}

	h.setAuthCookie(c, token)
	response.OK(c, gin.H{"token": token, "admin": admin})
}

func (h *Handler) magicLogin(c *gin.Context) {
	var dto magicLoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		apperr.Write(c, apperr.Validation("invalid login payload: %v", err))
		return
	}

	token, admin, err := h.svc.LoginWithMagicWord(dto.Word, c.ClientIP())
	if err != nil {
		if apperr.IsKind(err, apperr.KindValidation) {
			response.UnauthorizedMsg(c, err.Error())
			return
		}
		apperr.Write(c, err)
		return
	}

	h.setAuthCookie(c, token)
	response.OK(c, gin.H{"token": token, "admin": admin})
}

func (h *Handler) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookie, "", -1, "/", "", !h.cfg.IsDev(), true)
	response.OK(c, gin.H{"message": "logged out"})
}

func (h *Handler) me(c *gin.Context) {
	admin, err := h.svc.Admin(middleware.CurrentAdminID(c))
	if err != nil {
		apperr.Write(c, err)
		return
	}
	response.OK(c, admin)
}

func (h *Handler) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookie, token, int(tokenTTL/time.Second), "/", "", !h.cfg.IsDev(), true)
}
