package handler

import (
	"errors"
	"net/http"

	"volunteerhub/internal/middleware"
	"volunteerhub/internal/models"
	"volunteerhub/internal/repository"
	"volunteerhub/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MeHandler struct {
	userRepo     *repository.UserRepository
	dashboardSvc *service.DashboardService
}

func NewMeHandler(userRepo *repository.UserRepository, dashboardSvc *service.DashboardService) *MeHandler {
	return &MeHandler{userRepo: userRepo, dashboardSvc: dashboardSvc}
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type updateProfileRequest struct {
	Name     string   `json:"name" binding:"required,max=100"`
	Skills   []string `json:"skills"`
	Location string   `json:"location"`
	Bio      string   `json:"bio"`

	OrganizationName        string `json:"organization_name"`
	OrganizationDescription string `json:"organization_description"`
	WebsiteURL              string `json:"website_url"`
}

// UpdateProfile edits the mutable profile fields. Role and email never
// change here.
func (h *MeHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u.Name = req.Name
	u.Skills = models.StringList(req.Skills)
	u.Location = req.Location
	u.Bio = req.Bio
	if u.IsNGO() {
		u.OrganizationName = req.OrganizationName
		u.OrganizationDescription = req.OrganizationDescription
		u.WebsiteURL = req.WebsiteURL
	}
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// GetDashboard builds the role-specific dashboard. The builder is picked
// once by the role tag carried in the token.
func (h *MeHandler) GetDashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)
	data, err := h.dashboardSvc.Build(role, userID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownRole) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard failed"})
		return
	}
	c.JSON(http.StatusOK, data)
}
