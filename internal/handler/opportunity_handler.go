package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/filter"
	"volunteerhub/internal/middleware"
	"volunteerhub/internal/models"
	"volunteerhub/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OpportunityHandler struct {
	oppRepo *repository.OpportunityRepository
}

func NewOpportunityHandler(oppRepo *repository.OpportunityRepository) *OpportunityHandler {
	return &OpportunityHandler{oppRepo: oppRepo}
}

// List returns the role-scoped catalog with the in-process filters applied.
// Volunteers browse open postings; NGOs see their own regardless of status.
// A load failure degrades to an empty catalog.
func (h *OpportunityHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	var (
		list []models.Opportunity
		err  error
	)
	if role == domain.RoleNGO {
		list, err = h.oppRepo.ListByNGOID(userID)
	} else {
		list, err = h.oppRepo.ListOpen(0)
	}
	if err != nil {
		log.Printf("[opportunities] list failed: role=%s err=%v", role, err)
		c.JSON(http.StatusOK, gin.H{"opportunities": []models.Opportunity{}, "available_skills": []string{}})
		return
	}

	f := filter.OpportunityFilter{
		Query:    c.Query("q"),
		Location: c.Query("location"),
		Status:   c.Query("status"),
	}
	if skills := c.Query("skills"); skills != "" {
		f.Skills = strings.Split(skills, ",")
	}
	c.JSON(http.StatusOK, gin.H{
		"opportunities":    f.Apply(list),
		"available_skills": filter.AvailableSkills(list),
	})
}

func (h *OpportunityHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid opportunity id"})
		return
	}
	o, err := h.oppRepo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "opportunity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"opportunity": o})
}

type opportunityRequest struct {
	Title          string   `json:"title" binding:"required,max=255"`
	Description    string   `json:"description" binding:"required"`
	RequiredSkills []string `json:"required_skills"`
	Duration       string   `json:"duration"`
	Location       string   `json:"location"`
	Status         string   `json:"status" binding:"omitempty,oneof=open closed"`
}

func (h *OpportunityHandler) Create(c *gin.Context) {
	ngoID := middleware.GetUserID(c)
	var req opportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	o := &models.Opportunity{
		NGOID:          ngoID,
		Title:          req.Title,
		Description:    req.Description,
		RequiredSkills: models.StringList(req.RequiredSkills),
		Duration:       req.Duration,
		Location:       req.Location,
		Status:         req.Status,
	}
	if o.Status == "" {
		o.Status = domain.OpportunityOpen
	}
	if err := h.oppRepo.Create(o); err != nil {
		log.Printf("[opportunities] create failed: ngo=%d err=%v", ngoID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"opportunity": o})
}

// Update lets the owning NGO edit a posting, including flipping its status.
// Status transitions are free-form, open and closed both ways.
func (h *OpportunityHandler) Update(c *gin.Context) {
	ngoID := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid opportunity id"})
		return
	}
	o, err := h.oppRepo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "opportunity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}
	if o.NGOID != ngoID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your opportunity"})
		return
	}
	var req opportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	o.Title = req.Title
	o.Description = req.Description
	o.RequiredSkills = models.StringList(req.RequiredSkills)
	o.Duration = req.Duration
	o.Location = req.Location
	if req.Status != "" {
		o.Status = req.Status
	}
	if err := h.oppRepo.Update(o); err != nil {
		log.Printf("[opportunities] update failed: id=%d err=%v", o.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"opportunity": o})
}
