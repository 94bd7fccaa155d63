package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/filter"
	"volunteerhub/internal/middleware"
	"volunteerhub/internal/models"
	"volunteerhub/internal/repository"
	"volunteerhub/internal/service"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	svc      *service.ApplicationService
	userRepo *repository.UserRepository
}

func NewApplicationHandler(svc *service.ApplicationService, userRepo *repository.UserRepository) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, userRepo: userRepo}
}

type submitApplicationRequest struct {
	OpportunityID uint   `json:"opportunity_id" binding:"required"`
	CoverLetter   string `json:"cover_letter" binding:"required"`
}

// Submit creates a pending application for the authenticated volunteer. A
// repeat application for the same opportunity returns 409 with a
// user-readable message.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	volunteerID := middleware.GetUserID(c)
	var req submitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	volunteerName := ""
	if u, err := h.userRepo.GetByID(volunteerID); err == nil {
		volunteerName = u.Name
	}
	a, err := h.svc.Submit(req.OpportunityID, volunteerID, volunteerName, req.CoverLetter)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateApplication):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrOpportunityNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			log.Printf("[applications] submit failed: volunteer=%d opportunity=%d err=%v", volunteerID, req.OpportunityID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit application"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"application": a})
}

// List returns the caller's visible applications newest-first, with the q
// and status filters applied in-process and status tallies computed over
// the unfiltered set. A load failure degrades to an empty list.
func (h *ApplicationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	list, err := h.svc.ListFor(role, userID)
	if err != nil {
		log.Printf("[applications] list failed: role=%s user=%d err=%v", role, userID, err)
		c.JSON(http.StatusOK, gin.H{"applications": []models.Application{}, "stats": filter.StatusTally(nil)})
		return
	}
	f := filter.ApplicationFilter{
		Query:  c.Query("q"),
		Status: c.Query("status"),
	}
	c.JSON(http.StatusOK, gin.H{
		"applications": f.Apply(list),
		"stats":        filter.StatusTally(list),
	})
}

// Accept moves a pending application to accepted.
func (h *ApplicationHandler) Accept(c *gin.Context) {
	h.decide(c, domain.ApplicationAccepted)
}

// Reject moves a pending application to rejected.
func (h *ApplicationHandler) Reject(c *gin.Context) {
	h.decide(c, domain.ApplicationRejected)
}

func (h *ApplicationHandler) decide(c *gin.Context, status string) {
	ngoID := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
		return
	}
	a, err := h.svc.Decide(uint(id), ngoID, status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			log.Printf("[applications] decide failed: id=%d status=%s err=%v", id, status, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": a})
}
