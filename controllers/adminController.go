package controllers

import (
	"fmt"
	"net/http"
	"time"

	"safaisync-be/middlewares"
	"safaisync-be/models"
	"safaisync-be/services"
	authUtils "safaisync-be/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const adminSessionTTL = 12 * time.Hour

type AdminController struct {
	svc          *services.ComplaintService
	admin        *models.Admin
	jwtSecret    string
	domain       string
	secureCookie bool
	logger       *zap.Logger
}

func NewAdminController(svc *services.ComplaintService, admin *models.Admin, jwtSecret, domain string, secureCookie bool, logger *zap.Logger) *AdminController {
	return &AdminController{
		svc:          svc,
		admin:        admin,
		jwtSecret:    jwtSecret,
		domain:       domain,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// Login checks the console password and issues a session token.
func (ac *AdminController) Login(c *gin.Context) {
	var input struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !ac.admin.ComparePassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := authUtils.GenerateAdminToken(ac.jwtSecret, adminSessionTTL)
	if err != nil {
		ac.logger.Error("Error generating admin token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	sameSite := http.SameSiteLaxMode
	if ac.secureCookie {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middlewares.AdminCookie,
		Value:    token,
		Path:     "/",
		Domain:   ac.domain,
		MaxAge:   int(adminSessionTTL.Seconds()),
		Secure:   ac.secureCookie,
		HttpOnly: true,
		SameSite: sameSite,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Access granted", "token": token})
}

// Logout clears the session cookie.
func (ac *AdminController) Logout(c *gin.Context) {
	c.SetCookie(middlewares.AdminCookie, "", -1, "/", ac.domain, ac.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Dashboard lists every complaint newest first with the assignment choices.
func (ac *AdminController) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	complaints, err := ac.svc.List(ctx, "")
	if err != nil {
		respondError(c, err, "Failed to retrieve complaints")
		return
	}
	options, err := ac.svc.AssignmentOptions(ctx)
	if err != nil {
		respondError(c, err, "Failed to retrieve vehicles")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"complaints":        withoutImage(complaints),
		"assignmentOptions": options,
		"statuses":          []models.ComplaintStatus{models.Pending, models.InProgress, models.Resolved},
	})
}

// UpdateComplaint saves a status/assignment override and notifies the chosen driver.
func (ac *AdminController) UpdateComplaint(c *gin.Context) {
	id, ok := parseComplaintID(c)
	if !ok {
		return
	}

	var input struct {
		Status     string `json:"status" binding:"required"`
		AssignedTo string `json:"assignedTo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ac.svc.Override(c.Request.Context(), id, models.ComplaintStatus(input.Status), input.AssignedTo)
	if err != nil {
		respondError(c, err, "Failed to update complaint")
		return
	}

	result.Complaint.ImageData = nil
	c.JSON(http.StatusOK, result)
}

// DeleteComplaint removes a complaint record for good.
func (ac *AdminController) DeleteComplaint(c *gin.Context) {
	id, ok := parseComplaintID(c)
	if !ok {
		return
	}
	if err := ac.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete complaint")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Complaint #%d deleted successfully", id)})
}

// Vehicles lists the fleet with the assignment choices.
func (ac *AdminController) Vehicles(c *gin.Context) {
	ctx := c.Request.Context()
	vehicles, err := ac.svc.Vehicles(ctx)
	if err != nil {
		respondError(c, err, "Failed to retrieve vehicles")
		return
	}
	options, err := ac.svc.AssignmentOptions(ctx)
	if err != nil {
		respondError(c, err, "Failed to retrieve vehicles")
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles, "assignmentOptions": options})
}

// UpdateVehicleStatus marks a truck Available or Busy.
func (ac *AdminController) UpdateVehicleStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	truckID := c.Param("truckId")
	if err := ac.svc.SetVehicleStatus(c.Request.Context(), truckID, models.VehicleStatus(input.Status)); err != nil {
		respondError(c, err, "Failed to update vehicle")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle updated successfully", "truckId": truckID, "status": input.Status})
}
