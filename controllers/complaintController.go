package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"safaisync-be/classifier"
	"safaisync-be/geocode"
	"safaisync-be/models"
	"safaisync-be/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WasteClassifier returns the raw three-line analysis of a photo.
type WasteClassifier interface {
	Classify(ctx context.Context, image []byte) (string, error)
}

// AddressResolver turns coordinates into a display address.
type AddressResolver interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) string
}

var errClassifierNotConfigured = errors.New("classifier not configured")

type ComplaintController struct {
	svc        *services.ComplaintService
	classifier WasteClassifier
	geocoder   AddressResolver
	logger     *zap.Logger
}

func NewComplaintController(svc *services.ComplaintService, wc WasteClassifier, geocoder AddressResolver, logger *zap.Logger) *ComplaintController {
	return &ComplaintController{svc: svc, classifier: wc, geocoder: geocoder, logger: logger}
}

// ReverseGeocode resolves the citizen's confirmed coordinates to an address.
func (cc *ComplaintController) ReverseGeocode(c *gin.Context) {
	var input struct {
		Latitude  *float64 `json:"latitude" binding:"required"`
		Longitude *float64 `json:"longitude" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address":   cc.resolveAddress(c.Request.Context(), *input.Latitude, *input.Longitude),
		"latitude":  input.Latitude,
		"longitude": input.Longitude,
	})
}

// Analyze classifies an uploaded photo without filing anything.
func (cc *ComplaintController) Analyze(c *gin.Context) {
	image, ok := readImage(c)
	if !ok {
		return
	}

	analysis, raw, err := cc.analyze(c.Request.Context(), image)
	if err != nil {
		cc.respondClassifierError(c, err, raw)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// CreateComplaint files a complaint from a multipart form: image, latitude,
// longitude and optionally address, description, wasteType and amount.
// Missing address or analysis are filled in by the geocoder and classifier.
func (cc *ComplaintController) CreateComplaint(c *gin.Context) {
	ctx := c.Request.Context()

	image, ok := readImage(c)
	if !ok {
		return
	}

	lat, lon, err := parseCoordinates(c.PostForm("latitude"), c.PostForm("longitude"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address := strings.TrimSpace(c.PostForm("address"))
	if address == "" && lat != nil && lon != nil {
		address = cc.resolveAddress(ctx, *lat, *lon)
	}

	var analysis *models.WasteAnalysis
	if wasteType, amountLabel := strings.TrimSpace(c.PostForm("wasteType")), strings.TrimSpace(c.PostForm("amount")); wasteType != "" && amountLabel != "" {
		amount, ok := models.ParseWasteAmount(amountLabel)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		analysis = &models.WasteAnalysis{
			Description: strings.TrimSpace(c.PostForm("description")),
			WasteType:   wasteType,
			Amount:      amount,
			AmountLabel: amountLabel,
		}
	} else {
		var raw string
		analysis, raw, err = cc.analyze(ctx, image)
		if err != nil {
			cc.respondClassifierError(c, err, raw)
			return
		}
	}

	result, err := cc.svc.Submit(ctx, services.Submission{
		Address:   address,
		Latitude:  lat,
		Longitude: lon,
		Image:     image,
		Analysis:  analysis,
	})
	if err != nil {
		respondError(c, err, "Failed to create complaint")
		return
	}

	result.Complaint.ImageData = nil
	c.JSON(http.StatusCreated, result)
}

// ListComplaints returns the complaint history, newest first.
func (cc *ComplaintController) ListComplaints(c *gin.Context) {
	complaints, err := cc.svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err, "Failed to retrieve complaints")
		return
	}
	c.JSON(http.StatusOK, withoutImage(complaints))
}

func (cc *ComplaintController) GetComplaint(c *gin.Context) {
	id, ok := parseComplaintID(c)
	if !ok {
		return
	}
	complaint, err := cc.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve complaint")
		return
	}
	c.JSON(http.StatusOK, complaint)
}

func (cc *ComplaintController) GetComplaintImage(c *gin.Context) {
	id, ok := parseComplaintID(c)
	if !ok {
		return
	}
	complaint, err := cc.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve complaint")
		return
	}
	if len(complaint.ImageData) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(complaint.ImageData), complaint.ImageData)
}

// Stats returns the home page counters and map points.
func (cc *ComplaintController) Stats(c *gin.Context) {
	stats, err := cc.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (cc *ComplaintController) resolveAddress(ctx context.Context, lat, lon float64) string {
	if cc.geocoder == nil {
		return geocode.AddressNotFound
	}
	return cc.geocoder.ReverseGeocode(ctx, lat, lon)
}

func (cc *ComplaintController) analyze(ctx context.Context, image []byte) (*models.WasteAnalysis, string, error) {
	if cc.classifier == nil {
		return nil, "", errClassifierNotConfigured
	}
	raw, err := cc.classifier.Classify(ctx, image)
	if err != nil {
		return nil, "", err
	}
	analysis, err := classifier.ParseAnalysis(raw)
	if err != nil {
		return nil, raw, err
	}
	return analysis, raw, nil
}

func (cc *ComplaintController) respondClassifierError(c *gin.Context, err error, raw string) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, errClassifierNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI assistant is not configured"})
	case errors.Is(err, classifier.ErrClassificationIncomplete):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "raw": raw})
	default:
		cc.logger.Warn("Image classification failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI could not analyse this image"})
	}
}

func parseCoordinates(latStr, lonStr string) (*float64, *float64, error) {
	if latStr == "" && lonStr == "" {
		return nil, nil, nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, nil, errors.New("Invalid latitude")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, nil, errors.New("Invalid longitude")
	}
	return &lat, &lon, nil
}
