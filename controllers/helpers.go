package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"safaisync-be/classifier"
	"safaisync-be/models"
	"safaisync-be/services"

	"github.com/gin-gonic/gin"
)

// maxImageBytes bounds a single uploaded photo.
const maxImageBytes = 10 << 20

// respondError maps service errors onto status codes. Anything unknown is a 500
// with the generic message.
func respondError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, classifier.ErrClassificationIncomplete):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrComplaintNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
	case errors.Is(err, services.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}

func parseComplaintID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return 0, false
	}
	return id, true
}

// readImage returns the bytes of the "image" form file. On failure it has
// already written the response.
func readImage(c *gin.Context) ([]byte, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
		return nil, false
	}
	if fh.Size > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("Image must be at most %d MB", maxImageBytes>>20),
		})
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, err, "Failed to read image")
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, err, "Failed to read image")
		return nil, false
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
		return nil, false
	}
	return data, true
}

// withoutImage drops the inline photo from list responses.
func withoutImage(complaints []models.Complaint) []models.Complaint {
	out := make([]models.Complaint, len(complaints))
	for i, c := range complaints {
		c.ImageData = nil
		out[i] = c
	}
	return out
}
