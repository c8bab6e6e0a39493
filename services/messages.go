package services

import (
	"fmt"
	"strconv"

	"safaisync-be/models"
)

const noMapLink = "Exact location not available"

// MapsLink returns a Google Maps link for the coordinates, or a placeholder
// when either is missing.
func MapsLink(lat, lon *float64) string {
	if lat == nil || lon == nil {
		return noMapLink
	}
	return fmt.Sprintf("https://www.google.com/maps?q=%s,%s",
		strconv.FormatFloat(*lat, 'f', -1, 64),
		strconv.FormatFloat(*lon, 'f', -1, 64))
}

func autoAssignMessage(driver models.Vehicle, c *models.Complaint) string {
	return fmt.Sprintf("Assalam o Alaikum %s,\n\n"+
		"AUTO-ASSIGNMENT: A new complaint has been assigned to you:\n\n"+
		"Complaint ID: #%d\n"+
		"Priority: %s\n"+
		"Location: %s\n"+
		"Maps Link: %s\n\n"+
		"Please take action immediately.",
		driver.DriverName, c.ID, c.Priority, c.Location, MapsLink(c.Latitude, c.Longitude))
}

func manualAssignMessage(driver models.Vehicle, c *models.Complaint) string {
	return fmt.Sprintf("Assalam o Alaikum %s,\n\n"+
		"A SafaiSync complaint has been assigned to you:\n\n"+
		"Complaint ID: #%d\n"+
		"Priority: %s\n"+
		"Location Address: %s\n\n"+
		"EXACT LOCATION LINK:\n%s\n\n"+
		"Please take action immediately.",
		driver.DriverName, c.ID, c.Priority, c.Location, MapsLink(c.Latitude, c.Longitude))
}
