package models

import "strings"

// WasteAmount enum
type WasteAmount string

const (
	AmountSmall  WasteAmount = "Small"
	AmountMedium WasteAmount = "Medium"
	AmountLarge  WasteAmount = "Large"
)

// ParseWasteAmount maps a classifier label such as "Large (Bohot Bara Dher)"
// to its bucket by the leading word.
func ParseWasteAmount(label string) (WasteAmount, bool) {
	fields := strings.Fields(strings.ToLower(label))
	if len(fields) == 0 {
		return "", false
	}
	switch strings.Trim(fields[0], "'\".,:*") {
	case "small":
		return AmountSmall, true
	case "medium":
		return AmountMedium, true
	case "large":
		return AmountLarge, true
	}
	return "", false
}

// Priority enum
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ComplaintStatus enum
type ComplaintStatus string

const (
	Pending    ComplaintStatus = "Pending"
	InProgress ComplaintStatus = "In Progress"
	Resolved   ComplaintStatus = "Resolved"
)

// Valid reports whether s is one of the three lifecycle states.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case Pending, InProgress, Resolved:
		return true
	}
	return false
}

// Unassigned is stored in AssignedTo when no vehicle took the complaint.
const Unassigned = "None (No Driver Available)"

// TimestampLayout is the display format of Complaint.Timestamp.
const TimestampLayout = "January 02, 2006 03:04 PM"

// Complaint represents a waste hotspot reported by a citizen
type Complaint struct {
	ID          int             `bson:"id" json:"id"`
	WasteType   string          `bson:"wasteType" json:"wasteType"`
	Description string          `bson:"description,omitempty" json:"description,omitempty"`
	Location    string          `bson:"location" json:"location"`
	Latitude    *float64        `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   *float64        `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Amount      WasteAmount     `bson:"amount" json:"amount"`
	Priority    Priority        `bson:"priority" json:"priority"`
	Timestamp   string          `bson:"timestamp" json:"timestamp"`
	Status      ComplaintStatus `bson:"status" json:"status"`
	AssignedTo  string          `bson:"assignedTo" json:"assignedTo"`
	ImageData   []byte          `bson:"imageData,omitempty" json:"imageData,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (c *Complaint) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// WasteAnalysis is the parsed classifier response for one photo.
type WasteAnalysis struct {
	Description string      `json:"description"`
	WasteType   string      `json:"wasteType"`
	Amount      WasteAmount `json:"amount"`
	AmountLabel string      `json:"amountLabel"`
}
