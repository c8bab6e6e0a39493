// Package store persists complaint and vehicle records.
package store

import (
	"context"
	"errors"

	"safaisync-be/models"
)

var (
	ErrComplaintNotFound = errors.New("complaint not found")
	ErrVehicleNotFound   = errors.New("vehicle not found")
)

// Store is the record store behind the complaint lifecycle.
type Store interface {
	LoadComplaints(ctx context.Context) ([]models.Complaint, error)
	// InsertComplaint assigns the next id to c and persists it.
	InsertComplaint(ctx context.Context, c *models.Complaint) error
	UpdateComplaint(ctx context.Context, id int, status models.ComplaintStatus, assignedTo string) (*models.Complaint, error)
	DeleteComplaint(ctx context.Context, id int) error

	LoadVehicles(ctx context.Context) ([]models.Vehicle, error)
	UpdateVehicleStatus(ctx context.Context, truckID string, status models.VehicleStatus) error
}

// NextID returns one past the highest id in complaints.
func NextID(complaints []models.Complaint) int {
	maxID := 0
	for _, c := range complaints {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	return maxID + 1
}
