package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"safaisync-be/models"
)

const (
	ComplaintsFile = "complaints.json"
	TrucksFile     = "trucks.json"
)

// JSONStore keeps each record set as an indented JSON array on disk.
// Every mutation rewrites the whole file; there is no locking.
type JSONStore struct {
	complaintsPath string
	trucksPath     string
}

// NewJSONStore creates dir if needed and returns a store rooted at it.
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &JSONStore{
		complaintsPath: filepath.Join(dir, ComplaintsFile),
		trucksPath:     filepath.Join(dir, TrucksFile),
	}, nil
}

// LoadRecords reads a JSON array from path. A missing or malformed file
// yields an empty set.
func LoadRecords[T any](path string) []T {
	records := []T{}
	data, err := os.ReadFile(path)
	if err != nil {
		return records
	}
	if err := json.Unmarshal(data, &records); err != nil || records == nil {
		return []T{}
	}
	return records
}

// SaveRecords rewrites path with records as an indented JSON array.
func SaveRecords[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *JSONStore) LoadComplaints(ctx context.Context) ([]models.Complaint, error) {
	return LoadRecords[models.Complaint](s.complaintsPath), nil
}

func (s *JSONStore) SaveComplaints(ctx context.Context, complaints []models.Complaint) error {
	return SaveRecords(s.complaintsPath, complaints)
}

func (s *JSONStore) InsertComplaint(ctx context.Context, c *models.Complaint) error {
	complaints := LoadRecords[models.Complaint](s.complaintsPath)
	c.ID = NextID(complaints)
	complaints = append(complaints, *c)
	return SaveRecords(s.complaintsPath, complaints)
}

func (s *JSONStore) UpdateComplaint(ctx context.Context, id int, status models.ComplaintStatus, assignedTo string) (*models.Complaint, error) {
	complaints := LoadRecords[models.Complaint](s.complaintsPath)
	for i := range complaints {
		if complaints[i].ID != id {
			continue
		}
		complaints[i].Status = status
		complaints[i].AssignedTo = assignedTo
		if err := SaveRecords(s.complaintsPath, complaints); err != nil {
			return nil, err
		}
		updated := complaints[i]
		return &updated, nil
	}
	return nil, fmt.Errorf("complaint #%d: %w", id, ErrComplaintNotFound)
}

func (s *JSONStore) DeleteComplaint(ctx context.Context, id int) error {
	complaints := LoadRecords[models.Complaint](s.complaintsPath)
	kept := make([]models.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(complaints) {
		return fmt.Errorf("complaint #%d: %w", id, ErrComplaintNotFound)
	}
	return SaveRecords(s.complaintsPath, kept)
}

func (s *JSONStore) LoadVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return LoadRecords[models.Vehicle](s.trucksPath), nil
}

func (s *JSONStore) SaveVehicles(ctx context.Context, vehicles []models.Vehicle) error {
	return SaveRecords(s.trucksPath, vehicles)
}

func (s *JSONStore) UpdateVehicleStatus(ctx context.Context, truckID string, status models.VehicleStatus) error {
	vehicles := LoadRecords[models.Vehicle](s.trucksPath)
	for i := range vehicles {
		if vehicles[i].TruckID == truckID {
			vehicles[i].Status = status
			return SaveRecords(s.trucksPath, vehicles)
		}
	}
	return fmt.Errorf("truck %s: %w", truckID, ErrVehicleNotFound)
}
