package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"safaisync-be/models"
	"safaisync-be/store"

	"go.uber.org/zap"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrComplaintNotFound = store.ErrComplaintNotFound
	ErrVehicleNotFound   = store.ErrVehicleNotFound
)

// NoAssignment is the admin choice that clears a complaint's vehicle.
const NoAssignment = "None"

// Notifier delivers a text message to a driver's phone.
type Notifier interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

// ImageCompressor shrinks an uploaded photo before it is stored.
type ImageCompressor interface {
	Compress(image []byte) ([]byte, error)
}

// Submission carries everything one citizen report collected before it is filed.
type Submission struct {
	Address   string
	Latitude  *float64
	Longitude *float64
	Image     []byte
	Analysis  *models.WasteAnalysis
}

func (s *Submission) validate() error {
	switch {
	case strings.TrimSpace(s.Address) == "":
		return fmt.Errorf("%w: location is required", ErrValidation)
	case len(s.Image) == 0:
		return fmt.Errorf("%w: image is required", ErrValidation)
	case s.Analysis == nil:
		return fmt.Errorf("%w: waste analysis is required", ErrValidation)
	case strings.TrimSpace(s.Analysis.WasteType) == "":
		return fmt.Errorf("%w: waste type is required", ErrValidation)
	case s.Analysis.Amount == "":
		return fmt.Errorf("%w: waste amount is required", ErrValidation)
	}
	return nil
}

// SubmitResult describes a filed complaint and what happened while filing it.
type SubmitResult struct {
	Complaint *models.Complaint `json:"complaint"`
	Assigned  *models.Vehicle   `json:"assigned,omitempty"`
	Notified  bool              `json:"notified"`
	Warnings  []string          `json:"warnings,omitempty"`
}

// OverrideResult describes an admin status/assignment change.
type OverrideResult struct {
	Complaint *models.Complaint `json:"complaint"`
	Notified  bool              `json:"notified"`
	Warnings  []string          `json:"warnings,omitempty"`
}

// MapPoint is a complaint location shown on the home map.
type MapPoint struct {
	ID        int     `json:"id"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Stats are the home page counters.
type Stats struct {
	Total    int        `json:"totalComplaints"`
	Resolved int        `json:"resolvedComplaints"`
	Pending  int        `json:"pendingAction"`
	Points   []MapPoint `json:"mapPoints"`
}

type ComplaintService struct {
	store      store.Store
	notifier   Notifier
	compressor ImageCompressor
	logger     *zap.Logger
	now        func() time.Time
}

func NewComplaintService(s store.Store, notifier Notifier, compressor ImageCompressor, logger *zap.Logger) *ComplaintService {
	return &ComplaintService{
		store:      s,
		notifier:   notifier,
		compressor: compressor,
		logger:     logger,
		now:        time.Now,
	}
}

// Submit files a new complaint: it infers the priority, tries to auto-assign
// a vehicle, persists the record and notifies the assigned driver.
// A failed notification is reported in the result warnings and never undoes
// the stored record.
func (s *ComplaintService) Submit(ctx context.Context, sub Submission) (*SubmitResult, error) {
	if err := sub.validate(); err != nil {
		return nil, err
	}

	image := sub.Image
	if s.compressor != nil {
		compressed, err := s.compressor.Compress(sub.Image)
		if err != nil {
			return nil, fmt.Errorf("%w: image could not be read: %v", ErrValidation, err)
		}
		image = compressed
	}

	complaint := &models.Complaint{
		WasteType:   sub.Analysis.WasteType,
		Description: sub.Analysis.Description,
		Location:    sub.Address,
		Latitude:    sub.Latitude,
		Longitude:   sub.Longitude,
		Amount:      sub.Analysis.Amount,
		Priority:    InferPriority(firstLine(sub.Analysis.Description), sub.Analysis.Amount),
		Timestamp:   s.now().Format(models.TimestampLayout),
		ImageData:   image,
	}

	result := &SubmitResult{Complaint: complaint}

	vehicles, err := s.store.LoadVehicles(ctx)
	if err != nil {
		s.logger.Warn("Failed to load vehicles, filing complaint unassigned", zap.Error(err))
		result.Warnings = append(result.Warnings, "vehicle list unavailable")
	}

	driver := ResolveAssignment(sub.Address, vehicles)
	if driver != nil {
		complaint.AssignedTo = driver.Label()
		complaint.Status = models.InProgress
		result.Assigned = driver
	} else {
		complaint.AssignedTo = models.Unassigned
		complaint.Status = models.Pending
		result.Warnings = append(result.Warnings, "no driver available, complaint left pending")
	}

	if err := s.store.InsertComplaint(ctx, complaint); err != nil {
		return nil, fmt.Errorf("failed to save complaint: %w", err)
	}

	s.logger.Info("Complaint filed",
		zap.Int("complaint_id", complaint.ID),
		zap.String("priority", string(complaint.Priority)),
		zap.String("status", string(complaint.Status)),
		zap.String("assigned_to", complaint.AssignedTo),
	)

	if driver != nil {
		if err := s.notify(ctx, *driver, autoAssignMessage(*driver, complaint)); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("driver notification failed: %v", err))
		} else {
			result.Notified = true
		}
	}

	return result, nil
}

// Override sets a complaint's status and assignment from the admin console.
// assignment is a vehicle label, a truck id, or "None". The change is saved
// before the chosen driver is looked up and notified.
func (s *ComplaintService) Override(ctx context.Context, id int, status models.ComplaintStatus, assignment string) (*OverrideResult, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	assignment = strings.TrimSpace(assignment)
	unassign := assignment == "" || assignment == NoAssignment || assignment == models.Unassigned
	assignedTo := assignment
	if unassign {
		assignedTo = models.Unassigned
	}

	updated, err := s.store.UpdateComplaint(ctx, id, status, assignedTo)
	if err != nil {
		return nil, err
	}
	result := &OverrideResult{Complaint: updated}

	s.logger.Info("Complaint updated by admin",
		zap.Int("complaint_id", id),
		zap.String("status", string(status)),
		zap.String("assigned_to", assignedTo),
	)

	if unassign {
		return result, nil
	}

	driver, err := s.findVehicle(ctx, assignment)
	if err != nil {
		s.logger.Warn("Assigned driver not found", zap.String("assignment", assignment), zap.Error(err))
		result.Warnings = append(result.Warnings, err.Error())
		return result, nil
	}

	if err := s.notify(ctx, *driver, manualAssignMessage(*driver, updated)); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("driver notification failed: %v", err))
	} else {
		result.Notified = true
	}
	return result, nil
}

// Delete removes a complaint.
func (s *ComplaintService) Delete(ctx context.Context, id int) error {
	if err := s.store.DeleteComplaint(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Complaint deleted", zap.Int("complaint_id", id))
	return nil
}

// Get returns one complaint.
func (s *ComplaintService) Get(ctx context.Context, id int) (*models.Complaint, error) {
	complaints, err := s.store.LoadComplaints(ctx)
	if err != nil {
		return nil, err
	}
	for i := range complaints {
		if complaints[i].ID == id {
			return &complaints[i], nil
		}
	}
	return nil, fmt.Errorf("complaint #%d: %w", id, ErrComplaintNotFound)
}

// List returns complaints newest first. An empty filter or "All" returns every complaint.
func (s *ComplaintService) List(ctx context.Context, statusFilter string) ([]models.Complaint, error) {
	filter := models.ComplaintStatus(statusFilter)
	all := statusFilter == "" || strings.EqualFold(statusFilter, "all")
	if !all && !filter.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, statusFilter)
	}

	complaints, err := s.store.LoadComplaints(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if all || c.Status == filter {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Stats counts complaints and collects the ones that carry coordinates.
func (s *ComplaintService) Stats(ctx context.Context) (*Stats, error) {
	complaints, err := s.store.LoadComplaints(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Total: len(complaints), Points: []MapPoint{}}
	for _, c := range complaints {
		if c.Status == models.Resolved {
			stats.Resolved++
		}
		if c.HasCoordinates() {
			stats.Points = append(stats.Points, MapPoint{ID: c.ID, Latitude: *c.Latitude, Longitude: *c.Longitude})
		}
	}
	stats.Pending = stats.Total - stats.Resolved
	return stats, nil
}

func (s *ComplaintService) Vehicles(ctx context.Context) ([]models.Vehicle, error) {
	return s.store.LoadVehicles(ctx)
}

// AssignmentOptions lists the admin assignment choices, "None" first.
func (s *ComplaintService) AssignmentOptions(ctx context.Context) ([]string, error) {
	vehicles, err := s.store.LoadVehicles(ctx)
	if err != nil {
		return nil, err
	}
	options := []string{NoAssignment}
	for _, v := range vehicles {
		options = append(options, v.Label())
	}
	return options, nil
}

// SetVehicleStatus marks a truck Available or Busy.
func (s *ComplaintService) SetVehicleStatus(ctx context.Context, truckID string, status models.VehicleStatus) error {
	if status != models.Available && status != models.Busy {
		return fmt.Errorf("%w: invalid vehicle status %q", ErrValidation, status)
	}
	if err := s.store.UpdateVehicleStatus(ctx, truckID, status); err != nil {
		return err
	}
	s.logger.Info("Vehicle status changed", zap.String("truck_id", truckID), zap.String("status", string(status)))
	return nil
}

func (s *ComplaintService) findVehicle(ctx context.Context, assignment string) (*models.Vehicle, error) {
	vehicles, err := s.store.LoadVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicles: %w", err)
	}
	for i := range vehicles {
		if vehicles[i].Label() == assignment || vehicles[i].TruckID == assignment {
			return &vehicles[i], nil
		}
	}
	return nil, fmt.Errorf("driver %q: %w", assignment, ErrVehicleNotFound)
}

func (s *ComplaintService) notify(ctx context.Context, driver models.Vehicle, message string) error {
	if s.notifier == nil {
		return errors.New("notifier not configured")
	}
	if err := s.notifier.Send(ctx, driver.PhoneNumber, message); err != nil {
		s.logger.Warn("Driver notification failed",
			zap.String("truck_id", driver.TruckID),
			zap.Error(err),
		)
		return err
	}
	s.logger.Info("Driver notified", zap.String("truck_id", driver.TruckID))
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
