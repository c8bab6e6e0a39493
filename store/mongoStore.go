package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"safaisync-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// complaintCounterID names the counters document that hands out complaint ids.
const complaintCounterID = "complaints"

// MongoStore keeps one document per record keyed by complaint id or truck id,
// so updates and deletes touch a single document.
type MongoStore struct {
	complaints *mongo.Collection
	trucks     *mongo.Collection
	counters   *mongo.Collection
}

type counter struct {
	ID  string `bson:"_id"`
	Seq int    `bson:"seq"`
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		complaints: db.Collection("complaints"),
		trucks:     db.Collection("trucks"),
		counters:   db.Collection("counters"),
	}
}

// EnsureIndexes creates the unique id indexes for both collections.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.complaints.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create complaint index: %w", err)
	}
	_, err = s.trucks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "truckId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create truck index: %w", err)
	}
	return s.SyncCounter(ctx)
}

// SyncCounter raises the complaint id counter to at least the highest stored
// id, so complaints written before the counter existed are never reused.
func (s *MongoStore) SyncCounter(ctx context.Context) error {
	var last models.Complaint
	err := s.complaints.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})).Decode(&last)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to read last complaint id: %w", err)
	}

	_, err = s.counters.UpdateOne(ctx,
		bson.M{"_id": complaintCounterID},
		bson.M{"$max": bson.M{"seq": last.ID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to sync complaint counter: %w", err)
	}
	return nil
}

// nextComplaintID atomically increments the counter and returns the new value.
func (s *MongoStore) nextComplaintID(ctx context.Context) (int, error) {
	var c counter
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": complaintCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate complaint id: %w", err)
	}
	return c.Seq, nil
}

func (s *MongoStore) LoadComplaints(ctx context.Context) ([]models.Complaint, error) {
	cursor, err := s.complaints.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve complaints: %w", err)
	}
	defer cursor.Close(ctx)

	complaints := []models.Complaint{}
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, fmt.Errorf("failed to decode complaints: %w", err)
	}
	return complaints, nil
}

func (s *MongoStore) InsertComplaint(ctx context.Context, c *models.Complaint) error {
	id, err := s.nextComplaintID(ctx)
	if err != nil {
		return err
	}
	c.ID = id

	if _, err := s.complaints.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to insert complaint: %w", err)
	}
	return nil
}

func (s *MongoStore) UpdateComplaint(ctx context.Context, id int, status models.ComplaintStatus, assignedTo string) (*models.Complaint, error) {
	var updated models.Complaint
	err := s.complaints.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status, "assignedTo": assignedTo}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("complaint #%d: %w", id, ErrComplaintNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update complaint: %w", err)
	}
	return &updated, nil
}

func (s *MongoStore) DeleteComplaint(ctx context.Context, id int) error {
	res, err := s.complaints.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete complaint: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("complaint #%d: %w", id, ErrComplaintNotFound)
	}
	return nil
}

func (s *MongoStore) LoadVehicles(ctx context.Context) ([]models.Vehicle, error) {
	cursor, err := s.trucks.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve trucks: %w", err)
	}
	defer cursor.Close(ctx)

	vehicles := []models.Vehicle{}
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode trucks: %w", err)
	}
	return vehicles, nil
}

func (s *MongoStore) UpdateVehicleStatus(ctx context.Context, truckID string, status models.VehicleStatus) error {
	res, err := s.trucks.UpdateOne(ctx, bson.M{"truckId": truckID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update truck: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("truck %s: %w", truckID, ErrVehicleNotFound)
	}
	return nil
}
