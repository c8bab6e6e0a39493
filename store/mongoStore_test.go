package store

import (
	"context"
	"testing"

	"safaisync-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func complaintDoc(id int, status string) bson.D {
	return bson.D{
		{Key: "id", Value: id},
		{Key: "wasteType", Value: "Plastic Waste"},
		{Key: "location", Value: "Gulberg, Lahore"},
		{Key: "amount", Value: "Medium"},
		{Key: "priority", Value: "Medium"},
		{Key: "timestamp", Value: "March 04, 2025 10:05 PM"},
		{Key: "status", Value: status},
		{Key: "assignedTo", Value: "Aslam (T-7)"},
	}
}

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("load complaints", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		ns := mt.DB.Name() + ".complaints"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			complaintDoc(1, "Pending"),
			complaintDoc(2, "In Progress"),
		))

		complaints, err := s.LoadComplaints(ctx)
		require.NoError(mt, err)
		require.Len(mt, complaints, 2)
		assert.Equal(mt, 2, complaints[1].ID)
		assert.Equal(mt, models.InProgress, complaints[1].Status)
	})

	mt.Run("insert takes the id from the counter", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(
			bson.D{
				{Key: "ok", Value: 1},
				{Key: "value", Value: bson.D{{Key: "_id", Value: "complaints"}, {Key: "seq", Value: 5}}},
			},
			mtest.CreateSuccessResponse(),
		)

		c := &models.Complaint{WasteType: "Plastic Waste", Location: "Gulberg"}
		require.NoError(mt, s.InsertComplaint(ctx, c))
		assert.Equal(mt, 5, c.ID)

		started := mt.GetAllStartedEvents()
		require.Len(mt, started, 2)
		assert.Equal(mt, "findAndModify", started[0].CommandName)
		assert.Equal(mt, "counters", started[0].Command.Lookup("findAndModify").StringValue())
		assert.True(mt, started[0].Command.Lookup("upsert").Boolean())
		assert.Equal(mt, "insert", started[1].CommandName)
	})

	mt.Run("insert fails when no id can be allocated", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "boom"}))

		c := &models.Complaint{WasteType: "Plastic Waste", Location: "Gulberg"}
		require.Error(mt, s.InsertComplaint(ctx, c))
		assert.Zero(mt, c.ID)
		assert.Len(mt, mt.GetAllStartedEvents(), 1)
	})

	mt.Run("sync counter to highest stored id", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		ns := mt.DB.Name() + ".complaints"
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, complaintDoc(4, "Resolved")),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		require.NoError(mt, s.SyncCounter(ctx))

		started := mt.GetAllStartedEvents()
		require.Len(mt, started, 2)
		assert.Equal(mt, "update", started[1].CommandName)
		var seq int
		require.NoError(mt, started[1].Command.Lookup("updates", "0", "u", "$max", "seq").Unmarshal(&seq))
		assert.Equal(mt, 4, seq)
		assert.True(mt, started[1].Command.Lookup("updates", "0", "upsert").Boolean())
	})

	mt.Run("sync counter on empty collection", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		ns := mt.DB.Name() + ".complaints"
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		require.NoError(mt, s.SyncCounter(ctx))
	})

	mt.Run("update complaint", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: complaintDoc(3, "Resolved")},
		})

		updated, err := s.UpdateComplaint(ctx, 3, models.Resolved, "Aslam (T-7)")
		require.NoError(mt, err)
		assert.Equal(mt, models.Resolved, updated.Status)
	})

	mt.Run("update unknown complaint", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: nil},
		})

		_, err := s.UpdateComplaint(ctx, 42, models.Resolved, models.Unassigned)
		assert.ErrorIs(mt, err, ErrComplaintNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		require.NoError(mt, s.DeleteComplaint(ctx, 3))
		assert.ErrorIs(mt, s.DeleteComplaint(ctx, 3), ErrComplaintNotFound)
	})

	mt.Run("vehicles", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		ns := mt.DB.Name() + ".trucks"
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
				{Key: "truckId", Value: "T-7"},
				{Key: "driverName", Value: "Aslam"},
				{Key: "phoneNumber", Value: "923001234567"},
				{Key: "area", Value: "gulberg"},
				{Key: "status", Value: "Available"},
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)

		vehicles, err := s.LoadVehicles(ctx)
		require.NoError(mt, err)
		require.Len(mt, vehicles, 1)
		find := mt.GetStartedEvent()
		require.NotNil(mt, find)
		var order int
		require.NoError(mt, find.Command.Lookup("sort", "_id").Unmarshal(&order))
		assert.Equal(mt, 1, order)
		assert.Equal(mt, "Aslam (T-7)", vehicles[0].Label())

		require.NoError(mt, s.UpdateVehicleStatus(ctx, "T-7", models.Busy))
		assert.ErrorIs(mt, s.UpdateVehicleStatus(ctx, "T-404", models.Busy), ErrVehicleNotFound)
	})
}
