package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/shift"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type shiftDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Date      time.Time `bson:"date"`
	StartTime string    `bson:"start_time"`
	EndTime   string    `bson:"end_time"`
	Type      string    `bson:"type"`
	CreatedAt time.Time `bson:"created_at"`
}

// toEntity restores the day in loc, since BSON dates decode as UTC.
func (d shiftDocument) toEntity(loc *time.Location) shift.Shift {
	return shift.Shift{
		ID:        d.ID,
		UserID:    d.UserID,
		Date:      d.Date.In(loc),
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		Type:      shift.Type(d.Type),
		CreatedAt: d.CreatedAt,
	}
}

type shiftRepositoryImpl struct {
	collection *mongo.Collection
	loc        *time.Location
}

func NewShiftRepository(db *database.MongoDB, loc *time.Location) shift.ShiftRepository {
	return &shiftRepositoryImpl{collection: db.Collection(ShiftCollection), loc: loc}
}

var shiftSort = bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}, {Key: "_id", Value: 1}}

// ListByDateRange implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListByDateRange(ctx context.Context, from, to time.Time) ([]shift.Shift, error) {
	return r.find(ctx, bson.M{"date": bson.M{"$gte": from, "$lte": to}})
}

// ListByUserAndDay implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListByUserAndDay(ctx context.Context, userID string, dayStart time.Time) ([]shift.Shift, error) {
	return r.find(ctx, bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": dayStart, "$lt": dayStart.AddDate(0, 0, 1)},
	})
}

func (r *shiftRepositoryImpl) find(ctx context.Context, filter bson.M) ([]shift.Shift, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(shiftSort))
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []shiftDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode shifts: %w", err)
	}

	shifts := make([]shift.Shift, 0, len(docs))
	for _, d := range docs {
		shifts = append(shifts, d.toEntity(r.loc))
	}
	return shifts, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	var doc shiftDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return doc.toEntity(r.loc), nil
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, newShift shift.Shift) (shift.Shift, error) {
	doc := shiftDocument{
		ID:        newID(),
		UserID:    newShift.UserID,
		Date:      newShift.Date,
		StartTime: newShift.StartTime,
		EndTime:   newShift.EndTime,
		Type:      string(newShift.Type),
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return doc.toEntity(r.loc), nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) error {
	set := bson.M{}
	if req.StartTime != nil {
		set["start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		set["end_time"] = *req.EndTime
	}
	if req.Type != nil {
		set["type"] = *req.Type
	}
	if len(set) == 0 {
		return nil
	}

	result, err := r.collection.UpdateByID(ctx, req.ID, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if result.MatchedCount == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if result.DeletedCount == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}
