package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/leave"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type leaveDocument struct {
	ID           string     `bson:"_id"`
	UserID       string     `bson:"user_id"`
	Type         string     `bson:"type"`
	StartDate    time.Time  `bson:"start_date"`
	EndDate      time.Time  `bson:"end_date"`
	Reason       *string    `bson:"reason,omitempty"`
	Status       string     `bson:"status"`
	ReviewedBy   *string    `bson:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `bson:"reviewed_at,omitempty"`
	RejectReason *string    `bson:"reject_reason,omitempty"`
	CreatedAt    time.Time  `bson:"created_at"`
}

func (d leaveDocument) toEntity(loc *time.Location) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:           d.ID,
		UserID:       d.UserID,
		Type:         leave.Type(d.Type),
		StartDate:    d.StartDate.In(loc),
		EndDate:      d.EndDate.In(loc),
		Reason:       d.Reason,
		Status:       leave.Status(d.Status),
		ReviewedBy:   d.ReviewedBy,
		ReviewedAt:   d.ReviewedAt,
		RejectReason: d.RejectReason,
		CreatedAt:    d.CreatedAt,
	}
}

type leaveRepositoryImpl struct {
	collection *mongo.Collection
	loc        *time.Location
}

func NewLeaveRepository(db *database.MongoDB, loc *time.Location) leave.LeaveRepository {
	return &leaveRepositoryImpl{collection: db.Collection(LeaveCollection), loc: loc}
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, filter leave.Filter) ([]leave.LeaveRequest, error) {
	query := bson.M{}
	if filter.UserID != nil {
		query["user_id"] = *filter.UserID
	}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}

	return r.find(ctx, query, bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
}

// ListApprovedOverlapping implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListApprovedOverlapping(ctx context.Context, from, to time.Time) ([]leave.LeaveRequest, error) {
	query := bson.M{
		"status":     string(leave.StatusApproved),
		"start_date": bson.M{"$lte": to},
		"end_date":   bson.M{"$gte": from},
	}

	return r.find(ctx, query, bson.D{{Key: "start_date", Value: 1}})
}

func (r *leaveRepositoryImpl) find(ctx context.Context, query bson.M, sort bson.D) ([]leave.LeaveRequest, error) {
	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []leaveDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode leave requests: %w", err)
	}

	leaves := make([]leave.LeaveRequest, 0, len(docs))
	for _, d := range docs {
		leaves = append(leaves, d.toEntity(r.loc))
	}
	return leaves, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	var doc leaveDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return leave.LeaveRequest{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return doc.toEntity(r.loc), nil
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	doc := leaveDocument{
		ID:        newID(),
		UserID:    req.UserID,
		Type:      string(req.Type),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
		Status:    string(req.Status),
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return doc.toEntity(r.loc), nil
}

// UpdateStatus implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) UpdateStatus(ctx context.Context, req leave.LeaveRequest) error {
	update := bson.M{"$set": bson.M{
		"status":        string(req.Status),
		"reviewed_by":   req.ReviewedBy,
		"reviewed_at":   req.ReviewedAt,
		"reject_reason": req.RejectReason,
	}}

	result, err := r.collection.UpdateByID(ctx, req.ID, update)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if result.MatchedCount == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}

// Delete implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	if result.DeletedCount == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}
