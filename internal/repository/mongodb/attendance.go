package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/attendance"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type attendanceDocument struct {
	ID               string               `bson:"_id"`
	UserID           string               `bson:"uid"`
	Date             string               `bson:"date"`
	CheckInAt        *time.Time           `bson:"check_in_at,omitempty"`
	CheckOutAt       *time.Time           `bson:"check_out_at,omitempty"`
	Breaks           []attendance.Break   `bson:"breaks"`
	CheckInLocation  *attendance.Location `bson:"check_in_location,omitempty"`
	CheckOutLocation *attendance.Location `bson:"check_out_location,omitempty"`
	Status           string               `bson:"status"`
	CreatedAt        time.Time            `bson:"created_at"`
	UpdatedAt        time.Time            `bson:"updated_at"`
}

func toAttendanceDocument(a attendance.Attendance) attendanceDocument {
	breaks := []attendance.Break(a.Breaks)
	if breaks == nil {
		breaks = []attendance.Break{}
	}
	return attendanceDocument{
		ID:               a.ID,
		UserID:           a.UserID,
		Date:             a.Date,
		CheckInAt:        a.CheckInAt,
		CheckOutAt:       a.CheckOutAt,
		Breaks:           breaks,
		CheckInLocation:  a.CheckInLocation,
		CheckOutLocation: a.CheckOutLocation,
		Status:           string(a.Status),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func (d attendanceDocument) toEntity() attendance.Attendance {
	return attendance.Attendance{
		ID:               d.ID,
		UserID:           d.UserID,
		Date:             d.Date,
		CheckInAt:        d.CheckInAt,
		CheckOutAt:       d.CheckOutAt,
		Breaks:           attendance.Breaks(d.Breaks),
		CheckInLocation:  d.CheckInLocation,
		CheckOutLocation: d.CheckOutLocation,
		Status:           attendance.Status(d.Status),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type attendanceRepositoryImpl struct {
	collection *mongo.Collection
}

func NewAttendanceRepository(db *database.MongoDB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{collection: db.Collection(AttendanceCollection)}
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date string) ([]attendance.Attendance, error) {
	return r.find(ctx, bson.M{"date": date})
}

// ListByDateRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDateRange(ctx context.Context, from, to string) ([]attendance.Attendance, error) {
	return r.find(ctx, bson.M{"date": bson.M{"$gte": from, "$lte": to}})
}

func (r *attendanceRepositoryImpl) find(ctx context.Context, filter bson.M) ([]attendance.Attendance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "uid", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []attendanceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode attendance: %w", err)
	}

	records := make([]attendance.Attendance, 0, len(docs))
	for _, d := range docs {
		records = append(records, d.toEntity())
	}
	return records, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID, date string) (attendance.Attendance, error) {
	var doc attendanceDocument
	if err := r.collection.FindOne(ctx, bson.M{"uid": userID, "date": date}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return doc.toEntity(), nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	a.ID = newID()
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt

	if _, err := r.collection.InsertOne(ctx, toAttendanceDocument(a)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return a, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) error {
	a.UpdatedAt = time.Now().UTC()
	doc := toAttendanceDocument(a)

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": a.ID}, doc)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if result.MatchedCount == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
