package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDocument struct {
	ID           string     `bson:"_id"`
	Name         string     `bson:"name"`
	Email        string     `bson:"email"`
	Phone        *string    `bson:"phone,omitempty"`
	Role         string     `bson:"role"`
	CompanyID    *string    `bson:"company_id"`
	BranchID     *string    `bson:"branch_id"`
	Country      string     `bson:"country"`
	Status       string     `bson:"status"`
	PasswordHash *string    `bson:"password_hash,omitempty"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    *time.Time `bson:"updated_at,omitempty"`
}

func (d userDocument) toEntity() user.User {
	return user.User{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		Phone:        d.Phone,
		Role:         user.Role(d.Role),
		CompanyID:    d.CompanyID,
		BranchID:     d.BranchID,
		Country:      d.Country,
		Status:       user.Status(d.Status),
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type userRepositoryImpl struct {
	collection *mongo.Collection
}

func NewUserRepository(db *database.MongoDB) user.UserRepository {
	return &userRepositoryImpl{collection: db.Collection(UserCollection)}
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.Filter) ([]user.User, error) {
	query := bson.M{}
	if filter.CompanyID != nil {
		query["company_id"] = *filter.CompanyID
	}
	if filter.BranchID != nil {
		query["branch_id"] = *filter.BranchID
	}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	users := make([]user.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toEntity())
	}
	return users, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *userRepositoryImpl) findOne(ctx context.Context, filter bson.M) (user.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return doc.toEntity(), nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	doc := userDocument{
		ID:           newUser.ID,
		Name:         newUser.Name,
		Email:        strings.ToLower(newUser.Email),
		Phone:        newUser.Phone,
		Role:         string(newUser.Role),
		CompanyID:    newUser.CompanyID,
		BranchID:     newUser.BranchID,
		Country:      newUser.Country,
		Status:       string(newUser.Status),
		PasswordHash: newUser.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if doc.ID == "" {
		doc.ID = newID()
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return doc.toEntity(), nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	set := bson.M{"updated_at": time.Now().UTC()}

	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Role != nil {
		set["role"] = *req.Role
	}
	if req.CompanyID != nil {
		set["company_id"] = nullable(*req.CompanyID)
	}
	if req.BranchID != nil {
		set["branch_id"] = nullable(*req.BranchID)
	} else if req.ClearBranch {
		set["branch_id"] = nil
	}
	if req.Country != nil {
		set["country"] = *req.Country
	}
	if req.Status != nil {
		set["status"] = *req.Status
	}

	result, err := r.collection.UpdateByID(ctx, req.ID, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
