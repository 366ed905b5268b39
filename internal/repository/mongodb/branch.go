package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/branch"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type branchDocument struct {
	ID        string    `bson:"_id"`
	CompanyID string    `bson:"company_id"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d branchDocument) toEntity() branch.Branch {
	return branch.Branch{
		ID:        d.ID,
		CompanyID: d.CompanyID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
	}
}

type branchRepositoryImpl struct {
	collection *mongo.Collection
}

func NewBranchRepository(db *database.MongoDB) branch.BranchRepository {
	return &branchRepositoryImpl{collection: db.Collection(BranchCollection)}
}

// Create implements branch.BranchRepository.
func (r *branchRepositoryImpl) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	doc := branchDocument{
		ID:        newID(),
		CompanyID: b.CompanyID,
		Name:      b.Name,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return branch.Branch{}, fmt.Errorf("failed to create branch: %w", err)
	}
	return doc.toEntity(), nil
}

// GetByID implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	var doc branchDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("failed to get branch: %w", err)
	}
	return doc.toEntity(), nil
}

// GetByCompanyID implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]branch.Branch, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"company_id": companyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get branches: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []branchDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode branches: %w", err)
	}

	branches := make([]branch.Branch, 0, len(docs))
	for _, d := range docs {
		branches = append(branches, d.toEntity())
	}
	return branches, nil
}

// Update implements branch.BranchRepository.
func (r *branchRepositoryImpl) Update(ctx context.Context, req branch.UpdateBranchRequest) error {
	result, err := r.collection.UpdateByID(ctx, req.ID, bson.M{"$set": bson.M{"name": req.Name}})
	if err != nil {
		return fmt.Errorf("failed to update branch: %w", err)
	}
	if result.MatchedCount == 0 {
		return branch.ErrBranchNotFound
	}
	return nil
}

// Delete implements branch.BranchRepository.
func (r *branchRepositoryImpl) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}
	if result.DeletedCount == 0 {
		return branch.ErrBranchNotFound
	}
	return nil
}
