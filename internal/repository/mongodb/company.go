package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/company"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type companyDocument struct {
	ID        string     `bson:"_id"`
	Name      string     `bson:"name"`
	Country   string     `bson:"country"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty"`
}

func (d companyDocument) toEntity() company.Company {
	return company.Company{
		ID:        d.ID,
		Name:      d.Name,
		Country:   d.Country,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type companyRepositoryImpl struct {
	collection *mongo.Collection
}

func NewCompanyRepository(db *database.MongoDB) company.CompanyRepository {
	return &companyRepositoryImpl{collection: db.Collection(CompanyCollection)}
}

// List implements company.CompanyRepository.
func (r *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []companyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode companies: %w", err)
	}

	companies := make([]company.Company, 0, len(docs))
	for _, d := range docs {
		companies = append(companies, d.toEntity())
	}
	return companies, nil
}

// GetByID implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	var doc companyDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}
	return doc.toEntity(), nil
}

// Create implements company.CompanyRepository.
func (r *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	doc := companyDocument{
		ID:        newID(),
		Name:      newCompany.Name,
		Country:   newCompany.Country,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return doc.toEntity(), nil
}

// Update implements company.CompanyRepository.
func (r *companyRepositoryImpl) Update(ctx context.Context, id string, req company.UpdateCompanyRequest) error {
	update := bson.M{"$set": bson.M{
		"name":       req.Name,
		"country":    req.Country,
		"updated_at": time.Now().UTC(),
	}}

	result, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if result.MatchedCount == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

// Delete implements company.CompanyRepository.
func (r *companyRepositoryImpl) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if result.DeletedCount == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}
