package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staffhub/staffhub-api/internal/core/domain"
)

const collectionManagers = "managers"

// ManagerRepository stores manager profiles keyed by the owning user id, same
// primary-key scheme as employees.
type ManagerRepository struct {
	coll *mongo.Collection
}

func NewManagerRepository(db *mongo.Database) *ManagerRepository {
	return &ManagerRepository{coll: db.Collection(collectionManagers)}
}

type mongoManager struct {
	UserID         string `bson:"_id"`
	Department     string `bson:"department"`
	OfficeLocation string `bson:"office_location,omitempty"`
	IsActive       bool   `bson:"is_active"`
}

func toDomainManager(mm *mongoManager) *domain.Manager {
	return &domain.Manager{
		UserID:         mm.UserID,
		Department:     mm.Department,
		OfficeLocation: mm.OfficeLocation,
		IsActive:       mm.IsActive,
	}
}

func (r *ManagerRepository) Create(ctx context.Context, m *domain.Manager) error {
	doc := mongoManager{
		UserID:         m.UserID,
		Department:     m.Department,
		OfficeLocation: m.OfficeLocation,
		IsActive:       m.IsActive,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrProfileExists
		}
		return fmt.Errorf("insert manager: %w", err)
	}
	return nil
}

func (r *ManagerRepository) FindByUserID(ctx context.Context, userID string) (*domain.Manager, error) {
	var mm mongoManager
	if err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrManagerNotFound
		}
		return nil, fmt.Errorf("find manager: %w", err)
	}
	return toDomainManager(&mm), nil
}

func (r *ManagerRepository) Update(ctx context.Context, m *domain.Manager) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": m.UserID}, bson.M{"$set": bson.M{
		"department":      m.Department,
		"office_location": m.OfficeLocation,
	}})
	if err != nil {
		return fmt.Errorf("update manager: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrManagerNotFound
	}
	return nil
}

func (r *ManagerRepository) ListInactive(ctx context.Context) ([]*domain.Manager, error) {
	cur, err := r.coll.Find(ctx, bson.M{"is_active": false})
	if err != nil {
		return nil, fmt.Errorf("list inactive managers: %w", err)
	}
	defer cur.Close(ctx)

	var managers []*domain.Manager
	for cur.Next(ctx) {
		var mm mongoManager
		if err := cur.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode manager: %w", err)
		}
		managers = append(managers, toDomainManager(&mm))
	}
	return managers, cur.Err()
}

// Activate flips is_active only while the profile is still inactive. The
// filter doubles as an optimistic concurrency check: a racing promotion
// matches zero documents and reports not-found.
func (r *ManagerRepository) Activate(ctx context.Context, userID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID, "is_active": false},
		bson.M{"$set": bson.M{"is_active": true}},
	)
	if err != nil {
		return fmt.Errorf("activate manager: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrManagerNotFound
	}
	return nil
}
