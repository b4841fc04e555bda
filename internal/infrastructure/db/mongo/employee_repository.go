package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staffhub/staffhub-api/internal/core/domain"
)

const collectionEmployees = "employees"

// EmployeeRepository stores employee profiles keyed by the owning user id:
// the document _id IS the user id, so double provisioning trips the primary
// key and surfaces as a conflict.
type EmployeeRepository struct {
	coll *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{coll: db.Collection(collectionEmployees)}
}

type mongoEmployee struct {
	UserID                 string    `bson:"_id"`
	Position               string    `bson:"position"`
	JobTitle               string    `bson:"job_title"`
	DateHired              time.Time `bson:"date_hired"`
	ManagerID              string    `bson:"manager_id,omitempty"`
	TotalLeaveDaysEntitled int       `bson:"total_leave_days_entitled"`
	LeaveDaysTaken         int       `bson:"leave_days_taken"`
}

func toDomainEmployee(me *mongoEmployee) *domain.Employee {
	return &domain.Employee{
		UserID:                 me.UserID,
		Position:               me.Position,
		JobTitle:               me.JobTitle,
		DateHired:              me.DateHired,
		ManagerID:              me.ManagerID,
		TotalLeaveDaysEntitled: me.TotalLeaveDaysEntitled,
		LeaveDaysTaken:         me.LeaveDaysTaken,
	}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	doc := mongoEmployee{
		UserID:                 e.UserID,
		Position:               e.Position,
		JobTitle:               e.JobTitle,
		DateHired:              e.DateHired,
		ManagerID:              e.ManagerID,
		TotalLeaveDaysEntitled: e.TotalLeaveDaysEntitled,
		LeaveDaysTaken:         e.LeaveDaysTaken,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrProfileExists
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) FindByUserID(ctx context.Context, userID string) (*domain.Employee, error) {
	var me mongoEmployee
	if err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return toDomainEmployee(&me), nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": e.UserID}, bson.M{"$set": bson.M{
		"position":  e.Position,
		"job_title": e.JobTitle,
	}})
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DecrementEntitlement atomically subtracts days from the remaining
// entitlement in a single $inc, so racing approvals never lose an update.
func (r *EmployeeRepository) DecrementEntitlement(ctx context.Context, userID string, days int) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$inc": bson.M{"total_leave_days_entitled": -days}},
	)
	if err != nil {
		return fmt.Errorf("decrement entitlement: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *EmployeeRepository) ListByManager(ctx context.Context, managerID string) ([]*domain.Employee, error) {
	return r.list(ctx, bson.M{"manager_id": managerID})
}

func (r *EmployeeRepository) ListWithEntitlement(ctx context.Context) ([]*domain.Employee, error) {
	return r.list(ctx, bson.M{"total_leave_days_entitled": bson.M{"$gt": 0}})
}

func (r *EmployeeRepository) list(ctx context.Context, filter bson.M) ([]*domain.Employee, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer cur.Close(ctx)

	var employees []*domain.Employee
	for cur.Next(ctx) {
		var me mongoEmployee
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode employee: %w", err)
		}
		employees = append(employees, toDomainEmployee(&me))
	}
	return employees, cur.Err()
}

// EnsureIndexes creates the manager lookup index.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "manager_id", Value: 1}},
	})
	return err
}
