package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staffhub/staffhub-api/internal/core/domain"
)

const collectionLeaves = "leave_applications"

type LeaveRepository struct {
	coll *mongo.Collection
}

func NewLeaveRepository(db *mongo.Database) *LeaveRepository {
	return &LeaveRepository{coll: db.Collection(collectionLeaves)}
}

type mongoLeave struct {
	ID          string     `bson:"_id"`
	EmployeeID  string     `bson:"employee_id"`
	StartDate   time.Time  `bson:"start_date"`
	EndDate     time.Time  `bson:"end_date"`
	Reason      string     `bson:"reason"`
	Status      string     `bson:"status"`
	ApproverID  string     `bson:"approver_id,omitempty"`
	SubmittedAt time.Time  `bson:"submitted_at"`
	ApprovedAt  *time.Time `bson:"approved_at,omitempty"`
}

func toDomainLeave(ml *mongoLeave) *domain.LeaveApplication {
	return &domain.LeaveApplication{
		ID:          ml.ID,
		EmployeeID:  ml.EmployeeID,
		StartDate:   ml.StartDate.UTC(),
		EndDate:     ml.EndDate.UTC(),
		Reason:      ml.Reason,
		Status:      domain.LeaveStatus(ml.Status),
		ApproverID:  ml.ApproverID,
		SubmittedAt: ml.SubmittedAt,
		ApprovedAt:  ml.ApprovedAt,
	}
}

func (r *LeaveRepository) Create(ctx context.Context, la *domain.LeaveApplication) error {
	doc := mongoLeave{
		ID:          la.ID,
		EmployeeID:  la.EmployeeID,
		StartDate:   la.StartDate,
		EndDate:     la.EndDate,
		Reason:      la.Reason,
		Status:      string(la.Status),
		SubmittedAt: la.SubmittedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert leave application: %w", err)
	}
	return nil
}

func (r *LeaveRepository) FindByID(ctx context.Context, id string) (*domain.LeaveApplication, error) {
	var ml mongoLeave
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeaveApplicationNotFound
		}
		return nil, fmt.Errorf("find leave application: %w", err)
	}
	return toDomainLeave(&ml), nil
}

// Approve atomically transitions a still-pending application to approved.
// The status in the filter makes double approval a single-winner race: the
// loser matches nothing and gets not-found.
func (r *LeaveRepository) Approve(ctx context.Context, id, approverID string, at time.Time) (*domain.LeaveApplication, error) {
	filter := bson.M{"_id": id, "status": string(domain.LeavePending)}
	update := bson.M{"$set": bson.M{
		"status":      string(domain.LeaveApproved),
		"approver_id": approverID,
		"approved_at": at,
	}}

	var ml mongoLeave
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ml)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeaveApplicationNotFound
		}
		return nil, fmt.Errorf("approve leave application: %w", err)
	}
	return toDomainLeave(&ml), nil
}

func (r *LeaveRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.LeaveApplication, error) {
	return r.list(ctx, bson.M{"employee_id": employeeID})
}

func (r *LeaveRepository) ListApprovedByEmployee(ctx context.Context, employeeID string) ([]*domain.LeaveApplication, error) {
	return r.list(ctx, bson.M{"employee_id": employeeID, "status": string(domain.LeaveApproved)})
}

func (r *LeaveRepository) list(ctx context.Context, filter bson.M) ([]*domain.LeaveApplication, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list leave applications: %w", err)
	}
	defer cur.Close(ctx)

	var applications []*domain.LeaveApplication
	for cur.Next(ctx) {
		var ml mongoLeave
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode leave application: %w", err)
		}
		applications = append(applications, toDomainLeave(&ml))
	}
	return applications, cur.Err()
}

// EnsureIndexes creates the employee lookup index.
func (r *LeaveRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "status", Value: 1}},
	})
	return err
}
