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

const collectionSales = "sales_records"

type SalesRepository struct {
	coll *mongo.Collection
}

func NewSalesRepository(db *mongo.Database) *SalesRepository {
	return &SalesRepository{coll: db.Collection(collectionSales)}
}

// Amounts are stored as integer cents.
type mongoSale struct {
	ID           string    `bson:"_id"`
	EmployeeID   string    `bson:"employee_id"`
	CustomerName string    `bson:"customer_name"`
	ProductName  string    `bson:"product_name"`
	Quantity     int       `bson:"quantity"`
	UnitPrice    int64     `bson:"unit_price_cents"`
	TotalAmount  int64     `bson:"total_amount_cents"`
	SaleDate     time.Time `bson:"sale_date"`
	Notes        string    `bson:"notes,omitempty"`
}

func toDomainSale(ms *mongoSale) *domain.SalesRecord {
	return &domain.SalesRecord{
		ID:           ms.ID,
		EmployeeID:   ms.EmployeeID,
		CustomerName: ms.CustomerName,
		ProductName:  ms.ProductName,
		Quantity:     ms.Quantity,
		UnitPrice:    domain.Money(ms.UnitPrice),
		TotalAmount:  domain.Money(ms.TotalAmount),
		SaleDate:     ms.SaleDate.UTC(),
		Notes:        ms.Notes,
	}
}

func (r *SalesRepository) Create(ctx context.Context, sr *domain.SalesRecord) error {
	doc := mongoSale{
		ID:           sr.ID,
		EmployeeID:   sr.EmployeeID,
		CustomerName: sr.CustomerName,
		ProductName:  sr.ProductName,
		Quantity:     sr.Quantity,
		UnitPrice:    int64(sr.UnitPrice),
		TotalAmount:  int64(sr.TotalAmount),
		SaleDate:     sr.SaleDate,
		Notes:        sr.Notes,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert sales record: %w", err)
	}
	return nil
}

func (r *SalesRepository) FindByIDForEmployee(ctx context.Context, id, employeeID string) (*domain.SalesRecord, error) {
	var ms mongoSale
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "employee_id": employeeID}).Decode(&ms)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSalesRecordNotFound
		}
		return nil, fmt.Errorf("find sales record: %w", err)
	}
	return toDomainSale(&ms), nil
}

// UpdateDetails writes the three mutable fields only. Quantity, unit price,
// sale date and the computed total are never part of the update document.
func (r *SalesRepository) UpdateDetails(ctx context.Context, sr *domain.SalesRecord) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": sr.ID, "employee_id": sr.EmployeeID},
		bson.M{"$set": bson.M{
			"customer_name": sr.CustomerName,
			"product_name":  sr.ProductName,
			"notes":         sr.Notes,
		}},
	)
	if err != nil {
		return fmt.Errorf("update sales record: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSalesRecordNotFound
	}
	return nil
}

func (r *SalesRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.SalesRecord, error) {
	cur, err := r.coll.Find(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return nil, fmt.Errorf("list sales records: %w", err)
	}
	defer cur.Close(ctx)

	var records []*domain.SalesRecord
	for cur.Next(ctx) {
		var ms mongoSale
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode sales record: %w", err)
		}
		records = append(records, toDomainSale(&ms))
	}
	return records, cur.Err()
}

// EnsureIndexes creates the employee lookup index.
func (r *SalesRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "employee_id", Value: 1}},
	})
	return err
}
