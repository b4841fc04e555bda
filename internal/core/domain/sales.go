package domain

import (
	"errors"
	"time"
)

var ErrSalesRecordNotFound = errors.New("sales record not found")

// SalesRecord is a sale owned by an employee. TotalAmount is computed once at
// creation (quantity x unit price) and never recomputed: quantity, unit price
// and sale date are immutable after the record exists.
type SalesRecord struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	CustomerName string    `json:"customer_name"`
	ProductName  string    `json:"product_name"`
	Quantity     int       `json:"quantity"`
	UnitPrice    Money     `json:"unit_price"`
	TotalAmount  Money     `json:"total_amount"`
	SaleDate     time.Time `json:"sale_date"`
	Notes        string    `json:"notes,omitempty"`
}
