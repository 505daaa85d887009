package mysql

import (
	"context"
	"testing"

	"lending-core/internal/domain/customer"
)

func TestCustomerDirectory_Exists(t *testing.T) {
	db := openTestDB(t)
	if err := db.Create(&customer.Customer{CustomerID: "cust-1", Name: "Ada", Email: "ada@example.com", CreatedAt: fixedNow}).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	dir := NewCustomerDirectory(db)
	ctx := context.Background()

	ok, err := dir.Exists(ctx, "cust-1")
	if err != nil || !ok {
		t.Fatalf("Exists(cust-1) = %v, %v; want true", ok, err)
	}
	ok, err = dir.Exists(ctx, "cust-404")
	if err != nil || ok {
		t.Fatalf("Exists(cust-404) = %v, %v; want false", ok, err)
	}
}
