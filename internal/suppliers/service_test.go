package suppliers

import (
	"context"
	"fmt"
	"testing"

	"github.com/acedk/steakout-backend/pkg/config"
	"github.com/acedk/steakout-backend/pkg/db"
	"github.com/acedk/steakout-backend/pkg/db/models"
	"github.com/acedk/steakout-backend/pkg/errors"
	"github.com/google/uuid"
)

var dbCounter int

func newTestService(t *testing.T) Service {
	t.Helper()
	dbCounter++
	dsn := fmt.Sprintf("file:suppliertest%d?mode=memory&cache=shared", dbCounter)
	client, err := db.New(context.Background(), config.DBConfig{DSN: dsn}, true, nil)
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	if err := client.DB().AutoMigrate(&models.Supplier{}); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	svc, err := NewService(NewRepository(client.DB()))
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func TestSupplierLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "  Booker Wholesale  ")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Name != "Booker Wholesale" {
		t.Fatalf("name should be trimmed, got %q", created.Name)
	}

	if _, err := svc.Create(ctx, "Booker Wholesale"); err == nil {
		t.Fatalf("duplicate name must be rejected")
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 supplier, got %d", len(list))
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	err = svc.Delete(ctx, created.ID)
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND on second delete, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Create(context.Background(), "   "); err == nil {
		t.Fatalf("blank name must be rejected")
	}
	if err := svc.Delete(context.Background(), uuid.Nil); err == nil {
		t.Fatalf("nil id must be rejected")
	}
}
