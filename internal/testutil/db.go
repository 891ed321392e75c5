package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/promphitak-p/praweena/internal/database"
	"github.com/promphitak-p/praweena/internal/models"
)

// SetupTestDB creates an in-memory SQLite database with the full schema
func SetupTestDB(t testing.TB) *sqlx.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateTestProperty inserts a property and returns its id
func CreateTestProperty(t testing.TB, db *sqlx.DB, title string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.ExecContext(context.Background(),
		db.Rebind("INSERT INTO properties (id, title, created_at) VALUES (?, ?, ?)"),
		id, title, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test property: %v", err)
	}
	return id
}

// CreateTestCategory inserts a user category and returns it
func CreateTestCategory(t testing.TB, db *sqlx.DB, name string) *models.Category {
	t.Helper()
	cat, err := database.NewCategoryRepo(db).Create(context.Background(), &models.Category{Name: name})
	if err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return cat
}

// CreateTestTodo inserts a pending todo at the end of its group
func CreateTestTodo(t testing.TB, db *sqlx.DB, propertyID uuid.UUID, category *models.Category, title string) *models.Todo {
	t.Helper()
	todo := &models.Todo{
		PropertyID: propertyID,
		Title:      title,
		Status:     models.StatusPending,
		Priority:   models.PriorityMedium,
		SortOrder:  -1,
	}
	if category != nil {
		todo.CategoryID = uuid.NullUUID{UUID: category.ID, Valid: true}
	}
	created, err := database.NewTodoRepo(db).Create(context.Background(), todo)
	if err != nil {
		t.Fatalf("Failed to create test todo: %v", err)
	}
	return created
}

// CreateTestPurchase inserts a purchase line for a todo
func CreateTestPurchase(t testing.TB, db *sqlx.DB, todo *models.Todo, title, qty, price string, status models.PurchaseStatus) *models.PurchaseItem {
	t.Helper()
	item, err := database.NewPurchaseRepo(db).Upsert(context.Background(), &models.PurchaseItem{
		TodoID:     todo.ID,
		PropertyID: todo.PropertyID,
		Title:      title,
		Quantity:   decimal.RequireFromString(qty),
		UnitPrice:  decimal.RequireFromString(price),
		Status:     status,
	})
	if err != nil {
		t.Fatalf("Failed to create test purchase: %v", err)
	}
	return item
}

// CreateTestLead inserts a buyer enquiry created at the given time
func CreateTestLead(t testing.TB, db *sqlx.DB, name string, propertyID *uuid.UUID, createdAt time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	var prop uuid.NullUUID
	if propertyID != nil {
		prop = uuid.NullUUID{UUID: *propertyID, Valid: true}
	}
	_, err := db.ExecContext(context.Background(),
		db.Rebind("INSERT INTO leads (id, full_name, phone, note, property_id, created_at) VALUES (?, ?, ?, ?, ?, ?)"),
		id, name, "0812345678", "", prop, createdAt.UTC())
	if err != nil {
		t.Fatalf("Failed to create test lead: %v", err)
	}
	return id
}
