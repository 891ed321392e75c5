package purchase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promphitak-p/praweena/internal/database"
	"github.com/promphitak-p/praweena/internal/ledger"
	"github.com/promphitak-p/praweena/internal/models"
	"github.com/promphitak-p/praweena/internal/testutil"
)

func setup(t *testing.T) (Service, *models.Todo) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	propertyID := testutil.CreateTestProperty(t, db, "บ้านเดี่ยว")
	cat := testutil.CreateTestCategory(t, db, "งานห้องน้ำ")
	todo := testutil.CreateTestTodo(t, db, propertyID, cat, "ปูกระเบื้องห้องน้ำ")
	testutil.CreateTestPurchase(t, db, todo, "กาวซีเมนต์", "4", "160.125", models.PurchasePaid)
	return NewService(repo.Purchases, repo.Todos, nil), todo
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ============================================================================
// LEDGER SCENARIO
// ============================================================================

func TestUpsert_PendingThenPaidMovesTheAmount(t *testing.T) {
	t.Parallel()
	svc, todo := setup(t)
	ctx := context.Background()

	before, err := svc.Summary(ctx, todo.PropertyID)
	require.NoError(t, err)

	item, err := svc.Upsert(ctx, UpsertRequest{
		TodoID:    todo.ID,
		Title:     "tile",
		Quantity:  decimal.NewFromInt(10),
		UnitPrice: decimal.NewFromInt(150),
		Status:    models.PurchasePending,
	})
	require.NoError(t, err)
	assert.Equal(t, todo.PropertyID, item.PropertyID)

	added, err := svc.Summary(ctx, todo.PropertyID)
	require.NoError(t, err)
	assert.True(t, added.Pending.Sub(before.Pending).Equal(d("1500")), "pending grew by %s", added.Pending.Sub(before.Pending))
	assert.True(t, added.Total.Sub(before.Total).Equal(d("1500")), "total grew by %s", added.Total.Sub(before.Total))

	_, err = svc.SetStatus(ctx, item.ID, models.PurchasePaid)
	require.NoError(t, err)

	paid, err := svc.Summary(ctx, todo.PropertyID)
	require.NoError(t, err)
	assert.True(t, paid.Total.Equal(added.Total), "total changed to %s", paid.Total)
	assert.True(t, paid.Pending.Equal(before.Pending), "pending is %s", paid.Pending)
	assert.True(t, paid.Paid.Sub(added.Paid).Equal(d("1500")), "paid grew by %s", paid.Paid.Sub(added.Paid))
	assert.True(t, paid.Paid.Add(paid.Pending).Equal(paid.Total))
}

func TestUpsert_ReplacesExistingLine(t *testing.T) {
	t.Parallel()
	svc, todo := setup(t)
	ctx := context.Background()

	item, err := svc.Upsert(ctx, UpsertRequest{TodoID: todo.ID, Title: "สี", Quantity: d("2"), UnitPrice: d("890")})
	require.NoError(t, err)
	assert.Equal(t, models.PurchasePending, item.Status)

	updated, err := svc.Upsert(ctx, UpsertRequest{ID: item.ID, TodoID: todo.ID, Title: "สีรองพื้น", Quantity: d("3"), UnitPrice: d("890")})
	require.NoError(t, err)
	assert.Equal(t, item.ID, updated.ID)
	assert.Equal(t, "สีรองพื้น", updated.Title)

	items, err := svc.ListByTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestUpsert_Validation(t *testing.T) {
	t.Parallel()
	svc, todo := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  UpsertRequest
		want error
	}{
		{"no todo", UpsertRequest{Title: "x"}, ErrInvalidTodoID},
		{"empty title", UpsertRequest{TodoID: todo.ID, Title: " "}, ErrEmptyTitle},
		{"long title", UpsertRequest{TodoID: todo.ID, Title: strings.Repeat("a", 256)}, ErrTitleTooLong},
		{"negative qty", UpsertRequest{TodoID: todo.ID, Title: "x", Quantity: d("-1")}, ErrNegativeQuantity},
		{"negative price", UpsertRequest{TodoID: todo.ID, Title: "x", UnitPrice: d("-0.01")}, ErrNegativePrice},
		{"bad status", UpsertRequest{TodoID: todo.ID, Title: "x", Status: "refunded"}, ErrInvalidStatus},
		{"unknown todo", UpsertRequest{TodoID: uuid.New(), Title: "x"}, ErrTodoNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upsert(ctx, tt.req)
			assert.True(t, errors.Is(err, tt.want), "expected %v, got %v", tt.want, err)
		})
	}
}

func TestSetStatusAndDelete_NotFound(t *testing.T) {
	t.Parallel()
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.SetStatus(ctx, uuid.New(), models.PurchasePaid)
	assert.ErrorIs(t, err, ErrPurchaseNotFound)
	_, err = svc.SetStatus(ctx, uuid.New(), "lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.ErrorIs(t, svc.Delete(ctx, uuid.New()), ErrPurchaseNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, uuid.Nil), ErrInvalidPurchaseID)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	svc, todo := setup(t)
	ctx := context.Background()

	items, err := svc.ListByTodo(ctx, todo.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, svc.Delete(ctx, items[0].ID))
	summary, err := svc.Summary(ctx, todo.PropertyID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Count)
	assert.True(t, summary.Total.IsZero())
}

// ============================================================================
// EXPORT
// ============================================================================

func TestExportCSV(t *testing.T) {
	t.Parallel()
	svc, todo := setup(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), todo.PropertyID, &buf))

	rows, err := ledger.ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ledger.Header, rows[0])
	assert.Equal(t, "กาวซีเมนต์", rows[1][1])
	assert.Equal(t, "ปูกระเบื้องห้องน้ำ", rows[1][2])
}

func TestReport(t *testing.T) {
	t.Parallel()
	svc, todo := setup(t)

	report, err := svc.Report(context.Background(), todo.PropertyID, "บ้านเดี่ยว")
	require.NoError(t, err)
	assert.Contains(t, report, "บ้านเดี่ยว")
	assert.Contains(t, report, "กาวซีเมนต์")
}
