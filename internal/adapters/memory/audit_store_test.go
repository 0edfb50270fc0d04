package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/pxpost/internal/domain"
	"github.com/kevin07696/pxpost/internal/testutil/fixtures"
)

func TestAuditStore_CreateAndCount(t *testing.T) {
	store := NewAuditStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, fixtures.NewOrderTransaction().WithOrderNumber("1000").Build()))
	require.NoError(t, store.Create(ctx, fixtures.NewOrderTransaction().WithOrderNumber("1000").Build()))
	require.NoError(t, store.Create(ctx, fixtures.NewOrderTransaction().WithOrderNumber("1000").
		WithTxnType(domain.TxnTypeRefund).Build()))
	require.NoError(t, store.Create(ctx, fixtures.NewOrderTransaction().WithOrderNumber("1001").Build()))

	tests := []struct {
		order   string
		txnType domain.TxnType
		want    int
	}{
		{"1000", domain.TxnTypePurchase, 2},
		{"1000", domain.TxnTypeRefund, 1},
		{"1000", domain.TxnTypeAuth, 0},
		{"1001", domain.TxnTypePurchase, 1},
		{"9999", domain.TxnTypePurchase, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.order, tt.txnType), func(t *testing.T) {
			count, err := store.CountByOrderAndType(ctx, tt.order, tt.txnType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, count)
		})
	}
	assert.Equal(t, 4, store.Len())
}

func TestAuditStore_SanitizesOnInsert(t *testing.T) {
	store := NewAuditStore()
	ctx := context.Background()

	txn := fixtures.NewOrderTransaction().Build()
	txn.RequestXML = fixtures.PurchaseRequest
	require.NoError(t, store.Create(ctx, txn))

	txns, err := store.ListByOrder(ctx, txn.OrderNumber)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.NotContains(t, txns[0].RequestXML, fixtures.CardVisa)
	assert.NotContains(t, txns[0].RequestXML, "TestPassword")
	assert.Contains(t, txns[0].RequestXML, "<Cvc2>XXX</Cvc2>")
}

func TestAuditStore_ListByOrderNewestFirst(t *testing.T) {
	store := NewAuditStore()
	ctx := context.Background()

	for _, ref := range []string{"first", "second", "third"} {
		require.NoError(t, store.Create(ctx, fixtures.NewOrderTransaction().WithTxnRef(ref).Build()))
	}

	txns, err := store.ListByOrder(ctx, "1000")
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "third", txns[0].TxnRef)
	assert.Equal(t, "first", txns[2].TxnRef)

	txns[0].TxnRef = "mutated"
	again, err := store.ListByOrder(ctx, "1000")
	require.NoError(t, err)
	assert.Equal(t, "third", again[0].TxnRef)

	empty, err := store.ListByOrder(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAuditStore_ConcurrentCreate(t *testing.T) {
	store := NewAuditStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Create(ctx, fixtures.NewOrderTransaction().Build()))
		}()
	}
	wg.Wait()

	count, err := store.CountByOrderAndType(ctx, "1000", domain.TxnTypePurchase)
	require.NoError(t, err)
	assert.Equal(t, 50, count)
}

func TestAuditStore_CancelledContext(t *testing.T) {
	store := NewAuditStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Create(ctx, fixtures.NewOrderTransaction().Build()), context.Canceled)
	_, err := store.CountByOrderAndType(ctx, "1000", domain.TxnTypePurchase)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.Len())
}
