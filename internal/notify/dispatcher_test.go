package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordedCall struct {
	kind    string
	phone   string
	orderID uint
	total   decimal.Decimal
	status  string
}

// fakeGateway records deliveries and signals each one on a channel.
type fakeGateway struct {
	mu    sync.Mutex
	calls []recordedCall
	done  chan struct{}
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{done: make(chan struct{}, 16)}
}

func (g *fakeGateway) SendOrderConfirmation(ctx context.Context, phone string, orderID uint, total decimal.Decimal) error {
	g.mu.Lock()
	g.calls = append(g.calls, recordedCall{kind: "confirmation", phone: phone, orderID: orderID, total: total})
	g.mu.Unlock()
	g.done <- struct{}{}
	return nil
}

func (g *fakeGateway) SendStatusUpdate(ctx context.Context, phone string, orderID uint, status string) error {
	g.mu.Lock()
	g.calls = append(g.calls, recordedCall{kind: "status", phone: phone, orderID: orderID, status: status})
	g.mu.Unlock()
	g.done <- struct{}{}
	return nil
}

func (g *fakeGateway) recorded() []recordedCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]recordedCall, len(g.calls))
	copy(out, g.calls)
	return out
}

func waitForDelivery(t *testing.T, g *fakeGateway) {
	t.Helper()
	select {
	case <-g.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}

func TestDispatcher_DeliversConfirmation(t *testing.T) {
	gw := newFakeGateway()
	d := NewDispatcher(gw, zap.NewNop())
	defer d.Close()

	d.OrderConfirmation("5511999990000", 100, decimal.RequireFromString("30.00"))
	waitForDelivery(t, gw)

	calls := gw.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "confirmation", calls[0].kind)
	assert.Equal(t, "5511999990000", calls[0].phone)
	assert.Equal(t, uint(100), calls[0].orderID)
	assert.True(t, calls[0].total.Equal(decimal.RequireFromString("30.00")))
}

func TestDispatcher_DeliversStatusUpdate(t *testing.T) {
	gw := newFakeGateway()
	d := NewDispatcher(gw, zap.NewNop())
	defer d.Close()

	d.StatusUpdate("5511999990000", 100, "CONFIRMED")
	waitForDelivery(t, gw)

	calls := gw.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "status", calls[0].kind)
	assert.Equal(t, "CONFIRMED", calls[0].status)
}

func TestDispatcher_SkipsEmptyPhone(t *testing.T) {
	gw := newFakeGateway()
	d := NewDispatcher(gw, zap.NewNop())

	d.OrderConfirmation("", 100, decimal.Zero)
	d.Close()

	assert.Empty(t, gw.recorded())
}

func TestDispatcher_CloseDrainsQueue(t *testing.T) {
	gw := newFakeGateway()
	d := NewDispatcher(gw, zap.NewNop())

	for i := uint(1); i <= 5; i++ {
		d.StatusUpdate("5511999990000", i, "READY")
	}
	d.Close()

	assert.Len(t, gw.recorded(), 5)
}

func TestDispatcher_DropsAfterClose(t *testing.T) {
	gw := newFakeGateway()
	d := NewDispatcher(gw, zap.NewNop())
	d.Close()

	// must not panic or block
	d.OrderConfirmation("5511999990000", 100, decimal.Zero)
	assert.Empty(t, gw.recorded())
}
