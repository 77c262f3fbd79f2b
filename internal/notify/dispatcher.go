package notify

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type jobKind int

const (
	jobConfirmation jobKind = iota
	jobStatusUpdate
)

type job struct {
	kind    jobKind
	phone   string
	orderID uint
	total   decimal.Decimal
	status  string
}

// Dispatcher runs notification deliveries on a background worker so the
// request path (and any open transaction) never waits on the gateway.
// Enqueueing never blocks: when the buffer is full the job is dropped and
// logged. Delivery is fire-and-forget by contract.
type Dispatcher struct {
	gateway Gateway
	log     *zap.Logger
	timeout time.Duration

	jobs chan job
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(gateway Gateway, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		gateway: gateway,
		log:     log,
		timeout: 15 * time.Second,
		jobs:    make(chan job, 64),
	}

	d.wg.Add(1)
	go d.worker()

	return d
}

func (d *Dispatcher) OrderConfirmation(phone string, orderID uint, total decimal.Decimal) {
	d.enqueue(job{kind: jobConfirmation, phone: phone, orderID: orderID, total: total})
}

func (d *Dispatcher) StatusUpdate(phone string, orderID uint, status string) {
	d.enqueue(job{kind: jobStatusUpdate, phone: phone, orderID: orderID, status: status})
}

func (d *Dispatcher) enqueue(j job) {
	if j.phone == "" {
		d.log.Debug("skipping notification, no phone on record",
			zap.Uint("order_id", j.orderID),
		)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.log.Warn("dispatcher closed, dropping notification",
			zap.Uint("order_id", j.orderID),
		)
		return
	}

	select {
	case d.jobs <- j:
	default:
		d.log.Warn("notification buffer full, dropping job",
			zap.Uint("order_id", j.orderID),
		)
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for j := range d.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)

		var err error
		switch j.kind {
		case jobConfirmation:
			err = d.gateway.SendOrderConfirmation(ctx, j.phone, j.orderID, j.total)
		case jobStatusUpdate:
			err = d.gateway.SendStatusUpdate(ctx, j.phone, j.orderID, j.status)
		}
		cancel()

		if err != nil {
			d.log.Warn("notification delivery failed",
				zap.Uint("order_id", j.orderID),
				zap.Error(err),
			)
		}
	}
}

// Close drains the queued jobs and stops the worker.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	close(d.jobs)
	d.wg.Wait()
}
