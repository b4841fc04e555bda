package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffhub/staffhub-api/internal/api/metrics"
	"github.com/staffhub/staffhub-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes push jobs to a fixed set of workers using consistent
// hashing on the recipient email, guaranteeing per-recipient delivery
// ordering. Delivery is best effort: failures are logged and dropped, never
// retried, because the persisted notification is the record of truth.
type Dispatcher struct {
	workers []chan ports.PushJob
	sender  ports.PushSender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender ports.PushSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.PushJob, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.PushJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a job to the worker responsible for its recipient. When the
// worker's buffer is full the job is dropped rather than blocking the
// workflow operation that produced it.
func (d *Dispatcher) Enqueue(job ports.PushJob) {
	select {
	case d.workers[d.shardIndex(job.Email)] <- job:
	default:
		metrics.PushDeliveriesTotal.WithLabelValues("failed").Inc()
		d.log.Warn().Str("email", job.Email).Msg("push queue full, delivery dropped")
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.PushJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			if err := d.sender.Push(ctx, job.Email, job.Payload); err != nil {
				metrics.PushDeliveriesTotal.WithLabelValues("failed").Inc()
				d.log.Warn().Err(err).
					Str("email", job.Email).
					Int("worker_id", id).
					Msg("push delivery failed")
				continue
			}
			metrics.PushDeliveriesTotal.WithLabelValues("delivered").Inc()
			metrics.PushDeliveryDuration.Observe(time.Since(start).Seconds())
		}
	}
}
