package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/deadeye/laserworks/internal/api/metrics"
	"github.com/deadeye/laserworks/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
	sendTimeout    = 30 * time.Second
)

// ErrQueueFull is returned by Enqueue when the target worker is saturated.
var ErrQueueFull = errors.New("mail queue full")

// Dispatcher delivers mail on a fixed set of workers. Mail for the same
// recipient always lands on the same worker, so it is sent in order.
type Dispatcher struct {
	workers []chan ports.Mail
	mailer  ports.Mailer
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Mail, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Mail, channelBuffer)
	}
	return d
}

// Start launches the workers. They drain their channels and exit once ctx
// is cancelled; Wait blocks until they are done.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands m to its recipient's worker without blocking.
func (d *Dispatcher) Enqueue(m ports.Mail) error {
	idx := d.shardIndex(m.To)
	depth := metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(idx))
	// Counted before the send so the worker's Dec never runs first.
	depth.Inc()
	select {
	case d.workers[idx] <- m:
		return nil
	default:
		depth.Dec()
		metrics.EmailsTotal.WithLabelValues("dropped").Inc()
		return ErrQueueFull
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(recipient)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Mail) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case m := <-ch:
			d.deliver(context.WithoutCancel(ctx), id, m)
		}
	}
}

// drain sends whatever was queued before shutdown.
func (d *Dispatcher) drain(id int, ch <-chan ports.Mail) {
	for {
		select {
		case m := <-ch:
			d.deliver(context.Background(), id, m)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id int, m ports.Mail) {
	metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(id)).Dec()

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	start := time.Now()
	err := d.mailer.Send(ctx, m)
	metrics.MailDeliveryDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.EmailsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("subject", m.Subject).
			Int("worker_id", id).
			Msg("email delivery failed")
		return
	}
	metrics.EmailsTotal.WithLabelValues("sent").Inc()
}
