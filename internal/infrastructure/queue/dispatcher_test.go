package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/deadeye/laserworks/internal/api/metrics"
	"github.com/deadeye/laserworks/internal/core/ports"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []ports.Mail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, mail ports.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, mail)
	return m.err
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestDispatcher_DeliversInOrderPerRecipient(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(4, mailer, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	for _, subject := range []string{"1", "2", "3"} {
		if err := d.Enqueue(ports.Mail{To: "a@example.com", Subject: subject}); err != nil {
			t.Fatalf("Enqueue returned error: %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for mailer.count() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	d.Wait()

	if mailer.count() != 3 {
		t.Fatalf("expected 3 mails, got %d", mailer.count())
	}
	for i, want := range []string{"1", "2", "3"} {
		if mailer.sent[i].Subject != want {
			t.Fatalf("mail %d: got subject %q, want %q", i, mailer.sent[i].Subject, want)
		}
	}
}

func TestDispatcher_DrainsOnShutdown(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(1, mailer, zerolog.Nop())

	_ = d.Enqueue(ports.Mail{To: "a@example.com"})
	_ = d.Enqueue(ports.Mail{To: "b@example.com"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	if mailer.count() != 2 {
		t.Fatalf("expected queued mail to be drained, got %d", mailer.count())
	}
}

func TestDispatcher_QueueFull(t *testing.T) {
	d := NewDispatcher(1, &recordingMailer{}, zerolog.Nop())

	for i := 0; i < channelBuffer; i++ {
		if err := d.Enqueue(ports.Mail{To: "a@example.com"}); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}
	if err := d.Enqueue(ports.Mail{To: "a@example.com"}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestDispatcher_QueueDepthTracksAcceptedMail(t *testing.T) {
	d := NewDispatcher(1, &recordingMailer{}, zerolog.Nop())
	depth := metrics.MailQueueDepth.WithLabelValues("0")
	before := testutil.ToFloat64(depth)

	for i := 0; i < channelBuffer+3; i++ {
		_ = d.Enqueue(ports.Mail{To: "a@example.com"})
	}
	if got := testutil.ToFloat64(depth) - before; got != channelBuffer {
		t.Fatalf("expected depth to grow by %d, got %v", channelBuffer, got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	if got := testutil.ToFloat64(depth); got != before {
		t.Fatalf("expected depth back at %v after drain, got %v", before, got)
	}
}

func TestDispatcher_FailureDoesNotStopWorker(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("provider down")}
	d := NewDispatcher(1, mailer, zerolog.Nop())
	_ = d.Enqueue(ports.Mail{To: "a@example.com"})
	_ = d.Enqueue(ports.Mail{To: "a@example.com"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	if mailer.count() != 2 {
		t.Fatalf("expected both attempts, got %d", mailer.count())
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingMailer{}, zerolog.Nop())
	if d.shardIndex("A@example.com") != d.shardIndex("a@example.com") {
		t.Fatalf("recipient sharding must ignore case")
	}
}
