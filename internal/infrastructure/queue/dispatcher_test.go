package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpress/blog-system/internal/core/ports"
)

type recordingMailer struct {
	mu        sync.Mutex
	delivered []ports.VerificationEmail
	fail      bool
	done      chan struct{}
}

func (m *recordingMailer) SendVerification(_ context.Context, msg ports.VerificationEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		if m.done != nil {
			m.done <- struct{}{}
		}
		return errors.New("relay down")
	}
	m.delivered = append(m.delivered, msg)
	if m.done != nil {
		m.done <- struct{}{}
	}
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.delivered)
}

func waitFor(t *testing.T, done <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery %d of %d", i+1, n)
		}
	}
}

func TestDispatcher_Delivers(t *testing.T) {
	mailer := &recordingMailer{done: make(chan struct{}, 8)}
	d := NewDispatcher(2, mailer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	msgs := []ports.VerificationEmail{
		{To: "a@example.com", Name: "A", Token: "t1"},
		{To: "b@example.com", Name: "B", Token: "t2"},
		{To: "c@example.com", Name: "C", Token: "t3"},
	}
	for _, msg := range msgs {
		d.Enqueue(msg)
	}
	waitFor(t, mailer.done, len(msgs))

	if mailer.count() != len(msgs) {
		t.Fatalf("expected %d deliveries, got %d", len(msgs), mailer.count())
	}
}

func TestDispatcher_SameRecipientKeepsOrder(t *testing.T) {
	mailer := &recordingMailer{done: make(chan struct{}, 16)}
	d := NewDispatcher(4, mailer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	const n = 10
	for i := 0; i < n; i++ {
		d.Enqueue(ports.VerificationEmail{To: "same@example.com", Token: string(rune('a' + i))})
	}
	waitFor(t, mailer.done, n)

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	for i, msg := range mailer.delivered {
		if msg.Token != string(rune('a'+i)) {
			t.Fatalf("out of order at %d: got %q", i, msg.Token)
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, &recordingMailer{}, zerolog.Nop())

	first := d.shardIndex("someone@example.com")
	for i := 0; i < 100; i++ {
		if got := d.shardIndex("someone@example.com"); got != first {
			t.Fatalf("shard index changed: %d vs %d", got, first)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_FailureDoesNotStopWorker(t *testing.T) {
	mailer := &recordingMailer{fail: true, done: make(chan struct{}, 8)}
	d := NewDispatcher(1, mailer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.VerificationEmail{To: "x@example.com", Token: "t1"})
	waitFor(t, mailer.done, 1)

	// The worker survives the failure and processes the next message.
	mailer.mu.Lock()
	mailer.fail = false
	mailer.mu.Unlock()

	d.Enqueue(ports.VerificationEmail{To: "x@example.com", Token: "t2"})
	waitFor(t, mailer.done, 1)

	if mailer.count() != 1 {
		t.Fatalf("expected exactly the second message delivered, got %d", mailer.count())
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingMailer{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
