package producer_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/paris-web-client/internal/activity/producer"
	"github.com/radieske/paris-web-client/internal/session"
	"github.com/radieske/paris-web-client/pkg/contracts/events"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func TestPublishBetActivity(t *testing.T) {
	w := &fakeWriter{}
	p := producer.NewKafkaPublisher(w, "paris_activity")
	var published []string
	p.OnPublished = func(kind string) { published = append(published, kind) }

	opt := 1
	if err := p.PublishBetActivity(context.Background(), events.BetActivity{
		Kind: events.KindBetVoted, BetID: "42", Login: "alice", OptionIndex: &opt,
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	msg := w.msgs[0]
	if string(msg.Key) != "42" {
		t.Errorf("expected bet id key, got %q", msg.Key)
	}
	var got events.BetActivity
	if err := json.Unmarshal(msg.Value, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.EventID == "" || got.TsUnixMs == 0 {
		t.Errorf("expected event id and timestamp, got %+v", got)
	}
	if got.OptionIndex == nil || *got.OptionIndex != 1 {
		t.Errorf("expected option index 1, got %v", got.OptionIndex)
	}
	if len(published) != 1 || published[0] != events.KindBetVoted {
		t.Errorf("unexpected published hook %v", published)
	}
}

func TestBestEffortSwallowsErrors(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	kp := producer.NewKafkaPublisher(w, "paris_activity")
	var failed int
	kp.OnError = func(string) { failed++ }

	p := producer.NewBestEffort(kp, nil, time.Second)
	if err := p.PublishBetActivity(context.Background(), events.BetActivity{Kind: events.KindBetCreated}); err != nil {
		t.Errorf("best effort must not return errors, got %v", err)
	}
	if failed != 1 {
		t.Errorf("expected error hook once, got %d", failed)
	}
}

func TestSessionListener(t *testing.T) {
	w := &fakeWriter{}
	listen := producer.SessionListener(producer.NewKafkaPublisher(w, "paris_activity"))

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	listen(session.Change{From: session.StateRestoring, To: session.StateAuthenticated, Reason: session.ReasonLogin, Login: "bob", At: at})

	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	var got events.SessionChanged
	if err := json.Unmarshal(w.msgs[0].Value, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.From != "restoring" || got.To != "authenticated" || got.Login != "bob" || !got.Ts.Equal(at) {
		t.Errorf("unexpected event %+v", got)
	}
	if string(w.msgs[0].Key) != "bob" {
		t.Errorf("expected login key, got %q", w.msgs[0].Key)
	}
}

func TestPublishFailureGoesToDLQ(t *testing.T) {
	dlq := &fakeWriter{}
	p := producer.NewKafkaPublisher(&fakeWriter{err: errors.New("broker down")}, "paris_activity")
	p.DLQ = dlq

	err := p.PublishBetActivity(context.Background(), events.BetActivity{Kind: events.KindBetCreated, BetID: "9"})
	if err == nil {
		t.Fatal("expected the original error")
	}
	if len(dlq.msgs) != 1 || string(dlq.msgs[0].Key) != "9" {
		t.Fatalf("expected message copied to the dlq, got %+v", dlq.msgs)
	}
	headers := map[string]string{}
	for _, h := range dlq.msgs[0].Headers {
		headers[h.Key] = string(h.Value)
	}
	if headers["kind"] != events.KindBetCreated || headers["topic"] != "paris_activity" || headers["error"] != "broker down" {
		t.Errorf("unexpected dlq headers %v", headers)
	}
}

// blockingPublisher segura cada publicação até release ser fechado
type blockingPublisher struct {
	release chan struct{}
	mu      sync.Mutex
	got     []string
}

func (b *blockingPublisher) PublishBetActivity(_ context.Context, e events.BetActivity) error {
	<-b.release
	b.mu.Lock()
	b.got = append(b.got, e.Kind)
	b.mu.Unlock()
	return nil
}

func (b *blockingPublisher) PublishSessionChanged(_ context.Context, e events.SessionChanged) error {
	<-b.release
	b.mu.Lock()
	b.got = append(b.got, e.To)
	b.mu.Unlock()
	return nil
}

func TestAsyncNeverBlocksTheCaller(t *testing.T) {
	next := &blockingPublisher{release: make(chan struct{})}
	a := producer.NewAsync(next, 2, nil)
	var dropped []string
	a.OnDropped = func(kind string) { dropped = append(dropped, kind) }

	listen := producer.SessionListener(a)
	start := time.Now()
	listen(session.Change{From: session.StateRestoring, To: session.StateAuthenticated})
	listen(session.Change{From: session.StateAuthenticated, To: session.StateAnonymous})
	_ = a.PublishBetActivity(context.Background(), events.BetActivity{Kind: events.KindBetVoted})
	_ = a.PublishBetActivity(context.Background(), events.BetActivity{Kind: events.KindBetVoted})
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Fatalf("publishing blocked the caller for %v", elapsed)
	}
	if len(dropped) == 0 {
		t.Error("expected events beyond the queue to be dropped")
	}

	close(next.release)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := a.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	next.mu.Lock()
	defer next.mu.Unlock()
	if len(next.got) == 0 || next.got[0] != "authenticated" {
		t.Errorf("expected queued events delivered in order, got %v", next.got)
	}
	if len(next.got)+len(dropped) != 4 {
		t.Errorf("every event must be delivered or dropped, got %v dropped %v", next.got, dropped)
	}

	_ = a.PublishBetActivity(context.Background(), events.BetActivity{Kind: events.KindBetResolved})
	if dropped[len(dropped)-1] != events.KindBetResolved {
		t.Error("events after Close must be dropped")
	}
}
