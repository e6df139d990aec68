package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/paris-web-client/pkg/contracts/events"
)

// Publisher emite os eventos de atividade do cliente
type Publisher interface {
	PublishBetActivity(ctx context.Context, e events.BetActivity) error
	PublishSessionChanged(ctx context.Context, e events.SessionChanged) error
}

// MessageWriter é o subconjunto de *kafka.Writer usado aqui
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher grava no tópico configurado no próprio writer (shared/kafka.NewWriter)
type KafkaPublisher struct {
	Writer MessageWriter
	Topic  string

	// DLQ recebe a mensagem original quando a escrita no tópico falha (opcional)
	DLQ MessageWriter

	OnPublished func(kind string) // métricas
	OnError     func(kind string) // métricas
}

func NewKafkaPublisher(w MessageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{Writer: w, Topic: topic}
}

// PublishBetActivity usa o id da aposta como chave (ordem por aposta)
func (p *KafkaPublisher) PublishBetActivity(ctx context.Context, e events.BetActivity) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	e.TsUnixMs = time.Now().UnixMilli()
	return p.write(ctx, e.Kind, e.BetID, e)
}

// PublishSessionChanged usa o login como chave
func (p *KafkaPublisher) PublishSessionChanged(ctx context.Context, e events.SessionChanged) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.Ts.IsZero() {
		e.Ts = time.Now().UTC()
	}
	return p.write(ctx, "session_changed", e.Login, e)
}

func (p *KafkaPublisher) write(ctx context.Context, kind, key string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	msg := kafka.Message{Value: b, Headers: []kafka.Header{{Key: "kind", Value: []byte(kind)}}}
	if key != "" {
		msg.Key = []byte(key)
	}

	if err := p.Writer.WriteMessages(ctx, msg); err != nil {
		if p.OnError != nil {
			p.OnError(kind)
		}
		if p.DLQ != nil {
			msg.Headers = append(msg.Headers,
				kafka.Header{Key: "topic", Value: []byte(p.Topic)},
				kafka.Header{Key: "error", Value: []byte(err.Error())})
			if dlqErr := p.DLQ.WriteMessages(context.WithoutCancel(ctx), msg); dlqErr != nil {
				return fmt.Errorf("%w (dlq: %v)", err, dlqErr)
			}
		}
		return err
	}
	if p.OnPublished != nil {
		p.OnPublished(kind)
	}
	return nil
}

// Noop descarta os eventos quando não há brokers configurados
type Noop struct{}

func (Noop) PublishBetActivity(context.Context, events.BetActivity) error       { return nil }
func (Noop) PublishSessionChanged(context.Context, events.SessionChanged) error { return nil }

// BestEffort envolve um Publisher registrando falhas em vez de propagá-las
type BestEffort struct {
	Next    Publisher
	Log     *zap.Logger
	Timeout time.Duration
}

func NewBestEffort(next Publisher, log *zap.Logger, timeout time.Duration) BestEffort {
	if log == nil {
		log = zap.NewNop()
	}
	return BestEffort{Next: next, Log: log, Timeout: timeout}
}

func (b BestEffort) PublishBetActivity(ctx context.Context, e events.BetActivity) error {
	ctx, cancel := b.ctx(ctx)
	defer cancel()
	if err := b.Next.PublishBetActivity(ctx, e); err != nil {
		b.Log.Warn("publish bet activity failed",
			zap.String("kind", e.Kind), zap.String("bet_id", e.BetID), zap.Error(err))
	}
	return nil
}

func (b BestEffort) PublishSessionChanged(ctx context.Context, e events.SessionChanged) error {
	ctx, cancel := b.ctx(ctx)
	defer cancel()
	if err := b.Next.PublishSessionChanged(ctx, e); err != nil {
		b.Log.Warn("publish session change failed",
			zap.String("to", e.To), zap.String("reason", e.Reason), zap.Error(err))
	}
	return nil
}

func (b BestEffort) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if b.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, b.Timeout)
}
