package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/mo-shab/tutor/internal/service"
	"github.com/mo-shab/tutor/pkg/mq"
)

// Worker consumes session.* events and turns them into user notifications.
type Worker struct {
	cons     *mq.Consumer
	notifier Notifier
	log      *zap.Logger
}

func NewWorker(cons *mq.Consumer, n Notifier, log *zap.Logger) *Worker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Worker{cons: cons, notifier: n, log: log}
}

func (w *Worker) Run(ctx context.Context) error {
	msgs, err := w.cons.Deliveries(ctx, "notify-worker")
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := w.handle(d); err != nil {
				w.log.Warn("handle delivery failed",
					zap.String("routing_key", d.RoutingKey), zap.Error(err))
				_ = d.Nack(false, false) // dead-letter, do not requeue bad payloads
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (w *Worker) handle(d amqp.Delivery) error {
	var ev service.SessionEvent
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if ev.SessionID == "" {
		return fmt.Errorf("event without session id")
	}

	switch d.RoutingKey {
	case service.RKSessionRequested:
		return w.notifier.Notify("Session requested",
			fmt.Sprintf("Session %s (%s) requested for %s", ev.SessionID, ev.Subject, HumanTimeRange(ev.Start, ev.End)))
	case service.RKSessionAccepted:
		return w.notifier.Notify("Session accepted",
			fmt.Sprintf("Session %s has been accepted.", ev.SessionID))
	case service.RKSessionCancelled:
		return w.notifier.Notify("Session cancelled",
			fmt.Sprintf("Session %s has been cancelled.", ev.SessionID))
	case service.RKSessionCompleted:
		return w.notifier.Notify("Session completed",
			fmt.Sprintf("Session %s is complete. The student can now leave a review.", ev.SessionID))
	default:
		w.log.Debug("skip unknown routing key", zap.String("routing_key", d.RoutingKey))
	}
	return nil
}
