package consumer

import (
	"context"
	"encoding/json"

	"github.com/Gakenye8741/ticket-gateway/internal/models"
	"github.com/Gakenye8741/ticket-gateway/internal/service"
	"github.com/Gakenye8741/ticket-gateway/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

// PaymentMessage is what the payment processor integration publishes when a
// payment changes state.
type PaymentMessage struct {
	BookingID  int                  `json:"bookingId"`
	NationalID int64                `json:"nationalId"`
	Status     models.PaymentStatus `json:"status"`
}

// PaymentConsumer turns payment.* messages into reconcile runs, so a
// completed payment confirms its booking without waiting for the next poll.
type PaymentConsumer struct {
	reconciler service.ReconcileService
	l          logger.Logger
}

func NewPaymentConsumer(reconciler service.ReconcileService, l logger.Logger) *PaymentConsumer {
	return &PaymentConsumer{reconciler: reconciler, l: l}
}

func (pc *PaymentConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			pc.handleMessage(msg)
		}
		pc.l.Info("payment consumer channel closed, stopping")
	}()
}

func (pc *PaymentConsumer) handleMessage(msg amqp.Delivery) {
	var payment PaymentMessage
	if err := json.Unmarshal(msg.Body, &payment); err != nil {
		pc.l.Warn("failed to unmarshal payment message", "error", err)
		msg.Nack(false, false)
		return
	}

	if payment.Status != models.PaymentCompleted {
		msg.Ack(false)
		return
	}

	confirmed, err := pc.reconciler.Reconcile(context.Background(), payment.NationalID)
	if err != nil {
		pc.l.Error("reconcile failed for payment message", "booking_id", payment.BookingID, "error", err)
		msg.Nack(false, true) // requeue
		return
	}

	pc.l.Info("reconciled after payment", "national_id", payment.NationalID, "confirmed", confirmed)
	msg.Ack(false)
}
