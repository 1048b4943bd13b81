package notify

import (
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"shareit/internal/events"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier announces booking lifecycle events to a configured
// operations chat. A nil notifier is valid and does nothing.
type TelegramNotifier struct {
	bot    sender
	chatID int64
	logger zerolog.Logger
}

// New returns nil when the token or chat is not configured.
func New(token string, chatID int64, logger *zerolog.Logger) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		logger: logger.With().Str("component", "telegram-notifier").Logger(),
	}, nil
}

// Subscribe registers the notifier on the booking lifecycle events.
func (n *TelegramNotifier) Subscribe(bus *events.EventBus) {
	if n == nil || bus == nil {
		return
	}
	for _, eventType := range []string{
		events.EventBookingCreated,
		events.EventBookingApproved,
		events.EventBookingRejected,
	} {
		bus.Subscribe(eventType, n.handle)
	}
}

func (n *TelegramNotifier) handle(event *events.Event) error {
	var payload events.BookingEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		n.logger.Error().Err(err).Str("event_type", event.Type).Msg("decode event payload")
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, formatBookingMessage(event.Type, payload))
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error().Err(err).Int64("booking_id", payload.BookingID).Msg("send notification")
		return err
	}
	return nil
}

func formatBookingMessage(eventType string, p events.BookingEventPayload) string {
	var action string
	switch eventType {
	case events.EventBookingCreated:
		action = "New booking"
	case events.EventBookingApproved:
		action = "Booking approved"
	case events.EventBookingRejected:
		action = "Booking rejected"
	default:
		action = "Booking update"
	}

	return fmt.Sprintf(
		"%s #%d: %q by %s (%s to %s)",
		action,
		p.BookingID,
		p.ItemName,
		p.BookerName,
		p.Start.Format("2006-01-02 15:04"),
		p.End.Format("2006-01-02 15:04"),
	)
}
