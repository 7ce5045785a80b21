// README: Channel entry points; de-duplicates, resolves the dealership, runs the orchestrator, delivers replies.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/viniciusalbino/autoAtendeAI/internal/channel/web"
	"github.com/viniciusalbino/autoAtendeAI/internal/channel/whatsapp"
	"github.com/viniciusalbino/autoAtendeAI/internal/conversation"
	"github.com/viniciusalbino/autoAtendeAI/internal/modules/dealership"
	"github.com/viniciusalbino/autoAtendeAI/internal/reply"
)

// ErrDuplicate marks a message id that was already processed.
var ErrDuplicate = errors.New("duplicate message")

type Handler interface {
	Handle(ctx context.Context, d dealership.Dealership, ev conversation.Event) []reply.Unit
}

type Dealerships interface {
	Resolve(ctx context.Context, businessNumber string) (*dealership.Dealership, error)
	Get(ctx context.Context, id int64) (*dealership.Dealership, error)
}

type Inbox interface {
	Claim(ctx context.Context, messageID string) (bool, error)
	Release(ctx context.Context, messageID string) error
	ClaimedAt(ctx context.Context, messageID string) (time.Time, bool, error)
}

type Sender interface {
	Send(ctx context.Context, to string, units []reply.Unit) error
}

type Assistant struct {
	handler     Handler
	dealerships Dealerships
	inbox       Inbox
	sender      Sender
	logger      *zap.Logger
}

// NewAssistant wires the entry points. inbox may be nil to disable de-duplication.
func NewAssistant(handler Handler, dealerships Dealerships, inbox Inbox, sender Sender, logger *zap.Logger) *Assistant {
	return &Assistant{
		handler:     handler,
		dealerships: dealerships,
		inbox:       inbox,
		sender:      sender,
		logger:      logger,
	}
}

// ProcessWhatsApp answers one inbound WhatsApp message.
// Returns ErrDuplicate for redeliveries and dealership.ErrNotFound when no dealership is active.
func (a *Assistant) ProcessWhatsApp(ctx context.Context, in whatsapp.Inbound) error {
	ev := in.Event
	logger := a.logger.With(zap.String("event_id", ev.ID), zap.String("sender", ev.SenderID))

	if a.inbox != nil {
		claimed, err := a.inbox.Claim(ctx, ev.ID)
		if err != nil {
			// Redis unavailable: answering twice beats not answering.
			logger.Warn("inbox claim failed", zap.Error(err))
		} else if !claimed {
			a.logDuplicate(ctx, ev.ID, logger)
			return ErrDuplicate
		}
	}

	d, err := a.dealerships.Resolve(ctx, in.BusinessNumber)
	if errors.Is(err, dealership.ErrNotFound) {
		logger.Warn("no dealership for business number", zap.String("business_number", in.BusinessNumber))
		if sendErr := a.sender.Send(ctx, ev.SenderID, []reply.Unit{reply.Text(reply.NoDealershipText)}); sendErr != nil {
			logger.Error("deliver replies failed", zap.Error(sendErr))
		}
		return err
	}
	if err != nil {
		a.release(ctx, ev.ID, logger)
		return fmt.Errorf("resolve dealership: %w", err)
	}

	units := a.handler.Handle(ctx, *d, ev)
	if err := a.sender.Send(ctx, ev.SenderID, units); err != nil {
		a.release(ctx, ev.ID, logger)
		return fmt.Errorf("deliver replies: %w", err)
	}
	return nil
}

// Chat answers one web chat request synchronously.
func (a *Assistant) Chat(ctx context.Context, req web.ChatRequest) (web.ChatResponse, error) {
	if err := req.Validate(); err != nil {
		return web.ChatResponse{}, err
	}
	d, err := a.dealerships.Get(ctx, req.DealershipID)
	if err != nil {
		return web.ChatResponse{}, err
	}
	ev := req.ToEvent()
	return web.ChatResponse{EventID: ev.ID, Replies: a.handler.Handle(ctx, *d, ev)}, nil
}

func (a *Assistant) logDuplicate(ctx context.Context, messageID string, logger *zap.Logger) {
	fields := []zap.Field{}
	if at, ok, err := a.inbox.ClaimedAt(ctx, messageID); err != nil {
		logger.Warn("inbox lookup failed", zap.Error(err))
	} else if ok {
		fields = append(fields, zap.Time("first_claimed_at", at), zap.Duration("since_first_claim", time.Since(at)))
	}
	logger.Info("duplicate delivery skipped", fields...)
}

func (a *Assistant) release(ctx context.Context, messageID string, logger *zap.Logger) {
	if a.inbox == nil {
		return
	}
	if err := a.inbox.Release(ctx, messageID); err != nil {
		logger.Warn("inbox release failed", zap.Error(err))
	}
}
