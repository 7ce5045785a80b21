package conversation

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/viniciusalbino/autoAtendeAI/internal/ai"
	"github.com/viniciusalbino/autoAtendeAI/internal/metrics"
	"github.com/viniciusalbino/autoAtendeAI/internal/modules/aiusage"
	"github.com/viniciusalbino/autoAtendeAI/internal/modules/dealership"
	"github.com/viniciusalbino/autoAtendeAI/internal/modules/inventory"
	"github.com/viniciusalbino/autoAtendeAI/internal/reply"
)

// Extractor is the language model side of the pipeline.
type Extractor interface {
	Extract(ctx context.Context, dealershipName, utterance string) (ai.FilterSpec, error)
	Compose(ctx context.Context, dealershipName, directive string) (string, error)
}

// Inventory is the read-only vehicle lookup.
type Inventory interface {
	Search(ctx context.Context, dealershipID int64, f ai.FilterSpec) ([]inventory.Vehicle, error)
	FindByModel(ctx context.Context, dealershipID int64, model string) (*inventory.Vehicle, error)
}

// Quota is charged once before every model call.
type Quota interface {
	UseToken(ctx context.Context, customerID string) error
}

type Config struct {
	// DebugReplies appends error detail and raw model output to fallback replies.
	DebugReplies bool
}

type Orchestrator struct {
	extractor Extractor
	inventory Inventory
	quota     Quota
	cfg       Config
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// New builds an Orchestrator. quota and m may be nil.
func New(extractor Extractor, inv Inventory, quota Quota, cfg Config, logger *zap.Logger, m *metrics.Metrics) *Orchestrator {
	return &Orchestrator{
		extractor: extractor,
		inventory: inv,
		quota:     quota,
		cfg:       cfg,
		logger:    logger,
		metrics:   m,
	}
}

// Handle produces the replies for one event. It always returns at least one unit.
func (o *Orchestrator) Handle(ctx context.Context, d dealership.Dealership, ev Event) (units []reply.Unit) {
	logger := o.logger.With(
		zap.String("event_id", ev.ID),
		zap.String("sender", ev.SenderID),
		zap.String("kind", string(ev.Kind)),
		zap.Int64("dealership_id", d.ID),
	)
	o.metrics.ObserveEvent(string(ev.Kind))

	state := StateFallback
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event handling panicked", zap.Any("panic", r), zap.Stack("stack"))
			units, state = []reply.Unit{reply.Text(reply.FallbackText)}, StateFallback
		}
		o.metrics.ObserveReply(string(state))
		logger.Info("event handled", zap.String("state", string(state)), zap.Int("units", len(units)))
	}()

	units, state = o.route(ctx, d, ev, logger)
	return units
}

func (o *Orchestrator) route(ctx context.Context, d dealership.Dealership, ev Event, logger *zap.Logger) ([]reply.Unit, State) {
	switch a := ParseAction(ev).(type) {
	case Detail:
		return o.detail(ctx, d, a.Model, logger), StateDetail
	case Gallery:
		return o.gallery(ctx, d, a.Model, logger), StateGallery
	case Decline:
		return []reply.Unit{reply.Text(reply.DeclineText)}, StateClosing
	case FreeText:
		return o.freeText(ctx, d, ev.SenderID, a.Text, logger)
	}
	return []reply.Unit{reply.Text(reply.FallbackText)}, StateFallback
}

func (o *Orchestrator) freeText(ctx context.Context, d dealership.Dealership, sender, text string, logger *zap.Logger) ([]reply.Unit, State) {
	normalized := Normalize(text)
	if normalized == "" {
		return []reply.Unit{reply.Text(reply.ClarifyText)}, StateFallback
	}
	if IsClosing(normalized) {
		return o.closing(ctx, d, sender, logger)
	}
	if model, ok := DetailTrigger(text); ok {
		return o.detail(ctx, d, model, logger), StateDetail
	}
	return o.search(ctx, d, sender, text, logger)
}

func (o *Orchestrator) closing(ctx context.Context, d dealership.Dealership, sender string, logger *zap.Logger) ([]reply.Unit, State) {
	if err := o.useToken(ctx, sender); err != nil {
		return o.failure(err, logger), StateFallback
	}
	text, err := o.extractor.Compose(ctx, d.Name, ai.ClosingDirective)
	if err != nil {
		return o.failure(err, logger), StateFallback
	}
	return []reply.Unit{reply.Text(text)}, StateClosing
}

func (o *Orchestrator) search(ctx context.Context, d dealership.Dealership, sender, text string, logger *zap.Logger) ([]reply.Unit, State) {
	if err := o.useToken(ctx, sender); err != nil {
		return o.failure(err, logger), StateFallback
	}
	spec, err := o.extractor.Extract(ctx, d.Name, text)
	if err != nil {
		return o.failure(err, logger), StateFallback
	}

	switch {
	case spec.Intent == ai.IntentGreeting:
		return []reply.Unit{reply.Text(reply.Greeting(d.Name))}, StateGreeting
	case spec.Intent == ai.IntentOther:
		return []reply.Unit{reply.Text(reply.RedirectText)}, StateFallback
	case spec.IsEmpty():
		return []reply.Unit{reply.Text(reply.ClarifyText)}, StateFallback
	}

	vehicles, err := o.inventory.Search(ctx, d.ID, spec)
	if err != nil {
		return o.failure(err, logger), StateFallback
	}
	o.metrics.ObserveSearch(len(vehicles))

	units := reply.Format(vehicles)
	for i, v := range vehicles {
		units[i].Actions = searchActions(v.Model)
	}
	return units, StateSearch
}

func (o *Orchestrator) detail(ctx context.Context, d dealership.Dealership, model string, logger *zap.Logger) []reply.Unit {
	v, err := o.inventory.FindByModel(ctx, d.ID, model)
	if errors.Is(err, inventory.ErrNotFound) {
		return []reply.Unit{reply.Text(reply.DetailNotFound(model))}
	}
	if err != nil {
		return o.failure(err, logger)
	}
	return reply.Detail(*v, []reply.Action{
		{ID: GalleryID(v.Model), Label: reply.LabelGallery},
		{ID: DeclineID, Label: reply.LabelDecline},
	})
}

func (o *Orchestrator) gallery(ctx context.Context, d dealership.Dealership, model string, logger *zap.Logger) []reply.Unit {
	v, err := o.inventory.FindByModel(ctx, d.ID, model)
	if errors.Is(err, inventory.ErrNotFound) {
		return []reply.Unit{reply.Text(reply.NoPhotosText)}
	}
	if err != nil {
		return o.failure(err, logger)
	}
	return reply.Gallery(*v)
}

func (o *Orchestrator) useToken(ctx context.Context, sender string) error {
	if o.quota == nil {
		return nil
	}
	return o.quota.UseToken(ctx, sender)
}

// failure turns err into the single customer-visible fallback unit.
func (o *Orchestrator) failure(err error, logger *zap.Logger) []reply.Unit {
	if errors.Is(err, aiusage.ErrInsufficientTokens) {
		logger.Info("monthly model quota exhausted")
		return []reply.Unit{reply.Text(reply.QuotaText)}
	}

	var raw string
	var extErr *ai.ExtractionError
	if errors.As(err, &extErr) {
		raw = extErr.Raw
		logger.Warn("intent extraction failed", zap.Error(err))
	} else {
		logger.Error("event handling failed", zap.Error(err))
	}

	text := reply.FallbackText
	if o.cfg.DebugReplies {
		text = reply.Debug(text, err, raw)
	}
	return []reply.Unit{reply.Text(text)}
}

func searchActions(model string) []reply.Action {
	return []reply.Action{
		{ID: DetailID(model), Label: reply.LabelDetail},
		{ID: GalleryID(model), Label: reply.LabelGallery},
		{ID: DeclineID, Label: reply.LabelDecline},
	}
}
