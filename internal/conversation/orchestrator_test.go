package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/viniciusalbino/autoAtendeAI/internal/ai"
	"github.com/viniciusalbino/autoAtendeAI/internal/modules/aiusage"
	"github.com/viniciusalbino/autoAtendeAI/internal/modules/dealership"
	"github.com/viniciusalbino/autoAtendeAI/internal/modules/inventory"
	"github.com/viniciusalbino/autoAtendeAI/internal/reply"
)

var testDealership = dealership.Dealership{ID: 1, Name: "Auto Center Paulista", Active: true}

// scriptedProvider answers every model call with the same raw text or error.
type scriptedProvider struct {
	raw   string
	err   error
	calls []string
}

func (p *scriptedProvider) GenerateJSON(_ context.Context, prompt string) (string, error) {
	p.calls = append(p.calls, prompt)
	return p.raw, p.err
}

func (p *scriptedProvider) GenerateText(_ context.Context, prompt string) (string, error) {
	p.calls = append(p.calls, prompt)
	return p.raw, p.err
}

type fakeQuota struct {
	err   error
	calls int
}

func (q *fakeQuota) UseToken(context.Context, string) error {
	q.calls++
	return q.err
}

type panickingInventory struct{}

func (panickingInventory) Search(context.Context, int64, ai.FilterSpec) ([]inventory.Vehicle, error) {
	panic("boom")
}

func (panickingInventory) FindByModel(context.Context, int64, string) (*inventory.Vehicle, error) {
	panic("boom")
}

func ptr[T any](v T) *T { return &v }

func testInventory() *inventory.Service {
	return inventory.NewService(inventory.NewMemoryStore(
		inventory.Vehicle{
			DealershipID: 1, Brand: "Toyota", Model: "Corolla", Year: ptr(2021),
			Price: ptr(90000.0), Color: ptr("Prata"), Mileage: ptr(35000),
			Transmission: "Automático", Fuel: "Flex", Engine: "2.0",
			Options: []string{"Ar Condicionado"},
			Photos:  []string{"https://cdn/corolla-1.jpg", "https://cdn/corolla-2.jpg"},
		},
		inventory.Vehicle{
			DealershipID: 1, Brand: "Honda", Model: "Civic", Year: ptr(2020),
			Price: ptr(95000.0), Mileage: ptr(42000),
		},
	))
}

func newTestOrchestrator(t *testing.T, p ai.LLMProvider, inv Inventory, quota Quota, cfg Config) *Orchestrator {
	logger := zaptest.NewLogger(t)
	extractor := ai.NewExtractor(p, ai.ExtractorConfig{}, logger, nil)
	return New(extractor, inv, quota, cfg, logger, nil)
}

func textEvent(s string) Event {
	return Event{ID: "wamid.test", SenderID: "5511999990000", Kind: KindText, RawText: s}
}

func TestHandleSearchEndToEnd(t *testing.T) {
	p := &scriptedProvider{raw: "```json\n{\"marca\": \"Toyota\", \"preco_max\": 100000}\n```"}
	o := newTestOrchestrator(t, p, testInventory(), nil, Config{})

	units := o.Handle(context.Background(), testDealership, textEvent("quero um Toyota até 100000"))
	require.Len(t, units, 1)
	assert.Contains(t, units[0].Text, "*Toyota Corolla 2021*")
	assert.Contains(t, units[0].Text, "R$ 90,000.00")
	assert.Equal(t, "https://cdn/corolla-1.jpg", units[0].Image)

	require.Len(t, units[0].Actions, 3)
	assert.Equal(t, reply.Action{ID: "detail-request:corolla", Label: reply.LabelDetail}, units[0].Actions[0])
	assert.Equal(t, "more-photos:corolla", units[0].Actions[1].ID)
	assert.Equal(t, DeclineID, units[0].Actions[2].ID)
}

func TestHandleNoMatch(t *testing.T) {
	p := &scriptedProvider{raw: `{"marca": "Ferrari"}`}
	o := newTestOrchestrator(t, p, testInventory(), nil, Config{})

	units := o.Handle(context.Background(), testDealership, textEvent("tem ferrari?"))
	require.Len(t, units, 1)
	assert.Equal(t, reply.NoMatchText, units[0].Text)
	assert.Empty(t, units[0].Image)
	assert.Empty(t, units[0].Actions)
}

func TestHandleIntents(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`{"intent": "greeting"}`, reply.Greeting("Auto Center Paulista")},
		{`{"intent": "other"}`, reply.RedirectText},
		{`{}`, reply.ClarifyText},
		{`{"opcionais": ["freio a disco"]}`, reply.ClarifyText},
	}
	for _, tc := range cases {
		o := newTestOrchestrator(t, &scriptedProvider{raw: tc.raw}, testInventory(), nil, Config{})
		units := o.Handle(context.Background(), testDealership, textEvent("oi"))
		require.Len(t, units, 1, tc.raw)
		assert.Equal(t, tc.want, units[0].Text, tc.raw)
	}
}

func TestHandleDetailButtonBypassesModel(t *testing.T) {
	p := &scriptedProvider{}
	o := newTestOrchestrator(t, p, testInventory(), nil, Config{})

	units := o.Handle(context.Background(), testDealership, Event{Kind: KindButton, ActionID: "detail-request:corolla", RawText: "Quero saber mais"})
	require.Len(t, units, 3)
	assert.Contains(t, units[0].Text, "Características Técnicas:")
	assert.Equal(t, "https://cdn/corolla-1.jpg", units[1].Image)
	assert.Equal(t, []reply.Action{
		{ID: "more-photos:corolla", Label: reply.LabelGallery},
		{ID: DeclineID, Label: reply.LabelDecline},
	}, units[2].Actions)
	assert.Empty(t, p.calls)
}

func TestHandleGalleryButton(t *testing.T) {
	p := &scriptedProvider{}
	o := newTestOrchestrator(t, p, testInventory(), nil, Config{})

	units := o.Handle(context.Background(), testDealership, Event{Kind: KindButton, ActionID: "more-photos:corolla"})
	require.Len(t, units, 2)
	assert.Equal(t, "Foto 2 do Corolla", units[1].Text)

	units = o.Handle(context.Background(), testDealership, Event{Kind: KindButton, ActionID: "more-photos:civic"})
	require.Len(t, units, 1)
	assert.Equal(t, reply.NoPhotosText, units[0].Text)

	units = o.Handle(context.Background(), testDealership, Event{Kind: KindButton, ActionID: "more-photos:fusca"})
	require.Len(t, units, 1)
	assert.Equal(t, reply.NoPhotosText, units[0].Text)
	assert.Empty(t, p.calls)
}

func TestHandleDeclineButton(t *testing.T) {
	p := &scriptedProvider{}
	o := newTestOrchestrator(t, p, testInventory(), nil, Config{})

	units := o.Handle(context.Background(), testDealership, Event{Kind: KindButton, ActionID: DeclineID, RawText: "Não, obrigado"})
	require.Len(t, units, 1)
	assert.Equal(t, reply.DeclineText, units[0].Text)
	assert.Empty(t, p.calls)
}

func TestHandleClosingPhraseUsesDirective(t *testing.T) {
	p := &scriptedProvider{raw: "Obrigado pelo contato! Estamos à disposição."}
	o := newTestOrchestrator(t, p, testInventory(), nil, Config{})

	units := o.Handle(context.Background(), testDealership, textEvent("Não, obrigado!"))
	require.Len(t, units, 1)
	assert.Equal(t, "Obrigado pelo contato! Estamos à disposição.", units[0].Text)
	require.Len(t, p.calls, 1)
	assert.Contains(t, p.calls[0], ai.ClosingDirective)
	assert.NotContains(t, p.calls[0], "Não, obrigado!")
}

func TestHandleTextDetailTrigger(t *testing.T) {
	p := &scriptedProvider{}
	o := newTestOrchestrator(t, p, testInventory(), nil, Config{})

	units := o.Handle(context.Background(), testDealership, textEvent("Quero saber mais sobre o Civic"))
	require.Len(t, units, 2)
	assert.Contains(t, units[0].Text, "*Honda Civic 2020*")

	units = o.Handle(context.Background(), testDealership, textEvent("quero saber mais fusca"))
	require.Len(t, units, 1)
	assert.Equal(t, reply.DetailNotFound("fusca"), units[0].Text)
	assert.Empty(t, p.calls)
}

func TestHandleTextDetailTriggerKeepsModelSpelling(t *testing.T) {
	inv := inventory.NewService(inventory.NewMemoryStore(
		inventory.Vehicle{DealershipID: 1, Brand: "Honda", Model: "HR-V", Year: ptr(2022), Price: ptr(130000.0)},
	))
	p := &scriptedProvider{}
	o := newTestOrchestrator(t, p, inv, nil, Config{})

	text := o.Handle(context.Background(), testDealership, textEvent("Quero saber mais HR-V"))
	button := o.Handle(context.Background(), testDealership, Event{
		ID: "wamid.btn", SenderID: "5511999990000", Kind: KindButton, ActionID: DetailID("HR-V"),
	})
	require.NotEmpty(t, text)
	assert.Contains(t, text[0].Text, "*Honda HR-V 2022*")
	assert.Equal(t, button, text)
	assert.Empty(t, p.calls)
}

func TestHandleZeroBoundsAreIgnored(t *testing.T) {
	p := &scriptedProvider{raw: `{"marca":"Toyota","preco_min":0,"preco_max":100000,"quilometragem_max":0,"ano_min":0}`}
	o := newTestOrchestrator(t, p, testInventory(), nil, Config{})

	units := o.Handle(context.Background(), testDealership, textEvent("quero um Toyota até 100 mil"))
	require.Len(t, units, 1)
	assert.Contains(t, units[0].Text, "*Toyota Corolla 2021*")
}

func TestHandleOnlyZeroFieldsAsksToClarify(t *testing.T) {
	p := &scriptedProvider{raw: `{"preco_min":0}`}
	o := newTestOrchestrator(t, p, testInventory(), nil, Config{})

	units := o.Handle(context.Background(), testDealership, textEvent("quero um carro"))
	require.Len(t, units, 1)
	assert.Equal(t, reply.ClarifyText, units[0].Text)
}

func TestHandleExtractionFailureHidesDetail(t *testing.T) {
	p := &scriptedProvider{raw: "Desculpe, não entendi"}
	o := newTestOrchestrator(t, p, testInventory(), nil, Config{})

	units := o.Handle(context.Background(), testDealership, textEvent("tem algum carro bom?"))
	require.Len(t, units, 1)
	assert.Equal(t, reply.FallbackText, units[0].Text)
}

func TestHandleExtractionFailureDebugReplies(t *testing.T) {
	p := &scriptedProvider{raw: "Desculpe, não entendi"}
	o := newTestOrchestrator(t, p, testInventory(), nil, Config{DebugReplies: true})

	units := o.Handle(context.Background(), testDealership, textEvent("tem algum carro bom?"))
	require.Len(t, units, 1)
	assert.Contains(t, units[0].Text, "[DEBUG]")
	assert.Contains(t, units[0].Text, "Desculpe, não entendi")
}

func TestHandleModelErrorFallsBack(t *testing.T) {
	p := &scriptedProvider{err: errors.New("503 from upstream")}
	o := newTestOrchestrator(t, p, testInventory(), nil, Config{})

	units := o.Handle(context.Background(), testDealership, textEvent("quero um civic"))
	require.Len(t, units, 1)
	assert.Equal(t, reply.FallbackText, units[0].Text)
}

func TestHandleRecoversPanics(t *testing.T) {
	p := &scriptedProvider{raw: `{"marca": "Toyota"}`}
	o := newTestOrchestrator(t, p, panickingInventory{}, nil, Config{})

	units := o.Handle(context.Background(), testDealership, textEvent("toyota"))
	require.Len(t, units, 1)
	assert.Equal(t, reply.FallbackText, units[0].Text)
}

func TestHandleQuotaExhausted(t *testing.T) {
	p := &scriptedProvider{raw: `{"marca": "Toyota"}`}
	quota := &fakeQuota{err: aiusage.ErrInsufficientTokens}
	o := newTestOrchestrator(t, p, testInventory(), quota, Config{})

	units := o.Handle(context.Background(), testDealership, textEvent("toyota"))
	require.Len(t, units, 1)
	assert.Equal(t, reply.QuotaText, units[0].Text)
	assert.Empty(t, p.calls)

	// Deterministic branches never consume quota.
	o.Handle(context.Background(), testDealership, Event{Kind: KindButton, ActionID: DeclineID})
	assert.Equal(t, 1, quota.calls)
}

func TestHandleUnknownKind(t *testing.T) {
	p := &scriptedProvider{}
	o := newTestOrchestrator(t, p, testInventory(), nil, Config{})

	units := o.Handle(context.Background(), testDealership, Event{Kind: KindUnknown})
	require.Len(t, units, 1)
	assert.Equal(t, reply.ClarifyText, units[0].Text)
	assert.Empty(t, p.calls)
}
