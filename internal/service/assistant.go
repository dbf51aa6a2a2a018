package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"placefinder/internal/metrics"
	"placefinder/internal/model"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ErrEmptyQuery is returned when the ask carries no query text
var ErrEmptyQuery = errors.New("query is required")

// Routes taken by an answered ask
const (
	RouteGreeting  = "greeting"
	RouteIntro     = "intro"
	RouteMemory    = "memory"
	RouteAttribute = "attribute"
	RouteEntity    = "entity"
	RouteList      = "list"
	RouteNoData    = "no_data"
)

const (
	askLogTimeout = 5 * time.Second
	tracerName    = "placefinder/service"
)

// CatalogProvider searches the external venue catalog
type CatalogProvider interface {
	Search(ctx context.Context, keyword string, page, limit int, credential string) ([]model.CatalogItem, error)
}

// MemoryStore keeps per-user conversation history
type MemoryStore interface {
	Append(ctx context.Context, userID, role, content string) error
	// Recent returns up to limit messages, oldest first
	Recent(ctx context.Context, userID string, limit int) ([]model.Message, error)
}

// AskLogger records answered asks
type AskLogger interface {
	LogAsk(ctx context.Context, entry *model.AskLog) error
}

// AssistantConfig tunes the ask pipeline
type AssistantConfig struct {
	Persona         Persona
	FetchLimit      int
	ContextMaxItems int
	HistoryLimit    int
}

// Assistant answers free-text questions about venues in the catalog
type Assistant struct {
	cfg       AssistantConfig
	catalog   CatalogProvider
	responder Responder
	memory    MemoryStore
	askLog    AskLogger
	intent    *IntentParser
	resolver  *EntityResolver
	filter    *CatalogFilter
	logger    *zap.Logger
}

// NewAssistant creates a new assistant. askLog may be nil.
func NewAssistant(
	cfg AssistantConfig,
	catalog CatalogProvider,
	responder Responder,
	memory MemoryStore,
	askLog AskLogger,
	logger *zap.Logger,
) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ContextMaxItems <= 0 {
		cfg.ContextMaxItems = DefaultContextItems
	}
	return &Assistant{
		cfg:       cfg,
		catalog:   catalog,
		responder: responder,
		memory:    memory,
		askLog:    askLog,
		intent:    NewIntentParser(logger),
		resolver:  NewEntityResolver(logger),
		filter:    NewCatalogFilter(NewRanker()),
		logger:    logger.With(zap.String("component", "assistant")),
	}
}

// outcome is what one pass of the pipeline produced
type outcome struct {
	answer string
	cards  []model.Card
	route  string
	intent *model.Intent
}

// Handle answers one ask for an authenticated user. credential is forwarded
// to the catalog provider. Collaborator failures degrade to the no-data
// answer; only ErrEmptyQuery and internal faults are returned as errors.
func (a *Assistant) Handle(ctx context.Context, userID, credential string, req *model.AskRequest) (*model.AskResponse, error) {
	startTime := time.Now()

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	requestID := uuid.NewString()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "Assistant.Handle",
		trace.WithAttributes(attribute.String("request_id", requestID)),
	)
	defer span.End()

	log := a.logger.With(zap.String("request_id", requestID), zap.String("user_id", userID))
	log.Debug("ask received", zap.String("query", query))

	stored := a.remember(ctx, log, userID, model.RoleUser, query)

	effective := query
	var out *outcome

	turn := ClassifyTurn(query)
	switch turn.Kind {
	case TurnIntroduction:
		out = &outcome{answer: a.cfg.Persona.Welcome(turn.Name), route: RouteIntro}
	case TurnGreeting:
		out = &outcome{answer: a.cfg.Persona.Capabilities(), route: RouteGreeting}
	case TurnMemory:
		previous, ok := PreviousUserMessage(a.history(ctx, log, userID), stored)
		out = &outcome{answer: a.cfg.Persona.Recall(previous, ok), route: RouteMemory}
	case TurnFollowUp:
		if previous, ok := PreviousQuery(a.history(ctx, log, userID), stored); ok {
			effective = previous
			log.Debug("follow-up substituted", zap.String("effective_query", effective))
		}
	}

	if out == nil {
		var err error
		out, err = a.run(ctx, log, userID, credential, effective)
		if err != nil {
			log.Error("ask failed", zap.Error(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	a.remember(ctx, log, userID, model.RoleAssistant, out.answer)

	if out.cards == nil {
		out.cards = []model.Card{}
	}
	took := time.Since(startTime)

	span.SetAttributes(
		attribute.String("route", out.route),
		attribute.Int("card_count", len(out.cards)),
	)
	metrics.AskTotal.WithLabelValues(out.route).Inc()
	metrics.AskDuration.WithLabelValues(out.route).Observe(took.Seconds())

	log.Info("ask answered",
		zap.String("route", out.route),
		zap.Int("cards", len(out.cards)),
		zap.Duration("took", took),
	)

	// Log ask (non-blocking)
	if a.askLog != nil {
		entry := &model.AskLog{
			RequestID:      requestID,
			UserID:         userID,
			SessionID:      req.SessionID,
			Query:          query,
			EffectiveQuery: effective,
			Route:          out.route,
			Intent:         out.intent,
			CardCount:      len(out.cards),
			ResponseTimeMs: int(took.Milliseconds()),
		}
		go func() {
			logCtx, cancel := context.WithTimeout(context.Background(), askLogTimeout)
			defer cancel()
			if err := a.askLog.LogAsk(logCtx, entry); err != nil {
				metrics.CollaboratorFailures.WithLabelValues(metrics.CollaboratorAskLog).Inc()
				log.Warn("failed to write ask log", zap.Error(err))
			}
		}()
	}

	return &model.AskResponse{Answer: out.answer, Cards: out.cards, RequestID: requestID}, nil
}

// run is the informational pipeline: intent, entity path, then list path
func (a *Assistant) run(ctx context.Context, log *zap.Logger, userID, credential, query string) (*outcome, error) {
	intent := a.intent.Parse(query)

	switch intent.EffectiveLookup() {
	case model.LookupEntity, model.LookupEntityAttribute:
		out, err := a.entityPath(ctx, log, userID, credential, query, intent)
		if err != nil || out != nil {
			return out, err
		}
		log.Debug("entity not resolved, falling back to list", zap.String("entity", intent.EntityName))
	}

	return a.listPath(ctx, log, userID, credential, query, intent)
}

// entityPath returns nil when the named venue is not in the catalog
func (a *Assistant) entityPath(ctx context.Context, log *zap.Logger, userID, credential, query string, intent *model.Intent) (*outcome, error) {
	items := a.fetch(ctx, log, intent.EntityName, credential)

	entity := a.resolver.Resolve(intent.EntityName, items)
	if entity == nil {
		return nil, nil
	}

	if attr := intent.FirstAttribute(); attr != "" {
		answer, err := AnswerAttribute(entity, attr)
		if err != nil {
			return nil, fmt.Errorf("failed to answer attribute: %w", err)
		}
		return &outcome{answer: answer.Answer, route: RouteAttribute, intent: intent}, nil
	}

	answer := a.respond(ctx, log, userID, query, FormatEntityContext(entity), intent)
	return &outcome{
		answer: answer,
		cards:  []model.Card{entity.Card()},
		route:  RouteEntity,
		intent: intent,
	}, nil
}

func (a *Assistant) listPath(ctx context.Context, log *zap.Logger, userID, credential, query string, intent *model.Intent) (*outcome, error) {
	keyword := intent.SearchDomain
	if keyword == "" {
		keyword = query
	}

	filtered := a.filter.Filter(a.fetch(ctx, log, keyword, credential), intent)
	if len(filtered) == 0 {
		// nothing grounds an answer, so the responder is not asked
		return &outcome{answer: NoDataAnswer, route: RouteNoData, intent: intent}, nil
	}

	catalogContext, err := FormatContext(ctx, filtered, a.cfg.ContextMaxItems)
	if err != nil {
		return nil, err
	}

	shown := filtered
	if len(shown) > a.cfg.ContextMaxItems {
		shown = shown[:a.cfg.ContextMaxItems]
	}
	cards := make([]model.Card, len(shown))
	for i := range shown {
		cards[i] = shown[i].Card()
	}

	return &outcome{
		answer: a.respond(ctx, log, userID, query, catalogContext, intent),
		cards:  cards,
		route:  RouteList,
		intent: intent,
	}, nil
}

// fetch searches the catalog and canonicalizes categories. Failures yield
// an empty catalog for this request only.
func (a *Assistant) fetch(ctx context.Context, log *zap.Logger, keyword, credential string) []model.CatalogItem {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "Assistant.fetch",
		trace.WithAttributes(attribute.String("keyword", keyword)),
	)
	defer span.End()

	items, err := a.catalog.Search(ctx, keyword, 1, a.cfg.FetchLimit, credential)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.CollaboratorFailures.WithLabelValues(metrics.CollaboratorCatalog).Inc()
		log.Warn("catalog search failed", zap.String("keyword", keyword), zap.Error(err))
		return nil
	}

	for i := range items {
		items[i].CanonicalCategory = CanonicalCategory(items[i].Category)
	}
	span.SetAttributes(attribute.Int("item_count", len(items)))
	return items
}

func (a *Assistant) respond(ctx context.Context, log *zap.Logger, userID, query, catalogContext string, intent *model.Intent) string {
	history := a.history(ctx, log, userID)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "Assistant.respond",
		trace.WithAttributes(attribute.Int("history_count", len(history))),
	)
	defer span.End()

	answer, err := a.responder.Answer(ctx, query, catalogContext, intent, history)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.CollaboratorFailures.WithLabelValues(metrics.CollaboratorResponder).Inc()
		log.Warn("responder failed", zap.Error(err))
		return NoDataAnswer
	}
	return answer
}

func (a *Assistant) history(ctx context.Context, log *zap.Logger, userID string) []model.Message {
	messages, err := a.memory.Recent(ctx, userID, a.cfg.HistoryLimit)
	if err != nil {
		metrics.CollaboratorFailures.WithLabelValues(metrics.CollaboratorMemory).Inc()
		log.Warn("failed to load history", zap.Error(err))
		return nil
	}
	return messages
}

// remember appends a message and reports whether it was stored
func (a *Assistant) remember(ctx context.Context, log *zap.Logger, userID, role, content string) bool {
	if err := a.memory.Append(ctx, userID, role, content); err != nil {
		metrics.CollaboratorFailures.WithLabelValues(metrics.CollaboratorMemory).Inc()
		log.Warn("failed to store message", zap.String("role", role), zap.Error(err))
		return false
	}
	return true
}
