package service

import (
	"strings"

	"placefinder/internal/model"
	"placefinder/internal/utils"

	"go.uber.org/zap"
)

// IntentParser turns free-text queries into structured intents using the
// fixed rule tables in intent_tables.go. It never fails.
type IntentParser struct {
	logger *zap.Logger
}

// NewIntentParser creates a new intent parser
func NewIntentParser(logger *zap.Logger) *IntentParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntentParser{
		logger: logger.With(zap.String("component", "intent")),
	}
}

// Parse extracts the intent of a query. An empty or signal-free query yields
// the permissive default: a search with every other field empty.
func (p *IntentParser) Parse(query string) *model.Intent {
	q := strings.ToLower(strings.TrimSpace(query))

	intent := &model.Intent{
		RawQuery:   query,
		Action:     model.ActionSearch,
		Attributes: []string{},
		MustHave:   []string{},
	}
	if q == "" {
		return intent
	}

	intent.Action = detectAction(q)
	intent.SearchDomain = ResolveDomain(q)
	intent.Attributes = detectAttributes(q)
	intent.MustHave = detectMustHave(q)
	intent.Entity = extractEntity(q)
	intent.Exploratory = utils.ContainsAny(q, exploratoryPhrases...)
	classifyLookup(intent)

	p.logger.Debug("intent parsed",
		zap.String("action", string(intent.Action)),
		zap.String("domain", intent.SearchDomain),
		zap.Strings("attributes", intent.Attributes),
		zap.Strings("must_have", intent.MustHave),
		zap.String("entity", intent.Entity),
		zap.String("lookup", string(intent.LookupType)),
		zap.Bool("exploratory", intent.Exploratory),
	)

	return intent
}

// detectAction applies actionRules in order
func detectAction(q string) model.Action {
	for _, rule := range actionRules {
		for _, kw := range rule.keywords {
			if utils.ContainsWord(q, kw) {
				return rule.action
			}
		}
	}
	return model.ActionSearch
}

// ResolveDomain maps a lower-cased query to a category: the phrase table by
// longest textual match first, then the keyword table in declaration order.
// It returns "" when neither table matches.
func ResolveDomain(q string) string {
	for _, pc := range phraseToCategory {
		if strings.Contains(q, pc.phrase) {
			return pc.category
		}
	}

	for _, set := range domainKeywords {
		for _, kw := range set.keywords {
			if utils.ContainsWord(q, kw) {
				return set.key
			}
		}
	}

	return ""
}

func detectAttributes(q string) []string {
	attrs := []string{}
	for _, set := range attributeKeywords {
		for _, kw := range set.keywords {
			if utils.ContainsWord(q, kw) {
				attrs = append(attrs, set.key)
				break
			}
		}
	}
	return attrs
}

func detectMustHave(q string) []string {
	flags := []string{}
	for _, rule := range mustHaveRules {
		if utils.ContainsAny(q, rule.keywords...) {
			flags = append(flags, rule.key)
		}
	}
	return flags
}

// extractEntity joins the non-stopword tokens of the query
func extractEntity(q string) string {
	var kept []string
	for _, tok := range utils.Words(q) {
		if _, stop := entityStopwords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// IsPureCategory reports whether every word of the candidate only names a category
func IsPureCategory(candidate string) bool {
	words := strings.Fields(strings.ToLower(candidate))
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if _, ok := pureCategoryWords[w]; !ok {
			return false
		}
	}
	return true
}

// namesVenue reports whether the candidate keeps a word that is neither a
// category nor a qualifier such as "pool" or "cheap"
func namesVenue(candidate string) bool {
	for _, w := range strings.Fields(candidate) {
		_, category := pureCategoryWords[w]
		_, qualifier := qualifierWords[w]
		if !category && !qualifier {
			return true
		}
	}
	return false
}

// classifyLookup marks intents that name a specific venue. A detail request
// is an entity lookup; an attribute question whose candidate still names a
// venue once qualifiers are set aside is an entity-attribute lookup.
// Everything else stays unclassified (a list).
func classifyLookup(intent *model.Intent) {
	if intent.Entity == "" || IsPureCategory(intent.Entity) {
		return
	}

	switch {
	case intent.Action == model.ActionDetail:
		intent.LookupType = model.LookupEntity
	case len(intent.Attributes) > 0 && namesVenue(intent.Entity):
		intent.LookupType = model.LookupEntityAttribute
	default:
		return
	}
	intent.EntityName = strings.TrimSpace(intent.Entity)
}
