package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"placefinder/internal/model"
	"placefinder/internal/utils"
)

// TurnKind classifies a query before intent extraction
type TurnKind string

const (
	TurnPipeline     TurnKind = ""
	TurnIntroduction TurnKind = "intro"
	TurnGreeting     TurnKind = "greeting"
	TurnMemory       TurnKind = "memory"
	TurnFollowUp     TurnKind = "follow_up"
)

// Turn is the short-circuit reading of a query
type Turn struct {
	Kind TurnKind
	Name string // introduced name, TurnIntroduction only
}

const maxIntroducedName = 80

// greetings only count on short queries, so "hi, show me hotels" still searches
const maxGreetingWords = 3

var greetingWords = []string{"hi", "hello", "hey", "hii", "namaste", "good morning", "good afternoon", "good evening"}

var selfDescriptionPhrases = []string{
	"who are you", "what can you do", "introduce yourself",
	"tell me about yourself", "about yourself", "what are you",
}

var memoryPhrases = []string{
	"what did i ask", "what was my last question", "what was my previous question",
	"my last question", "previous question", "what did i say",
}

var followUpWords = toSet("yes", "more", "continue")

// introPatterns are tried in order; the first match supplies the name
var introPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bmy name is\s+([^,.!?\n]+)`),
	regexp.MustCompile(`(?i)\bi am\s+([^,.!?\n]+)`),
	regexp.MustCompile(`(?i)\bi['’]m\s+([^,.!?\n]+)`),
}

// ClassifyTurn detects the non-informational turns answered without the
// catalog: self-introductions, greetings, questions about earlier turns and
// single-word follow-ups.
func ClassifyTurn(query string) Turn {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Turn{}
	}

	greeted := false
	for _, g := range greetingWords {
		if utils.ContainsWord(q, g) {
			greeted = true
			break
		}
	}

	if greeted {
		if name := introducedName(query); name != "" {
			return Turn{Kind: TurnIntroduction, Name: name}
		}
	}

	if (greeted && len(strings.Fields(q)) <= maxGreetingWords) || utils.ContainsAny(q, selfDescriptionPhrases...) {
		return Turn{Kind: TurnGreeting}
	}

	if utils.ContainsAny(q, memoryPhrases...) {
		return Turn{Kind: TurnMemory}
	}

	if _, ok := followUpWords[q]; ok {
		return Turn{Kind: TurnFollowUp}
	}

	return Turn{}
}

func introducedName(query string) string {
	for _, p := range introPatterns {
		m := p.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		name := strings.TrimRight(strings.TrimSpace(m[1]), ".,!?;: ")
		if utf8.RuneCountInString(name) > maxIntroducedName {
			name = strings.TrimSpace(string([]rune(name)[:maxIntroducedName]))
		}
		return name
	}
	return ""
}

// PreviousUserMessage returns the user message before the current turn.
// history is oldest first; includesCurrent says whether its last user
// message is the turn being answered.
func PreviousUserMessage(history []model.Message, includesCurrent bool) (string, bool) {
	return previousUserMessage(history, includesCurrent, func(string) bool { return true })
}

// PreviousQuery is PreviousUserMessage skipping earlier follow-up words, so
// a run of "yes" turns keeps re-running the last real question.
func PreviousQuery(history []model.Message, includesCurrent bool) (string, bool) {
	return previousUserMessage(history, includesCurrent, func(content string) bool {
		_, followUp := followUpWords[strings.ToLower(strings.TrimSpace(content))]
		return !followUp
	})
}

func previousUserMessage(history []model.Message, includesCurrent bool, accept func(string) bool) (string, bool) {
	skip := 0
	if includesCurrent {
		skip = 1
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != model.RoleUser {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		if accept(history[i].Content) {
			return history[i].Content, true
		}
	}
	return "", false
}

// Persona renders the fixed answers of the short-circuit turns
type Persona struct {
	Name string
	City string
}

// Capabilities is the answer to plain greetings
func (p Persona) Capabilities() string {
	return fmt.Sprintf("Hi! I’m %s, a %s-based travel assistant. "+
		"I help you find hotels, budget stays, luxury resorts, villas, and amenities in %s.",
		p.Name, p.City, p.City)
}

// Welcome greets a user who introduced themselves
func (p Persona) Welcome(name string) string {
	return fmt.Sprintf("Hi %s! I’m %s, your %s travel assistant. "+
		"Ask me about hotels, resorts, villas, and places to visit in %s.",
		name, p.Name, p.City, p.City)
}

// Recall answers a question about the user's previous message
func (p Persona) Recall(previous string, ok bool) string {
	if !ok {
		return "You haven't asked me anything before this."
	}
	return fmt.Sprintf("You previously asked: \"%s\"", previous)
}
