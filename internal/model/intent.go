package model

// Action is the coarse query action
type Action string

const (
	ActionSearch  Action = "search"
	ActionDetail  Action = "detail"
	ActionGeneral Action = "general"
)

// LookupType tells the pipeline whether the query names a specific venue
type LookupType string

const (
	LookupEntity          LookupType = "entity_lookup"
	LookupEntityAttribute LookupType = "entity_attribute"
	LookupList            LookupType = "list"
)

// Must-have filter flags
const (
	MustHavePool   = "pool"
	MustHaveFamily = "family"
	MustHaveCouple = "couple"
	MustHaveLuxury = "luxury"
	MustHaveBudget = "budget"
)

// Intent is the structured reading of one query. Empty strings stand for
// "not present" on the optional fields.
type Intent struct {
	RawQuery     string     `json:"raw_query"`
	Action       Action     `json:"action"`
	SearchDomain string     `json:"search_domain,omitempty"`
	Attributes   []string   `json:"attributes"`
	MustHave     []string   `json:"must_have"`
	Entity       string     `json:"entity,omitempty"`
	EntityName   string     `json:"entity_name,omitempty"`
	LookupType   LookupType `json:"type,omitempty"`
	Exploratory  bool       `json:"exploratory"`
}

// Keywords returns the terms used to score catalog items
func (i *Intent) Keywords() []string {
	return i.MustHave
}

// EffectiveLookup resolves an unclassified lookup type to a list lookup
func (i *Intent) EffectiveLookup() LookupType {
	if i.LookupType == "" {
		return LookupList
	}
	return i.LookupType
}

// FirstAttribute returns the first requested attribute, or ""
func (i *Intent) FirstAttribute() string {
	if len(i.Attributes) == 0 {
		return ""
	}
	return i.Attributes[0]
}
