package models

import "fmt"

// Entity is the insurance subject an utterance talks about.
type Entity int

const (
	EntityNone Entity = iota
	EntityVehicleInsurance
	EntityClaim
	EntityCoverage
	EntityPayment
)

var entityLabels = map[Entity]string{
	EntityVehicleInsurance: "seguro_veicular",
	EntityClaim:            "sinistro",
	EntityCoverage:         "cobertura",
	EntityPayment:          "pagamento",
}

// Entities lists every known entity in declaration order.
func Entities() []Entity {
	return []Entity{EntityVehicleInsurance, EntityClaim, EntityCoverage, EntityPayment}
}

func (e Entity) String() string {
	return entityLabels[e]
}

func (e Entity) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Entity) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*e = EntityNone
		return nil
	}
	parsed, ok := ParseEntity(string(text))
	if !ok {
		return fmt.Errorf("unknown entity %q", string(text))
	}
	*e = parsed
	return nil
}

// ParseEntity maps a table label such as "seguro_veicular" to its Entity.
func ParseEntity(label string) (Entity, bool) {
	for e, l := range entityLabels {
		if l == label {
			return e, true
		}
	}
	return EntityNone, false
}

// Intention is the action the user wants to take about an entity.
type Intention int

const (
	IntentionNone Intention = iota
	IntentionQuery
	IntentionRequest
	IntentionSchedule
	IntentionStatus
)

var intentionLabels = map[Intention]string{
	IntentionQuery:    "consultar",
	IntentionRequest:  "solicitar",
	IntentionSchedule: "agendar",
	IntentionStatus:   "status",
}

// Intentions lists every known intention in declaration order.
func Intentions() []Intention {
	return []Intention{IntentionQuery, IntentionRequest, IntentionSchedule, IntentionStatus}
}

func (i Intention) String() string {
	return intentionLabels[i]
}

func (i Intention) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *Intention) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*i = IntentionNone
		return nil
	}
	parsed, ok := ParseIntention(string(text))
	if !ok {
		return fmt.Errorf("unknown intention %q", string(text))
	}
	*i = parsed
	return nil
}

// ParseIntention maps a table label such as "agendar" to its Intention.
func ParseIntention(label string) (Intention, bool) {
	for i, l := range intentionLabels {
		if l == label {
			return i, true
		}
	}
	return IntentionNone, false
}

// Classification is the result of running the classifier over one utterance.
// A zero field means nothing in that category matched.
type Classification struct {
	Entity    Entity    `json:"entity,omitempty" bson:"entity,omitempty"`
	Intention Intention `json:"intention,omitempty" bson:"intention,omitempty"`
}

func (c Classification) HasEntity() bool {
	return c.Entity != EntityNone
}

func (c Classification) HasIntention() bool {
	return c.Intention != IntentionNone
}
