// Package followup implements the scheduling and claim data-collection flows as explicit
// state machines. A flow never reads input itself: callers ask Next for the pending field,
// show its prompt however they like and hand the answer back through Submit.
package followup

import (
	"fmt"

	apperrors "insurance-chatbot-backend/errors"
	"insurance-chatbot-backend/models"
)

// Kind identifies a follow-up flow.
type Kind string

const (
	KindScheduling Kind = "scheduling"
	KindClaim      Kind = "claim"
)

// Field is one question a flow asks.
type Field struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

const (
	FieldDate        = "date"
	FieldTime        = "time"
	FieldReason      = "reason"
	FieldType        = "type"
	FieldDescription = "description"
)

var schedulingFields = []Field{
	{Name: FieldDate, Prompt: "Qual a data desejada para o agendamento? (Formato: DD/MM/AAAA)"},
	{Name: FieldTime, Prompt: "Qual o horário desejado? (Formato: HH:MM)"},
	{Name: FieldReason, Prompt: "Qual o motivo do agendamento? (Exemplo: revisão de cobertura, vistoria, etc.)"},
}

var claimFields = []Field{
	{Name: FieldDate, Prompt: "Qual a data do sinistro? (Formato: DD/MM/AAAA)"},
	{Name: FieldType, Prompt: "Qual foi o tipo de sinistro? (Exemplo: colisão, roubo, furto)"},
	{Name: FieldDescription, Prompt: "Por favor, forneça uma breve descrição do ocorrido."},
}

var intros = map[Kind]string{
	KindScheduling: "Por favor, informe os detalhes do agendamento.",
	KindClaim:      "Vamos registrar seu sinistro. Por favor, informe os detalhes.",
}

// Trigger reports which flow, if any, a classification starts. The two trigger pairs
// never overlap, so at most one flow starts per classification.
func Trigger(c models.Classification) (Kind, bool) {
	switch {
	case c.Entity == models.EntityVehicleInsurance && c.Intention == models.IntentionSchedule:
		return KindScheduling, true
	case c.Entity == models.EntityClaim && c.Intention == models.IntentionRequest:
		return KindClaim, true
	default:
		return "", false
	}
}

// Fields returns the ordered questions of a flow kind.
func Fields(kind Kind) []Field {
	switch kind {
	case KindScheduling:
		return schedulingFields
	case KindClaim:
		return claimFields
	default:
		return nil
	}
}

// State is the serializable snapshot of a flow, stored between web requests.
type State struct {
	Kind   Kind     `json:"kind"`
	Values []string `json:"values"`
}

// Flow is a strict linear sequence of free-text questions. Answers are stored verbatim.
type Flow struct {
	kind   Kind
	fields []Field
	values []string
}

// New starts an empty flow of the given kind.
func New(kind Kind) (*Flow, error) {
	fields := Fields(kind)
	if fields == nil {
		return nil, apperrors.NewInvalidRequestError(fmt.Sprintf("unknown follow-up flow %q", kind))
	}
	return &Flow{kind: kind, fields: fields, values: make([]string, 0, len(fields))}, nil
}

// Restore rebuilds a flow from a stored State.
func Restore(state State) (*Flow, error) {
	flow, err := New(state.Kind)
	if err != nil {
		return nil, err
	}
	if len(state.Values) > len(flow.fields) {
		return nil, apperrors.NewInvalidRequestError(
			fmt.Sprintf("follow-up flow %q has %d answers, expected at most %d", state.Kind, len(state.Values), len(flow.fields)))
	}
	flow.values = append(flow.values, state.Values...)
	return flow, nil
}

func (f *Flow) Kind() Kind {
	return f.kind
}

// Intro is the line shown once before the first question of a flow kind.
func Intro(kind Kind) string {
	return intros[kind]
}

func (f *Flow) Intro() string {
	return Intro(f.kind)
}

// Next returns the field the flow is waiting for. ok is false once every field is answered.
func (f *Flow) Next() (field Field, ok bool) {
	if f.Done() {
		return Field{}, false
	}
	return f.fields[len(f.values)], true
}

// Submit records the answer to the pending field.
func (f *Flow) Submit(value string) error {
	if f.Done() {
		return apperrors.NewFlowCompleteError(string(f.kind))
	}
	f.values = append(f.values, value)
	return nil
}

func (f *Flow) Done() bool {
	return len(f.values) == len(f.fields)
}

func (f *Flow) State() State {
	return State{Kind: f.kind, Values: append([]string(nil), f.values...)}
}

func (f *Flow) value(name string) string {
	for i, field := range f.fields {
		if field.Name == name && i < len(f.values) {
			return f.values[i]
		}
	}
	return ""
}

// Appointment builds the record captured by a finished scheduling flow.
func (f *Flow) Appointment() (*models.Appointment, error) {
	if f.kind != KindScheduling {
		return nil, apperrors.NewInvalidRequestError(fmt.Sprintf("flow %q does not produce an appointment", f.kind))
	}
	if !f.Done() {
		return nil, apperrors.NewInvalidRequestError("scheduling flow is not complete")
	}
	return &models.Appointment{
		Date:   f.value(FieldDate),
		Time:   f.value(FieldTime),
		Reason: f.value(FieldReason),
	}, nil
}

// Claim builds the record captured by a finished claim flow.
func (f *Flow) Claim() (*models.Claim, error) {
	if f.kind != KindClaim {
		return nil, apperrors.NewInvalidRequestError(fmt.Sprintf("flow %q does not produce a claim", f.kind))
	}
	if !f.Done() {
		return nil, apperrors.NewInvalidRequestError("claim flow is not complete")
	}
	return &models.Claim{
		Date:        f.value(FieldDate),
		Type:        f.value(FieldType),
		Description: f.value(FieldDescription),
	}, nil
}

// AppointmentConfirmation echoes the stored fields verbatim.
func AppointmentConfirmation(a *models.Appointment) string {
	return fmt.Sprintf("Agendamento realizado com sucesso! Detalhes:\n  Data: %s\n  Hora: %s\n  Motivo: %s",
		a.Date, a.Time, a.Reason)
}

// ClaimConfirmation echoes the stored fields verbatim.
func ClaimConfirmation(c *models.Claim) string {
	return fmt.Sprintf("Sinistro registrado com sucesso! Detalhes:\n  Data: %s\n  Tipo: %s\n  Descrição: %s",
		c.Date, c.Type, c.Description)
}
