package services

import (
	"insurance-chatbot-backend/knowledge"
	"insurance-chatbot-backend/models"
)

// Resolution tells which lookup branch produced a reply.
type Resolution int

const (
	ResolutionCanned Resolution = iota
	ResolutionClarification
	ResolutionFallback
)

// ResponseResolver maps a classification to a canned reply.
type ResponseResolver struct {
	table *knowledge.ResponseTable
}

func NewResponseResolver(table *knowledge.ResponseTable) *ResponseResolver {
	return &ResponseResolver{table: table}
}

// Resolve applies the lookup policy: no entity gives the global fallback, an entity
// without a matching intention gives the clarification, otherwise the exact table entry.
func (r *ResponseResolver) Resolve(c models.Classification) string {
	text, _ := r.ResolveWithKind(c)
	return text
}

func (r *ResponseResolver) ResolveWithKind(c models.Classification) (string, Resolution) {
	if !c.HasEntity() {
		return r.table.Fallback, ResolutionFallback
	}
	if text, ok := r.table.Lookup(c.Entity, c.Intention); ok {
		return text, ResolutionCanned
	}
	return r.table.Clarify(c.Entity), ResolutionClarification
}
