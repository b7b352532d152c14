package knowledge

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "insurance-chatbot-backend/errors"
	"insurance-chatbot-backend/models"
)

//go:embed responses.yaml
var defaultResponses []byte

type responseFile struct {
	Greeting      string                       `yaml:"greeting"`
	Farewell      string                       `yaml:"farewell"`
	Fallback      string                       `yaml:"fallback"`
	Clarification string                       `yaml:"clarification"`
	Responses     map[string]map[string]string `yaml:"responses"`
}

// ResponseTable holds the canned replies keyed by entity and intention.
type ResponseTable struct {
	Greeting      string
	Farewell      string
	Fallback      string
	clarification string
	entries       map[models.Entity]map[models.Intention]string
}

// LoadResponseTable reads the response table from path, or from the embedded defaults when
// path is empty.
func LoadResponseTable(path string) (*ResponseTable, error) {
	data := defaultResponses
	source := "embedded responses.yaml"
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.NewKnowledgeLoadError(path, err)
		}
		data = raw
		source = path
	}

	table, err := ParseResponseTable(data)
	if err != nil {
		return nil, apperrors.NewKnowledgeLoadError(source, err)
	}
	return table, nil
}

func ParseResponseTable(data []byte) (*ResponseTable, error) {
	var file responseFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse responses: %w", err)
	}
	if file.Fallback == "" {
		return nil, fmt.Errorf("fallback response is required")
	}
	if strings.Count(file.Clarification, "%s") != 1 {
		return nil, fmt.Errorf("clarification must contain exactly one %%s placeholder")
	}
	if len(file.Responses) == 0 {
		return nil, fmt.Errorf("response table is empty")
	}

	table := &ResponseTable{
		Greeting:      file.Greeting,
		Farewell:      file.Farewell,
		Fallback:      file.Fallback,
		clarification: file.Clarification,
		entries:       make(map[models.Entity]map[models.Intention]string, len(file.Responses)),
	}
	for entityLabel, row := range file.Responses {
		entity, ok := models.ParseEntity(entityLabel)
		if !ok {
			return nil, fmt.Errorf("unknown entity label %q in responses", entityLabel)
		}
		entries := make(map[models.Intention]string, len(row))
		for intentionLabel, text := range row {
			intention, ok := models.ParseIntention(intentionLabel)
			if !ok {
				return nil, fmt.Errorf("unknown intention label %q under %q", intentionLabel, entityLabel)
			}
			entries[intention] = text
		}
		table.entries[entity] = entries
	}

	return table, nil
}

// Lookup returns the canned reply for the pair, if the table has one.
func (t *ResponseTable) Lookup(entity models.Entity, intention models.Intention) (string, bool) {
	row, ok := t.entries[entity]
	if !ok {
		return "", false
	}
	text, ok := row[intention]
	return text, ok
}

// Clarify echoes the entity label back and asks the user to be more specific.
func (t *ResponseTable) Clarify(entity models.Entity) string {
	return fmt.Sprintf(t.clarification, entity.String())
}

// Pairs lists every (entity, intention) pair that has a canned reply.
func (t *ResponseTable) Pairs() []models.Classification {
	var pairs []models.Classification
	for _, entity := range models.Entities() {
		for _, intention := range models.Intentions() {
			if _, ok := t.Lookup(entity, intention); ok {
				pairs = append(pairs, models.Classification{Entity: entity, Intention: intention})
			}
		}
	}
	return pairs
}
