// Package knowledge loads the static keyword and response tables the classifier and the
// response resolver read from. Tables are built once at startup and never mutated.
package knowledge

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "insurance-chatbot-backend/errors"
	"insurance-chatbot-backend/models"
)

//go:embed keywords.yaml
var defaultKeywords []byte

type keywordFile struct {
	Entities   []labelKeywords `yaml:"entities"`
	Intentions []labelKeywords `yaml:"intentions"`
}

type labelKeywords struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

type entityEntry struct {
	entity   models.Entity
	keywords []string
	stems    map[string]bool
}

type intentionEntry struct {
	intention models.Intention
	keywords  []string
	stems     map[string]bool
}

// KeywordIndex holds the entity and intention stem tables in their declared order.
type KeywordIndex struct {
	entities   []entityEntry
	intentions []intentionEntry
}

// LabelStems describes one table row for introspection endpoints.
type LabelStems struct {
	Label    string   `json:"label"`
	Keywords []string `json:"keywords"`
}

// LoadKeywordIndex reads the keyword tables from path, or from the embedded defaults when
// path is empty.
func LoadKeywordIndex(path string) (*KeywordIndex, error) {
	data := defaultKeywords
	source := "embedded keywords.yaml"
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.NewKnowledgeLoadError(path, err)
		}
		data = raw
		source = path
	}

	index, err := ParseKeywordIndex(data)
	if err != nil {
		return nil, apperrors.NewKnowledgeLoadError(source, err)
	}
	return index, nil
}

// ParseKeywordIndex builds a KeywordIndex from YAML. Keywords are matched exactly as
// written, so they must already be in the form the stemmer produces: a keyword authored as
// a full word ("pagamento") never matches, because input is stemmed before lookup.
func ParseKeywordIndex(data []byte) (*KeywordIndex, error) {
	var file keywordFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse keywords: %w", err)
	}
	if len(file.Entities) == 0 {
		return nil, fmt.Errorf("entity table is empty")
	}
	if len(file.Intentions) == 0 {
		return nil, fmt.Errorf("intention table is empty")
	}

	index := &KeywordIndex{}
	seenEntities := make(map[models.Entity]bool)
	for _, row := range file.Entities {
		entity, ok := models.ParseEntity(row.Label)
		if !ok {
			return nil, fmt.Errorf("unknown entity label %q", row.Label)
		}
		if seenEntities[entity] {
			return nil, fmt.Errorf("duplicate entity label %q", row.Label)
		}
		seenEntities[entity] = true

		stems, err := buildStemSet(row)
		if err != nil {
			return nil, err
		}
		index.entities = append(index.entities, entityEntry{entity: entity, keywords: row.Keywords, stems: stems})
	}

	seenIntentions := make(map[models.Intention]bool)
	for _, row := range file.Intentions {
		intention, ok := models.ParseIntention(row.Label)
		if !ok {
			return nil, fmt.Errorf("unknown intention label %q", row.Label)
		}
		if seenIntentions[intention] {
			return nil, fmt.Errorf("duplicate intention label %q", row.Label)
		}
		seenIntentions[intention] = true

		stems, err := buildStemSet(row)
		if err != nil {
			return nil, err
		}
		index.intentions = append(index.intentions, intentionEntry{intention: intention, keywords: row.Keywords, stems: stems})
	}

	return index, nil
}

func buildStemSet(row labelKeywords) (map[string]bool, error) {
	if len(row.Keywords) == 0 {
		return nil, fmt.Errorf("label %q has no keywords", row.Label)
	}
	stems := make(map[string]bool, len(row.Keywords))
	for _, keyword := range row.Keywords {
		if keyword == "" {
			return nil, fmt.Errorf("label %q has an empty keyword", row.Label)
		}
		stems[keyword] = true
	}
	return stems, nil
}

// MatchEntity returns the first entity, in declared order, whose set contains stem.
func (k *KeywordIndex) MatchEntity(stem string) (models.Entity, bool) {
	for _, entry := range k.entities {
		if entry.stems[stem] {
			return entry.entity, true
		}
	}
	return models.EntityNone, false
}

// MatchIntention returns the first intention, in declared order, whose set contains stem.
func (k *KeywordIndex) MatchIntention(stem string) (models.Intention, bool) {
	for _, entry := range k.intentions {
		if entry.stems[stem] {
			return entry.intention, true
		}
	}
	return models.IntentionNone, false
}

func (k *KeywordIndex) EntityKeywords() []LabelStems {
	out := make([]LabelStems, 0, len(k.entities))
	for _, entry := range k.entities {
		out = append(out, LabelStems{Label: entry.entity.String(), Keywords: append([]string(nil), entry.keywords...)})
	}
	return out
}

func (k *KeywordIndex) IntentionKeywords() []LabelStems {
	out := make([]LabelStems, 0, len(k.intentions))
	for _, entry := range k.intentions {
		out = append(out, LabelStems{Label: entry.intention.String(), Keywords: append([]string(nil), entry.keywords...)})
	}
	return out
}
