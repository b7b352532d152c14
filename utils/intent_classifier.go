package utils

import (
	"insurance-chatbot-backend/knowledge"
	"insurance-chatbot-backend/models"
	"insurance-chatbot-backend/nlp"
)

// IntentClassifier extracts at most one entity and one intention from a stem sequence.
// First match wins: tokens are scanned in utterance order and, for each token, the keyword
// table is scanned in its declared order.
type IntentClassifier struct {
	normalizer *nlp.Normalizer
	keywords   *knowledge.KeywordIndex
}

func NewIntentClassifier(normalizer *nlp.Normalizer, keywords *knowledge.KeywordIndex) *IntentClassifier {
	return &IntentClassifier{
		normalizer: normalizer,
		keywords:   keywords,
	}
}

// Classify is pure: the same tokens always give the same result.
func (ic *IntentClassifier) Classify(tokens []string) models.Classification {
	return models.Classification{
		Entity:    ic.extractEntity(tokens),
		Intention: ic.extractIntention(tokens),
	}
}

// ClassifyText normalizes text and classifies the resulting stems.
func (ic *IntentClassifier) ClassifyText(text string) models.Classification {
	return ic.Classify(ic.normalizer.Normalize(text))
}

func (ic *IntentClassifier) extractEntity(tokens []string) models.Entity {
	for _, token := range tokens {
		if entity, ok := ic.keywords.MatchEntity(token); ok {
			return entity
		}
	}
	return models.EntityNone
}

func (ic *IntentClassifier) extractIntention(tokens []string) models.Intention {
	for _, token := range tokens {
		if intention, ok := ic.keywords.MatchIntention(token); ok {
			return intention
		}
	}
	return models.IntentionNone
}

// EntityKeywords exposes the entity table in scan order.
func (ic *IntentClassifier) EntityKeywords() []knowledge.LabelStems {
	return ic.keywords.EntityKeywords()
}

func (ic *IntentClassifier) IntentionKeywords() []knowledge.LabelStems {
	return ic.keywords.IntentionKeywords()
}
