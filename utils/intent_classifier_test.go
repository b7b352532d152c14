package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurance-chatbot-backend/knowledge"
	"insurance-chatbot-backend/models"
	"insurance-chatbot-backend/nlp"
)

func newTestClassifier(t *testing.T) *IntentClassifier {
	t.Helper()
	normalizer := nlp.NewNormalizer("pt-BR")
	index, err := knowledge.LoadKeywordIndex("")
	require.NoError(t, err)
	return NewIntentClassifier(normalizer, index)
}

func TestIntentClassifier_ClassifyText(t *testing.T) {
	ic := newTestClassifier(t)

	tests := []struct {
		name      string
		text      string
		entity    models.Entity
		intention models.Intention
	}{
		{
			name:      "coverage query",
			text:      "Quero verificar minha cobertura de incêndio",
			entity:    models.EntityCoverage,
			intention: models.IntentionQuery,
		},
		{
			name:      "vehicle schedule",
			text:      "Quero agendar uma revisão do meu seguro do carro",
			entity:    models.EntityVehicleInsurance,
			intention: models.IntentionSchedule,
		},
		{
			name:      "claim request",
			text:      "Quero solicitar um sinistro do carro",
			entity:    models.EntityClaim,
			intention: models.IntentionRequest,
		},
		{
			name:      "payment status",
			text:      "Qual o status do meu pagamento?",
			entity:    models.EntityPayment,
			intention: models.IntentionStatus,
		},
		{
			name:   "entity only",
			text:   "Tenho um acidente",
			entity: models.EntityClaim,
		},
		{
			name:      "intention only",
			text:      "Quero saber",
			intention: models.IntentionQuery,
		},
		{
			name: "no keywords",
			text: "asdf qwerty zzz",
		},
		{
			name: "empty",
			text: "",
		},
		{
			name:   "numerals ignored",
			text:   "Meu boleto 123",
			entity: models.EntityPayment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ic.ClassifyText(tt.text)
			assert.Equal(t, tt.entity, got.Entity)
			assert.Equal(t, tt.intention, got.Intention)
		})
	}
}

func TestIntentClassifier_FirstTokenWins(t *testing.T) {
	ic := newTestClassifier(t)

	assert.Equal(t, models.EntityVehicleInsurance, ic.ClassifyText("Meu carro teve um acidente").Entity)
	assert.Equal(t, models.EntityClaim, ic.ClassifyText("Um acidente com o carro").Entity)

	// Both tokens are intentions; the earlier one decides.
	assert.Equal(t, models.IntentionSchedule, ic.Classify([]string{"agend", "consult"}).Intention)
	assert.Equal(t, models.IntentionQuery, ic.Classify([]string{"consult", "agend"}).Intention)
}

func TestIntentClassifier_DeclaredOrderBreaksTies(t *testing.T) {
	ic := newTestClassifier(t)

	// "cobert" sits in both cobertura and seguro_veicular; cobertura is declared first.
	got := ic.Classify([]string{"cobert"})
	assert.Equal(t, models.EntityCoverage, got.Entity)
	assert.Equal(t, models.IntentionNone, got.Intention)
}

func TestIntentClassifier_Idempotent(t *testing.T) {
	ic := newTestClassifier(t)
	tokens := []string{"quer", "verific", "cobert", "incêndi"}

	first := ic.Classify(tokens)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ic.Classify(tokens))
	}
	assert.Equal(t, []string{"quer", "verific", "cobert", "incêndi"}, tokens)
}

func TestIntentClassifier_NoMatchIsNone(t *testing.T) {
	ic := newTestClassifier(t)

	got := ic.Classify(nil)
	assert.False(t, got.HasEntity())
	assert.False(t, got.HasIntention())
}

func TestIntentClassifier_UnstemmedKeywordsNeverMatch(t *testing.T) {
	// Full words as authored in the first keyword tables, before they were rewritten as stems.
	table := "entities:\n" +
		"  - label: sinistro\n    keywords: [colisão, carro]\n" +
		"  - label: pagamento\n    keywords: [pagamento, boleto]\n" +
		"intentions:\n" +
		"  - label: consultar\n    keywords: [saber]\n" +
		"  - label: status\n    keywords: [status]\n"
	index, err := knowledge.ParseKeywordIndex([]byte(table))
	require.NoError(t, err)
	ic := NewIntentClassifier(nlp.NewNormalizer("pt-BR"), index)

	for _, text := range []string{
		"Qual o status do meu pagamento?",
		"Quero saber da colisão do carro",
		"Meu boleto",
	} {
		got := ic.ClassifyText(text)
		assert.Equal(t, models.EntityNone, got.Entity, text)
		assert.Equal(t, models.IntentionNone, got.Intention, text)
	}

	// The same words written as stems do match.
	assert.Equal(t, models.EntityPayment, newTestClassifier(t).ClassifyText("Qual o status do meu pagamento?").Entity)
}
