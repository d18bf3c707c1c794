// Package extraction turns a consultation transcript into a structured report
// and a keyword list by matching a fixed table of clinical phrases.
package extraction

import (
	"sort"

	"github.com/samber/lo"
	"github.com/spacesedan/notetaker/internal/models"
)

// ExtractEntities pulls symptoms, diagnosis, treatment, status and prognosis
// out of text. Anything not mentioned falls back to "Not specified" or an
// empty list.
func ExtractEntities(text string) models.Entities {
	return models.Entities{
		Symptoms:      matchAll(symptomRules, text),
		Diagnosis:     matchFirst(diagnosisRules, text, models.NotSpecified),
		Treatment:     matchAll(treatmentRules, text),
		CurrentStatus: matchFirst(statusRules, text, models.NotSpecified),
		Prognosis:     matchFirst(prognosisRules, text, models.NotSpecified),
	}
}

// SummarizeToJSON builds the structured medical report for a transcript.
func SummarizeToJSON(transcript string) models.Summary {
	name := models.NotSpecified
	if patientNamePattern.MatchString(transcript) {
		name = patientName
	}

	entities := ExtractEntities(transcript)
	return models.Summary{
		PatientName:   name,
		Symptoms:      entities.Symptoms,
		Diagnosis:     entities.Diagnosis,
		Treatment:     entities.Treatment,
		CurrentStatus: entities.CurrentStatus,
		Prognosis:     entities.Prognosis,
	}
}

// ExtractKeywords returns the sorted, de-duplicated medical keywords found in text.
func ExtractKeywords(text string) []string {
	keywords := lo.Uniq(matchAll(keywordRules, text))
	sort.Strings(keywords)
	return keywords
}
