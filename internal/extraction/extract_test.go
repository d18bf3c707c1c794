package extraction

import (
	"strings"
	"testing"

	"github.com/spacesedan/notetaker/internal/models"
	"github.com/spacesedan/notetaker/internal/samples"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeToJSON_SampleTranscript(t *testing.T) {
	summary := SummarizeToJSON(samples.Transcript)

	require.Equal(t, "Janet Jones", summary.PatientName)
	require.Equal(t, "Whiplash injury", summary.Diagnosis)
	require.Equal(t, []string{
		"Neck pain",
		"Back pain",
		"Trouble sleeping",
		"Discomfort",
		"Occasional backache",
	}, summary.Symptoms)
	require.Equal(t, []string{
		"10 physiotherapy sessions",
		"Painkillers",
		"Advice",
		"Follow-up",
	}, summary.Treatment)
	require.Equal(t, "Occasional backache", summary.CurrentStatus)
	require.Equal(t, "Full recovery expected within six months", summary.Prognosis)
}

func TestSummarizeToJSON_MinimalPhrases(t *testing.T) {
	text := "Diagnosis: WHIPLASH INJURY. Plan: ten sessions, painkillers. Complaint: neck pain."
	summary := SummarizeToJSON(text)

	assert.Equal(t, "Whiplash injury", summary.Diagnosis)
	assert.Contains(t, summary.Treatment, "10 physiotherapy sessions")
	assert.Contains(t, summary.Treatment, "Painkillers")
	assert.Equal(t, []string{"Neck pain"}, summary.Symptoms)
	assert.Equal(t, models.NotSpecified, summary.PatientName)
}

func TestSummarizeToJSON_Empty(t *testing.T) {
	summary := SummarizeToJSON("")

	assert.Equal(t, models.NotSpecified, summary.PatientName)
	assert.Equal(t, models.NotSpecified, summary.Diagnosis)
	assert.Equal(t, models.NotSpecified, summary.CurrentStatus)
	assert.Equal(t, models.NotSpecified, summary.Prognosis)
	assert.NotNil(t, summary.Symptoms)
	assert.Empty(t, summary.Symptoms)
	assert.NotNil(t, summary.Treatment)
	assert.Empty(t, summary.Treatment)
}

func TestPatientNameIsCaseSensitive(t *testing.T) {
	assert.Equal(t, models.NotSpecified, SummarizeToJSON("ms. jones came in today").PatientName)
	assert.Equal(t, models.NotSpecified, SummarizeToJSON("Ms Jones came in today").PatientName)
	assert.Equal(t, "Janet Jones", SummarizeToJSON("Mr. Jones came in today").PatientName)
	assert.Equal(t, "Janet Jones", SummarizeToJSON("Patient: Janet Jones").PatientName)
}

func TestExtractEntities_StatusPrecedence(t *testing.T) {
	entities := ExtractEntities("I'm doing better but still get an occasional backache")
	assert.Equal(t, "Occasional backache", entities.CurrentStatus)

	entities = ExtractEntities("I'm doing better these days")
	assert.Equal(t, "Doing better", entities.CurrentStatus)
}

func TestExtractEntities_FollowUpVariants(t *testing.T) {
	for _, text := range []string{"follow-up", "follow up", "FOLLOWUP"} {
		entities := ExtractEntities(text)
		assert.Equal(t, []string{"Follow-up"}, entities.Treatment, text)
	}
}

func TestExtractEntities_HeadImpact(t *testing.T) {
	assert.Contains(t, ExtractEntities("there was a head impact").Symptoms, "Head impact")
	assert.NotContains(t, ExtractEntities("I hit my head").Symptoms, "Head impact")
}

func TestExtractKeywords_SampleTranscript(t *testing.T) {
	keywords := ExtractKeywords(samples.Transcript)

	require.Equal(t, []string{
		"10 physiotherapy sessions",
		"Back pain",
		"Backache",
		"Discomfort",
		"Full recovery",
		"Neck pain",
		"Painkillers",
		"Stiffness",
		"Trouble sleeping",
		"Whiplash injury",
	}, keywords)
}

func TestExtractKeywords_IdempotentAndOrderIndependent(t *testing.T) {
	a := "stiffness, then whiplash injury, then painkillers and physiotherapy"
	b := "painkillers and 10 sessions. Whiplash injury. Stiffness. Whiplash injury again."

	first := ExtractKeywords(a)
	require.Equal(t, first, ExtractKeywords(a))
	require.Equal(t, first, ExtractKeywords(b))
	require.True(t, isSortedUnique(first))
}

func TestExtractKeywords_Empty(t *testing.T) {
	keywords := ExtractKeywords("")
	require.NotNil(t, keywords)
	require.Empty(t, keywords)
}

func isSortedUnique(items []string) bool {
	for i := 1; i < len(items); i++ {
		if strings.Compare(items[i-1], items[i]) >= 0 {
			return false
		}
	}
	return true
}
