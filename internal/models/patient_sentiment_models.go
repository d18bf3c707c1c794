package models

type Sentiment string

const (
	SentimentAnxious   Sentiment = "Anxious"
	SentimentReassured Sentiment = "Reassured"
	SentimentNeutral   Sentiment = "Neutral"
)

type Intent string

const (
	IntentSeekingReassurance  Intent = "Seeking reassurance"
	IntentExpressingGratitude Intent = "Expressing gratitude"
	IntentReportingSymptoms   Intent = "Reporting symptoms"
)

type SentimentResult struct {
	Sentiment Sentiment `json:"Sentiment"`
	Intent    Intent    `json:"Intent"`
}

var (
	AnxiousResult   = SentimentResult{Sentiment: SentimentAnxious, Intent: IntentSeekingReassurance}
	ReassuredResult = SentimentResult{Sentiment: SentimentReassured, Intent: IntentExpressingGratitude}
	NeutralResult   = SentimentResult{Sentiment: SentimentNeutral, Intent: IntentReportingSymptoms}
)

// ClassifierLabel is the raw output of a fallback sentiment model.
type ClassifierLabel struct {
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
	Source string  `json:"source"`
}

const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
	LabelNeutral  = "NEUTRAL"
)
