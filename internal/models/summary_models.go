package models

const NotSpecified = "Not specified"

// Entities holds the clinical facts pulled out of a transcript.
type Entities struct {
	Symptoms      []string `json:"Symptoms"`
	Diagnosis     string   `json:"Diagnosis"`
	Treatment     []string `json:"Treatment"`
	CurrentStatus string   `json:"Current_Status"`
	Prognosis     string   `json:"Prognosis"`
}

// Summary is the structured medical report rendered for a transcript.
type Summary struct {
	PatientName   string   `json:"Patient_Name"`
	Symptoms      []string `json:"Symptoms"`
	Diagnosis     string   `json:"Diagnosis"`
	Treatment     []string `json:"Treatment"`
	CurrentStatus string   `json:"Current_Status"`
	Prognosis     string   `json:"Prognosis"`
}

// TranscriptReport bundles everything the "Analyze Transcript" action shows.
type TranscriptReport struct {
	Summary  Summary  `json:"summary"`
	Keywords []string `json:"keywords"`
	SOAP     SOAPNote `json:"soap"`
}
