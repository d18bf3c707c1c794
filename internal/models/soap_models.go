package models

type SOAPNote struct {
	Subjective Subjective `json:"Subjective"`
	Objective  Objective  `json:"Objective"`
	Assessment Assessment `json:"Assessment"`
	Plan       Plan       `json:"Plan"`
}

type Subjective struct {
	ChiefComplaint          string `json:"Chief_Complaint"`
	HistoryOfPresentIllness string `json:"History_of_Present_Illness"`
}

type Objective struct {
	PhysicalExam string `json:"Physical_Exam"`
	Observations string `json:"Observations"`
}

type Assessment struct {
	Diagnosis string `json:"Diagnosis"`
	Severity  string `json:"Severity"`
}

type Plan struct {
	Treatment string `json:"Treatment"`
	FollowUp  string `json:"Follow-Up"`
}
