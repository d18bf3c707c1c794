package models

type InferenceRequest struct {
	Inputs string `json:"inputs"`
}

// InferenceResponse mirrors the text-classification payload of the Hugging Face
// inference API: one list of scored labels per input.
type (
	InferenceResponse [][]InferenceLabel
	InferenceLabel    struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
)
