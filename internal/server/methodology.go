package server

type methodologyEntry struct {
	Question string
	Answers  []string
}

var methodology = []methodologyEntry{
	{
		Question: "How would you handle ambiguous or missing medical data?",
		Answers: []string{
			"Use context and negation detection to avoid false positives.",
			`If a field is missing, output "Not specified".`,
			"For ambiguous terms, prefer clinician statements over patient self-report.",
		},
	},
	{
		Question: "What NLP models for medical summarization?",
		Answers: []string{
			"Rule tables with custom patterns for entity extraction.",
			"Transformers (BERT, ClinicalBERT, SciSpacy).",
		},
	},
	{
		Question: "How would you fine-tune BERT for medical sentiment?",
		Answers: []string{
			"Collect a labeled dataset of patient dialogues.",
			"Fine-tune BERT/ClinicalBERT with supervised learning.",
			"Validate on held-out real clinical conversations.",
		},
	},
	{
		Question: "What datasets for healthcare-specific sentiment?",
		Answers: []string{
			"i2b2/UTHealth notes, MEDIQA, MIMIC-III, patient opinion mining datasets.",
		},
	},
	{
		Question: "How to train model for SOAP mapping?",
		Answers: []string{
			"Annotate transcripts with SOAP sections.",
			"Fine-tune seq2seq models (T5, BART) or use rules for structure.",
		},
	},
	{
		Question: "Techniques to improve SOAP note accuracy?",
		Answers: []string{
			"Rule-based for structure, deep learning for content.",
			"Section-specific models, post-processing validation.",
		},
	},
}
