package model

// QuestionResult aggregates the answers given to one question.
// Counts is keyed by option and only present for option questions;
// TextAnswers collects non-empty free-text answers in submission order.
type QuestionResult struct {
	Text        string         `json:"text"`
	Type        QuestionType   `json:"type"`
	Answered    int            `json:"answered"`
	Counts      map[string]int `json:"counts,omitempty"`
	TextAnswers []string       `json:"textAnswers,omitempty"`
}

// SurveyResults is the aggregated view of all responses of a survey
type SurveyResults struct {
	SurveyID  string           `json:"surveyId"`
	Title     string           `json:"title"`
	Responses int              `json:"responses"`
	Questions []QuestionResult `json:"questions"`
}
