package model

// QuestionType defines how a question is answered
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice" // exactly one option
	QuestionCheckbox       QuestionType = "checkbox"        // any subset of the options
	QuestionText           QuestionType = "text"            // free text, no options
)

// Valid reports whether t is one of the recognized tags.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMultipleChoice, QuestionCheckbox, QuestionText:
		return true
	}
	return false
}

// HasOptions reports whether questions of this type carry an option set.
func (t QuestionType) HasOptions() bool {
	return t == QuestionMultipleChoice || t == QuestionCheckbox
}

// Question is one prompt of a survey
type Question struct {
	Text    string       `json:"text" bson:"text"`
	Type    QuestionType `json:"type" bson:"type"`
	Options []string     `json:"options,omitempty" bson:"options,omitempty"`
}

// HasOption reports whether v is one of the question's options.
func (q Question) HasOption(v string) bool {
	for _, o := range q.Options {
		if o == v {
			return true
		}
	}
	return false
}
