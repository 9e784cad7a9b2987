package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Answer is one reply inside a stored response. Question holds the text of
// the question at submission time so later edits can't rewrite history.
type Answer struct {
	Question string `json:"question" bson:"question"`
	Answer   string `json:"answer" bson:"answer"`
}

// Response is one respondent's full set of answers
type Response struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Respondent  string             `json:"respondent" bson:"respondent"`
	Answers     []Answer           `json:"answers" bson:"answers"`
	SubmittedAt time.Time          `json:"submittedAt" bson:"submittedAt"`
}

// AnswerInput is one submitted answer as it arrives over the wire. It accepts
// a plain string, an array of strings (checkbox selections) or an object
// {"question": ..., "answer": string | [string]}.
type AnswerInput struct {
	Values []string
	Multi  bool // given as an array
}

var ErrAnswerShape = errors.New("answer must be a string, an array of strings or an object with an answer field")

func (a *AnswerInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrAnswerShape
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AnswerInput{Values: []string{s}}
		return nil
	case '[':
		var vs []string
		if err := json.Unmarshal(data, &vs); err != nil {
			return ErrAnswerShape
		}
		*a = AnswerInput{Values: vs, Multi: true}
		return nil
	case '{':
		var obj struct {
			Answer *AnswerInput `json:"answer"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if obj.Answer == nil { // unanswered
			*a = AnswerInput{}
			return nil
		}
		*a = *obj.Answer
		return nil
	case 'n': // null
		*a = AnswerInput{}
		return nil
	}
	return ErrAnswerShape
}

// ResponseSubmission is the input of response submission.
type ResponseSubmission struct {
	Respondent string        `json:"respondent"`
	Answers    []AnswerInput `json:"answers"`
}
