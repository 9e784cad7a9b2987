// Package validate holds every input rule of the API: struct tags on request
// bodies are checked with go-playground/validator, survey and response rules
// are checked here by hand because they depend on each other.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"surveyhub/internal/apperr"
	"surveyhub/internal/model"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		// report json names so clients can map errors back to their payload
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return v
}

// Struct checks the validate tags of s and returns the first failing field as
// a ValidationError.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Internal("validate", err)
	}
	fe := verrs[0]
	return apperr.Validation(fe.Field(), "%s", describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "is invalid"
}

// ObjectID parses a 24-hex id. field names the offending input.
func ObjectID(field, hex string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperr.Validation(field, "must be a 24-character hex id")
	}
	return oid, nil
}

// SurveyDraft checks the title and question list of a new survey. Option
// questions need at least minOptions distinct, non-blank options; text
// questions take none.
func SurveyDraft(d *model.SurveyDraft, minOptions int) error {
	if strings.TrimSpace(d.Title) == "" {
		return apperr.Validation("title", "is required")
	}
	if len(d.Questions) == 0 {
		return apperr.Validation("questions", "at least one question is required")
	}

	for i, q := range d.Questions {
		path := fmt.Sprintf("questions[%d]", i)
		if strings.TrimSpace(q.Text) == "" {
			return apperr.Validation(path+".text", "is required")
		}
		if !q.Type.Valid() {
			return apperr.Validation(path+".type", "must be one of: %s, %s, %s",
				model.QuestionMultipleChoice, model.QuestionCheckbox, model.QuestionText)
		}
		if !q.Type.HasOptions() {
			if len(q.Options) > 0 {
				return apperr.Validation(path+".options", "text questions take no options")
			}
			continue
		}

		if len(q.Options) < minOptions {
			return apperr.Validation(path+".options", "at least %d option(s) required", minOptions)
		}
		seen := make(map[string]bool, len(q.Options))
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return apperr.Validation(fmt.Sprintf("%s.options[%d]", path, j), "must not be blank")
			}
			if seen[opt] {
				return apperr.Validation(fmt.Sprintf("%s.options[%d]", path, j), "duplicate option %q", opt)
			}
			seen[opt] = true
		}
	}
	return nil
}

// Submission checks a response against the survey's questions and builds the
// stored answers. Answers match questions by position and each carries the
// question text as it reads now.
func Submission(questions []model.Question, sub *model.ResponseSubmission) ([]model.Answer, error) {
	if strings.TrimSpace(sub.Respondent) == "" {
		return nil, apperr.Validation("respondent", "is required")
	}
	if sub.Answers == nil {
		return nil, apperr.Validation("answers", "must be an array")
	}
	if len(sub.Answers) != len(questions) {
		return nil, apperr.Validation("answers", "expected %d answers, got %d", len(questions), len(sub.Answers))
	}

	answers := make([]model.Answer, len(questions))
	for i, q := range questions {
		value, err := answerValue(q, sub.Answers[i])
		if err != nil {
			return nil, apperr.Validation(fmt.Sprintf("answers[%d]", i), "%s", err.Error())
		}
		answers[i] = model.Answer{Question: q.Text, Answer: value}
	}
	return answers, nil
}

func answerValue(q model.Question, in model.AnswerInput) (string, error) {
	if q.Type == model.QuestionCheckbox {
		if len(in.Values) == 0 {
			return "", nil
		}
		for _, val := range in.Values {
			if !q.HasOption(val) {
				return "", fmt.Errorf("%q is not an option", val)
			}
		}
		b, err := json.Marshal(in.Values)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	if len(in.Values) > 1 {
		return "", errors.New("takes a single value")
	}
	value := ""
	if len(in.Values) == 1 {
		value = in.Values[0]
	}
	if q.Type == model.QuestionMultipleChoice && value != "" && !q.HasOption(value) {
		return "", fmt.Errorf("%q is not an option", value)
	}
	return value, nil
}

// DecodeCheckbox reverses the checkbox serialization. Unparseable or empty
// values yield no selections.
func DecodeCheckbox(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}
