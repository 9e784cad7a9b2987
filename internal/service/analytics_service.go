package service

import (
	"context"

	"surveyhub/internal/model"
	"surveyhub/internal/validate"
)

// AnalyticsService aggregates the responses of a survey into per-question
// counts
type AnalyticsService struct {
	responses *ResponseService
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(responses *ResponseService) *AnalyticsService {
	return &AnalyticsService{responses: responses}
}

// Results aggregates every response of the survey. Owner or admin only.
func (s *AnalyticsService) Results(ctx context.Context, p *model.Principal, surveyID string) (*model.SurveyResults, error) {
	survey, err := s.responses.ownedSurvey(ctx, p, surveyID)
	if err != nil {
		return nil, err
	}
	return Aggregate(survey), nil
}

// Aggregate counts answers by position. Option questions get one counter per
// option, starting at zero; text questions collect their non-empty answers.
func Aggregate(survey *model.Survey) *model.SurveyResults {
	results := &model.SurveyResults{
		SurveyID:  survey.ID.Hex(),
		Title:     survey.Title,
		Responses: len(survey.Responses),
		Questions: make([]model.QuestionResult, len(survey.Questions)),
	}

	for i, q := range survey.Questions {
		qr := model.QuestionResult{Text: q.Text, Type: q.Type}
		if q.Type.HasOptions() {
			qr.Counts = make(map[string]int, len(q.Options))
			for _, opt := range q.Options {
				qr.Counts[opt] = 0
			}
		}

		for _, resp := range survey.Responses {
			if i >= len(resp.Answers) {
				continue
			}
			value := resp.Answers[i].Answer
			if value == "" {
				continue
			}

			switch q.Type {
			case model.QuestionCheckbox:
				selected := validate.DecodeCheckbox(value)
				if len(selected) == 0 {
					continue
				}
				qr.Answered++
				for _, v := range selected {
					qr.Counts[v]++
				}
			case model.QuestionMultipleChoice:
				qr.Answered++
				qr.Counts[value]++
			default:
				qr.Answered++
				qr.TextAnswers = append(qr.TextAnswers, value)
			}
		}
		results.Questions[i] = qr
	}
	return results
}
