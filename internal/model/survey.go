package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Survey is the aggregate root: the questions an owner authored and every
// response collected for them. OwnerName is a snapshot taken at creation time.
type Survey struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	OwnerID   primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	OwnerName string             `json:"ownerName" bson:"ownerName"`
	Questions []Question         `json:"questions" bson:"questions"`
	Responses []Response         `json:"responses" bson:"responses"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Normalize replaces nil slices so the survey always encodes "responses": [].
func (s *Survey) Normalize() {
	if s.Questions == nil {
		s.Questions = []Question{}
	}
	if s.Responses == nil {
		s.Responses = []Response{}
	}
	for i := range s.Responses {
		if s.Responses[i].Answers == nil {
			s.Responses[i].Answers = []Answer{}
		}
	}
}

// SurveySummary is the index view of a survey, without questions or responses.
type SurveySummary struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	OwnerID   primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	OwnerName string             `json:"ownerName" bson:"ownerName"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// SurveyDraft is the input of survey creation.
type SurveyDraft struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
	OwnerID   string     `json:"ownerId"`
	OwnerName string     `json:"ownerName"`
}

// SurveyFilter narrows a survey listing. Zero value lists everything.
type SurveyFilter struct {
	OwnerID *primitive.ObjectID
}
