package service

// Live feed event types
const (
	EventResponseSubmitted = "response_submitted"
	EventResponseDeleted   = "response_deleted"
	EventSurveyDeleted     = "survey_deleted"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSurvey(surveyID string, msgType string, payload interface{})
	DisconnectSurvey(surveyID string)
}

type nopBroadcaster struct{}

func (nopBroadcaster) BroadcastToSurvey(string, string, interface{}) {}
func (nopBroadcaster) DisconnectSurvey(string)                      {}
