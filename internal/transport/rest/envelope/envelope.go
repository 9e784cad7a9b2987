// Package envelope is the single response contract of the HTTP API. Every
// body carries a status discriminator; clients should branch on it rather
// than on the HTTP status alone.
package envelope

import (
	"errors"
	"net/http"

	"surveyhub/internal/apperr"
	"surveyhub/internal/log"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the JSON body of every API response
type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Kind    apperr.Kind `json:"kind,omitempty"`
	Field   string      `json:"field,omitempty"`
	Message string      `json:"message,omitempty"`
}

// JSON writes a success envelope around data
func JSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	render.Status(r, status)
	render.JSON(w, r, Response{Status: StatusSuccess, Data: data})
}

// Error writes the failure envelope for err. Infrastructure faults are
// logged with their cause and reported with a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)

	resp := Response{Status: StatusError, Kind: kind, Message: "internal server error"}
	var e *apperr.Error
	if errors.As(err, &e) {
		resp.Field = e.Field
		resp.Message = e.Message
	}

	entry := log.WithFields(log.Fields{
		"request_id": middleware.GetReqID(r.Context()),
		"method":     r.Method,
		"path":       r.URL.Path,
		"kind":       kind,
	})
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error("request failed")
	} else {
		entry.Debug(err.Error())
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}
