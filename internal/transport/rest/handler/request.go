package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"surveyhub/internal/apperr"
	"surveyhub/internal/model"

	"github.com/go-chi/render"
)

// maxBodySize bounds every JSON request body
const maxBodySize = 1 << 20

// decode reads the JSON body into v and classifies malformed input as a
// ValidationError naming the offending field where the decoder knows it.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	err := render.DecodeJSON(r.Body, v)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return apperr.Validation("body", "request body is required")
	case errors.As(err, &typeErr) && typeErr.Field != "":
		if typeErr.Field == "answers" {
			return apperr.Validation("answers", "must be an array")
		}
		return apperr.Validation(typeErr.Field, "must be of type %s", typeErr.Type.Kind())
	case errors.Is(err, model.ErrAnswerShape):
		return apperr.Validation("answers", "%s", err.Error())
	case errors.As(err, &maxErr):
		return apperr.Validation("body", "request body is too large")
	}
	return apperr.Validation("body", "request body must be valid JSON")
}
