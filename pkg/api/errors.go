package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/familytower/pkg/errors"
)

// ErrorBody is the payload of every failed request.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failure.
type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	MemberID  string `json:"memberId,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// StatusOf maps an error code to an HTTP status.
func StatusOf(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRelation, errors.ErrCodeInvalidFormat, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeMemberNotFound, errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRootExists, errors.ErrCodeDuplicateID:
		return http.StatusConflict
	case errors.ErrCodeStorage:
		return http.StatusServiceUnavailable
	case "":
		return http.StatusInternalServerError
	}
	if errors.IsValidation(err) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	detail := ErrorDetail{
		Code:      string(errors.GetCode(err)),
		Message:   errors.UserMessage(err),
		RequestID: middleware.GetReqID(r.Context()),
	}
	if detail.Code == "" {
		detail.Code = string(errors.ErrCodeInternal)
		detail.Message = "internal error"
	}
	var ve *errors.ValidationError
	if stderrors.As(err, &ve) {
		detail.Field = ve.Field
		detail.MemberID = ve.MemberID
	}
	writeJSON(w, status, ErrorBody{Error: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
