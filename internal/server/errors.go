package server

import (
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/pathmaker/pkg/errors"
	"github.com/matzehuels/pathmaker/pkg/mapfile"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	Offset  *int        `json:"offset,omitempty"`
}

func statusOf(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidName:
		return http.StatusBadRequest
	case errors.ErrCodeMalformedMap, errors.ErrCodeOutOfRange, errors.ErrCodeNotMember:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeStorage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusOf(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "id", requestIDFrom(r.Context()), "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "code", code, "err", err)
	}
	resp := errorResponse{Code: code, Message: errors.UserMessage(err)}
	var perr *mapfile.ParseError
	if stderrors.As(err, &perr) {
		resp.Message += ": " + perr.Error()
		resp.Offset = &perr.Offset
	}
	writeJSON(w, status, resp)
}
