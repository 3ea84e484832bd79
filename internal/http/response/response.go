package response

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"jobboard/internal/common"
)

var errorLogger = zap.NewNop()

func SetLogger(logger *zap.Logger) {
	if logger != nil {
		errorLogger = logger
	}
}

type errorBody struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		errorLogger.Warn("response encode failed", zap.Error(err))
	}
}

func Error(w http.ResponseWriter, err error) {
	appErr, ok := common.AsError(err)
	if !ok {
		appErr = common.NewError(common.CodeInternal, "internal error", err)
	}
	status := StatusFor(appErr.Code)
	if status >= http.StatusInternalServerError {
		errorLogger.Error(appErr.Message, zap.Error(appErr), zap.ByteString("stack", appErr.Stack))
		JSON(w, status, errorBody{Error: "internal error"})
		return
	}
	JSON(w, status, errorBody{Error: appErr.Message, Errors: appErr.Fields})
}

// StatusFor maps error codes to HTTP statuses. Invalid state and conflicts are client errors
// reported as 400.
func StatusFor(code common.Code) int {
	switch code {
	case common.CodeValidation, common.CodeInvalidState, common.CodeConflict:
		return http.StatusBadRequest
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
