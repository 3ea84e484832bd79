package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"jobboard/internal/common"
)

func decodeJSON(r *http.Request, dest any) error {
	if r.Body == nil {
		return common.NewValidationError("request body is required", nil)
	}
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return common.NewValidationError("invalid request", map[string]string{
				typeErr.Field: fmt.Sprintf("%s must be a %s", typeErr.Field, jsonTypeName(typeErr.Type.Kind().String())),
			})
		case errors.As(err, &maxErr):
			return common.NewValidationError("request body too large", nil)
		case errors.Is(err, io.EOF):
			return common.NewValidationError("request body is required", nil)
		default:
			return common.NewValidationError("invalid json", nil)
		}
	}
	return nil
}

func jsonTypeName(kind string) string {
	switch kind {
	case "slice", "array":
		return "list"
	case "struct", "map":
		return "object"
	case "float64", "float32", "int", "int64":
		return "number"
	case "ptr":
		return "value of the expected type"
	default:
		return kind
	}
}

func idFromPath(r *http.Request, param string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, param))
	if id == "" {
		return "", common.NewValidationError("invalid request", map[string]string{param: param + " is required"})
	}
	return id, nil
}
