package handlers

import (
	"net/http"

	"jobboard/internal/http/response"
)

func Health(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
