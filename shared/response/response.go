package response

import (
	"encoding/json"
	"net/http"
)

// DefaultErrorMessage is sent when an error carries no message of its own.
const DefaultErrorMessage = "Something went wrong!"

type ErrorBody struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = DefaultErrorMessage
	}
	JSON(w, status, ErrorBody{Error: msg})
}
