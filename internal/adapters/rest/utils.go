package rest

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// WriteJSONError writes {"error": message} with the given status.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteValidationError reports every rejected field at once.
func WriteValidationError(w http.ResponseWriter, fields map[string]string) {
	RespondWithJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:  "Please correct the highlighted fields.",
		Fields: fields,
	})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func parseString(query url.Values, key string) string {
	return strings.TrimSpace(query.Get(key))
}

// parseInt64 treats missing and unparsable values alike: the filter is absent.
func parseInt64(query url.Values, key string) *int64 {
	valStr := strings.TrimSpace(query.Get(key))
	if valStr == "" {
		return nil
	}
	val, err := strconv.ParseInt(valStr, 10, 64)
	if err != nil {
		return nil
	}
	return &val
}

func parseInt(query url.Values, key string) *int {
	valStr := strings.TrimSpace(query.Get(key))
	if valStr == "" {
		return nil
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return nil
	}
	return &val
}

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

func isFormRequest(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data")
}
