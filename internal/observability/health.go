package observability

import (
	"context"
	"encoding/json"
	"net/http"
)

const (
	healthStatusOK          = "ok"
	healthStatusUnavailable = "unavailable"
)

// ReadyCheck is one named readiness probe; Check returning nil means ready.
type ReadyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type healthBody struct {
	Status string            `json:"status"`
	Failed map[string]string `json:"failed,omitempty"`
}

// HealthHandler answers liveness checks with 200 {"status":"ok"}.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		writeHealth(rw, http.StatusOK, healthBody{Status: healthStatusOK})
	})
}

// ReadyHandler runs every check. Any failure answers 503 with the failing
// check names and their errors; otherwise 200 {"status":"ok"}.
func ReadyHandler(checks ...ReadyCheck) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, hr *http.Request) {
		failed := make(map[string]string)

		for _, c := range checks {
			if err := c.Check(hr.Context()); err != nil {
				failed[c.Name] = err.Error()
			}
		}

		if len(failed) > 0 {
			writeHealth(rw, http.StatusServiceUnavailable, healthBody{Status: healthStatusUnavailable, Failed: failed})

			return
		}

		writeHealth(rw, http.StatusOK, healthBody{Status: healthStatusOK})
	})
}

func writeHealth(rw http.ResponseWriter, code int, body healthBody) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)

	_ = json.NewEncoder(rw).Encode(body) //nolint:errcheck // client went away.
}
