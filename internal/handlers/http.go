package handlers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/dannyrandall/moviecast/internal/logging"
	"github.com/sirupsen/logrus"
)

const defaultTimeout = 10 * time.Second

// HTTP serves a Handler over net/http. Only GET is allowed.
type HTTP struct {
	Handler Handler
	Logger  *logrus.Logger
	Timeout time.Duration
}

func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logging.WithRequest(r.Context(), h.Logger)
	log.Infof("Handling request: %s %s", r.Method, r.URL.String())

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, log, Response{
			StatusCode: http.StatusMethodNotAllowed,
			Body:       message{Message: "Method not allowed"},
		})
		return
	}

	timeout := h.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	writeJSON(w, log, h.Handler.Handle(ctx, log, requestFromQuery(r.URL.Query())))
}

// requestFromQuery keeps the first value of every query parameter.
func requestFromQuery(q url.Values) Request {
	params := make(map[string]string, len(q))
	for k, v := range q {
		if len(v) > 0 {
			params[k] = v[0]
		} else {
			params[k] = ""
		}
	}
	return Request{Params: params}
}

func writeJSON(w http.ResponseWriter, log *logrus.Entry, resp Response) {
	code, data := render(log, resp)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		log.WithError(err).Warn("error writing response")
	}
}
