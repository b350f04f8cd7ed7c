package apperror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/user/finstarter-go/logging"
)

// WriteJSON serializes data to JSON and writes it with the given status.
// A nil data writes headers only.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already out; nothing useful can be sent.
		logging.Default().Error(context.Background(), "failed to encode response", "error", err)
	}
}

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// DecodeJSON reads a JSON request body into dst. A malformed or empty body
// becomes a BadRequestError.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return NewBadRequestError("Request body is empty", err)
		}
		return NewBadRequestError("Invalid request payload", err)
	}
	return nil
}

// WriteError renders err as a standardized error response. Anything that is
// not already an *AppError is treated as an internal failure. 5xx errors are
// logged with their full chain; the client only ever sees a generic message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := FromError(err)
	if !ok {
		appErr = NewInternalError("unexpected error", err)
	}

	if appErr.IsServerError() {
		ctx := r.Context()
		logging.FromContext(ctx).Error(ctx, "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", appErr.Error(),
		)
	}

	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}

// Recover is the top-level recovery boundary: a panic anywhere below it is
// logged and reclassified as an opaque 500.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				// Deliberate abort; let net/http handle it.
				panic(rvr)
			}
			WriteError(w, r, NewInternalError("panic", fmt.Errorf("%v", rvr)))
		}()
		next.ServeHTTP(w, r)
	})
}
