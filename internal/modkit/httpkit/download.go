package httpkit

import (
	"mime"
	"net/http"

	phttp "labqc/internal/platform/net/http"
)

// File is a body served as a download instead of a JSON envelope
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Download adapts a handler that returns a file attachment
// errors still render as the standard JSON envelope
func Download(fn func(*http.Request) (File, error)) Handler {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := fn(r)
		if err != nil {
			phttp.WriteError(w, r, err)
			return
		}
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		w.Header().Set("Content-Type", ct)
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(f.Body)
	}
}
