package handlers

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/diagnosis/patrol-checkpoints/internal/http/response"
)

// SPA serves files under dir and falls back to index.html for unknown paths
// so client-side routes load the app.
func SPA(dir string) http.Handler {
	root := os.DirFS(dir)
	files := http.FileServer(http.FS(root))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			response.WriteError(w, http.StatusMethodNotAllowed, "method not allowed", response.CodeInvalidInput)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/api/") {
			response.NotFound(w, "route not found")
			return
		}

		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name == "" {
			name = "."
		}
		if _, err := fs.Stat(root, name); errors.Is(err, fs.ErrNotExist) {
			index, err := fs.ReadFile(root, "index.html")
			if err != nil {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(index)
			return
		}
		files.ServeHTTP(w, r)
	})
}
