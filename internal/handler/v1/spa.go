package handler

import (
	"net/http"
	"os"
	"path/filepath"

	chi "github.com/go-chi/chi/v5"

	"github.com/Zzz0801/iNews/internal/config"
	"github.com/Zzz0801/iNews/pkg/httputils"
)

// spaHandler serves the static client files and falls back to the SPA shell
// for every unmatched GET route, so client-side routes survive a page reload.
type spaHandler struct {
	publicDir  string
	fileServer http.Handler
}

func (h *spaHandler) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputils.WriteErrorResponse(w, http.StatusNotFound, "not found")
		return
	}

	path := filepath.Join(h.publicDir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		h.fileServer.ServeHTTP(w, r)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.publicDir, "index.html"))
}

func (h *spaHandler) OnRouter(router chi.Router) {
	router.NotFound(h.serve)
}

func NewSpaHandler(cfg config.Config) *spaHandler {
	return &spaHandler{
		publicDir:  cfg.PublicDir,
		fileServer: http.FileServer(http.Dir(cfg.PublicDir)),
	}
}
