package server

import (
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
)

// hashLen is enough to bust caches; full digests just bloat asset URLs.
const hashLen = 16

// HashFS serves the embedded static assets with content-hash query strings,
// so the display and control pages can cache them aggressively across
// deployments. All hashes are computed once at startup; the map is never
// written after construction, so serving needs no locking.
type HashFS struct {
	serv   http.Handler
	hashes map[string]string
}

func NewHashFS(fsys fs.FS) (*HashFS, error) {
	h := &HashFS{
		serv:   http.FileServer(http.FS(fsys)),
		hashes: make(map[string]string),
	}

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		f, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		digest := sha256.New()
		if _, err := io.Copy(digest, f); err != nil {
			return err
		}
		h.hashes[path] = fmt.Sprintf("%x", digest.Sum(nil))[:hashLen]
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("hashed static assets", "count", len(h.hashes))
	return h, nil
}

// FormatWithHash appends the content hash as a query parameter. Unknown
// paths are returned unchanged.
func (h *HashFS) FormatWithHash(path string) string {
	if hash, ok := h.hashes[path]; ok {
		return fmt.Sprintf("%s?hash=%s", path, hash)
	}
	return path
}

func (h *HashFS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hash := r.URL.Query().Get("hash")
	if hash != "" && hash == h.hashes[r.URL.Path] {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	}
	h.serv.ServeHTTP(w, r)
}
