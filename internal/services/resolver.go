package services

import (
	"strings"

	"github.com/admin-panel-kit/attachment-service/internal/models"
	"github.com/admin-panel-kit/attachment-service/internal/storage"
)

// URLResolver turns a stored reference into an externally dereferenceable
// URL. Remote references are already absolute and pass through unchanged;
// local relative paths are composed with the public host and the static
// prefix the upload directory is served under.
type URLResolver struct {
	publicHost   string
	staticPrefix string
}

func NewURLResolver(publicHost, staticPrefix string) *URLResolver {
	staticPrefix = "/" + strings.Trim(staticPrefix, "/")
	if staticPrefix == "/" {
		staticPrefix = ""
	}
	return &URLResolver{publicHost: publicHost, staticPrefix: staticPrefix}
}

func (r *URLResolver) Resolve(record models.FileRecord) string {
	if storage.IsRemoteReference(record.Reference) {
		return record.Reference
	}
	base := r.publicHost
	if !strings.Contains(base, "://") {
		// No scheme configured: emit a scheme-relative URL.
		base = "//" + base
	}
	return strings.TrimRight(base, "/") + r.staticPrefix + "/" + strings.TrimLeft(record.Reference, "/")
}
