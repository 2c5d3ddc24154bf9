package port

import "imgeng/internal/core/domain"

type URLBuilder interface {
	// Build returns the image URL for fullURL with the given transformation directives applied.
	Build(fullURL string, directives domain.Directives, debug bool) string
}
