package server

import "github.com/veronicaguo/electricitymap-contrib/internal/storage"

// contentTypeFor returns the content type for a proxied snapshot file.
func contentTypeFor(path string) string {
	return storage.GetContentType(path)
}
