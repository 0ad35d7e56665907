package utils

import (
	"fmt"
	"strings"
)

const publicObjectSegment = "storage/v1/object/public/"

type PublicURLOptions struct {
	BaseURL string
	Bucket  string
}

// IsAbsentPath reports whether a stored media path is empty or one of the
// literal "null"/"undefined" strings the automation backend writes for
// missing values.
func IsAbsentPath(p string) bool {
	p = strings.TrimSpace(p)
	if p == "" {
		return true
	}
	return strings.EqualFold(p, "null") || strings.EqualFold(p, "undefined")
}

// ResolvePublicURL turns a stored media path into something a browser can
// load. It never fails: when no rule applies the raw path is returned so the
// caller's broken-media fallback can kick in.
func ResolvePublicURL(path string, opts PublicURLOptions) string {
	if IsAbsentPath(path) {
		return ""
	}
	p := strings.TrimSpace(path)

	lower := strings.ToLower(p)
	for _, prefix := range []string{"http://", "https://", "data:", "blob:", "/"} {
		if strings.HasPrefix(lower, prefix) {
			return p
		}
	}

	if strings.Contains(p, publicObjectSegment) {
		return "/" + strings.TrimLeft(p, "/")
	}

	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	bucket := strings.Trim(strings.TrimSpace(opts.Bucket), "/")
	if base == "" || bucket == "" {
		return p
	}

	key := strings.TrimPrefix(p, bucket+"/")
	return fmt.Sprintf("%s/%s%s/%s", base, publicObjectSegment, bucket, key)
}
