package sanitize

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	reUnsafe  = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)
	reLeading = regexp.MustCompile(`^[.-]+`)
)

// Filename flattens a client-supplied file name into a single safe path
// element: any directory part is dropped, characters outside [A-Za-z0-9_.-]
// collapse to "_", and leading dots/dashes are stripped so the result can
// never escape the upload root or hide as a dotfile.
func Filename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = reUnsafe.ReplaceAllString(name, "_")
	name = reLeading.ReplaceAllString(name, "")
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return name
}

// Ext returns the lower-cased extension of name without the leading dot.
func Ext(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
