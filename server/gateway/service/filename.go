package service

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewStoredName returns the name a file is stored under. A caller-supplied
// name is used verbatim (the caller owns collision avoidance, and a
// collision overwrites the same logical slot). Otherwise the name is
// <millisecond-timestamp>_<random-suffix><original-extension>; the ULID
// suffix keeps concurrent uploads within the same millisecond apart.
func NewStoredName(supplied, originalName string) string {
	if trimmed := strings.TrimSpace(supplied); trimmed != "" {
		return trimmed
	}
	suffix := strings.ToLower(ulid.Make().String())
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), suffix, path.Ext(originalName))
}
