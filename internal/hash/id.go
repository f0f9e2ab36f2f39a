// Package hash derives stable 64-bit identifiers for whisper series.
package hash

import (
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// SeriesName converts a whisper file path relative to a storage root into the
// graphite dotted series name: directory separators become dots and the .wsp
// suffix (plus any compression suffix such as .gz) is stripped.
//
//	SeriesName("carbon/agents/host-a/cpuUsage.wsp")    → "carbon.agents.host-a.cpuUsage"
//	SeriesName("carbon/agents/host-a/cpuUsage.wsp.gz") → "carbon.agents.host-a.cpuUsage"
func SeriesName(relPath string) string {
	p := filepath.ToSlash(relPath)

	// Strip compression suffixes first, then the whisper suffix.
	for _, ext := range []string{".gz", ".zst", ".lz4", ".sz"} {
		p = strings.TrimSuffix(p, ext)
	}
	p = strings.TrimSuffix(p, ".wsp")

	return strings.ReplaceAll(strings.Trim(p, "/"), "/", ".")
}

// SeriesID computes the identifier of the series stored at relPath.
func SeriesID(relPath string) uint64 {
	return ID(SeriesName(relPath))
}
