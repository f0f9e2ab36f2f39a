package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
		{"another string", "another test string", 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestSeriesName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"carbon/agents/host-a/cpuUsage.wsp", "carbon.agents.host-a.cpuUsage"},
		{"carbon/agents/host-a/cpuUsage.wsp.gz", "carbon.agents.host-a.cpuUsage"},
		{"load.wsp.zst", "load"},
		{"load.wsp", "load"},
		{"/stats/load.wsp", "stats.load"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, SeriesName(tt.path), "path %q", tt.path)
	}
}

func TestSeriesID_Stable(t *testing.T) {
	// Compressed and raw paths of the same series share one identity.
	require.Equal(t, SeriesID("a/b/c.wsp"), SeriesID("a/b/c.wsp.gz"))
	require.NotEqual(t, SeriesID("a/b/c.wsp"), SeriesID("a/b/d.wsp"))
}

func BenchmarkSeriesID(b *testing.B) {
	for b.Loop() {
		SeriesID("carbon/agents/host-a/cpuUsage.wsp")
	}
}
