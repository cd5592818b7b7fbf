package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

//nolint:paralleltest // mutates package variables.
func TestFromBuildInfo(t *testing.T) {
	saved := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = saved[0], saved[1], saved[2] })

	Version, Commit, Date = "dev", "<unknown>", ""

	fromBuildInfo(&debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})

	assert.Equal(t, "v1.2.0", Version)
	assert.Equal(t, "abc123", Commit)
	assert.Contains(t, String(), "semtree v1.2.0 (commit abc123, built 2026-01-02T03:04:05Z")
}

//nolint:paralleltest // mutates package variables.
func TestLinkerValuesWin(t *testing.T) {
	saved := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = saved[0], saved[1], saved[2] })

	Version, Commit, Date = "v9.9.9", "deadbeef", ""

	fromBuildInfo(&debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
	})

	assert.Equal(t, "v9.9.9", Version)
	assert.Equal(t, "deadbeef", Commit)
	assert.NotContains(t, String(), "built")
}
