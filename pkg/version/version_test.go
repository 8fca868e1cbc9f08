package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withVersion(t *testing.T, version, commit, buildTime string) {
	t.Helper()
	oldV, oldC, oldB := Version, Commit, BuildTime
	Version, Commit, BuildTime = version, commit, buildTime
	t.Cleanup(func() { Version, Commit, BuildTime = oldV, oldC, oldB })
}

func TestApplyBuildSettings(t *testing.T) {
	withVersion(t, devVersion, "", "")

	applyBuildSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "abcdef1234567"},
		{Key: "vcs.time", Value: "2025-10-23T10:20:30Z"},
		{Key: "vcs.tag", Value: "v1.2.3"},
		{Key: "vcs.modified", Value: "true"},
	})

	assert.Equal(t, "1.2.3-dirty", Version)
	assert.Equal(t, "abcdef1", Commit)
	assert.Equal(t, "2025-10-23T10:20:30Z", BuildTime)
	assert.Equal(t, "1.2.3-dirty (commit: abcdef1, built at: 2025-10-23T10:20:30Z)", FormatVersion())
}

func TestApplyBuildSettings_LdflagsWin(t *testing.T) {
	withVersion(t, "2.0.0", "1234567", "")

	applyBuildSettings([]debug.BuildSetting{{Key: "vcs.revision", Value: "abcdef1234567"}})

	assert.Equal(t, "2.0.0", Version)
	assert.Equal(t, "1234567", Commit)
}

func TestFormatVersion(t *testing.T) {
	withVersion(t, "", "", "")
	assert.Equal(t, "0.0.0-dev (development)", FormatVersion())

	withVersion(t, "1.0.0", "", "2025-01-01T00:00:00Z")
	assert.Equal(t, "1.0.0 (built at: 2025-01-01T00:00:00Z)", FormatVersion())

	withVersion(t, "1.0.0", "abc1234", "")
	assert.Equal(t, "1.0.0 (commit: abc1234)", FormatVersion())
}
