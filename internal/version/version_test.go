package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldVersion, oldSHA, oldTime := Version, GitSHA, BuildTime
	t.Cleanup(func() { Version, GitSHA, BuildTime = oldVersion, oldSHA, oldTime })

	Version, GitSHA, BuildTime = "0.3.0", "abc1234", "2026-10-01T00:00:00Z"
	assert.Equal(t, "orca 0.3.0 (abc1234, built 2026-10-01T00:00:00Z)", String())
}
