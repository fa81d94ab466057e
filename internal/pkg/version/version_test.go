package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetShortVersion(t *testing.T) {
	origV, origC := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = origV, origC })

	Version, GitCommit = "1.2.0", "unknown"
	assert.Equal(t, "1.2.0", GetShortVersion())

	GitCommit = "0123456789abcdef"
	assert.Equal(t, "1.2.0-0123456", GetShortVersion())
}

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}
