package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://greenhouse.io/jobs/456", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"https://workday.com/jobs", PlatformWorkday},
		{"https://notgreenhouse.io/jobs", PlatformUnknown},
		{"https://example.com/careers/1", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformSelectors(t *testing.T) {
	assert.Equal(t, ".job__description.body", PlatformGreenhouse.ContentSelectors()[0])
	assert.Equal(t, genericPostingSelectors, PlatformUnknown.ContentSelectors())

	noise := PlatformLever.NoiseSelectors()
	assert.Contains(t, noise, "form")
	assert.Contains(t, noise, ".posting-apply")
	assert.Equal(t, commonNoise, PlatformUnknown.NoiseSelectors())

	// appending platform noise must not alias the shared slice
	_ = PlatformGreenhouse.NoiseSelectors()
	assert.NotContains(t, PlatformUnknown.NoiseSelectors(), ".post-apply")
}
