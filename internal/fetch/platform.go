package fetch

import (
	"net/url"
	"strings"
)

// Platform is a job board whose posting pages have a known layout.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

// platformHosts maps a host suffix to its platform.
var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
}

// DetectPlatform identifies the job board serving rawURL.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range platformHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.platform
		}
	}
	return PlatformUnknown
}

// genericPostingSelectors cover job pages on unrecognised sites.
var genericPostingSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

var contentSelectors = map[Platform][]string{
	PlatformGreenhouse: {".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
	PlatformLever:      {".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
	PlatformWorkday:    {"[data-automation-id='jobDescription']", ".gwt-HTML", ".job-description"},
}

// ContentSelectors returns where the description lives on this platform's pages,
// most specific first.
func (p Platform) ContentSelectors() []string {
	if s, ok := contentSelectors[p]; ok {
		return s
	}
	return genericPostingSelectors
}

// commonNoise is application forms, EEO statements, share widgets and consent banners.
var commonNoise = []string{
	"form", "#application-form", ".application-form", ".application--container", ".apply-button-container",
	"[data-testid='application-form']",
	".voluntary-disclosure", ".eeo-statement", ".eeo-section", "[data-testid='eeo']", ".legal-disclosure",
	".self-identification",
	".social-share", ".share-buttons", ".social-links",
	".cookie-consent", ".gdpr-notice",
}

var platformNoise = map[Platform][]string{
	PlatformGreenhouse: {".application--wrapper", ".voluntary-self-id", ".voluntary-self-id-wrapper", "#usa_self_id_section", ".post-apply"},
	PlatformLever:      {".apply-section", ".lever-application-form", ".posting-apply"},
	PlatformWorkday:    {"[data-automation-id='applyButton']", ".application-section"},
}

// NoiseSelectors returns the elements stripped before text extraction.
func (p Platform) NoiseSelectors() []string {
	out := make([]string, 0, len(commonNoise)+len(platformNoise[p]))
	out = append(out, commonNoise...)
	return append(out, platformNoise[p]...)
}
