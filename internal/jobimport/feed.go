// Package jobimport loads job postings from a JSON feed into a job store.
package jobimport

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jonathan/career-coach/internal/parsing"
	"github.com/jonathan/career-coach/internal/schemas"
	"github.com/jonathan/career-coach/internal/skills"
	"github.com/jonathan/career-coach/internal/types"
	rootschemas "github.com/jonathan/career-coach/schemas"
)

// DefaultDays is the recency cutoff applied when none is given.
const DefaultDays = 120

// postedAtLayouts are tried in order when reading a feed entry's postedAt.
var postedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FeedEntry is one posting as it appears in an import feed.
type FeedEntry struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	URL         string   `json:"url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	PostedAt    string   `json:"postedAt,omitempty"`
}

// ParseFeed validates data against the job import schema and decodes it.
func ParseFeed(data []byte) ([]FeedEntry, error) {
	if err := schemas.ValidateDocument(rootschemas.JobImport, data); err != nil {
		return nil, fmt.Errorf("job feed failed schema validation: %w", err)
	}
	var entries []FeedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode job feed: %w", err)
	}
	return entries, nil
}

// ReadFeed reads and parses a feed file.
func ReadFeed(path string) ([]FeedEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job feed %s: %w", path, err)
	}
	return ParseFeed(data)
}

// parsePostedAt returns the entry's posting time, or now when it is missing or unreadable.
func parsePostedAt(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}
	for _, layout := range postedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return now
}

// Records cleans every entry without filtering, for ranking a feed file directly.
// Entries without a title are skipped.
func Records(entries []FeedEntry, now time.Time) []types.JobRecord {
	out := make([]types.JobRecord, 0, len(entries))
	for _, e := range entries {
		job := toRecord(e, now)
		if job.Title == "" {
			continue
		}
		out = append(out, job)
	}
	return out
}

// toRecord cleans an entry into a job record. Tags are extracted from the title and
// description when the feed carries none.
func toRecord(e FeedEntry, now time.Time) types.JobRecord {
	title := parsing.CollapseWhitespace(e.Title)
	description := parsing.HTMLToText(e.Description)

	tags := parsing.NormalizeTags(e.Tags)
	if len(tags) == 0 {
		tags = skills.ExtractTags(title, description)
	}
	if tags == nil {
		tags = []string{}
	}

	return types.JobRecord{
		Title:       title,
		Company:     parsing.CollapseWhitespace(e.Company),
		Location:    parsing.HTMLToText(e.Location),
		Description: description,
		URL:         strings.TrimSpace(e.URL),
		Tags:        tags,
		PostedAt:    parsePostedAt(e.PostedAt, now),
	}
}

// uniqueKey identifies a posting across providers.
func uniqueKey(j types.JobRecord) string {
	return strings.ToLower(strings.Join([]string{j.Company, j.Title, j.Location, j.URL}, "|"))
}
