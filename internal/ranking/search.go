package ranking

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/career-coach/internal/parsing"
	"github.com/jonathan/career-coach/internal/types"
)

// Search scoring weights.
const (
	tokenHitWeight = 1.0
	tagMatchWeight = 0.7
	recencyWeight  = 0.5

	// recencyWindow is how long a posting keeps some recency boost.
	recencyWindow = 180 * 24 * time.Hour
)

// RecencyBoost fades linearly from 1 at posting time to 0 after 180 days.
// Future-dated postings get 1. A zero postedAt counts as posted now.
func RecencyBoost(postedAt, now time.Time) float64 {
	if postedAt.IsZero() {
		return 1
	}
	age := now.Sub(postedAt)
	boost := 1 - float64(age)/float64(recencyWindow)
	return min(1, max(0, boost))
}

// SearchRanker ranks jobs for a free-text query by token hits, tag matches and recency.
type SearchRanker struct {
	now func() time.Time
}

// NewSearchRanker creates a ranker using the wall clock.
func NewSearchRanker() *SearchRanker {
	return NewSearchRankerWithClock(time.Now)
}

// NewSearchRankerWithClock creates a ranker with an injected clock.
func NewSearchRankerWithClock(now func() time.Time) *SearchRanker {
	return &SearchRanker{now: now}
}

// haystack is the lowercased text searched for query tokens.
func haystack(job types.JobRecord) string {
	return strings.ToLower(strings.Join([]string{
		job.Title, job.Company, job.Location, strings.Join(job.Tags, " "), job.Description,
	}, " "))
}

func scoreJob(tokens []string, job types.JobRecord, now time.Time) float64 {
	hay := haystack(job)
	hits := 0
	for _, tok := range tokens {
		if strings.Contains(hay, tok) {
			hits++
		}
	}

	tagMatches := 0
	for _, tag := range parsing.NormalizeTags(job.Tags) {
		if slices.Contains(tokens, tag) {
			tagMatches++
		}
	}

	return float64(hits)*tokenHitWeight +
		float64(tagMatches)*tagMatchWeight +
		RecencyBoost(job.PostedAt, now)*recencyWeight
}

// RankScored ranks jobs for query and returns at most limit results with their scores,
// descending, ties in input order. A query without tokens returns an empty result.
func (r *SearchRanker) RankScored(query string, jobs []types.JobRecord, limit int) []types.ScoredJob {
	tokens := parsing.UniqueTokens(query)
	if len(tokens) == 0 || len(jobs) == 0 || limit <= 0 {
		return []types.ScoredJob{}
	}

	now := r.now()
	scored := make([]types.ScoredJob, len(jobs))
	for i, job := range jobs {
		scored[i] = types.ScoredJob{Job: job, Score: scoreJob(tokens, job, now)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit < len(scored) {
		scored = scored[:limit]
	}
	return scored
}

// RankBySearch is RankScored without the scores.
func (r *SearchRanker) RankBySearch(query string, jobs []types.JobRecord, limit int) []types.JobRecord {
	scored := r.RankScored(query, jobs, limit)
	out := make([]types.JobRecord, len(scored))
	for i, s := range scored {
		out[i] = s.Job
	}
	return out
}

// FilterCandidates applies the coarse candidate filter used ahead of ranking: a job
// qualifies when any query token occurs in its haystack or equals one of its tags.
// At most maxJobs jobs are kept (all when maxJobs <= 0), in input order.
func FilterCandidates(query string, jobs []types.JobRecord, maxJobs int) []types.JobRecord {
	tokens := parsing.UniqueTokens(query)
	if len(tokens) == 0 {
		return nil
	}

	var out []types.JobRecord
	for _, job := range jobs {
		if maxJobs > 0 && len(out) >= maxJobs {
			break
		}
		if matchesAny(tokens, job) {
			out = append(out, job)
		}
	}
	return out
}

func matchesAny(tokens []string, job types.JobRecord) bool {
	hay := haystack(job)
	for _, tok := range tokens {
		if strings.Contains(hay, tok) {
			return true
		}
	}
	for _, tag := range parsing.NormalizeTags(job.Tags) {
		if slices.Contains(tokens, tag) {
			return true
		}
	}
	return false
}
