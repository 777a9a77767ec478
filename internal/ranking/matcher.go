package ranking

import (
	"sort"

	"github.com/jonathan/career-coach/internal/skills"
	"github.com/jonathan/career-coach/internal/types"
)

// Blend weights applied when a tag weight table is loaded.
const (
	plainSimilarityWeight    = 0.6
	weightedSimilarityWeight = 0.4
)

// Matcher scores jobs against a user's skill vector. It is immutable and safe for
// concurrent use.
type Matcher struct {
	weights skills.TagWeights
}

// NewMatcher creates a matcher. Pass skills.DefaultTagWeights() for plain cosine matching.
func NewMatcher(weights skills.TagWeights) *Matcher {
	return &Matcher{weights: weights}
}

// Similarity scores two skill vectors. Without a loaded weight table this is plain
// cosine similarity; with one it blends plain and weighted cosine 60/40.
func (m *Matcher) Similarity(user, job skills.SkillVector) float64 {
	plain := Cosine(user, job)
	if !m.weights.Loaded() {
		return plain
	}
	weighted := Cosine(m.weights.Apply(user), m.weights.Apply(job))
	return plainSimilarityWeight*plain + weightedSimilarityWeight*weighted
}

// MatchJobToSkills scores one job's tags against the user's skill vector.
func (m *Matcher) MatchJobToSkills(job types.JobRecord, user skills.SkillVector) float64 {
	return m.Similarity(user, skills.BuildSkillVector(job.Tags))
}

// RankJobs scores every job against the given skills and returns them by descending
// score. Ties keep input order. A non-positive limit returns all jobs.
func (m *Matcher) RankJobs(jobs []types.JobRecord, userSkills []string, limit int) []types.ScoredJob {
	user := skills.BuildSkillVector(userSkills)

	scored := make([]types.ScoredJob, len(jobs))
	for i, job := range jobs {
		scored[i] = types.ScoredJob{Job: job, Score: m.MatchJobToSkills(job, user)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit > 0 && limit < len(scored) {
		scored = scored[:limit]
	}
	return scored
}
