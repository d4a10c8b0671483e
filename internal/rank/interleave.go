package rank

import "jobmatch/internal/types"

// InterleaveBySource alternates jobs from the two feeds position by position
// so neither source can monopolize the head of the list by volume alone. The
// per-source score order survives the interleave; once the shorter source is
// exhausted the remainder of the longer one follows in score order.
func InterleaveBySource(scored []types.ScoredJob, jobs []types.JobRecord) []types.ScoredJob {
	var linkedin, naukri []types.ScoredJob
	for _, s := range scored {
		if s.Index < len(jobs) && jobs[s.Index].Source == types.SourceNaukri {
			naukri = append(naukri, s)
		} else {
			linkedin = append(linkedin, s)
		}
	}

	mixed := make([]types.ScoredJob, 0, len(scored))
	for i := 0; i < max(len(linkedin), len(naukri)); i++ {
		if i < len(linkedin) {
			mixed = append(mixed, linkedin[i])
		}
		if i < len(naukri) {
			mixed = append(mixed, naukri[i])
		}
	}
	return mixed
}
