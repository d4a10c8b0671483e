package rank

import (
	"regexp"
	"strings"

	"jobmatch/internal/types"
)

var (
	parentheticalPattern = regexp.MustCompile(`\s*\(.*?\)\s*`)
	pipeSuffixPattern    = regexp.MustCompile(`\s*\|.*$`)
	refCodePattern       = regexp.MustCompile(`(?i)\s*-\s*ref#?\d+.*$`)
	hashNumberPattern    = regexp.MustCompile(`\s*#\d+.*$`)
	workModePattern      = regexp.MustCompile(`(?i)\s*-\s*(remote|hybrid|onsite|work from home|wfh).*$`)
	innerSpacePattern    = regexp.MustCompile(`\s+`)
)

// NormalizeTitle strips parenthetical suffixes, pipe-delimited suffixes, and
// reference codes so that cosmetic variants of the same posting compare equal.
func NormalizeTitle(title string) string {
	normalized := strings.ToLower(strings.TrimSpace(title))
	normalized = parentheticalPattern.ReplaceAllString(normalized, " ")
	normalized = pipeSuffixPattern.ReplaceAllString(normalized, "")
	normalized = refCodePattern.ReplaceAllString(normalized, "")
	normalized = hashNumberPattern.ReplaceAllString(normalized, "")
	return strings.TrimSpace(innerSpacePattern.ReplaceAllString(normalized, " "))
}

// CoreTitle additionally strips trailing work-mode qualifiers, collapsing
// "Backend Engineer - Remote" and "Backend Engineer - Hybrid" to one key.
func CoreTitle(title string) string {
	core := workModePattern.ReplaceAllString(NormalizeTitle(title), "")
	return strings.TrimSpace(innerSpacePattern.ReplaceAllString(core, " "))
}

// Deduper tracks postings already emitted in a single result list. It catches
// near-duplicates the loader's exact-match pass cannot see: shared URLs and
// cosmetic title variants of the same opening.
type Deduper struct {
	seenIDs          map[string]struct{}
	seenURLs         map[string]struct{}
	seenTitleCompany map[string]struct{}
}

func NewDeduper() *Deduper {
	return &Deduper{
		seenIDs:          make(map[string]struct{}),
		seenURLs:         make(map[string]struct{}),
		seenTitleCompany: make(map[string]struct{}),
	}
}

// Seen reports whether the job duplicates an earlier posting and, when it
// does not, records its keys. Empty keys never match and are never recorded.
func (d *Deduper) Seen(job types.JobRecord) bool {
	company := strings.ToLower(strings.TrimSpace(job.Company))
	normalized := NormalizeTitle(job.Title)
	core := CoreTitle(job.Title)

	titleKey := ""
	if normalized != "" && company != "" {
		titleKey = normalized + "|" + company
	}
	coreKey := ""
	if core != "" && company != "" {
		coreKey = core + "|" + company
	}

	if job.ID != "" {
		if _, dup := d.seenIDs[job.ID]; dup {
			return true
		}
	}
	// Job and apply URLs share one set: either pointing at an already-seen
	// posting marks a duplicate.
	for _, url := range []string{job.JobURL, job.ApplyURL} {
		if url == "" {
			continue
		}
		if _, dup := d.seenURLs[url]; dup {
			return true
		}
	}
	for _, key := range []string{titleKey, coreKey} {
		if key == "" {
			continue
		}
		if _, dup := d.seenTitleCompany[key]; dup {
			return true
		}
	}

	if job.ID != "" {
		d.seenIDs[job.ID] = struct{}{}
	}
	if job.JobURL != "" {
		d.seenURLs[job.JobURL] = struct{}{}
	}
	if job.ApplyURL != "" {
		d.seenURLs[job.ApplyURL] = struct{}{}
	}
	if titleKey != "" {
		d.seenTitleCompany[titleKey] = struct{}{}
	}
	if coreKey != "" {
		d.seenTitleCompany[coreKey] = struct{}{}
	}
	return false
}
