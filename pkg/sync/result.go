package sync

import (
	"fmt"
	"time"

	"github.com/openskills/skillsync/pkg/registry"
)

// Result summarizes one synchronization run.
type Result struct {
	// SkillsFetched is the catalog size after paginated ingestion.
	SkillsFetched int

	// SkillsEnriched is the number of detail records fetched.
	SkillsEnriched int

	// CompetenciesMapped is the size of the reconciled competency set.
	CompetenciesMapped int

	// ReusedCTIDs counts competencies that kept a registry-assigned
	// identity from a previous run.
	ReusedCTIDs int

	// NewCTIDs counts freshly minted competency identities.
	NewCTIDs int

	// Receipt is the publish outcome; nil on a dry run.
	Receipt *registry.PublishReceipt

	// Duration is the wall-clock time of the whole run.
	Duration time.Duration
}

// Summary returns a one-line human-readable run summary.
func (r *Result) Summary() string {
	published := "dry run"
	if r.Receipt != nil {
		if r.Receipt.Published {
			published = "published"
		} else {
			published = "publish rejected by registry"
		}
	}
	return fmt.Sprintf("%d skills, %d competencies (%d reused, %d new), %s in %s",
		r.SkillsFetched, r.CompetenciesMapped, r.ReusedCTIDs, r.NewCTIDs, published, r.Duration.Round(time.Millisecond))
}
