package registry

import (
	"strings"

	"github.com/google/uuid"

	"github.com/openskills/skillsync/pkg/osmt"
)

// MintCTID generates a fresh registry identifier of the form ce-<uuid>.
func MintCTID() string {
	return "ce-" + uuid.NewString()
}

// FindExistingBySkillID returns the first existing competency whose
// skillEmbodied list contains the given source skill id, or nil. A linear
// scan is fine at catalog scale; first-match semantics are load-bearing.
func FindExistingBySkillID(existing []Competency, skillID string) *Competency {
	for i := range existing {
		for _, embodied := range existing[i].SkillEmbodied {
			if embodied == skillID {
				return &existing[i]
			}
		}
	}
	return nil
}

// MapSkillToCompetency maps one OSMT skill detail into a CTDL competency.
//
// Identity rule: when existing is non-nil its CTID is reused, and every
// registry-managed field not overwritten below persists from the existing
// record. Otherwise a fresh CTID is minted.
//
// The skill id is written to both skillEmbodied and exactAlignment. That
// duplication mirrors the registry's published samples and is kept as-is.
func MapSkillToCompetency(detail osmt.SkillDetail, existing *Competency, eps Endpoints, language, frameworkCTID string) Competency {
	var competency Competency
	if existing != nil {
		competency = *existing
	} else {
		competency = Competency{Type: TypeCompetency}
	}

	ctid := competency.CTID
	if ctid == "" {
		ctid = MintCTID()
	}

	competency.ID = eps.ResourceURL(ctid)
	competency.CTID = ctid
	competency.Label = Lang(language, detail.SkillName)
	competency.Text = Lang(language, detail.SkillStatement)
	competency.Keywords = LangPlural(language, orEmpty(detail.Keywords))
	competency.Category = Lang(language, strings.Join(detail.Categories, ", "))
	competency.InLanguage = []string{language}
	competency.IsPartOf = eps.ResourceURL(frameworkCTID)
	competency.SkillEmbodied = []string{detail.ID}
	competency.ExactAlignment = []string{detail.ID}
	competency.MajorAlignment = alignmentIDs(detail.Alignments)

	return competency
}

func alignmentIDs(alignments []osmt.Alignment) []string {
	if len(alignments) == 0 {
		return nil
	}
	ids := make([]string, 0, len(alignments))
	for _, a := range alignments {
		ids = append(ids, a.ID)
	}
	return ids
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
