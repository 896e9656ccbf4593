// Package store holds the run-scoped working set: the ingested OSMT catalog
// and the registry-side competency library. It is the only owner of that
// state; every other component mutates it through the named operations here
// and never through held references. All state lives in memory for exactly
// one run.
package store

import (
	"sync"

	"github.com/openskills/skillsync/pkg/osmt"
	"github.com/openskills/skillsync/pkg/registry"
)

// SkillEntry is one working-catalog record: the catalog listing plus the
// detail record once enrichment has fetched it.
type SkillEntry struct {
	Skill  osmt.Skill
	Detail *osmt.SkillDetail
}

// Enriched reports whether the detail fetch has completed for this entry.
func (e SkillEntry) Enriched() bool {
	return e.Detail != nil
}

// Store is the in-process working set. Mutations are mutex-guarded because
// enrichment goroutines upsert concurrently; everything else runs on a
// single logical flow between network suspension points.
type Store struct {
	mu sync.RWMutex

	// Working catalog (source side).
	domain     string
	skillOrder []string
	skills     map[string]*SkillEntry

	// Competency library (registry side).
	frameworkCTID     string
	existingFramework *registry.Framework
	existing          []registry.Competency
	newOrder          []string
	newByCTID         map[string]registry.Competency
}

// New creates an empty working store.
func New() *Store {
	return &Store{
		skills:    make(map[string]*SkillEntry),
		newByCTID: make(map[string]registry.Competency),
	}
}

// --- Working catalog operations ---

// ReplaceSkills atomically replaces the entire skill map with the given
// skills, keyed by normalized id in list order, and records the validated
// domain. Prior catalog contents are discarded, never merged.
func (s *Store) ReplaceSkills(domain string, skills []osmt.Skill) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.domain = domain
	s.skills = make(map[string]*SkillEntry, len(skills))
	s.skillOrder = s.skillOrder[:0]
	for _, skill := range skills {
		key := osmt.NormalizeID(skill.ID)
		if _, seen := s.skills[key]; !seen {
			s.skillOrder = append(s.skillOrder, key)
		}
		s.skills[key] = &SkillEntry{Skill: skill}
	}
}

// UpsertSkill inserts or overwrites the entry keyed by the id carried in
// the detail payload itself. When the server's id differs from the request
// key, the server's id wins; that key-selection is deliberate.
func (s *Store) UpsertSkill(detail osmt.SkillDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := detail.ID
	entry, ok := s.skills[key]
	if !ok {
		entry = &SkillEntry{}
		s.skills[key] = entry
		s.skillOrder = append(s.skillOrder, key)
	}
	entry.Skill = detail.Skill
	d := detail
	entry.Detail = &d
}

// Domain returns the validated source domain recorded at ingestion.
func (s *Store) Domain() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.domain
}

// Skills returns the catalog entries in insertion order.
func (s *Store) Skills() []SkillEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]SkillEntry, 0, len(s.skillOrder))
	for _, key := range s.skillOrder {
		entries = append(entries, *s.skills[key])
	}
	return entries
}

// SkillCount returns the number of catalog entries.
func (s *Store) SkillCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.skills)
}

// --- Competency library operations ---

// SetFrameworkCTID records the framework identity for this run, either
// reused from the registry or freshly minted.
func (s *Store) SetFrameworkCTID(ctid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frameworkCTID = ctid
}

// FrameworkCTID returns the framework identity for this run.
func (s *Store) FrameworkCTID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frameworkCTID
}

// SetExistingFramework records the framework node loaded from the registry.
func (s *Store) SetExistingFramework(fw registry.Framework) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.existingFramework = &fw
}

// ExistingFramework returns the framework node loaded from the registry,
// or nil when this run creates a new framework.
func (s *Store) ExistingFramework() *registry.Framework {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.existingFramework == nil {
		return nil
	}
	fw := *s.existingFramework
	return &fw
}

// SetExistingCompetencies records the competencies already published under
// the existing framework.
func (s *Store) SetExistingCompetencies(comps []registry.Competency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.existing = make([]registry.Competency, len(comps))
	copy(s.existing, comps)
}

// ExistingCompetencies returns the registry-side competencies loaded at
// session resolution.
func (s *Store) ExistingCompetencies() []registry.Competency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comps := make([]registry.Competency, len(s.existing))
	copy(comps, s.existing)
	return comps
}

// FindExistingBySkillID returns a copy of the first existing competency
// embodying the given source skill id, or nil.
func (s *Store) FindExistingBySkillID(skillID string) *registry.Competency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c := registry.FindExistingBySkillID(s.existing, skillID); c != nil {
		cp := *c
		return &cp
	}
	return nil
}

// PutCompetency inserts or overwrites a reconciled competency keyed by its
// CTID, preserving first-insertion order.
func (s *Store) PutCompetency(comp registry.Competency) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.newByCTID[comp.CTID]; !seen {
		s.newOrder = append(s.newOrder, comp.CTID)
	}
	s.newByCTID[comp.CTID] = comp
}

// NewCompetencies returns the reconciled competency set in insertion order.
func (s *Store) NewCompetencies() []registry.Competency {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comps := make([]registry.Competency, 0, len(s.newOrder))
	for _, ctid := range s.newOrder {
		comps = append(comps, s.newByCTID[ctid])
	}
	return comps
}
