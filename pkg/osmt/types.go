// Package osmt provides the client for the Open Skills Management Toolset
// (OSMT) API: paginated catalog ingestion and per-skill detail enrichment.
package osmt

import "strings"

// Skill is a minimal catalog entry as returned by the skills list endpoint.
type Skill struct {
	// ID is a URL-shaped identifier scoped to the OSMT instance, e.g.
	// "http://localhost:8080/api/skills/60f17310-8462-46ad-b739-25dbb70746cb".
	ID             string   `json:"id" yaml:"id"`
	UUID           string   `json:"uuid" yaml:"uuid"`
	SkillName      string   `json:"skillName" yaml:"skillName"`
	SkillStatement string   `json:"skillStatement" yaml:"skillStatement"`
	Authors        []string `json:"authors" yaml:"authors,omitempty"`
	Status         string   `json:"status" yaml:"status"`
	Keywords       []string `json:"keywords" yaml:"keywords,omitempty"`
	PublishDate    *string  `json:"publishDate" yaml:"publishDate,omitempty"`
}

// SkillDetail is a Skill plus the extended fields returned by the per-skill
// endpoint. Only published skills are served by OSMT.
type SkillDetail struct {
	Skill `yaml:",inline"`

	Type         string          `json:"type" yaml:"type"`
	CreationDate string          `json:"creationDate" yaml:"creationDate,omitempty"`
	UpdateDate   *string         `json:"updateDate" yaml:"updateDate,omitempty"`
	ArchiveDate  *string         `json:"archiveDate" yaml:"archiveDate,omitempty"`
	Collections  []CollectionRef `json:"collections" yaml:"collections,omitempty"`
	Categories   []string        `json:"categories" yaml:"categories,omitempty"`
	Alignments   []Alignment     `json:"alignments" yaml:"alignments,omitempty"`
	Employers    []NamedRef      `json:"employers" yaml:"employers,omitempty"`
	Standards    []StandardRef   `json:"standards" yaml:"standards,omitempty"`
	Creator      *string         `json:"creator" yaml:"creator,omitempty"`
}

// CollectionRef is a skill's membership in an OSMT collection.
type CollectionRef struct {
	UUID string `json:"uuid" yaml:"uuid"`
	Name string `json:"name" yaml:"name"`
}

// Collection is an OSMT collection summary.
type Collection struct {
	UUID           string `json:"uuid" yaml:"uuid"`
	Name           string `json:"name" yaml:"name"`
	Description    string `json:"description" yaml:"description,omitempty"`
	SkillCount     int    `json:"skillCount" yaml:"skillCount"`
	WorkspaceOwner string `json:"workspaceOwner" yaml:"workspaceOwner,omitempty"`
	Status         string `json:"status" yaml:"status"`
	PublishDate    string `json:"publishDate" yaml:"publishDate,omitempty"`
}

// Alignment is an external resource a skill aligns to.
type Alignment struct {
	ID        string    `json:"id" yaml:"id"`
	SkillName string    `json:"skillName" yaml:"skillName,omitempty"`
	IsPartOf  *NamedRef `json:"isPartOf" yaml:"isPartOf,omitempty"`
}

// NamedRef is a reference carrying only a display name.
type NamedRef struct {
	Name string `json:"name" yaml:"name"`
}

// StandardRef is a standard a skill conforms to.
type StandardRef struct {
	SkillName string `json:"skillName" yaml:"skillName"`
}

// NormalizeID strips the stray leading dash some OSMT environments prefix
// onto skill ids.
func NormalizeID(id string) string {
	return strings.TrimPrefix(id, "-")
}
