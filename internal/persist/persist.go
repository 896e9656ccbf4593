// Package persist writes snapshots of the working catalog to disk for
// operator inspection. The sync engine itself keeps all state in memory;
// this is an explicit export, not engine persistence.
package persist

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/openskills/skillsync/pkg/errors"
	"github.com/openskills/skillsync/pkg/osmt"
	"github.com/openskills/skillsync/pkg/store"
)

// CatalogSnapshot is the exported document layout.
type CatalogSnapshot struct {
	Domain string          `yaml:"domain"`
	Skills []SkillSnapshot `yaml:"skills"`
}

// SkillSnapshot is one exported catalog entry. Detail is present only when
// enrichment fetched it.
type SkillSnapshot struct {
	Skill  osmt.Skill        `yaml:"skill"`
	Detail *osmt.SkillDetail `yaml:"detail,omitempty"`
}

// ExportCatalog writes the working catalog to path as YAML.
func ExportCatalog(path string, st *store.Store) error {
	entries := st.Skills()
	snapshot := CatalogSnapshot{
		Domain: st.Domain(),
		Skills: make([]SkillSnapshot, 0, len(entries)),
	}
	for _, entry := range entries {
		snapshot.Skills = append(snapshot.Skills, SkillSnapshot{
			Skill:  entry.Skill,
			Detail: entry.Detail,
		})
	}

	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapResource("write", "catalog export", path, err)
	}
	return nil
}
