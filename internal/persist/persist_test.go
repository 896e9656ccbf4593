package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openskills/skillsync/pkg/osmt"
	"github.com/openskills/skillsync/pkg/store"
)

func TestExportCatalog(t *testing.T) {
	st := store.New()
	st.ReplaceSkills("osmt.example.com", []osmt.Skill{
		{ID: "skill-1", UUID: "uuid-1", SkillName: "Access Creation"},
		{ID: "skill-2", UUID: "uuid-2", SkillName: "Data Handling"},
	})
	st.UpsertSkill(osmt.SkillDetail{
		Skill: osmt.Skill{
			ID:             "skill-1",
			UUID:           "uuid-1",
			SkillName:      "Access Creation",
			SkillStatement: "Create accounts for new users.",
		},
		Type: "RichSkillDescriptor",
	})

	path := filepath.Join(t.TempDir(), "skills.yaml")
	require.NoError(t, ExportCatalog(path, st))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var snapshot CatalogSnapshot
	require.NoError(t, yaml.Unmarshal(data, &snapshot))

	assert.Equal(t, "osmt.example.com", snapshot.Domain)
	require.Len(t, snapshot.Skills, 2)

	// Enriched entries carry their detail; the rest export the listing only.
	assert.Equal(t, "skill-1", snapshot.Skills[0].Skill.ID)
	require.NotNil(t, snapshot.Skills[0].Detail)
	assert.Equal(t, "Create accounts for new users.", snapshot.Skills[0].Detail.SkillStatement)
	assert.Equal(t, "RichSkillDescriptor", snapshot.Skills[0].Detail.Type)
	assert.Nil(t, snapshot.Skills[1].Detail)
}

func TestExportCatalogEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, ExportCatalog(path, store.New()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var snapshot CatalogSnapshot
	require.NoError(t, yaml.Unmarshal(data, &snapshot))
	assert.Empty(t, snapshot.Skills)
}

func TestExportCatalogBadPath(t *testing.T) {
	err := ExportCatalog(filepath.Join(t.TempDir(), "missing", "skills.yaml"), store.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog export")
}
