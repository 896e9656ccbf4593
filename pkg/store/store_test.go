package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openskills/skillsync/pkg/osmt"
	"github.com/openskills/skillsync/pkg/registry"
)

func skill(id string) osmt.Skill {
	return osmt.Skill{ID: id, UUID: "uuid-" + id, SkillName: "Skill " + id, Status: "published"}
}

func detail(id string) osmt.SkillDetail {
	return osmt.SkillDetail{Skill: skill(id), Type: "RichSkillDescriptor"}
}

func TestReplaceSkillsNormalizesKeys(t *testing.T) {
	st := New()
	st.ReplaceSkills("osmt.example.com", []osmt.Skill{skill("-abc"), skill("def")})

	entries := st.Skills()
	require.Len(t, entries, 2)
	assert.Equal(t, "osmt.example.com", st.Domain())

	// A later replace with the clean id lands on the same key.
	st.ReplaceSkills("osmt.example.com", []osmt.Skill{skill("abc")})
	assert.Equal(t, 1, st.SkillCount())
}

func TestReplaceSkillsIsFullReplace(t *testing.T) {
	st := New()
	st.ReplaceSkills("osmt.example.com", []osmt.Skill{skill("a"), skill("b")})
	st.ReplaceSkills("osmt.example.com", []osmt.Skill{skill("c")})

	entries := st.Skills()
	require.Len(t, entries, 1)
	assert.Equal(t, "c", entries[0].Skill.ID)
}

func TestUpsertSkillIdempotent(t *testing.T) {
	st := New()
	st.ReplaceSkills("osmt.example.com", []osmt.Skill{skill("a")})

	st.UpsertSkill(detail("a"))
	st.UpsertSkill(detail("a"))

	require.Equal(t, 1, st.SkillCount())
	entry := st.Skills()[0]
	require.True(t, entry.Enriched())
	assert.Equal(t, "RichSkillDescriptor", entry.Detail.Type)
}

func TestUpsertSkillPayloadKeyWins(t *testing.T) {
	// The catalog listed the skill under one id; the server answered with
	// another. The server's id becomes the key, alongside the old entry.
	st := New()
	st.ReplaceSkills("osmt.example.com", []osmt.Skill{skill("request-key")})

	st.UpsertSkill(detail("server-key"))
	assert.Equal(t, 2, st.SkillCount())
}

func TestSkillsInsertionOrder(t *testing.T) {
	st := New()
	var skills []osmt.Skill
	for i := 0; i < 20; i++ {
		skills = append(skills, skill(fmt.Sprintf("s%02d", i)))
	}
	st.ReplaceSkills("osmt.example.com", skills)

	entries := st.Skills()
	require.Len(t, entries, 20)
	for i, entry := range entries {
		assert.Equal(t, fmt.Sprintf("s%02d", i), entry.Skill.ID)
	}
}

func TestConcurrentUpserts(t *testing.T) {
	st := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			st.UpsertSkill(detail(fmt.Sprintf("s%d", n)))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, st.SkillCount())
}

func TestPutCompetencyPreservesInsertionOrder(t *testing.T) {
	st := New()
	for i := 0; i < 10; i++ {
		st.PutCompetency(registry.Competency{CTID: fmt.Sprintf("ce-%d", i)})
	}

	comps := st.NewCompetencies()
	require.Len(t, comps, 10)
	for i, comp := range comps {
		assert.Equal(t, fmt.Sprintf("ce-%d", i), comp.CTID)
	}
}

func TestPutCompetencyUpsertKeepsPosition(t *testing.T) {
	st := New()
	st.PutCompetency(registry.Competency{CTID: "ce-a"})
	st.PutCompetency(registry.Competency{CTID: "ce-b"})
	st.PutCompetency(registry.Competency{CTID: "ce-a", IsPartOf: "updated"})

	comps := st.NewCompetencies()
	require.Len(t, comps, 2)
	assert.Equal(t, "ce-a", comps[0].CTID)
	assert.Equal(t, "updated", comps[0].IsPartOf)
}

func TestFindExistingBySkillID(t *testing.T) {
	st := New()
	st.SetExistingCompetencies([]registry.Competency{
		{CTID: "ce-1", SkillEmbodied: []string{"http://osmt.example.com/api/skills/a"}},
		{CTID: "ce-2", SkillEmbodied: []string{"http://osmt.example.com/api/skills/b"}},
	})

	found := st.FindExistingBySkillID("http://osmt.example.com/api/skills/b")
	require.NotNil(t, found)
	assert.Equal(t, "ce-2", found.CTID)

	assert.Nil(t, st.FindExistingBySkillID("http://osmt.example.com/api/skills/zzz"))
}

func TestFindExistingReturnsCopy(t *testing.T) {
	st := New()
	st.SetExistingCompetencies([]registry.Competency{
		{CTID: "ce-1", SkillEmbodied: []string{"sid"}},
	})

	found := st.FindExistingBySkillID("sid")
	require.NotNil(t, found)
	found.CTID = "mutated"

	again := st.FindExistingBySkillID("sid")
	assert.Equal(t, "ce-1", again.CTID, "callers must not be able to mutate store state through reads")
}

func TestFrameworkState(t *testing.T) {
	st := New()
	assert.Empty(t, st.FrameworkCTID())
	assert.Nil(t, st.ExistingFramework())

	st.SetFrameworkCTID("ce-framework")
	st.SetExistingFramework(registry.Framework{CTID: "ce-framework"})

	assert.Equal(t, "ce-framework", st.FrameworkCTID())
	require.NotNil(t, st.ExistingFramework())
	assert.Equal(t, "ce-framework", st.ExistingFramework().CTID)
}
