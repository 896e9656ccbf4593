package osmt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog records catalog mutations for assertions.
type fakeCatalog struct {
	mu      sync.Mutex
	domain  string
	skills  []Skill
	upserts []SkillDetail
}

func (f *fakeCatalog) ReplaceSkills(domain string, skills []Skill) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.domain = domain
	f.skills = skills
}

func (f *fakeCatalog) UpsertSkill(detail SkillDetail) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, detail)
}

func testSkill(n int) Skill {
	return Skill{
		ID:             fmt.Sprintf("http://localhost:8080/api/skills/uuid-%d", n),
		UUID:           fmt.Sprintf("uuid-%d", n),
		SkillName:      fmt.Sprintf("Skill %d", n),
		SkillStatement: "The ability to do a thing.",
		Status:         "published",
	}
}

// pagedServer serves `pages` pages of one skill each, linked by rel="next".
func pagedServer(t *testing.T, pages int) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < pages-1 {
			w.Header().Set("Link", fmt.Sprintf(`<%s/api/skills?page=%d>; rel="next"`, srv.URL, page+1))
		}
		_ = json.NewEncoder(w).Encode([]Skill{testSkill(page)})
	}))
	return srv
}

func TestFetchSkillsPaginationExhaustive(t *testing.T) {
	for _, pages := range []int{1, 3, 10} {
		t.Run(fmt.Sprintf("%d_pages", pages), func(t *testing.T) {
			srv := pagedServer(t, pages)
			defer srv.Close()

			catalog := &fakeCatalog{}
			client := NewClient(catalog, WithBaseURL(srv.URL))

			require.NoError(t, client.FetchSkills(context.Background(), "osmt.example.com"))

			require.Len(t, catalog.skills, pages)
			// Records arrive in page order.
			for i, skill := range catalog.skills {
				assert.Equal(t, fmt.Sprintf("Skill %d", i), skill.SkillName)
			}
			assert.Equal(t, "osmt.example.com", catalog.domain)
		})
	}
}

func TestFetchSkillsNoLinkHeaderTerminates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]Skill{testSkill(0), testSkill(1)})
	}))
	defer srv.Close()

	catalog := &fakeCatalog{}
	client := NewClient(catalog, WithBaseURL(srv.URL))

	require.NoError(t, client.FetchSkills(context.Background(), "osmt.example.com"))
	assert.Len(t, catalog.skills, 2)
}

func TestFetchSkillsNormalizesIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]Skill{
			{ID: "-http://osmt.example.com/api/skills/a", UUID: "a"},
			{ID: "http://osmt.example.com/api/skills/b", UUID: "b"},
		})
	}))
	defer srv.Close()

	catalog := &fakeCatalog{}
	client := NewClient(catalog, WithBaseURL(srv.URL))

	require.NoError(t, client.FetchSkills(context.Background(), "osmt.example.com"))
	require.Len(t, catalog.skills, 2)
	assert.Equal(t, "http://osmt.example.com/api/skills/a", catalog.skills[0].ID)
	assert.Equal(t, "http://osmt.example.com/api/skills/b", catalog.skills[1].ID)
}

func TestFetchSkillsRejectsInvalidDomainBeforeNetwork(t *testing.T) {
	catalog := &fakeCatalog{}
	client := NewClient(catalog)

	err := client.FetchSkills(context.Background(), "not a domain")
	require.Error(t, err)
	assert.Nil(t, catalog.skills)
}

func TestFetchSkillsRequiresStatus200Exactly(t *testing.T) {
	// 204 is "ok" but not 200; the list endpoint must answer 200.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	catalog := &fakeCatalog{}
	client := NewClient(catalog, WithBaseURL(srv.URL))

	err := client.FetchSkills(context.Background(), "osmt.example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), srv.URL)
	assert.Nil(t, catalog.skills, "a failed ingestion must not touch the catalog")
}

func TestFetchSkillsMidPageFailureAbortsWholeIngestion(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			http.Error(w, "gone", http.StatusBadGateway)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/api/skills?page=1>; rel="next"`, srv.URL))
		_ = json.NewEncoder(w).Encode([]Skill{testSkill(0)})
	}))
	defer srv.Close()

	catalog := &fakeCatalog{}
	client := NewClient(catalog, WithBaseURL(srv.URL))

	err := client.FetchSkills(context.Background(), "osmt.example.com")
	require.Error(t, err)
	assert.Nil(t, catalog.skills)
}

func TestFetchSkillsPageCeiling(t *testing.T) {
	// Every page links to itself: without the ceiling this would loop forever.
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Link", fmt.Sprintf(`<%s/api/skills>; rel="next"`, srv.URL))
		_ = json.NewEncoder(w).Encode([]Skill{testSkill(0)})
	}))
	defer srv.Close()

	catalog := &fakeCatalog{}
	client := NewClient(catalog, WithBaseURL(srv.URL), WithMaxPages(5))

	err := client.FetchSkills(context.Background(), "osmt.example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5 pages")
	assert.Nil(t, catalog.skills)
}
