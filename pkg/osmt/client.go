package osmt

import (
	"context"
	"fmt"
	"net/http"

	"github.com/peterhellberg/link"

	"github.com/openskills/skillsync/internal/transport"
	"github.com/openskills/skillsync/pkg/errors"
	"github.com/openskills/skillsync/pkg/logging"
)

// DefaultMaxPages bounds the pagination loop so a misbehaving Link header
// cannot drive unbounded fetching.
const DefaultMaxPages = 10000

// DefaultRatePerSecond is the approximate aggregate request ceiling detail
// enrichment spreads its requests across.
const DefaultRatePerSecond = 20

// CatalogWriter is the mutation surface the client needs on the working
// store. All writes go through these named operations.
type CatalogWriter interface {
	// ReplaceSkills atomically replaces the skill map with the given
	// skills, keyed by normalized id, and records the validated domain.
	ReplaceSkills(domain string, skills []Skill)

	// UpsertSkill inserts or overwrites the detail record keyed by the
	// id carried in the detail payload itself.
	UpsertSkill(detail SkillDetail)
}

// Client fetches skill data from an OSMT instance.
type Client struct {
	transport     *transport.Client
	catalog       CatalogWriter
	baseURL       string
	maxPages      int
	ratePerSecond int
}

// Option configures a Client.
type Option func(*Client)

// WithMaxPages overrides the pagination ceiling.
func WithMaxPages(n int) Option {
	return func(c *Client) {
		c.maxPages = n
	}
}

// WithRatePerSecond overrides the enrichment request rate ceiling.
func WithRatePerSecond(n int) Option {
	return func(c *Client) {
		c.ratePerSecond = n
	}
}

// WithTransport replaces the transport client.
func WithTransport(t *transport.Client) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithBaseURL overrides the http://{domain} base address. Used by tests and
// by deployments that front OSMT with TLS.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

// NewClient creates a client writing into the given catalog.
func NewClient(catalog CatalogWriter, opts ...Option) *Client {
	c := &Client{
		transport:     transport.New(&transport.NoAuth{}, ""),
		catalog:       catalog,
		maxPages:      DefaultMaxPages,
		ratePerSecond: DefaultRatePerSecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// base returns the base address for an OSMT domain. OSMT instances are
// addressed over plain HTTP unless a base URL override is configured.
func (c *Client) base(domain string) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return "http://" + domain
}

// skillsURL returns the skills list URL for an OSMT domain.
func (c *Client) skillsURL(domain string) string {
	return fmt.Sprintf("%s/api/skills", c.base(domain))
}

// skillDetailURL returns the detail URL for a skill, addressed by uuid.
func (c *Client) skillDetailURL(domain, uuid string) string {
	return fmt.Sprintf("%s/api/skills/%s", c.base(domain), uuid)
}

// FetchSkills validates the domain, walks every page of the skills list and
// atomically replaces the working catalog with the result. Any page failure
// aborts the whole ingestion; the error is returned for the caller to
// surface, never thrown further.
func (c *Client) FetchSkills(ctx context.Context, domain string) error {
	if err := ValidateDomain(domain); err != nil {
		return err
	}

	var fetched []Skill
	url := c.skillsURL(domain)

	for page := 0; url != ""; page++ {
		if page >= c.maxPages {
			return &errors.ResourceError{
				Operation: "fetch",
				Resource:  "catalog",
				ID:        domain,
				Message:   fmt.Sprintf("pagination exceeded %d pages; the Link headers may be looping", c.maxPages),
			}
		}

		next, skills, err := c.fetchPage(ctx, url)
		if err != nil {
			return err
		}
		fetched = append(fetched, skills...)
		url = next
	}

	for i := range fetched {
		fetched[i].ID = NormalizeID(fetched[i].ID)
	}

	c.catalog.ReplaceSkills(domain, fetched)
	logging.Info().
		Str("domain", domain).
		Int("skills", len(fetched)).
		Msg("Skill catalog loaded")
	return nil
}

// fetchPage fetches one page of the skills list and returns the rel="next"
// URL, if any.
func (c *Client) fetchPage(ctx context.Context, url string) (next string, skills []Skill, err error) {
	resp, err := c.transport.Get(ctx, url)
	if err != nil {
		return "", nil, &errors.APIError{
			Service:  "osmt",
			Endpoint: url,
			Message:  "request failed",
			Err:      err,
		}
	}

	// The list endpoint must answer 200 exactly. Anything else means the
	// URL is not serving skills data.
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return "", nil, &errors.APIError{
			Service:    "osmt",
			Endpoint:   url,
			StatusCode: resp.StatusCode,
			Message:    "did not get the expected response; double-check that this is the right URL and it is correctly returning skills data",
		}
	}

	for _, l := range link.ParseResponse(resp) {
		if l.Rel == "next" {
			next = l.URI
		}
	}

	if err := transport.DecodeResponse(resp, "osmt", &skills); err != nil {
		return "", nil, err
	}
	return next, skills, nil
}
