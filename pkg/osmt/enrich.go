package osmt

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/openskills/skillsync/internal/transport"
	"github.com/openskills/skillsync/pkg/errors"
	"github.com/openskills/skillsync/pkg/logging"
)

// EnrichSkill waits for delay, then fetches the full detail record for one
// skill (addressed by uuid, not by the normalized id) and upserts it into
// the catalog keyed by the id the server put in the payload.
func (c *Client) EnrichSkill(ctx context.Context, domain string, skill Skill, delay time.Duration) error {
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return errors.ErrCanceled
		}
	}

	url := c.skillDetailURL(domain, skill.UUID)
	logging.Info().Str("url", url).Msg("Fetching skill detail")

	resp, err := c.transport.Get(ctx, url)
	if err != nil {
		return &errors.APIError{
			Service:  "osmt",
			Endpoint: url,
			Message:  fmt.Sprintf("failed to fetch skill %s", skill.ID),
			Err:      err,
		}
	}

	var detail SkillDetail
	if err := transport.DecodeResponse(resp, "osmt", &detail); err != nil {
		return errors.WrapResource("fetch", "skill", skill.ID, err)
	}

	c.catalog.UpsertSkill(detail)
	return nil
}

// EnrichAll launches a detail fetch for every skill concurrently, staggering
// start times randomly across a window sized so aggregate traffic
// approximates the configured requests-per-second ceiling. This is advisory
// shaping, not a limiter: only start times are staggered, concurrency is
// otherwise unbounded.
//
// The batch is joined as a whole: if any single fetch fails, EnrichAll
// returns that failure and the caller must not proceed to reconciliation.
func (c *Client) EnrichAll(ctx context.Context, domain string, skills []Skill) error {
	if len(skills) == 0 {
		return nil
	}

	// Window in milliseconds over which n requests average out to the
	// configured rate. Mirrors the original randomized distribution.
	window := len(skills) * 1000 / c.ratePerSecond

	var wg sync.WaitGroup
	errChan := make(chan error, len(skills))

	for _, skill := range skills {
		delay := time.Duration(rand.Intn(window+1)) * time.Millisecond
		wg.Add(1)
		go func(s Skill, d time.Duration) {
			defer wg.Done()
			if err := c.EnrichSkill(ctx, domain, s, d); err != nil {
				errChan <- err
			}
		}(skill, delay)
	}

	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		return err
	}

	logging.Info().Int("skills", len(skills)).Msg("All skill details fetched")
	return nil
}
