// Package sync orchestrates a full reconciliation run: catalog ingestion,
// registry session resolution, detail enrichment, identity reconciliation
// and framework publication, in that order, with hard barriers between the
// concurrent enrichment batch and everything after it.
package sync

import (
	"context"
	"encoding/json"
	"time"

	"github.com/openskills/skillsync/pkg/logging"
	"github.com/openskills/skillsync/pkg/osmt"
	"github.com/openskills/skillsync/pkg/registry"
	"github.com/openskills/skillsync/pkg/store"
)

// Options configures a run.
type Options struct {
	// SourceDomain is the OSMT instance to ingest, e.g. "osmt.example.com".
	SourceDomain string

	// Connection is the immutable registry configuration.
	Connection registry.Connection

	// DefaultLanguage keys every language-mapped CTDL property.
	DefaultLanguage string

	// RatePerSecond shapes enrichment traffic; zero means the default.
	RatePerSecond int

	// MaxPages bounds catalog pagination; zero means the default.
	MaxPages int

	// DryRun assembles and logs the graph document without publishing.
	DryRun bool

	// Endpoints overrides the environment-resolved registry URLs.
	// Used by tests and local registry deployments.
	Endpoints *registry.Endpoints

	// SourceBaseURL overrides the http://{SourceDomain} base address.
	// Used by tests and TLS-fronted OSMT deployments.
	SourceBaseURL string
}

// Run executes one synchronization run against a fresh working store.
//
// Every network step either succeeds or aborts the whole run; there is no
// partial-catalog recovery. Enrichment failures fail the batch as a whole.
func Run(ctx context.Context, opts Options) (*Result, error) {
	started := time.Now()

	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = "en-us"
	}

	st := store.New()

	var osmtOpts []osmt.Option
	if opts.MaxPages > 0 {
		osmtOpts = append(osmtOpts, osmt.WithMaxPages(opts.MaxPages))
	}
	if opts.RatePerSecond > 0 {
		osmtOpts = append(osmtOpts, osmt.WithRatePerSecond(opts.RatePerSecond))
	}
	if opts.SourceBaseURL != "" {
		osmtOpts = append(osmtOpts, osmt.WithBaseURL(opts.SourceBaseURL))
	}
	source := osmt.NewClient(st, osmtOpts...)

	var regOpts []registry.Option
	if opts.Endpoints != nil {
		regOpts = append(regOpts, registry.WithEndpoints(*opts.Endpoints))
	}
	reg, err := registry.NewClient(opts.Connection, st, regOpts...)
	if err != nil {
		return nil, err
	}

	// Step 1: exhaustive paginated ingestion. The error message is the
	// operator's diagnostic; return it unwrapped.
	if err := source.FetchSkills(ctx, opts.SourceDomain); err != nil {
		return nil, err
	}

	// Step 2: resolve the registry session. Decides whether reconciliation
	// reuses an existing framework and its competency identities.
	if err := reg.ResolveSession(ctx); err != nil {
		return nil, err
	}

	// Step 3: enrich every catalog entry. Join barrier: reconciliation
	// must not start until every detail fetch has succeeded.
	entries := st.Skills()
	skills := make([]osmt.Skill, 0, len(entries))
	for _, entry := range entries {
		skills = append(skills, entry.Skill)
	}
	if err := source.EnrichAll(ctx, st.Domain(), skills); err != nil {
		return nil, err
	}

	// Step 4: reconcile identities and map every skill into the registry
	// schema, in catalog insertion order.
	logging.Info().Msg("Converting OSMT skills to Registry input format")
	result := &Result{SkillsFetched: len(entries)}
	for _, entry := range st.Skills() {
		if !entry.Enriched() {
			continue
		}
		result.SkillsEnriched++

		existing := st.FindExistingBySkillID(entry.Detail.ID)
		if existing != nil {
			result.ReusedCTIDs++
		} else {
			result.NewCTIDs++
		}

		competency := registry.MapSkillToCompetency(
			*entry.Detail, existing, reg.Endpoints(), opts.DefaultLanguage, st.FrameworkCTID())
		st.PutCompetency(competency)
	}
	result.CompetenciesMapped = len(st.NewCompetencies())

	// Step 5: assemble and publish the framework graph.
	publishReq := reg.BuildPublishRequest(st, st.Domain(), opts.DefaultLanguage)
	if raw, err := json.Marshal(publishReq); err == nil {
		logging.Debug().RawJSON("graph_document", raw).Msg("Assembled framework graph")
	}

	if opts.DryRun {
		logging.Info().Msg("Dry run completed - framework graph was not published")
		result.Duration = time.Since(started)
		return result, nil
	}

	receipt, err := reg.PublishFramework(ctx, publishReq)
	if err != nil {
		return nil, err
	}
	result.Receipt = receipt
	result.Duration = time.Since(started)
	return result, nil
}
