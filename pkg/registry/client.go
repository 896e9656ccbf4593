package registry

import (
	"context"
	"encoding/json"

	"github.com/openskills/skillsync/internal/transport"
	"github.com/openskills/skillsync/pkg/errors"
	"github.com/openskills/skillsync/pkg/logging"
)

// LibraryWriter is the mutation surface the client needs on the registry
// side of the working store.
type LibraryWriter interface {
	SetFrameworkCTID(ctid string)
	SetExistingFramework(fw Framework)
	SetExistingCompetencies(comps []Competency)
}

// LibraryReader is the read surface the publisher consumes.
type LibraryReader interface {
	FrameworkCTID() string
	// NewCompetencies returns the reconciled competency set in insertion
	// order.
	NewCompetencies() []Competency
}

// Client talks to the Credential Registry resource service and the registry
// assistant on behalf of one organization.
type Client struct {
	transport *transport.Client
	endpoints Endpoints
	conn      Connection
	library   LibraryWriter
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoints overrides the environment-resolved base URLs. Used by tests
// and local registry deployments.
func WithEndpoints(eps Endpoints) Option {
	return func(c *Client) {
		c.endpoints = eps
	}
}

// WithTransport replaces the transport client.
func WithTransport(t *transport.Client) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// NewClient resolves the connection's environment and returns a client
// writing session state into library.
func NewClient(conn Connection, library LibraryWriter, opts ...Option) (*Client, error) {
	eps, err := EndpointsFor(conn.Environment)
	if err != nil {
		return nil, err
	}
	c := &Client{
		transport: transport.New(&transport.APITokenAuth{}, conn.APIKey),
		endpoints: eps,
		conn:      conn,
		library:   library,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoints returns the base URLs the client resolved for its environment.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// ResolveSession fetches the organization resource, searches the assistant
// for a framework this organization already published under FrameworkName,
// and loads its member competencies when found. When no framework exists a
// fresh CTID is minted for a new one. The outcome decides whether later
// reconciliation can reuse registry-assigned identities.
func (c *Client) ResolveSession(ctx context.Context) error {
	orgURL := c.endpoints.ResourceURL(c.conn.OrganizationCTID)
	resp, err := c.transport.Get(ctx, orgURL)
	if err != nil {
		return &errors.APIError{
			Service:  "registry",
			Endpoint: orgURL,
			Message:  "failed to fetch organization data",
			Err:      err,
		}
	}
	if err := transport.DecodeResponse(resp, "registry", nil); err != nil {
		return errors.WrapResource("fetch", "organization", c.conn.OrganizationCTID, err)
	}
	logging.Info().Msg("Basic org data loaded from Registry")

	hit, err := c.searchFramework(ctx)
	if err != nil {
		return err
	}
	if hit == nil {
		logging.Info().Msg("No existing CompetencyFramework found on the Registry. A new one will be created")
		c.library.SetFrameworkCTID(MintCTID())
		return nil
	}

	logging.Info().
		Str("ctid", hit.CTID).
		Msg("A previously created CompetencyFramework was found and will be updated")
	c.library.SetFrameworkCTID(hit.CTID)

	return c.loadFrameworkGraph(ctx, hit.CTID)
}

// searchFramework queries the assistant for a framework published by this
// organization under the fixed library name. At most one page of 100
// results is considered.
func (c *Client) searchFramework(ctx context.Context) (*SearchHit, error) {
	searchURL := c.endpoints.Assistant + "/search/ctdl"
	req := SearchRequest{
		Query: SearchQuery{
			Type:      []string{TypeCompetencyFramework},
			Publisher: c.endpoints.ResourceURL(c.conn.OrganizationCTID),
			Name:      FrameworkName,
		},
		Take: 100,
		Skip: 0,
	}

	resp, err := c.transport.Post(ctx, searchURL, req)
	if err != nil {
		return nil, &errors.APIError{
			Service:  "assistant",
			Endpoint: searchURL,
			Message:  "failed to search for framework data",
			Err:      err,
		}
	}

	var result SearchResponse
	if err := transport.DecodeResponse(resp, "assistant", &result); err != nil {
		return nil, err
	}
	logging.Info().Msg("CompetencyFramework search request successful")

	if len(result.Data) == 0 || result.Data[0].CTID == "" {
		return nil, nil
	}
	return &result.Data[0], nil
}

// graphNode carries just enough of a graph node to partition by @type.
type graphNode struct {
	Type string `json:"@type"`
}

// loadFrameworkGraph fetches the full linked-data graph for a framework
// CTID and partitions its nodes into the one framework node and its member
// competencies, recording both on the existing side of the library.
func (c *Client) loadFrameworkGraph(ctx context.Context, ctid string) error {
	graphURL := c.endpoints.GraphURL(ctid)
	resp, err := c.transport.Get(ctx, graphURL)
	if err != nil {
		return &errors.APIError{
			Service:  "registry",
			Endpoint: graphURL,
			Message:  "failed to fetch framework and included competency data",
			Err:      err,
		}
	}

	var graph struct {
		Graph []json.RawMessage `json:"@graph"`
	}
	if err := transport.DecodeResponse(resp, "registry", &graph); err != nil {
		return err
	}

	var competencies []Competency
	for _, raw := range graph.Graph {
		var node graphNode
		if err := json.Unmarshal(raw, &node); err != nil {
			return errors.WrapParse("json", graphURL, err)
		}
		switch node.Type {
		case TypeCompetencyFramework:
			var fw Framework
			if err := json.Unmarshal(raw, &fw); err != nil {
				return errors.WrapParse("json", graphURL, err)
			}
			c.library.SetExistingFramework(fw)
		case TypeCompetency:
			var comp Competency
			if err := json.Unmarshal(raw, &comp); err != nil {
				return errors.WrapParse("json", graphURL, err)
			}
			competencies = append(competencies, comp)
		}
	}

	c.library.SetExistingCompetencies(competencies)
	logging.Info().
		Int("competencies", len(competencies)).
		Msg("Existing framework graph loaded")
	return nil
}

// BuildPublishRequest assembles the framework document and the full graph
// payload for the library's current new competency set.
func (c *Client) BuildPublishRequest(library LibraryReader, sourceDomain, language string) PublishRequest {
	frameworkCTID := library.FrameworkCTID()
	competencies := library.NewCompetencies()

	topChildren := make([]string, 0, len(competencies))
	for _, comp := range competencies {
		topChildren = append(topChildren, comp.ID)
	}

	framework := Framework{
		ID:   c.endpoints.ResourceURL(frameworkCTID),
		Type: TypeCompetencyFramework,
		CTID: frameworkCTID,
		Name: Lang("en-us", FrameworkName),
		Description: Lang("en-us",
			"Open Skills published via the Open Skills Management Toolset at "+sourceDomain+"."),
		InLanguage:  []string{language},
		Publisher:   []string{c.endpoints.ResourceURL(c.conn.OrganizationCTID)},
		HasTopChild: topChildren,
	}

	graph := make([]any, 0, len(competencies)+1)
	graph = append(graph, framework)
	for _, comp := range competencies {
		graph = append(graph, comp)
	}

	return PublishRequest{
		CTID:                             frameworkCTID,
		PublishForOrganizationIdentifier: c.conn.OrganizationCTID,
		CompetencyFrameworkGraph: GraphDocument{
			Context: ContextURL,
			ID:      c.endpoints.GraphURL(frameworkCTID),
			Graph:   graph,
		},
	}
}

// PublishFramework submits an assembled graph to the assistant's publish
// endpoint. A non-2xx transport response is a fatal error. A 2xx response
// with Successful=false is a soft failure: the response is logged verbatim
// for operator inspection and the receipt reports Published=false without
// raising an error.
func (c *Client) PublishFramework(ctx context.Context, req PublishRequest) (*PublishReceipt, error) {
	publishURL := c.endpoints.Assistant + "/competencyframework/publishgraph"
	logging.Info().
		Str("graph_url", req.CompetencyFrameworkGraph.ID).
		Msg("Publishing competency framework")

	resp, err := c.transport.Post(ctx, publishURL, req)
	if err != nil {
		return nil, &errors.APIError{
			Service:  "assistant",
			Endpoint: publishURL,
			Message:  "failed to publish framework",
			Err:      err,
		}
	}

	var result PublishResponse
	if err := transport.DecodeResponse(resp, "assistant", &result); err != nil {
		return nil, err
	}

	receipt := &PublishReceipt{
		Published: result.Successful,
		CTID:      result.CTID,
		GraphURL:  result.GraphURL,
		Messages:  result.Messages,
	}

	if result.Successful {
		logging.Info().
			Str("graph_url", result.GraphURL).
			Msg("CompetencyFramework publish request successful")
	} else {
		raw, _ := json.Marshal(result)
		logging.Warn().
			RawJSON("response", raw).
			Msg("Registry reported an unsuccessful publish")
	}

	return receipt, nil
}
