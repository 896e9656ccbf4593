package registry

// CTDL node types used in framework graphs.
const (
	TypeCompetencyFramework = "ceasn:CompetencyFramework"
	TypeCompetency          = "ceasn:Competency"
)

// FrameworkName is the fixed name under which the open skills library is
// published, and the name searched for when reconnecting to a prior run.
const FrameworkName = "OSMT Open Skills Library"

// ContextURL is the CTDL-ASN JSON-LD context for published graphs.
const ContextURL = "https://credreg.net/ctdlasn/schema/context/json"

// LangString maps a language tag to a single value, e.g.
// {"en-us": "Access Creation"}.
type LangString map[string]string

// LangStrings maps a language tag to multiple values, e.g.
// {"en-us": ["Authentication", "SafeNet"]}.
type LangStrings map[string][]string

// Lang builds a single-language LangString.
func Lang(language, value string) LangString {
	return LangString{language: value}
}

// LangPlural builds a single-language LangStrings.
func LangPlural(language string, values []string) LangStrings {
	return LangStrings{language: values}
}

// Competency is a CTDL competency record keyed by a registry-assigned CTID.
type Competency struct {
	ID            string      `json:"@id"`
	Type          string      `json:"@type"`
	CTID          string      `json:"ceterms:ctid"`
	Label         LangString  `json:"ceasn:competencyLabel"`
	Text          LangString  `json:"ceasn:competencyText"`
	Keywords      LangStrings `json:"ceasn:conceptKeyword,omitempty"`
	Category      LangString  `json:"ceasn:competencyCategory,omitempty"`
	InLanguage    []string    `json:"ceterms:inLanguage,omitempty"`
	IsPartOf      string      `json:"ceasn:isPartOf"`
	IsTopChildOf  string      `json:"ceasn:isTopChildOf,omitempty"`
	SkillEmbodied []string    `json:"ceasn:skillEmbodied,omitempty"`
	// ExactAlignment and MajorAlignment carry alignment resource URLs.
	ExactAlignment []string `json:"ceasn:exactAlignment,omitempty"`
	MajorAlignment []string `json:"ceasn:majorAlignment,omitempty"`
}

// Framework is a CTDL competency framework document.
type Framework struct {
	ID            string     `json:"@id"`
	Type          string     `json:"@type"`
	CTID          string     `json:"ceterms:ctid"`
	Name          LangString `json:"ceasn:name"`
	Description   LangString `json:"ceasn:description"`
	InLanguage    []string   `json:"ceasn:inLanguage"`
	Publisher     []string   `json:"ceasn:publisher"`
	PublisherName LangString `json:"ceasn:publisherName,omitempty"`
	HasTopChild   []string   `json:"ceasn:hasTopChild"`
}

// SearchQuery is the CTDL query posted to the assistant's search endpoint.
type SearchQuery struct {
	Type      []string `json:"@type"`
	Publisher string   `json:"ceasn:publisher"`
	Name      string   `json:"ceasn:name"`
}

// SearchRequest is the assistant search envelope.
type SearchRequest struct {
	Query SearchQuery `json:"Query"`
	Take  int         `json:"Take"`
	Skip  int         `json:"Skip"`
}

// SearchHit is one result row of an assistant search.
type SearchHit struct {
	ID   string `json:"@id"`
	CTID string `json:"ceterms:ctid"`
}

// SearchResponse is the assistant search response envelope.
type SearchResponse struct {
	Data   []SearchHit `json:"data"`
	Valid  bool        `json:"valid"`
	Status string      `json:"status"`
}

// GraphDocument is a linked-data graph: one framework node plus its member
// competencies under a fixed context.
type GraphDocument struct {
	Context string `json:"@context"`
	ID      string `json:"@id"`
	Graph   []any  `json:"@graph"`
}

// PublishRequest is the assistant publishgraph envelope.
type PublishRequest struct {
	CTID                             string        `json:"CTID"`
	PublishForOrganizationIdentifier string        `json:"PublishForOrganizationIdentifier"`
	CompetencyFrameworkGraph         GraphDocument `json:"CompetencyFrameworkGraph"`
}

// PublishResponse is the assistant publishgraph response.
type PublishResponse struct {
	Successful                 bool     `json:"Successful"`
	Messages                   []string `json:"Messages"`
	CTID                       string   `json:"CTID"`
	ResponseDate               string   `json:"ResponseDate"`
	EnvelopeURL                string   `json:"EnvelopeUrl"`
	GraphURL                   string   `json:"GraphUrl"`
	CredentialFinderURL        string   `json:"CredentialFinderUrl"`
	RegistryEnvelopeIdentifier string   `json:"RegistryEnvelopeIdentifier"`
}

// PublishReceipt reports the outcome of a publish attempt that reached the
// registry. Published=false is a soft failure: the transport succeeded but
// the registry rejected the graph, and the run still completes.
type PublishReceipt struct {
	Published bool
	CTID      string
	GraphURL  string
	Messages  []string
}
