// Package registry provides the Credential Registry client: organization
// and framework session resolution, CTDL competency mapping, and framework
// graph publication through the registry assistant.
package registry

import (
	"fmt"

	"github.com/openskills/skillsync/pkg/errors"
)

// Environment selects a Credential Registry deployment.
type Environment string

// Known registry environments.
const (
	EnvironmentProduction Environment = "production"
	EnvironmentSandbox    Environment = "sandbox"
)

// Endpoints holds the base URLs of the two registry services: the resource/
// graph service and the search/publish assistant.
type Endpoints struct {
	Assistant string
	Registry  string
}

var environments = map[Environment]Endpoints{
	EnvironmentProduction: {
		Assistant: "https://credentialengine.org/assistant",
		Registry:  "https://credentialengineregistry.org",
	},
	EnvironmentSandbox: {
		Assistant: "https://sandbox.credentialengine.org/assistant",
		Registry:  "https://sandbox.credentialengineregistry.org",
	},
}

// EndpointsFor resolves the base URLs for an environment.
func EndpointsFor(env Environment) (Endpoints, error) {
	eps, ok := environments[env]
	if !ok {
		return Endpoints{}, &errors.ValidationError{
			Field:   "registry environment",
			Value:   string(env),
			Message: fmt.Sprintf("unknown environment %q; expected %q or %q", env, EnvironmentSandbox, EnvironmentProduction),
		}
	}
	return eps, nil
}

// ResourceURL returns the resource URL for a CTID.
func (e Endpoints) ResourceURL(ctid string) string {
	return fmt.Sprintf("%s/resources/%s", e.Registry, ctid)
}

// GraphURL returns the graph URL for a CTID.
func (e Endpoints) GraphURL(ctid string) string {
	return fmt.Sprintf("%s/graph/%s", e.Registry, ctid)
}

// Connection is the immutable per-run registry configuration.
type Connection struct {
	APIKey           string
	Environment      Environment
	OrganizationCTID string
}
