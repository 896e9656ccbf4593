package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/openskills/skillsync/pkg/errors"
)

// DecodeResponse decodes a JSON response into the target structure.
// Any non-2xx status is returned as an APIError carrying the endpoint,
// status code and response body.
func DecodeResponse(resp *http.Response, service string, target any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapResource("read", "response body", resp.Request.URL.String(), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &errors.APIError{
			Service:    service,
			Endpoint:   resp.Request.URL.String(),
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", resp.Request.URL.String(), err)
	}

	return nil
}
