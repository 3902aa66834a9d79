package repositories

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Liveness checks that the collaborator service answers. Any HTTP response counts: only a
// transport failure means the service cannot be reached.
func (c *CollaboratorClient) Liveness(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseUrl+"/", nil)
	if err != nil {
		return errors.Wrap(err, "liveness: could not create request")
	}
	req.Header.Set("User-Agent", CollaboratorUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "liveness: collaborator service unreachable")
	}
	resp.Body.Close()
	return nil
}
