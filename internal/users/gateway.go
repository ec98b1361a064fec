package users

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/olsam100/lendsqr-admin-api/pkg/config"
	pkgerrors "github.com/olsam100/lendsqr-admin-api/pkg/errors"
	"github.com/olsam100/lendsqr-admin-api/pkg/logger"
)

// Gateway fetches the raw user collection from the upstream feed.
type Gateway interface {
	FetchUsers(ctx context.Context) ([]RawUserRecord, error)
}

// HTTPGateway is the production Gateway over the remote user endpoint.
type HTTPGateway struct {
	client *http.Client
	url    string
	logg   *logger.Logger
}

// NewHTTPGateway builds a gateway against the configured upstream, honoring
// the configured per-request timeout.
func NewHTTPGateway(cfg *config.Config, logg *logger.Logger) *HTTPGateway {
	return &HTTPGateway{
		client: &http.Client{Timeout: cfg.Upstream.Timeout},
		url:    cfg.Upstream.UsersURL(cfg.App),
		logg:   logg,
	}
}

// FetchUsers retrieves and decodes the full user collection. Transport
// failures and 5xx responses are classified retryable; 4xx responses are
// terminal since retrying an identical rejected request cannot succeed.
func (g *HTTPGateway) FetchUsers(ctx context.Context) ([]RawUserRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building upstream request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling user feed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("user feed returned %d", resp.StatusCode))
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, pkgerrors.New(pkgerrors.CodeUpstreamRejected,
			fmt.Sprintf("user feed rejected request with %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading user feed body")
	}

	var records []RawUserRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding user feed payload")
	}
	if g.logg != nil {
		g.logg.Info(g.logg.WithField(ctx, "records", len(records)), "fetched user feed")
	}
	return records, nil
}

// Ping reports whether the upstream feed is reachable. A 4xx answer still
// counts as reachable; only transport failures and 5xx mark it down.
func (g *HTTPGateway) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, g.url, nil)
	if err != nil {
		return err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("user feed returned %d", resp.StatusCode)
	}
	return nil
}

// maxFeedBytes caps how much of the upstream response is buffered.
const maxFeedBytes = 32 << 20
