// Package bitrix provides a read-only client for the Bitrix24 REST webhook.
// Only the deal-listing method is consumed; requests use Bitrix's
// bracket-encoded query parameter convention.
package bitrix

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agenciaworcode-source/dashboard-expatur/internal/config"
	"go.uber.org/zap"
)

const dealListMethod = "crm.deal.list"

// Client issues paginated list requests against a Bitrix24 webhook
type Client struct {
	webhookURL string
	httpClient *http.Client
	maxRecords int
	logger     *zap.Logger
}

// NewClient creates a Bitrix client from configuration
func NewClient(cfg *config.BitrixConfig, logger *zap.Logger) *Client {
	timeout := cfg.RequestTimeoutDuration()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	maxRecords := cfg.MaxRecordsPerStage
	if maxRecords <= 0 {
		maxRecords = 500
	}

	return &Client{
		webhookURL: strings.TrimSuffix(cfg.WebhookURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		maxRecords: maxRecords,
		logger:     logger,
	}
}

// ListDeals fetches every deal in the given pipeline stage, following the
// pagination cursor until the API reports no further page. Accumulation stops
// early once maxRecords is exceeded; truncation is logged, not an error.
// Any non-success HTTP status aborts the whole fetch for the stage.
func (c *Client) ListDeals(ctx context.Context, stageID string) ([]Deal, error) {
	var all []Deal
	start := 0

	for {
		page, err := c.listDealsPage(ctx, stageID, start)
		if err != nil {
			return nil, err
		}

		all = append(all, page.Result...)

		if page.Next == nil || *page.Next <= start {
			break
		}
		start = *page.Next

		// The cap is checked between pages, so the last page before the
		// break is kept whole and the result may exceed maxRecords by up
		// to one page.
		if len(all) > c.maxRecords {
			c.logger.Warn("deal fetch truncated at safety cap",
				zap.String("stage_id", stageID),
				zap.Int("accumulated", len(all)),
				zap.Int("cap", c.maxRecords),
			)
			break
		}
	}

	c.logger.Debug("fetched deals for stage",
		zap.String("stage_id", stageID),
		zap.Int("count", len(all)),
	)

	return all, nil
}

func (c *Client) listDealsPage(ctx context.Context, stageID string, start int) (*ListResponse[Deal], error) {
	params := requestParams{
		filter: map[string]string{"STAGE_ID": stageID},
		order:  map[string]string{"ID": "DESC"},
		sel:    SelectFields,
		start:  start,
	}

	reqURL := fmt.Sprintf("%s/%s?%s", c.webhookURL, dealListMethod, params.encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build bitrix request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bitrix request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused before we bail
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("bitrix api error: status %d", resp.StatusCode)
	}

	var page ListResponse[Deal]
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode bitrix response: %w", err)
	}

	return &page, nil
}

// requestParams models the Bitrix query convention: scalar filter and order
// entries become filter[KEY]=value / order[KEY]=value, the selection list
// becomes repeated indexed select[i]=FIELD entries.
type requestParams struct {
	filter map[string]string
	order  map[string]string
	sel    []string
	start  int
}

func (p requestParams) encode() string {
	q := url.Values{}

	for _, key := range sortedKeys(p.filter) {
		q.Set(fmt.Sprintf("filter[%s]", key), p.filter[key])
	}
	for _, key := range sortedKeys(p.order) {
		q.Set(fmt.Sprintf("order[%s]", key), p.order[key])
	}
	for i, field := range p.sel {
		q.Set(fmt.Sprintf("select[%d]", i), field)
	}
	q.Set("start", strconv.Itoa(p.start))

	return q.Encode()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
