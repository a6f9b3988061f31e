package beluga

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// createVisitPath is the synchronous no-prescription booking endpoint.
const createVisitPath = "/visit/createSyncNoRx"

// maxResponseBytes bounds how much of a partner response body is read and
// retained for diagnostics.
const maxResponseBytes = 64 << 10

// Booking is a successful outcome from the booking endpoint.
type Booking struct {
	ScheduleLink  string
	MasterID      string
	PartnerStatus int
	PartnerInfo   string
}

// visitResponse mirrors the fields of interest in the partner's JSON body.
// The embedded Status is the authoritative success signal.
type visitResponse struct {
	Status       int    `json:"status"`
	ScheduleLink string `json:"scheduleLink"`
	MasterID     string `json:"masterId"`
	Message      string `json:"message"`
	Info         string `json:"info"`
	Error        string `json:"error"`
}

// Client calls the Beluga booking API for one environment (staging or
// production). It is safe for concurrent use; a zero timeout disables the
// client-side bound and leaves only the caller's context deadline.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	log     zerolog.Logger
}

// NewClient builds a booking client for one partner environment.
func NewClient(baseURL, apiKey string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// CreateVisit posts a visit payload to the booking endpoint and classifies
// the outcome. The returned error, when non-nil, is always a *PartnerError;
// no retries are attempted here; retry policy belongs to the caller.
func (c *Client) CreateVisit(ctx context.Context, payload map[string]string) (*Booking, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &PartnerError{Kind: KindNetwork, Message: "encoding visit payload: " + err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+createVisitPath, bytes.NewReader(body))
	if err != nil {
		return nil, &PartnerError{Kind: KindNetwork, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		kind := KindNetwork
		if isTimeout(err) {
			kind = KindTimeout
		}
		c.log.Warn().Str("kind", string(kind)).Err(err).Msg("beluga call failed")
		return nil, &PartnerError{Kind: kind, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &PartnerError{Kind: KindNetwork, Message: "reading partner response: " + err.Error(), StatusCode: resp.StatusCode}
	}

	var vr visitResponse
	if err := json.Unmarshal(raw, &vr); err != nil {
		c.log.Warn().Int("http_status", resp.StatusCode).Msg("beluga returned non-JSON body")
		return nil, &PartnerError{
			Kind:       KindUnparseable,
			Message:    "partner returned a non-JSON response",
			StatusCode: resp.StatusCode,
			RawBody:    string(raw),
		}
	}

	if resp.StatusCode == http.StatusOK && vr.Status == http.StatusOK {
		return &Booking{
			ScheduleLink:  vr.ScheduleLink,
			MasterID:      vr.MasterID,
			PartnerStatus: vr.Status,
			PartnerInfo:   firstNonEmpty(vr.Info, vr.Message),
		}, nil
	}

	status := vr.Status
	if status == 0 {
		status = resp.StatusCode
	}
	return nil, &PartnerError{
		Kind:       KindRejected,
		Message:    firstNonEmpty(vr.Error, vr.Message, "partner rejected the booking"),
		StatusCode: status,
		RawBody:    string(raw),
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
