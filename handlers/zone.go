package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"todo-api/utils"
)

var ErrUpstream = errors.New("upstream request failed")

const zoneTimeout = 2 * time.Second

// ZoneProxy relays the instance availability zone from the metadata
// service.
type ZoneProxy struct {
	url    string
	client *http.Client
}

func NewZoneProxy(url string, client *http.Client) *ZoneProxy {
	if client == nil {
		client = &http.Client{Timeout: zoneTimeout}
	}
	return &ZoneProxy{url: url, client: client}
}

func (p *ZoneProxy) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return body, nil
}

// GetZone godoc
// @Summary      Availability zone of the host instance
// @Tags         ops
// @Produce      plain
// @Success      200  {string}  string  "zone name"
// @Failure      500  {string}  string  "Something went wrong"
// @Router       /get-zone [get]
func (p *ZoneProxy) GetZone(w http.ResponseWriter, r *http.Request) {
	body, err := p.Fetch(r.Context())
	if err != nil {
		slog.Error("get zone", "url", p.url, "err", err)
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}
	utils.WriteText(w, http.StatusOK, string(body))
}
