package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"protocol-tracker/internal/constants"
	"protocol-tracker/internal/trackerv1"

	"github.com/valyala/fasthttp"
)

// Client calls the tracker RPC service with the connect unary protocol over
// plain JSON.
type Client struct {
	baseURL string
	client  *fasthttp.Client
}

// Error is a failed call as reported by the server.
type Error struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("rpc error: http %d", e.Status)
	}
	return fmt.Sprintf("rpc error: %s: %s", e.Code, e.Message)
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         constants.ClientTimeout,
			WriteTimeout:        constants.ClientTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *Client) ListSeasons(ctx context.Context) (*trackerv1.ListSeasonsResponse, error) {
	return doRequest[trackerv1.ListSeasonsRequest, trackerv1.ListSeasonsResponse](ctx, c, trackerv1.ListSeasonsProcedure, &trackerv1.ListSeasonsRequest{})
}

func (c *Client) ImportMatches(ctx context.Context, season, csv string) (*trackerv1.ImportMatchesResponse, error) {
	return doRequest[trackerv1.ImportMatchesRequest, trackerv1.ImportMatchesResponse](ctx, c, trackerv1.ImportMatchesProcedure, &trackerv1.ImportMatchesRequest{Season: season, Csv: csv})
}

func (c *Client) ExportMatches(ctx context.Context, season string) (*trackerv1.ExportMatchesResponse, error) {
	return doRequest[trackerv1.ExportMatchesRequest, trackerv1.ExportMatchesResponse](ctx, c, trackerv1.ExportMatchesProcedure, &trackerv1.ExportMatchesRequest{Season: season})
}

func (c *Client) GetStats(ctx context.Context, season string, partitions ...string) (*trackerv1.GetStatsResponse, error) {
	return doRequest[trackerv1.GetStatsRequest, trackerv1.GetStatsResponse](ctx, c, trackerv1.GetStatsProcedure, &trackerv1.GetStatsRequest{Season: season, Partitions: partitions})
}

func (c *Client) ArchiveSeason(ctx context.Context, season string) (*trackerv1.ArchiveSeasonResponse, error) {
	return doRequest[trackerv1.ArchiveSeasonRequest, trackerv1.ArchiveSeasonResponse](ctx, c, trackerv1.ArchiveSeasonProcedure, &trackerv1.ArchiveSeasonRequest{Season: season})
}

func doRequest[Req, Res any](ctx context.Context, client *Client, procedure string, msg *Req) (*Res, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(client.baseURL + procedure)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Connect-Protocol-Version", "1")
	req.SetBody(body)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		rpcErr := &Error{Status: resp.StatusCode()}
		_ = json.Unmarshal(resp.Body(), rpcErr)
		return nil, rpcErr
	}

	var result Res
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}
