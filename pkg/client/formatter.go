package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	apperrors "phonefmt/pkg/errors"
	"phonefmt/pkg/model"
)

const (
	formatPath      = "/api/v1/phone-numbers/format"
	formatBatchPath = "/api/v1/phone-numbers/format/batch"
)

// FormatterClient talks to formatter-api.
type FormatterClient struct {
	http *HttpClient
}

func NewFormatterClient(baseURL string) *FormatterClient {
	return &FormatterClient{http: NewHttpClient(baseURL)}
}

// WithClientID sets the caller identity used for rate limiting.
func (c *FormatterClient) WithClientID(id string) *FormatterClient {
	c.http.ClientID = id
	return c
}

func (c *FormatterClient) HTTP() *HttpClient {
	return c.http
}

func (c *FormatterClient) Format(ctx context.Context, req model.FormatRequest) (*model.FormatResult, error) {
	resp, err := c.http.POST(ctx, formatPath, req)
	if err != nil {
		return nil, err
	}
	return decodeResult(resp)
}

// FormatQuery uses the GET endpoint, which is always strict.
func (c *FormatterClient) FormatQuery(ctx context.Context, number, homeRegion string) (*model.FormatResult, error) {
	q := url.Values{}
	q.Set("number", number)
	if homeRegion != "" {
		q.Set("home_region", homeRegion)
	}

	resp, err := c.http.GET(ctx, formatPath+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	return decodeResult(resp)
}

func (c *FormatterClient) FormatBatch(ctx context.Context, req model.BatchFormatRequest) ([]*model.FormatResult, int, error) {
	resp, err := c.http.POST(ctx, formatBatchPath, req)
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, ResponseError(resp)
	}

	var body struct {
		Data   []*model.FormatResult `json:"data"`
		Count  int                   `json:"count"`
		Failed int                   `json:"failed"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, 0, fmt.Errorf("failed to decode batch response: %w", err)
	}
	return body.Data, body.Failed, nil
}

func decodeResult(resp *Response) (*model.FormatResult, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, ResponseError(resp)
	}

	var body struct {
		Data *model.FormatResult `json:"data"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return body.Data, nil
}

// ResponseError rebuilds the server's AppError from an error response.
func ResponseError(resp *Response) *apperrors.AppError {
	var errResp apperrors.ErrorResponse
	if err := resp.DecodeJSON(&errResp); err != nil || errResp.Code == "" {
		return apperrors.New(apperrors.CodeInternal, fmt.Sprintf("unexpected response status %d", resp.StatusCode), resp.StatusCode)
	}
	return apperrors.New(errResp.Code, errResp.Message, resp.StatusCode).WithDetails(errResp.Details)
}
