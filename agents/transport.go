// Copyright (c) Microsoft. All rights reserved.

package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	af "github.com/microsoft/agent-labs/go/agentframework"
)

// newRequest returns an authorized request bound to ctx. A token is acquired
// per request; credential implementations cache tokens themselves.
func (c *Client) newRequest(ctx context.Context) (*resty.Request, error) {
	token, err := c.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: c.scopes})
	if err != nil {
		return nil, fmt.Errorf("%w: get azure token: %w", af.ErrAuth, err)
	}
	return c.rc.R().
		SetContext(ctx).
		SetAuthToken(token.Token).
		SetHeader("x-ms-client-request-id", uuid.NewString()), nil
}

// send executes a JSON request and decodes the response body into out when
// out is non-nil.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx)
	if err != nil {
		return err
	}
	if body != nil {
		req.SetBody(body)
	}
	return c.execute(ctx, req, method, path, out)
}

func (c *Client) execute(ctx context.Context, req *resty.Request, method, path string, out any) error {
	c.logger.DebugContext(ctx, "agents request", "method", method, "path", path)

	resp, err := req.Execute(method, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %w", af.ErrService, method, path, err)
	}

	c.logger.DebugContext(ctx, "agents response",
		"method", method,
		"path", path,
		"status", resp.StatusCode(),
		"duration", resp.Time(),
	)

	if resp.IsError() {
		return parseErrorResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", af.ErrInvalidResponse, method, path, err)
	}
	return nil
}

// parseErrorResponse maps an error response to a typed error.
func parseErrorResponse(resp *resty.Response) error {
	var apiErr struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	_ = json.Unmarshal(resp.Body(), &apiErr)

	msg := apiErr.Error.Message
	if msg == "" {
		msg = resp.String()
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}

	svcErr := &af.ServiceError{
		StatusCode: resp.StatusCode(),
		Message:    msg,
		Code:       apiErr.Error.Code,
		RequestID:  resp.Header().Get("x-ms-client-request-id"),
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		svcErr.Err = af.ErrAuth
	case http.StatusNotFound:
		svcErr.Err = af.ErrNotFound
	case http.StatusBadRequest:
		svcErr.Err = af.ErrInvalidRequest
	default:
		svcErr.Err = af.ErrService
	}
	return svcErr
}
