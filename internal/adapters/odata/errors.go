package odata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
)

const maxErrorBodyBytes = 64 << 10

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func statusError(req request, resp *http.Response) error {
	detail := decodeErrorDetail(resp)

	var kind error
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = domain.ErrAuthorization
	case http.StatusNotFound:
		kind = domain.ErrNotFound
	case http.StatusConflict, http.StatusLocked, http.StatusPreconditionFailed:
		kind = domain.ErrConflict
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		kind = domain.ErrTimeout
	default:
		return fmt.Errorf("%s %s: %s", req.method, req.path, detail)
	}

	return fmt.Errorf("%s %s: %w: %s", req.method, req.path, kind, detail)
}

func transportError(req request, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s %s: %w: %w", req.method, req.path, domain.ErrTimeout, err)
	}
	return fmt.Errorf("%s %s: %w", req.method, req.path, err)
}

func decodeErrorDetail(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil || len(data) == 0 {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}

	var payload errorResponse
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error.Message != "" {
		if payload.Error.Code != "" {
			return fmt.Sprintf("status %d: %s: %s", resp.StatusCode, payload.Error.Code, payload.Error.Message)
		}
		return fmt.Sprintf("status %d: %s", resp.StatusCode, payload.Error.Message)
	}

	return fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
}
