package odata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type executeRequest struct {
	ExecutionData string  `json:"executionData"`
	Metadata1     *string `json:"metadata1"`
	Metadata2     *string `json:"metadata2"`
}

type executionInfoResponse struct {
	Success             bool   `json:"Success"`
	TemplateExecutionID string `json:"TemplateExecutionId"`
	FailureReason       string `json:"FailureReason"`
}

type executionPoll struct {
	info     domain.ExecutionInfo
	pending  bool
	location string
	interval time.Duration
}

// Execute starts the template and waits for the portal to report completion.
// A 202 Accepted answer carries a Location that is polled until it stops
// answering 202, bounded by the configured execution timeout.
func (c *Client) Execute(ctx context.Context, templateID uuid.UUID, payload string, metadata1, metadata2 *string) (domain.ExecutionInfo, error) {
	ref := domain.EntityRef{Set: domain.EntitySetTemplates, ID: templateID}
	req := request{
		method: http.MethodPost,
		path:   entityPath(ref, "Execute"),
		body: executeRequest{
			ExecutionData: payload,
			Metadata1:     metadata1,
			Metadata2:     metadata2,
		},
	}

	deadline := time.Now().Add(c.cfg.ExecutionTimeout)

	var poll executionPoll
	err := c.call(ctx, req, func(resp *http.Response) error {
		var err error
		poll, err = c.readExecution(resp)
		return err
	})
	if err != nil {
		return domain.ExecutionInfo{}, err
	}

	for poll.pending {
		if poll.location == "" {
			return domain.ExecutionInfo{}, fmt.Errorf("execute template %s: accepted without a Location to poll", templateID)
		}

		waitUntil := time.Now().Add(poll.interval)
		if waitUntil.After(deadline) {
			return domain.ExecutionInfo{}, fmt.Errorf("execute template %s: %w after %s", templateID, domain.ErrTimeout, c.cfg.ExecutionTimeout)
		}

		timer := time.NewTimer(poll.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return domain.ExecutionInfo{}, fmt.Errorf("execute template %s: %w: %w", templateID, domain.ErrTimeout, ctx.Err())
			}
			return domain.ExecutionInfo{}, ctx.Err()
		case <-timer.C:
		}

		location := poll.location
		err := c.call(ctx, request{method: http.MethodGet, path: location}, func(resp *http.Response) error {
			var err error
			poll, err = c.readExecution(resp)
			if poll.location == "" {
				poll.location = location
			}
			return err
		})
		if err != nil {
			return domain.ExecutionInfo{}, err
		}
	}

	c.log.WithFields(logrus.Fields{
		"template_id":  templateID,
		"execution_id": poll.info.ExecutionID,
		"success":      poll.info.Success,
	}).Debug("template execution completed")

	return poll.info, nil
}

func (c *Client) readExecution(resp *http.Response) (executionPoll, error) {
	if resp.StatusCode == http.StatusAccepted {
		return executionPoll{
			pending:  true,
			location: resp.Header.Get("Location"),
			interval: retryAfter(resp.Header.Get("Retry-After"), c.cfg.PollInterval),
		}, nil
	}

	var payload executionInfoResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return executionPoll{}, err
	}

	info := domain.ExecutionInfo{
		Success:       payload.Success,
		FailureReason: payload.FailureReason,
	}
	if payload.TemplateExecutionID != "" {
		id, err := uuid.Parse(payload.TemplateExecutionID)
		if err != nil {
			return executionPoll{}, fmt.Errorf("parse template execution id: %w", err)
		}
		info.ExecutionID = id
	}
	if info.Success && info.ExecutionID == uuid.Nil {
		return executionPoll{}, fmt.Errorf("successful execution response missing TemplateExecutionId")
	}

	return executionPoll{info: info}, nil
}

func retryAfter(header string, fallback time.Duration) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
