// Package client speaks the interview backend's HTTP/JSON contract and
// satisfies flow.Backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KeshavMowar711/AI-Interview-App/internal/flow"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

// StartInterview implements flow.Backend.
func (c *Client) StartInterview(ctx context.Context, jobRole, userID string) (string, error) {
	body := map[string]string{
		"jobRole":     jobRole,
		"clerkUserId": userID,
	}

	var resp struct {
		InterviewID string `json:"interviewId"`
	}
	if err := c.post(ctx, "/api/start-interview", body, &resp); err != nil {
		return "", err
	}

	return resp.InterviewID, nil
}

// GenerateQuestion implements flow.Backend.
func (c *Client) GenerateQuestion(ctx context.Context, jobRole string) (string, error) {
	body := map[string]string{
		"jobRole": jobRole,
	}

	var resp struct {
		Question string `json:"question"`
	}
	if err := c.post(ctx, "/api/generate-question", body, &resp); err != nil {
		return "", err
	}

	return resp.Question, nil
}

// GradeAnswer implements flow.Backend.
func (c *Client) GradeAnswer(ctx context.Context, interviewID, question, userAnswer string) (flow.Feedback, error) {
	body := map[string]string{
		"interviewId": interviewID,
		"question":    question,
		"userAnswer":  userAnswer,
	}

	var resp flow.Feedback
	if err := c.post(ctx, "/api/grade-answer", body, &resp); err != nil {
		return flow.Feedback{}, err
	}

	return resp, nil
}

// ListInterviews implements flow.Backend.
func (c *Client) ListInterviews(ctx context.Context, userID string) ([]flow.Session, error) {
	endpoint := "/api/interviews?userId=" + url.QueryEscape(userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	var sessions []flow.Session
	if err := c.do(req, &sessions); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// do runs the request and decodes the response. Non-2xx responses become
// *flow.RemoteError carrying the backend's error string verbatim; transport
// and decode failures are returned as-is.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(data, &payload); err != nil || payload.Error == "" {
			payload.Error = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		return &flow.RemoteError{Status: resp.StatusCode, Message: payload.Error}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
