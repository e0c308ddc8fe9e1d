package meeting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"brightpath/models"
)

// HTTPProvisioner talks to a Zoom-style meetings API.
type HTTPProvisioner struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewHTTPProvisioner constructs a provisioner against the configured API.
func NewHTTPProvisioner(baseURL, apiKey string) *HTTPProvisioner {
	return &HTTPProvisioner{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type createMeetingRequest struct {
	Topic           string    `json:"topic"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration"`
}

type createMeetingResponse struct {
	ID       string `json:"id"`
	Topic    string `json:"topic"`
	JoinURL  string `json:"join_url"`
	HostURL  string `json:"start_url"`
	Password string `json:"password"`
}

func (p *HTTPProvisioner) CreateMeeting(ctx context.Context, topic string, start time.Time, durationMinutes int) (*models.Meeting, error) {
	body, err := json.Marshal(createMeetingRequest{
		Topic:           topic,
		StartTime:       start.UTC(),
		DurationMinutes: durationMinutes,
	})
	if err != nil {
		return nil, fmt.Errorf("encode meeting request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/meetings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build meeting request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("meeting API call failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("meeting API returned status %d", resp.StatusCode)
	}

	var out createMeetingResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode meeting response: %w", err)
	}

	return &models.Meeting{
		ID:              out.ID,
		Topic:           out.Topic,
		JoinURL:         out.JoinURL,
		HostURL:         out.HostURL,
		Password:        out.Password,
		StartTime:       start.UTC(),
		DurationMinutes: durationMinutes,
	}, nil
}

func (p *HTTPProvisioner) DeleteMeeting(ctx context.Context, meetingID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, p.BaseURL+"/meetings/"+meetingID, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("meeting API call failed: %w", err)
	}
	defer resp.Body.Close()
	// A missing meeting counts as deleted.
	if resp.StatusCode != http.StatusNotFound && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		return fmt.Errorf("meeting API returned status %d", resp.StatusCode)
	}
	return nil
}
