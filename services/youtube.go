// services/youtube.go - YouTube Data API client
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// ErrYouTubeNotConfigured is returned when no API key is set. The
// handler maps it to 503 so the client can distinguish "not configured"
// from an upstream failure.
var ErrYouTubeNotConfigured = errors.New("youtube api key not configured")

// DefaultChannelID is Youssef's channel.
const DefaultChannelID = "UCzLBWyAYcp_ynG85K3NxXtQ"

const defaultAPIBaseURL = "https://www.googleapis.com/youtube/v3"

// YouTubeService proxies the handful of YouTube Data API calls the
// landing page needs. Calls are not retried: a failed upstream call
// surfaces immediately.
type YouTubeService struct {
	apiKey    string
	channelID string
	baseURL   string
	client    *http.Client
}

// NewYouTubeService reads YOUTUBE_API_KEY (or VITE_YOUTUBE_API_KEY, kept
// for parity with older deployments) from the environment.
func NewYouTubeService() *YouTubeService {
	apiKey := os.Getenv("YOUTUBE_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("VITE_YOUTUBE_API_KEY")
	}

	channelID := os.Getenv("YOUTUBE_CHANNEL_ID")
	if channelID == "" {
		channelID = DefaultChannelID
	}

	return &YouTubeService{
		apiKey:    apiKey,
		channelID: channelID,
		baseURL:   defaultAPIBaseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ChannelStats mirrors the statistics block of the channels endpoint.
// The API returns counters as strings and we pass them through as-is.
type ChannelStats struct {
	SubscriberCount string `json:"subscriberCount"`
	ViewCount       string `json:"viewCount"`
	VideoCount      string `json:"videoCount"`
}

type searchResponse struct {
	Items []json.RawMessage `json:"items"`
}

type channelsResponse struct {
	Items []struct {
		Statistics ChannelStats `json:"statistics"`
	} `json:"items"`
}

// LatestVideos returns the channel's 6 most recent videos as raw API
// items; the client consumes the YouTube search result shape directly.
func (s *YouTubeService) LatestVideos() ([]json.RawMessage, error) {
	if s.apiKey == "" {
		return nil, ErrYouTubeNotConfigured
	}

	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("channelId", s.channelID)
	params.Set("part", "snippet,id")
	params.Set("order", "date")
	params.Set("maxResults", "6")
	params.Set("type", "video")

	var result searchResponse
	if err := s.getJSON("/search", params, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// Stats returns the channel's subscriber, view, and video counts.
func (s *YouTubeService) Stats() (*ChannelStats, error) {
	if s.apiKey == "" {
		return nil, ErrYouTubeNotConfigured
	}

	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("part", "statistics")
	params.Set("id", s.channelID)

	var result channelsResponse
	if err := s.getJSON("/channels", params, &result); err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("no statistics for channel %s", s.channelID)
	}
	return &result.Items[0].Statistics, nil
}

func (s *YouTubeService) getJSON(path string, params url.Values, dest interface{}) error {
	resp, err := s.client.Get(s.baseURL + path + "?" + params.Encode())
	if err != nil {
		return fmt.Errorf("youtube api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube api returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("youtube api response decode failed: %w", err)
	}
	return nil
}
