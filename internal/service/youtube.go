package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// YouTubeClient fills in video metadata from the YouTube Data API. It is
// optional: without an API key, submitted videos keep their placeholder
// title until an admin edits them.
type YouTubeClient struct {
	apiKey string
	client *http.Client
}

func NewYouTubeClient(apiKey string) *YouTubeClient {
	if apiKey == "" {
		return nil
	}
	return &YouTubeClient{
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type VideoMeta struct {
	Title       string
	ChannelName string
	Duration    int // seconds
}

func (y *YouTubeClient) FetchVideoMeta(ctx context.Context, videoID string) (*VideoMeta, error) {
	response := struct {
		Items []struct {
			Snippet struct {
				ChannelTitle string `json:"channelTitle"`
				Title        string `json:"title"`
			} `json:"snippet"`
			ContentDetails struct {
				Duration string `json:"duration"`
			} `json:"contentDetails"`
		} `json:"items"`
	}{}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/youtube/v3/videos", nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Add("key", y.apiKey)
	q.Add("part", "snippet,contentDetails")
	q.Add("id", videoID)
	req.URL.RawQuery = q.Encode()

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube api returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}
	if len(response.Items) == 0 {
		return nil, errors.New("no item returned from YouTube")
	}

	var min, sec int
	fmt.Sscanf(response.Items[0].ContentDetails.Duration, "PT%dM%dS", &min, &sec)

	return &VideoMeta{
		Title:       response.Items[0].Snippet.Title,
		ChannelName: response.Items[0].Snippet.ChannelTitle,
		Duration:    min*60 + sec,
	}, nil
}
