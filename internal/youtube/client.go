// Package youtube wraps paginated video search over the YouTube Data API.
package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/draftmill/draftmill/internal/core/model"
)

// pageSize is the API's maximum page size for search.
const pageSize = 50

type Client struct {
	svc        *yt.Service
	maxResults int64
}

func NewClient(ctx context.Context, apiKey string, maxResults int64) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube api key is not set")
	}
	svc, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	if maxResults <= 0 {
		maxResults = 200
	}
	return &Client{svc: svc, maxResults: maxResults}, nil
}

// Search pages through results for query, following the opaque page token,
// until maxResults videos are collected or the token runs out. Each page of
// ids is hydrated with statistics and content details.
func (c *Client) Search(ctx context.Context, query string) ([]model.Video, error) {
	var videos []model.Video
	pageToken := ""

	for int64(len(videos)) < c.maxResults {
		remaining := c.maxResults - int64(len(videos))
		n := remaining
		if n > pageSize {
			n = pageSize
		}

		call := c.svc.Search.List([]string{"id", "snippet"}).
			Q(query).
			Type("video").
			MaxResults(n).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("youtube search: %w", err)
		}

		var ids []string
		for _, item := range resp.Items {
			if item.Id != nil && item.Id.VideoId != "" {
				ids = append(ids, item.Id.VideoId)
			}
		}
		if len(ids) == 0 {
			break
		}

		vresp, err := c.svc.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
			Id(ids...).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("youtube videos: %w", err)
		}

		for _, item := range vresp.Items {
			v := model.Video{ID: item.Id}
			if item.Snippet != nil {
				v.Title = item.Snippet.Title
				v.Description = item.Snippet.Description
			}
			if item.Statistics != nil {
				v.ViewCount = item.Statistics.ViewCount
				v.LikeCount = item.Statistics.LikeCount
			}
			if item.ContentDetails != nil {
				v.Duration = FormatDuration(item.ContentDetails.Duration)
			}
			videos = append(videos, v)
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return videos, nil
}
