package skillgap

import (
	"context"
	"fmt"

	"jobmatch/internal/config"
	"jobmatch/internal/errors"
	"jobmatch/internal/types"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// VideoClient looks up tutorial videos for missing skills. Lookup failures
// are logged and return an empty list; video suggestions are never load
// bearing.
type VideoClient struct {
	service    *youtube.Service
	maxResults int64
	logger     *errors.Logger
}

func NewVideoClient(ctx context.Context, cfg config.YouTubeConfig, logger *errors.Logger) (*VideoClient, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, errors.NewModelError(errors.ErrCodeModelUnavailable,
			"failed to create YouTube client", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 3
	}
	return &VideoClient{service: service, maxResults: maxResults, logger: logger}, nil
}

// Search returns up to maxResults tutorial videos for one skill.
func (c *VideoClient) Search(ctx context.Context, skill string) []types.LearningVideo {
	call := c.service.Search.List([]string{"snippet"}).
		Q(fmt.Sprintf("%s tutorial programming", skill)).
		Type("video").
		Order("relevance").
		MaxResults(c.maxResults).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		c.logger.LogError(err, "YouTube search failed", "skill", skill)
		return nil
	}

	videos := make([]types.LearningVideo, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		videos = append(videos, types.LearningVideo{
			Title:     item.Snippet.Title,
			Channel:   item.Snippet.ChannelTitle,
			URL:       "https://www.youtube.com/watch?v=" + item.Id.VideoId,
			Thumbnail: thumbnailURL(item.Snippet.Thumbnails),
		})
	}
	return videos
}

func thumbnailURL(thumbnails *youtube.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}
	if thumbnails.Medium != nil {
		return thumbnails.Medium.Url
	}
	if thumbnails.Default != nil {
		return thumbnails.Default.Url
	}
	return ""
}
