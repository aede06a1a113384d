package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/logger"
	"grabarr/internal/models"
	gnet "grabarr/internal/net"

	"github.com/kkdai/youtube/v2"
)

// YouTube implements Provider on top of the kkdai/youtube client.
//
// Collections on other sites are resolved by scraping their pages for media links.
type YouTube struct {
	client  *youtube.Client
	scraper *LinkScraper
}

// NewYouTube returns a provider using httpClient for every request.
func NewYouTube(httpClient *http.Client) *YouTube {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &YouTube{
		client:  &youtube.Client{HTTPClient: httpClient},
		scraper: NewLinkScraper(httpClient.Transport),
	}
}

// Fetch implements Provider.
func (y *YouTube) Fetch(ctx context.Context, rawURL string) (*models.Resource, error) {
	if _, err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	video, err := y.client.GetVideoContext(ctx, rawURL)
	if err != nil {
		if isInvalidVideoID(err) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
		}
		return nil, fmt.Errorf("fetching metadata for %q: %w", rawURL, err)
	}

	res := &models.Resource{
		ID:          video.ID,
		URL:         rawURL,
		Title:       video.Title,
		Author:      video.Author,
		Duration:    video.Duration,
		PublishDate: video.PublishDate,
		Streams:     make([]*models.Stream, 0, len(video.Formats)),
		Handle:      video,
	}
	for i := range video.Formats {
		res.Streams = append(res.Streams, formatToStream(&video.Formats[i]))
	}

	logger.Pl.D(2, "Fetched %q by %q with %d streams", res.Title, res.Author, len(res.Streams))
	return res, nil
}

// Open implements Provider.
func (y *YouTube) Open(ctx context.Context, res *models.Resource, s *models.Stream) (io.ReadCloser, int64, error) {
	video, ok := res.Handle.(*youtube.Video)
	if !ok || video == nil {
		return nil, 0, fmt.Errorf("resource %q was not fetched by this provider", res.URL)
	}
	format, ok := s.Handle.(*youtube.Format)
	if !ok || format == nil {
		return nil, 0, fmt.Errorf("stream %d has no format handle", s.ID)
	}

	rc, size, err := y.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return nil, 0, fmt.Errorf("opening stream %d: %w", s.ID, err)
	}
	if size <= 0 {
		size = s.Size
	}
	return rc, size, nil
}

// ResolveCollection implements Provider.
func (y *YouTube) ResolveCollection(ctx context.Context, rawURL string) ([]string, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	if isYouTubeHost(rawURL) && u.Query().Get(consts.CollectionQueryParam) != "" {
		playlist, err := y.client.GetPlaylistContext(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("fetching playlist %q: %w", rawURL, err)
		}
		logger.Pl.I("Playlist %q has %d entries", playlist.Title, len(playlist.Videos))

		urls := make([]string, 0, len(playlist.Videos))
		for _, entry := range playlist.Videos {
			if entry == nil || entry.ID == "" {
				continue
			}
			urls = append(urls, watchURLForID(entry.ID))
		}
		return urls, nil
	}

	return y.scraper.Links(ctx, rawURL)
}

func isYouTubeHost(rawURL string) bool {
	domain, err := gnet.RootDomain(rawURL)
	if err != nil {
		return false
	}
	return domain == "youtube.com" || domain == "youtu.be"
}

func isInvalidVideoID(err error) bool {
	return errors.Is(err, youtube.ErrInvalidCharactersInVideoID) ||
		errors.Is(err, youtube.ErrVideoIDMinLength)
}

func watchURLForID(id string) string {
	return "https://www.youtube.com/watch?v=" + strings.TrimSpace(id)
}
