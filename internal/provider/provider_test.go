package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"grabarr/internal/models"

	"github.com/kkdai/youtube/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatToStream(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  youtube.Format
		kind    models.StreamKind
		height  int
		bitrate int
		subtype string
	}{
		{
			name:    "progressive",
			format:  youtube.Format{ItagNo: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, Width: 640, Height: 360, AudioChannels: 2, Bitrate: 500_000},
			kind:    models.KindProgressive,
			height:  360,
			bitrate: 500,
			subtype: "mp4",
		},
		{
			name:    "video only",
			format:  youtube.Format{ItagNo: 248, MimeType: `video/webm; codecs="vp9"`, QualityLabel: "1080p60", Width: 1920},
			kind:    models.KindVideoOnly,
			height:  1080,
			subtype: "webm",
		},
		{
			name:    "audio only",
			format:  youtube.Format{ItagNo: 251, MimeType: `audio/webm; codecs="opus"`, AudioChannels: 2, AverageBitrate: 160_000},
			kind:    models.KindAudioOnly,
			bitrate: 160,
			subtype: "webm",
		},
		{
			name:    "3gpp",
			format:  youtube.Format{ItagNo: 17, MimeType: "video/3gpp", Height: 144, AudioChannels: 1},
			kind:    models.KindProgressive,
			height:  144,
			subtype: "3gp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := formatToStream(&tt.format)
			assert.Equal(t, tt.format.ItagNo, s.ID)
			assert.Equal(t, tt.kind, s.Kind)
			assert.Equal(t, tt.height, s.Height)
			assert.Equal(t, tt.bitrate, s.Bitrate)
			assert.Equal(t, tt.subtype, s.Subtype)
			assert.Same(t, &tt.format, s.Handle)
		})
	}
}

func TestMimeToExt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "mp4", mimeToExt(`audio/mp4; codecs="mp4a.40.2"`))
	assert.Equal(t, "webm", mimeToExt("video/webm"))
	assert.Equal(t, "", mimeToExt("garbage"))
	assert.Equal(t, "", mimeToExt(""))
}

func TestValidateURL(t *testing.T) {
	t.Parallel()

	_, err := ValidateURL("https://www.youtube.com/watch?v=abc")
	assert.NoError(t, err)

	for _, bad := range []string{"", "ftp://x/y", "youtube.com/watch", "https://", "::::"} {
		_, err := ValidateURL(bad)
		assert.ErrorIs(t, err, ErrInvalidURL, bad)
	}

	_, err = NewYouTube(nil).Fetch(context.Background(), "not a url")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestLinkScraperDirectMedia(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/list", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="/media/one.mp4">one</a>
			<a href="/about">about</a>
			<a href="media/two.webm">two</a>
			<a href="/media/one.mp4">dup</a>
			<a href="https://cdn.example.org/three.MKV?sig=1">three</a>
		</body></html>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	links, err := NewLinkScraper(nil).Links(context.Background(), srv.URL+"/list")
	require.NoError(t, err)
	assert.Equal(t, []string{
		srv.URL + "/media/one.mp4",
		srv.URL + "/media/two.webm",
		"https://cdn.example.org/three.MKV?sig=1",
	}, links)
}

func TestLinkScraperHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewLinkScraper(nil).Links(context.Background(), srv.URL+"/missing")
	assert.Error(t, err)
}

func TestLinkScraperCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLinkScraper(nil).Links(ctx, "https://example.org/page")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatcherForKnownSite(t *testing.T) {
	t.Parallel()

	m := matcherFor("https://www.bitchute.com/channel/abc/")
	assert.True(t, m("https://www.bitchute.com/video/xyz/"))
	assert.False(t, m("https://www.bitchute.com/channel/abc/about"))
}
