package mediawiki

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/pronounce/internal/domain"
	"github.com/heartmarshall/pronounce/internal/provider"
)

// PageMedia lists the files embedded on the page with the given title.
// Returns nil, nil if the page does not exist.
func (c *Client) PageMedia(ctx context.Context, source domain.ReferenceSource, title string) (*provider.PageMedia, error) {
	result, err := c.Query(ctx, source, url.Values{
		"action":  {"query"},
		"prop":    {"images"},
		"titles":  {title},
		"imlimit": {"max"},
	})
	if err != nil {
		return nil, err
	}

	page, ok := singlePage(result)
	if !ok || isMissing(page) {
		return nil, nil
	}

	media := &provider.PageMedia{
		PageTitle: page.Get("title").String(),
		Files:     []string{},
	}
	page.Get("images").ForEach(func(_, image gjson.Result) bool {
		t := image.Get("title")
		if t.Type == gjson.String && t.String() != "" {
			media.Files = append(media.Files, t.String())
		}
		return true
	})

	c.log.DebugContext(ctx, "mediawiki page media",
		slog.String("source", source.Name),
		slog.String("title", title),
		slog.Int("files", len(media.Files)),
	)

	return media, nil
}

// FileInfo looks up the direct URL of a file. Returns nil, nil if the
// source does not know the file or reports no URL for it.
func (c *Client) FileInfo(ctx context.Context, source domain.ReferenceSource, fileTitle string) (*provider.FileInfo, error) {
	result, err := c.Query(ctx, source, url.Values{
		"action": {"query"},
		"prop":   {"imageinfo"},
		"titles": {fileTitle},
		"iiprop": {"url"},
	})
	if err != nil {
		return nil, err
	}

	page, ok := singlePage(result)
	if !ok {
		return nil, nil
	}

	u := page.Get("imageinfo.0.url")
	if u.Type != gjson.String || u.String() == "" {
		return nil, nil
	}

	return &provider.FileInfo{
		Title:      page.Get("title").String(),
		URL:        u.String(),
		Repository: page.Get("imagerepository").String(),
	}, nil
}
