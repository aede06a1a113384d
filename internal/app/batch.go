// Package app drives downloads for single resources and whole collections.
package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/logger"
	"grabarr/internal/metrics"
	"grabarr/internal/models"
)

// Downloader runs one resource to completion.
type Downloader interface {
	Download(ctx context.Context, req models.DownloadRequest) models.Result
}

// CollectionResolver expands a collection URL into member URLs.
type CollectionResolver interface {
	ResolveCollection(ctx context.Context, rawURL string) ([]string, error)
}

// IsCollectionURL reports whether rawURL carries a collection ("list") parameter.
func IsCollectionURL(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	return u.Query().Get(consts.CollectionQueryParam) != ""
}

// Batch processes collection members one after another.
type Batch struct {
	dl       Downloader
	resolver CollectionResolver
	metrics  *metrics.Metrics
}

// NewBatch returns a batch driver. m may be nil.
func NewBatch(dl Downloader, resolver CollectionResolver, m *metrics.Metrics) *Batch {
	return &Batch{dl: dl, resolver: resolver, metrics: m}
}

// Run downloads each member of the collection in order, continuing past failures.
//
// maxItems <= 0 processes every member.
func (b *Batch) Run(ctx context.Context, collectionURL string, req models.DownloadRequest, maxItems int) (*models.BatchSummary, error) {
	urls, err := b.resolver.ResolveCollection(ctx, collectionURL)
	if err != nil {
		return nil, fmt.Errorf("resolving collection %q: %w", collectionURL, err)
	}
	return b.RunURLs(ctx, urls, req, maxItems), nil
}

// RunURLs downloads each URL in order, continuing past failures.
func (b *Batch) RunURLs(ctx context.Context, urls []string, req models.DownloadRequest, maxItems int) *models.BatchSummary {
	if maxItems > 0 && len(urls) > maxItems {
		urls = urls[:maxItems]
	}
	logger.Pl.I("Playlist: %d items", len(urls))

	summary := &models.BatchSummary{Total: len(urls)}
	for i, u := range urls {
		if ctx.Err() != nil {
			logger.Pl.W("Stopping early, %d items not processed", len(urls)-i)
			summary.Failed = append(summary.Failed, urls[i:]...)
			break
		}
		logger.Pl.I("--- [%d/%d] %s", i+1, len(urls), u)

		res := b.dl.Download(ctx, req.WithURL(u))
		b.metrics.BatchItem(res.OK())
		if res.OK() {
			summary.Succeeded = append(summary.Succeeded, u)
			summary.Files = append(summary.Files, res.Path())
			continue
		}
		logger.Pl.E("Item %d/%d failed: %s", i+1, len(urls), u)
		summary.Failed = append(summary.Failed, u)
	}

	logger.Pl.I("Playlist finished: %d succeeded, %d failed", len(summary.Succeeded), len(summary.Failed))
	return summary
}

// Run picks single or collection mode for rawURL.
//
// A single download reports its result in a one-item summary.
func Run(ctx context.Context, dl Downloader, resolver CollectionResolver, m *metrics.Metrics,
	rawURL string, req models.DownloadRequest, forceCollection bool, maxItems int) (*models.BatchSummary, error) {

	if forceCollection || IsCollectionURL(rawURL) {
		return NewBatch(dl, resolver, m).Run(ctx, rawURL, req, maxItems)
	}

	summary := &models.BatchSummary{Total: 1}
	if res := dl.Download(ctx, req.WithURL(rawURL)); res.OK() {
		summary.Succeeded = []string{rawURL}
		summary.Files = []string{res.Path()}
	} else {
		summary.Failed = []string{rawURL}
	}
	return summary, nil
}
