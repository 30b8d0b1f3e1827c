// Package publisher implements the Publisher (C12): slug and canonical
// URL computation, JSON-LD synthesis, HTML page rendering, and the
// master article index that the published site reads from.
package publisher

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
	"github.com/Gyro1978/Dacoola-sub001/pkg/config"
	"github.com/Gyro1978/Dacoola-sub001/pkg/fsutil"
)

// Publisher writes a record's final HTML page and keeps the master index
// in sync. The master index is a single shared file: callers running
// multiple workers must serialize their Publish calls (a mutex around the
// call, or a single dedicated goroutine).
type Publisher struct {
	site  config.SiteConfig
	paths config.Paths
}

// New constructs a Publisher.
func New(site config.SiteConfig, paths config.Paths) *Publisher {
	return &Publisher{site: site, paths: paths}
}

// Result is what a successful Publish call produced.
type Result struct {
	Slug         string
	CanonicalURL string
	HTMLPath     string
}

// Publish computes rec's slug and canonical URL (unless already set),
// synthesizes its JSON-LD object, renders the HTML page to disk, and
// upserts the record's summary into the master index. Callers running
// multiple workers MUST serialize calls to Publish (e.g. a single
// goroutine, or a mutex around the call) since master-index mutation is
// read-modify-write against one shared file.
func (p *Publisher) Publish(rec *article.Record) (Result, error) {
	if rec.Slug == "" {
		rec.Slug = Slugify(rec.FinalPageH1)
	}
	canonicalURL := CanonicalURL(p.site.BaseURL, rec.Slug)

	jsonLD := BuildNewsArticle(JSONLDInput{
		Headline:        rec.FinalPageH1,
		Slug:            rec.Slug,
		BaseURL:         p.site.BaseURL,
		AuthorName:      p.site.AuthorNameDefault,
		PublishedISO:    rec.PublishedISOUTC,
		ModifiedISO:     rec.ModifiedISOUTC,
		ImageURL:        rec.SelectedImageURL,
		MetaDescription: rec.GeneratedMetaDesc,
		BodyMarkdown:    rec.GeneratedArticleBodyFinal,
		Keywords:        rec.FinalKeywords,
		PrimaryTopic:    rec.PrimaryTopic,
		Site:            Organization{Name: p.site.Name, LogoURL: p.site.LogoURL},
	})
	rec.GeneratedJSONLD = jsonLD

	jsonLDText, err := json.MarshalIndent(jsonLD, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("marshaling json-ld for %s: %w", rec.ID, err)
	}

	html, err := RenderPage(rec, canonicalURL, string(jsonLDText))
	if err != nil {
		return Result{}, fmt.Errorf("rendering page for %s: %w", rec.ID, err)
	}

	if err := fsutil.EnsureDir(p.paths.ArticlesDir); err != nil {
		return Result{}, err
	}
	htmlPath := filepath.Join(p.paths.ArticlesDir, rec.Slug+".html")
	if err := fsutil.WriteFileAtomic(htmlPath, []byte(html), 0o644); err != nil {
		return Result{}, fmt.Errorf("writing HTML for %s: %w", rec.ID, err)
	}

	idx, err := LoadMasterIndex(p.paths.MasterIndexPath)
	if err != nil {
		return Result{}, fmt.Errorf("loading master index: %w", err)
	}
	idx.Upsert(ArticleSummary{
		ID:           rec.ID,
		Title:        rec.FinalPageH1,
		Link:         "articles/" + rec.Slug + ".html",
		PublishedISO: rec.PublishedISOUTC,
		ImageURL:     rec.SelectedImageURL,
		Summary:      rec.ProcessedSummary,
		PrimaryTopic: rec.PrimaryTopic,
		Keywords:     rec.FinalKeywords,
	})
	if err := idx.Save(p.paths.MasterIndexPath); err != nil {
		return Result{}, fmt.Errorf("saving master index: %w", err)
	}

	return Result{Slug: rec.Slug, CanonicalURL: canonicalURL, HTMLPath: htmlPath}, nil
}
