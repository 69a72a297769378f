package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blogbootstrap/internal/config"
	"blogbootstrap/internal/models"
	"blogbootstrap/internal/repository"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type staticPage struct {
	path       string
	changeFreq string
	priority   string
}

var staticPages = []staticPage{
	{"/", "daily", "1.0"},
	{"/home.html", "daily", "0.9"},
	{"/about.html", "monthly", "0.7"},
	{"/contact.html", "monthly", "0.7"},
	{"/privacy.html", "monthly", "0.6"},
}

type SitemapService interface {
	Generate(ctx context.Context, w io.Writer) (int, error)
	WriteFile(ctx context.Context, path string) (int, error)
}

type sitemapService struct {
	postRepo repository.PostRepository
	siteURL  string
	now      func() time.Time
}

func NewSitemapService(postRepo repository.PostRepository, cfg *config.Config) SitemapService {
	return &sitemapService{
		postRepo: postRepo,
		siteURL:  strings.TrimRight(cfg.Site.URL, "/"),
		now:      time.Now,
	}
}

// Generate writes the sitemap and returns how many posts it lists.
func (s *sitemapService) Generate(ctx context.Context, w io.Writer) (int, error) {
	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now().UTC().Format(time.RFC3339)
	set := urlSet{Xmlns: sitemapNS}

	for _, p := range staticPages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.siteURL + p.path,
			LastMod:    now,
			ChangeFreq: p.changeFreq,
			Priority:   p.priority,
		})
	}

	for _, c := range models.Categories() {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/categories/%s.html", s.siteURL, c),
			LastMod:    now,
			ChangeFreq: "daily",
			Priority:   "0.9",
		})
	}

	for _, post := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/posts/%s.html", s.siteURL, post.ID),
			LastMod:    post.CreatedAt.UTC().Format(time.RFC3339),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return 0, fmt.Errorf("error writing sitemap: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return 0, fmt.Errorf("error encoding sitemap: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return 0, fmt.Errorf("error writing sitemap: %w", err)
	}

	return len(posts), nil
}

func (s *sitemapService) WriteFile(ctx context.Context, path string) (int, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("error creating sitemap directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("error creating sitemap file: %w", err)
	}

	n, err := s.Generate(ctx, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("error closing sitemap file: %w", cerr)
	}
	if err != nil {
		return 0, err
	}

	return n, nil
}
