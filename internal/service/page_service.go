package service

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"blogbootstrap/internal/config"
	"blogbootstrap/internal/models"
	"blogbootstrap/internal/repository"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	siteName          = "HBTinsights"
	descriptionLength = 200
	publishedLayout   = "January 2, 2006"
)

//go:embed templates/*.html
var templateFS embed.FS

type PageResult struct {
	Posts      int
	Categories map[models.Category]int
}

type PageService interface {
	Generate(ctx context.Context, dir string) (*PageResult, error)
}

type pageService struct {
	postRepo  repository.PostRepository
	siteURL   string
	templates *template.Template
	markdown  goldmark.Markdown
	content   *bluemonday.Policy
	plain     *bluemonday.Policy
	out       io.Writer
	now       func() time.Time
}

type layoutData struct {
	SiteName   string
	Categories []models.Category
	Year       int
	URL        string
}

type postItem struct {
	models.BlogPost
	Published string
}

type postPage struct {
	layoutData
	Post        models.BlogPost
	Description string
	Published   string
	Content     template.HTML
	Schema      template.JS
}

type listPage struct {
	layoutData
	Category models.Category
	Posts    []postItem
}

type schemaImage struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type schemaOrganization struct {
	Type string       `json:"@type"`
	Name string       `json:"name"`
	Logo *schemaImage `json:"logo,omitempty"`
}

type articleSchema struct {
	Context       string             `json:"@context"`
	Type          string             `json:"@type"`
	Headline      string             `json:"headline"`
	Description   string             `json:"description"`
	DatePublished string             `json:"datePublished"`
	DateModified  string             `json:"dateModified"`
	Author        schemaOrganization `json:"author"`
	Publisher     schemaOrganization `json:"publisher"`
	Image         *schemaImage       `json:"image,omitempty"`
}

func NewPageService(postRepo repository.PostRepository, cfg *config.Config, out io.Writer) PageService {
	if out == nil {
		out = io.Discard
	}
	return &pageService{
		postRepo:  postRepo,
		siteURL:   strings.TrimRight(cfg.Site.URL, "/"),
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		content:   bluemonday.UGCPolicy(),
		plain:     bluemonday.StrictPolicy(),
		out:       out,
		now:       time.Now,
	}
}

// Generate writes posts/<id>.html for every post, posts/index.html and
// categories/<category>.html under dir.
func (s *pageService) Generate(ctx context.Context, dir string) (*PageResult, error) {
	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.out, "Fetched %d posts\n", len(posts))

	postsDir := filepath.Join(dir, "posts")
	categoriesDir := filepath.Join(dir, "categories")
	for _, d := range []string{postsDir, categoriesDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("error creating page directory: %w", err)
		}
	}

	base := layoutData{
		SiteName:   siteName,
		Categories: models.Categories(),
		Year:       s.now().Year(),
	}

	items := make([]postItem, 0, len(posts))
	for _, post := range posts {
		page, err := s.buildPostPage(base, post)
		if err != nil {
			return nil, err
		}

		name := post.ID.String() + ".html"
		if err := s.render(filepath.Join(postsDir, name), "post.html", page); err != nil {
			return nil, err
		}
		fmt.Fprintf(s.out, "Generated: %s - %s\n", name, truncate(post.Title, 50))

		items = append(items, postItem{BlogPost: post, Published: page.Published})
	}

	index := listPage{layoutData: base, Posts: items}
	index.URL = s.siteURL + "/posts/index.html"
	if err := s.render(filepath.Join(postsDir, "index.html"), "index.html", index); err != nil {
		return nil, err
	}
	fmt.Fprintln(s.out, "Generated posts index page")

	res := &PageResult{Posts: len(posts), Categories: make(map[models.Category]int)}
	for _, c := range models.Categories() {
		page := listPage{layoutData: base, Category: c}
		page.URL = fmt.Sprintf("%s/categories/%s.html", s.siteURL, c)
		for _, item := range items {
			if strings.EqualFold(string(item.Category), string(c)) {
				page.Posts = append(page.Posts, item)
			}
		}

		if err := s.render(filepath.Join(categoriesDir, string(c)+".html"), "category.html", page); err != nil {
			return nil, err
		}
		res.Categories[c] = len(page.Posts)
		fmt.Fprintf(s.out, "Generated category page: %s.html (%d posts)\n", c, len(page.Posts))
	}

	return res, nil
}

func (s *pageService) buildPostPage(base layoutData, post models.BlogPost) (*postPage, error) {
	var rendered bytes.Buffer
	if err := s.markdown.Convert([]byte(post.Content), &rendered); err != nil {
		return nil, fmt.Errorf("error rendering post %s: %w", post.ID, err)
	}
	body := s.content.SanitizeBytes(rendered.Bytes())

	text := html.UnescapeString(s.plain.Sanitize(rendered.String()))
	description := truncate(strings.Join(strings.Fields(text), " "), descriptionLength)

	page := &postPage{
		layoutData:  base,
		Post:        post,
		Description: description,
		Published:   post.CreatedAt.Format(publishedLayout),
		Content:     template.HTML(body),
	}
	page.URL = fmt.Sprintf("%s/posts/%s.html", s.siteURL, post.ID)

	published := post.CreatedAt.UTC().Format(time.RFC3339)
	schema := articleSchema{
		Context:       "https://schema.org",
		Type:          "NewsArticle",
		Headline:      post.Title,
		Description:   description,
		DatePublished: published,
		DateModified:  published,
		Author:        schemaOrganization{Type: "Organization", Name: siteName},
		Publisher: schemaOrganization{
			Type: "Organization",
			Name: siteName,
			Logo: &schemaImage{Type: "ImageObject", URL: s.siteURL + "/icons/Icon-192.png"},
		},
	}
	if post.ImageURL != "" {
		schema.Image = &schemaImage{Type: "ImageObject", URL: post.ImageURL}
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("error encoding article schema: %w", err)
	}
	page.Schema = template.JS(data)

	return page, nil
}

// render executes the template in memory so a failed page never reaches disk.
func (s *pageService) render(path, name string, data any) error {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("error rendering %s: %w", name, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("error writing page: %w", err)
	}
	return nil
}

// truncate cuts s to at most n runes and marks the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
