package analyzer

import (
	"net/url"
	"strings"

	"github.com/lessonkit/lessonkit/models"
	"github.com/lessonkit/lessonkit/pkg/page"
)

// classifyContentType buckets the page into the closed content-type
// enum using meta tags, URL shape, and DOM signals, cheapest signal
// first.
func classifyContentType(snap *page.Snapshot) models.ContentType {
	doc := snap.Doc

	// og:type is the most explicit signal when present.
	if ogType, ok := doc.Find(`meta[property="og:type"]`).Attr("content"); ok {
		switch {
		case strings.HasPrefix(ogType, "article"):
			return refineArticle(snap)
		case strings.HasPrefix(ogType, "product"):
			return models.ContentProduct
		case strings.HasPrefix(ogType, "video"), strings.HasPrefix(ogType, "music"):
			return models.ContentMultimedia
		case strings.HasPrefix(ogType, "profile"):
			return models.ContentSocial
		}
	}

	host, path := hostAndPath(snap.URL)

	socialHosts := []string{"twitter.com", "x.com", "facebook.com", "instagram.com", "tiktok.com", "reddit.com"}
	for _, h := range socialHosts {
		if strings.Contains(host, h) {
			return models.ContentSocial
		}
	}

	if strings.Contains(host, "wikipedia.org") || strings.Contains(path, "/wiki/") {
		return models.ContentEncyclopedia
	}

	if strings.Contains(host, "youtube.com") || strings.Contains(host, "vimeo.com") ||
		doc.Find("video").Length() > 0 && doc.Find("p").Length() < 3 {
		return models.ContentMultimedia
	}

	commerceMarkers := []string{"/product/", "/products/", "/cart", "/checkout", "/shop/"}
	for _, m := range commerceMarkers {
		if strings.Contains(path, m) {
			return models.ContentEcommerce
		}
	}
	if doc.Find("[class*='add-to-cart'], [class*='price'], [itemtype*='Product']").Length() >= 3 {
		return models.ContentProduct
	}

	if strings.Contains(host, "blog.") || strings.Contains(path, "/blog/") {
		return models.ContentBlog
	}
	if strings.Contains(path, "/news/") || strings.Contains(host, "news.") {
		return models.ContentNews
	}
	if strings.Contains(path, "/tutorial") || strings.Contains(path, "/how-to") || strings.Contains(path, "/guide") {
		return models.ContentTutorial
	}

	// Navigation-only pages: overwhelmingly links, little prose.
	links := doc.Find("a").Length()
	paragraphs := doc.Find("p").Length()
	if links > 20 && paragraphs < 3 {
		return models.ContentNavigation
	}

	if doc.Find("article").Length() > 0 {
		return refineArticle(snap)
	}
	if paragraphs >= 5 {
		return models.ContentArticle
	}
	return models.ContentOther
}

// refineArticle distinguishes news/blog/tutorial flavors of an article
// page, defaulting to plain article.
func refineArticle(snap *page.Snapshot) models.ContentType {
	host, path := hostAndPath(snap.URL)
	switch {
	case strings.Contains(path, "/news/") || strings.Contains(host, "news."):
		return models.ContentNews
	case strings.Contains(host, "blog.") || strings.Contains(path, "/blog/"):
		return models.ContentBlog
	case strings.Contains(path, "/tutorial") || strings.Contains(path, "/how-to"):
		return models.ContentTutorial
	}
	return models.ContentArticle
}

func hostAndPath(rawURL string) (host, path string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", strings.ToLower(rawURL)
	}
	return strings.ToLower(u.Host), strings.ToLower(u.Path)
}
