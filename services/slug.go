package services

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugCollapse = regexp.MustCompile(`[\s-]+`)
)

// Slugify normalizes a title into a URL-safe slug: lowercase, strip
// anything outside [a-z0-9 -], collapse whitespace/hyphen runs to a
// single hyphen, trim edge hyphens.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SlugService allocates unique slugs against a target table.
type SlugService struct{}

func NewSlugService() *SlugService {
	return &SlugService{}
}

// Allocate derives a slug from title and probes table for collisions,
// appending -1, -2, ... until a free slug is found. An empty or
// unusable title is a validation failure, never an empty slug.
func (s *SlugService) Allocate(tx *gorm.DB, title, table string) (string, error) {
	base := Slugify(title)
	if base == "" {
		return "", &ValidationError{Field: "title"}
	}

	candidate := base
	for i := 1; ; i++ {
		var count int64
		if err := tx.Table(table).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", fmt.Errorf("probe slug %q on %s: %w", candidate, table, err)
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
