package domain

import (
	"fmt"
	"strings"
)

// Product is a single product version that gets its own tag.
type Product struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// TagName returns the tag for this product version.
func (p Product) TagName() string {
	return ProductTagName(p.Name, p.Version)
}

// Manifest lists what a release session tags besides the release branch itself.
type Manifest struct {
	Bom      string    `yaml:"bom"`
	Products []Product `yaml:"products"`
}

// TagNames returns every tag the manifest produces for a session, in creation order.
func (m *Manifest) TagNames(session Session) []string {
	names := []string{ReleaseTagName(session.Branch)}
	if m.Bom != "" {
		names = append(names, BomTagName(m.Bom))
	}
	for _, p := range m.Products {
		names = append(names, p.TagName())
	}
	return names
}

// ParseProduct parses a "name@version" pair as written on the command line.
func ParseProduct(s string) (Product, error) {
	idx := strings.LastIndex(s, "@")
	if idx <= 0 || idx == len(s)-1 {
		return Product{}, fmt.Errorf("invalid product %q: expected name@version", s)
	}
	return Product{Name: s[:idx], Version: s[idx+1:]}, nil
}
