package usecase

import (
	"fmt"
	"regexp"

	"github.com/compozy/releasetag/internal/domain"
	"github.com/compozy/releasetag/internal/repository"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// productNameRegex matches product names that are safe inside a tag name
var productNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// LoadManifestUseCase reads a release manifest and merges command line additions into it.

type LoadManifestUseCase struct {
	FsRepo repository.FileSystemRepository
}

// Execute loads path (if set), applies bom and products overrides and validates the result.
func (uc *LoadManifestUseCase) Execute(path, bom string, products []string) (*domain.Manifest, error) {
	manifest := &domain.Manifest{}
	if path != "" {
		data, err := afero.ReadFile(uc.FsRepo, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, manifest); err != nil {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
		}
	}
	if bom != "" {
		manifest.Bom = bom
	}
	for _, raw := range products {
		product, err := domain.ParseProduct(raw)
		if err != nil {
			return nil, err
		}
		manifest.Products = append(manifest.Products, product)
	}
	if err := ValidateManifest(manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

// ValidateManifest checks versions, product names and duplicates.
func ValidateManifest(m *domain.Manifest) error {
	if m.Bom != "" {
		if _, err := domain.NewVersion(m.Bom); err != nil {
			return fmt.Errorf("invalid bom version: %w", err)
		}
	}
	seen := make(map[string]bool, len(m.Products))
	for _, p := range m.Products {
		if !productNameRegex.MatchString(p.Name) {
			return fmt.Errorf("invalid product name: %q", p.Name)
		}
		if p.Name == domain.BomTagPrefix {
			return fmt.Errorf("product name %q is reserved for bom tags", p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate product: %s", p.Name)
		}
		seen[p.Name] = true
		if _, err := domain.NewVersion(p.Version); err != nil {
			return fmt.Errorf("invalid version for %s: %w", p.Name, err)
		}
	}
	return nil
}
