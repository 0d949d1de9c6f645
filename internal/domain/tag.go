package domain

// BomTagPrefix is the product name used for bill-of-materials tags.
const BomTagPrefix = "bom"

// ReleaseTagName returns the tag for a release branch. A release branch's name
// doubles as its release tag.
func ReleaseTagName(branch string) string {
	return branch
}

// BomTagName returns the tag for an aggregate BOM version.
func BomTagName(version string) string {
	return ProductTagName(BomTagPrefix, version)
}

// ProductTagName returns the tag for a single product version.
func ProductTagName(product, version string) string {
	return product + "@" + version
}
