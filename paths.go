package pbexport

import (
	"fmt"
	"strings"
)

// Folder names of the package layout. The archive assembly and the
// navigation document both build paths from the same functions below,
// so the package contents and the offline index can never disagree.
const (
	dirCorePlan     = "Core_Plan"
	dirMoneyModel   = "Money_Model"
	dirMarketing    = "Marketing"
	dirAssetLibrary = "Asset_Library"
)

// Fixed filenames.
const (
	// GuideFilename sits at the archive root.
	GuideFilename = "Start_Here_Guide.pdf"

	// NavigationFilename is the offline index at the archive root.
	NavigationFilename = "index.html"

	// PackageFilename is the fixed name of the downloaded archive.
	PackageFilename = "Business_Playbook_Complete.zip"

	bundleFilename = "Complete_Asset_Pack.pdf"
)

// invalidPathChars are stripped from user-influenced name segments.
const invalidPathChars = `\/:*?"<>|`

// SanitizeName makes a name safe for use as a path segment: characters
// invalid on common filesystems are stripped and spaces become
// underscores. The same logical name always yields the same segment.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case strings.ContainsRune(invalidPathChars, r):
			// dropped
		case r == ' ':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sectionMeta pairs each section with its display title and canonical
// archive path.
var sectionMeta = map[SectionID]struct {
	Title string
	Path  string
}{
	SectionGuide:          {"Start Here Guide", GuideFilename},
	SectionDiagnosis:      {"Business Diagnosis", dirCorePlan + "/Business_Diagnosis.pdf"},
	SectionOperationsPlan: {"Operations Plan", dirCorePlan + "/Operations_Plan.pdf"},
	SectionKPIDashboard:   {"KPI Dashboard", dirCorePlan + "/KPI_Dashboard.pdf"},
	SectionAccountability: {"Accountability Tracker", dirCorePlan + "/Accountability_Tracker.pdf"},
	SectionMoneyModel:     {"Money Model Analysis", dirMoneyModel + "/Money_Model_Analysis.pdf"},
	SectionMarketingModel: {"Marketing Model", dirMarketing + "/Marketing_Model.pdf"},
	SectionSalesFunnel:    {"Sales Funnel", dirMarketing + "/Sales_Funnel.pdf"},
}

// SectionTitle returns the display title for a section.
func SectionTitle(id SectionID) (string, error) {
	meta, ok := sectionMeta[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	return meta.Title, nil
}

// SectionPath returns the canonical archive path for a section document.
func SectionPath(id SectionID) (string, error) {
	meta, ok := sectionMeta[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	return meta.Path, nil
}

// OfferDocPath returns the canonical archive path for an offer document.
func OfferDocPath(ref OfferRef, offerName string) string {
	prefix := "Offer"
	if ref == OfferRefDownsell {
		prefix = "Downsell"
	}
	return dirMoneyModel + "/" + prefix + "_" + SanitizeName(offerName) + ".pdf"
}

// AssetPath returns the canonical archive path for one asset document,
// nested under its owning offer's sanitized name.
func AssetPath(offerName string, a Asset) string {
	return dirAssetLibrary + "/" + SanitizeName(offerName) + "/" +
		SanitizeName(string(a.Type)) + "_" + SanitizeName(a.Name) + ".pdf"
}

// BundlePath returns the canonical archive path for an offer's full
// asset pack.
func BundlePath(offerName string) string {
	return dirAssetLibrary + "/" + SanitizeName(offerName) + "/" + bundleFilename
}

// docFilename derives the download filename for a single-document
// export from the unit's logical title.
func docFilename(title string) string {
	return SanitizeName(title) + ".pdf"
}
