package pbexport

import (
	"fmt"
	"strings"
)

// ExportUnit pairs printable markdown content with its canonical
// archive path. Units are ephemeral: built for one export operation
// and discarded.
type ExportUnit struct {
	Title    string
	Path     string
	Markdown string
}

// sectionUnit builds the unit for a known section id.
func sectionUnit(p *Playbook, id SectionID) ExportUnit {
	meta := sectionMeta[id]
	content, _ := p.SectionContent(id)
	return ExportUnit{
		Title:    meta.Title,
		Path:     meta.Path,
		Markdown: "# " + meta.Title + "\n\n" + content,
	}
}

// SectionUnit renders one playbook section as a printable unit.
func SectionUnit(p *Playbook, id SectionID) (ExportUnit, error) {
	if _, ok := sectionMeta[id]; !ok {
		return ExportUnit{}, fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	return sectionUnit(p, id), nil
}

// OfferUnit renders one offer as a printable document: pricing summary
// plus the full value stack.
func OfferUnit(p *Playbook, ref OfferRef) (ExportUnit, error) {
	offer, err := p.Offer(ref)
	if err != nil {
		return ExportUnit{}, err
	}
	hook := ""
	if ref == OfferRefDownsell {
		hook = p.Downsell.Hook
	}
	return ExportUnit{
		Title:    offer.Name,
		Path:     OfferDocPath(ref, offer.Name),
		Markdown: offerMarkdown(*offer, hook),
	}, nil
}

// offerMarkdown builds the printable body for one offer.
func offerMarkdown(o Offer, hook string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", o.Name)
	if hook != "" {
		fmt.Fprintf(&b, "> %s\n\n", hook)
	}
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Price | %s |\n", o.Price)
	fmt.Fprintf(&b, "| Guarantee | %s |\n", o.Guarantee)
	fmt.Fprintf(&b, "| Total Value | %s |\n", o.TotalValue)
	b.WriteString("\n## Value Stack\n\n")
	for i, item := range o.Stack {
		fmt.Fprintf(&b, "### %d. %s\n\n%s\n\n", i+1, item.Problem, item.Solution)
		if item.Asset != nil {
			fmt.Fprintf(&b, "**Included asset:** %s (%s)\n\n", item.Asset.Name, item.Asset.Type)
		}
	}
	return b.String()
}

// assetUnit builds the unit for one materialized stack item.
func assetUnit(offerName string, item OfferStackItem) ExportUnit {
	a := item.Asset
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", a.Name)
	fmt.Fprintf(&b, "*%s — part of %s*\n\n", a.Type, offerName)
	b.WriteString(a.Content)
	return ExportUnit{
		Title:    a.Name,
		Path:     AssetPath(offerName, *a),
		Markdown: b.String(),
	}
}

// AssetUnit renders a single asset of an offer as a printable unit.
func AssetUnit(offer Offer, item int) (ExportUnit, error) {
	if item < 0 || item >= len(offer.Stack) {
		return ExportUnit{}, fmt.Errorf("%w: %d", ErrUnknownItem, item)
	}
	if offer.Stack[item].Asset == nil {
		return ExportUnit{}, ErrNoAsset
	}
	return assetUnit(offer.Name, offer.Stack[item]), nil
}

// BundleUnit renders the full asset pack for one offer: every item's
// asset concatenated into one document. The bundle is produced even
// when some (or all) items lack assets.
func BundleUnit(offer Offer) ExportUnit {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Asset Pack\n\n", offer.Name)
	fmt.Fprintf(&b, "Every downloadable resource included with **%s**.\n\n", offer.Name)
	for _, item := range offer.Stack {
		if item.Asset == nil {
			continue
		}
		fmt.Fprintf(&b, "---\n\n## %s\n\n*%s*\n\n%s\n\n", item.Asset.Name, item.Asset.Type, item.Asset.Content)
	}
	return ExportUnit{
		Title:    offer.Name + " Asset Pack",
		Path:     BundlePath(offer.Name),
		Markdown: b.String(),
	}
}

// PlaybookUnit renders the whole playbook as one document, all sections
// in fixed order. It is a single-file export convenience and is not
// part of the batch package.
func PlaybookUnit(p *Playbook) ExportUnit {
	var b strings.Builder
	for i, id := range SectionOrder {
		if i > 0 {
			b.WriteString("\n\n---\n\n")
		}
		b.WriteString(sectionUnit(p, id).Markdown)
	}
	return ExportUnit{
		Title:    "Business Playbook",
		Path:     "Business_Playbook.pdf",
		Markdown: b.String(),
	}
}
