package pbexport

// ManifestGroup is one titled group of the package layout.
type ManifestGroup struct {
	Title string
	Units []ExportUnit
}

// Manifest enumerates every document of the full package export in its
// fixed order: the top-level guide, the core-plan documents, the money
// model with its offer documents, the marketing documents, then one
// asset-library group per offer (full bundle first, then one unit per
// asset actually present). The batch exporter converts the flattened
// units and the navigation generator renders the same groups, so both
// always agree on the archive's relative paths.
func Manifest(p *Playbook) []ManifestGroup {
	groups := []ManifestGroup{
		{
			Title: "Getting Started",
			Units: []ExportUnit{sectionUnit(p, SectionGuide)},
		},
		{
			Title: "Core Plan",
			Units: []ExportUnit{
				sectionUnit(p, SectionDiagnosis),
				sectionUnit(p, SectionOperationsPlan),
				sectionUnit(p, SectionKPIDashboard),
				sectionUnit(p, SectionAccountability),
			},
		},
	}

	moneyModel := ManifestGroup{
		Title: "Money Model",
		Units: []ExportUnit{sectionUnit(p, SectionMoneyModel)},
	}
	for _, ref := range OfferRefs {
		unit, err := OfferUnit(p, ref)
		if err != nil {
			continue // unreachable for the fixed refs
		}
		moneyModel.Units = append(moneyModel.Units, unit)
	}
	groups = append(groups, moneyModel)

	groups = append(groups, ManifestGroup{
		Title: "Marketing",
		Units: []ExportUnit{
			sectionUnit(p, SectionMarketingModel),
			sectionUnit(p, SectionSalesFunnel),
		},
	})

	for _, ref := range OfferRefs {
		offer, err := p.Offer(ref)
		if err != nil {
			continue // unreachable for the fixed refs
		}
		group := ManifestGroup{
			Title: offer.Name + " Assets",
			Units: []ExportUnit{BundleUnit(*offer)},
		}
		for i, item := range offer.Stack {
			if item.Asset == nil {
				continue
			}
			unit, err := AssetUnit(*offer, i)
			if err != nil {
				continue // unreachable: presence checked above
			}
			group.Units = append(group.Units, unit)
		}
		groups = append(groups, group)
	}

	return groups
}

// ManifestUnits flattens the manifest groups into Phase B's fixed
// conversion order.
func ManifestUnits(p *Playbook) []ExportUnit {
	var units []ExportUnit
	for _, g := range Manifest(p) {
		units = append(units, g.Units...)
	}
	return units
}
