package pbexport

import "fmt"

// AssetType tags the kind of downloadable artifact attached to an offer item.
type AssetType string

// Known asset types.
const (
	AssetTemplate  AssetType = "template"
	AssetFramework AssetType = "framework"
	AssetChecklist AssetType = "checklist"
	AssetScript    AssetType = "script"
	AssetGuide     AssetType = "guide"
)

// MinAssetContentLen is the threshold below which asset content counts
// as not yet materialized.
const MinAssetContentLen = 50

// BusinessContext carries the business facts asset generation needs.
type BusinessContext struct {
	BusinessName   string `yaml:"businessName"`
	Industry       string `yaml:"industry"`
	TargetCustomer string `yaml:"targetCustomer"`
	CoreProblem    string `yaml:"coreProblem"`
	RevenueGoal    string `yaml:"revenueGoal"`
}

// IsZero reports whether no context was provided at all.
func (b BusinessContext) IsZero() bool { return b == BusinessContext{} }

// Asset is a downloadable content artifact: a name, a type tag, and
// markdown content. Content starts empty and is filled exactly once by
// the materializer.
type Asset struct {
	Name    string    `yaml:"name"`
	Type    AssetType `yaml:"type"`
	Content string    `yaml:"content"`
}

// Materialized reports whether the asset already carries usable content.
func (a *Asset) Materialized() bool {
	return a != nil && len(a.Content) >= MinAssetContentLen
}

// OfferStackItem pairs a problem with its solution. Asset is optional:
// not every stack item ships a downloadable artifact.
type OfferStackItem struct {
	Problem  string `yaml:"problem"`
	Solution string `yaml:"solution"`
	Asset    *Asset `yaml:"asset,omitempty"`
}

// Clone returns a deep copy of the item.
func (i OfferStackItem) Clone() OfferStackItem {
	out := i
	if i.Asset != nil {
		a := *i.Asset
		out.Asset = &a
	}
	return out
}

// Offer is a priced bundle of value-stack items.
type Offer struct {
	Name       string           `yaml:"name"`
	Price      string           `yaml:"price"`
	Guarantee  string           `yaml:"guarantee"`
	TotalValue string           `yaml:"totalValue"`
	Stack      []OfferStackItem `yaml:"stack"`
}

// Clone returns a deep copy of the offer.
func (o Offer) Clone() Offer {
	out := o
	out.Stack = make([]OfferStackItem, len(o.Stack))
	for i, item := range o.Stack {
		out.Stack[i] = item.Clone()
	}
	return out
}

// Downsell wraps a lower-priced fallback offer with its pitch hook.
type Downsell struct {
	Hook  string `yaml:"hook"`
	Offer Offer  `yaml:"offer"`
}

// Playbook is the full set of generated sections for one business.
// It arrives complete from the upstream generation step and is
// read-only to the export pipeline except for asset content backfill,
// which always happens on a Clone.
type Playbook struct {
	Guide                 string   `yaml:"guide"`
	Diagnosis             string   `yaml:"diagnosis"`
	MoneyModelAnalysis    string   `yaml:"moneyModelAnalysis"`
	OfferOne              Offer    `yaml:"offerOne"`
	OfferTwo              Offer    `yaml:"offerTwo"`
	Downsell              Downsell `yaml:"downsell"`
	MarketingModel        string   `yaml:"marketingModel"`
	SalesFunnel           string   `yaml:"salesFunnel"`
	OperationsPlan        string   `yaml:"operationsPlan"`
	KPIDashboard          string   `yaml:"kpiDashboard"`
	AccountabilityTracker string   `yaml:"accountabilityTracker"`
}

// Clone returns a deep copy of the playbook.
func (p *Playbook) Clone() *Playbook {
	out := *p
	out.OfferOne = p.OfferOne.Clone()
	out.OfferTwo = p.OfferTwo.Clone()
	out.Downsell.Offer = p.Downsell.Offer.Clone()
	return &out
}

// OfferRef names one of the playbook's three offers.
type OfferRef int

// The three offers every playbook carries.
const (
	OfferRefOne OfferRef = iota
	OfferRefTwo
	OfferRefDownsell
)

// String returns the CLI-facing name of the reference.
func (r OfferRef) String() string {
	switch r {
	case OfferRefOne:
		return "one"
	case OfferRefTwo:
		return "two"
	case OfferRefDownsell:
		return "downsell"
	default:
		return "unknown"
	}
}

// OfferRefs is the fixed offer order used by the batch manifest.
var OfferRefs = []OfferRef{OfferRefOne, OfferRefTwo, OfferRefDownsell}

// Offer resolves an offer reference to the playbook's offer.
func (p *Playbook) Offer(ref OfferRef) (*Offer, error) {
	switch ref {
	case OfferRefOne:
		return &p.OfferOne, nil
	case OfferRefTwo:
		return &p.OfferTwo, nil
	case OfferRefDownsell:
		return &p.Downsell.Offer, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownOffer, ref)
	}
}

// Offers returns the three offers in manifest order.
func (p *Playbook) Offers() [3]*Offer {
	return [3]*Offer{&p.OfferOne, &p.OfferTwo, &p.Downsell.Offer}
}

// SectionID names one of the playbook's fixed text sections.
type SectionID string

// The fixed section set. Offers are structured entities, not sections;
// their printable documents are built by OfferUnit.
const (
	SectionGuide          SectionID = "guide"
	SectionDiagnosis      SectionID = "diagnosis"
	SectionMoneyModel     SectionID = "money-model"
	SectionMarketingModel SectionID = "marketing-model"
	SectionSalesFunnel    SectionID = "sales-funnel"
	SectionOperationsPlan SectionID = "operations-plan"
	SectionKPIDashboard   SectionID = "kpi-dashboard"
	SectionAccountability SectionID = "accountability-tracker"
)

// SectionOrder is the fixed order sections appear in when the whole
// playbook is rendered as one document.
var SectionOrder = []SectionID{
	SectionGuide,
	SectionDiagnosis,
	SectionMoneyModel,
	SectionMarketingModel,
	SectionSalesFunnel,
	SectionOperationsPlan,
	SectionKPIDashboard,
	SectionAccountability,
}

// SectionContent returns the markdown body of a section.
func (p *Playbook) SectionContent(id SectionID) (string, error) {
	switch id {
	case SectionGuide:
		return p.Guide, nil
	case SectionDiagnosis:
		return p.Diagnosis, nil
	case SectionMoneyModel:
		return p.MoneyModelAnalysis, nil
	case SectionMarketingModel:
		return p.MarketingModel, nil
	case SectionSalesFunnel:
		return p.SalesFunnel, nil
	case SectionOperationsPlan:
		return p.OperationsPlan, nil
	case SectionKPIDashboard:
		return p.KPIDashboard, nil
	case SectionAccountability:
		return p.AccountabilityTracker, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
}

// Complete checks that every section and offer is present. The batch
// exporter refuses playbooks that are still being generated upstream.
func (p *Playbook) Complete() error {
	var missing []string
	for _, id := range SectionOrder {
		content, err := p.SectionContent(id)
		if err != nil {
			return err
		}
		if content == "" {
			missing = append(missing, string(id))
		}
	}
	for _, offer := range p.Offers() {
		if offer.Name == "" {
			missing = append(missing, "offer")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrIncompletePlaybook, missing)
	}
	return nil
}
