package pbexport

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
)

// generatedContent is comfortably above the materialization threshold.
const generatedContent = "## Generated Resource\n\nStep one, step two, step three. Fill in the blanks below."

// mockGenerator records generation calls and returns canned content.
type mockGenerator struct {
	mu      sync.Mutex
	calls   []string // asset names in call order
	content string
	failFor map[string]error // per-asset failure injection
	err     error            // global failure injection
}

func newMockGenerator() *mockGenerator {
	return &mockGenerator{content: generatedContent}
}

func (g *mockGenerator) GenerateAssetContent(_ context.Context, item OfferStackItem, _ BusinessContext) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, item.Asset.Name)
	if g.err != nil {
		return "", g.err
	}
	if err, ok := g.failFor[item.Asset.Name]; ok {
		return "", err
	}
	return g.content, nil
}

func (g *mockGenerator) Generate(context.Context, string, json.RawMessage) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (g *mockGenerator) callNames() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

// mockConverter records converted units and can fail or block on demand.
type mockConverter struct {
	mu         sync.Mutex
	paths      []string // unit paths in conversion order
	failOnPath string
	block      chan struct{} // if non-nil, ToPDF waits until closed
	closed     bool
}

func (c *mockConverter) ToPDF(ctx context.Context, unit ExportUnit) ([]byte, error) {
	if c.block != nil {
		select {
		case <-c.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths = append(c.paths, unit.Path)
	if c.failOnPath != "" && unit.Path == c.failOnPath {
		return nil, errors.New("render exploded")
	}
	return []byte("PDF:" + unit.Path), nil
}

func (c *mockConverter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *mockConverter) converted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}

// mockArchive records Put calls in order.
type mockArchive struct {
	paths  []string
	data   map[string][]byte
	sealed bool
}

func newMockArchive() *mockArchive {
	return &mockArchive{data: make(map[string][]byte)}
}

func (a *mockArchive) Put(path string, data []byte) error {
	if a.sealed {
		return ErrArchiveSealed
	}
	a.paths = append(a.paths, path)
	a.data[path] = data
	return nil
}

func (a *mockArchive) Seal() ([]byte, error) {
	if a.sealed {
		return nil, ErrArchiveSealed
	}
	a.sealed = true
	return []byte("ZIP"), nil
}

// saverFunc adapts a function to the Saver interface.
type saverFunc func(filename string, data []byte) error

func (f saverFunc) Save(filename string, data []byte) error { return f(filename, data) }

// recordingSaver collects saved files.
type recordingSaver struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newRecordingSaver() *recordingSaver {
	return &recordingSaver{files: make(map[string][]byte)}
}

func (s *recordingSaver) Save(filename string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[filename] = data
	return nil
}

// testContext returns a filled business context.
func testContext() BusinessContext {
	return BusinessContext{
		BusinessName:   "Peak Fitness Studio",
		Industry:       "fitness",
		TargetCustomer: "busy professionals",
		CoreProblem:    "no time to train",
		RevenueGoal:    "$50k/month",
	}
}

// testPlaybook returns a complete playbook. Offer one carries one
// materialized asset, one empty asset, and one asset-free item; offer
// two carries one empty asset; the downsell has no assets.
func testPlaybook() *Playbook {
	return &Playbook{
		Guide:                 "Welcome. Read the core plan first, then work the money model.",
		Diagnosis:             "Revenue is capped by churn and an underpriced front-end offer.",
		MoneyModelAnalysis:    "Attraction offer feeds the upsell; the downsell catches the rest.",
		MarketingModel:        "Local partnerships plus paid social retargeting.",
		SalesFunnel:           "Lead magnet, strategy call, close.",
		OperationsPlan:        "Weekly cadence: Monday planning, Friday review.",
		KPIDashboard:          "Track show rate, close rate, and 90-day retention.",
		AccountabilityTracker: "Daily scorecard with owner initials.",
		OfferOne: Offer{
			Name:       "Growth Accelerator",
			Price:      "$2,000",
			Guarantee:  "Results in 90 days or free",
			TotalValue: "$9,400",
			Stack: []OfferStackItem{
				{
					Problem:  "No onboarding system",
					Solution: "Plug-and-play onboarding",
					Asset: &Asset{
						Name:    "Client Onboarding Checklist",
						Type:    AssetChecklist,
						Content: strings.Repeat("Check every box before the first session. ", 3),
					},
				},
				{
					Problem:  "Leads go cold",
					Solution: "A proven follow-up cadence",
					Asset: &Asset{
						Name: "Follow-Up Script",
						Type: AssetScript,
					},
				},
				{
					Problem:  "No pricing confidence",
					Solution: "Weekly pricing review call",
				},
			},
		},
		OfferTwo: Offer{
			Name:       "Scale System",
			Price:      "$5,000",
			Guarantee:  "Double bookings or we work free",
			TotalValue: "$18,000",
			Stack: []OfferStackItem{
				{
					Problem:  "Owner does everything",
					Solution: "Delegation framework",
					Asset: &Asset{
						Name: "Delegation Framework",
						Type: AssetFramework,
					},
				},
			},
		},
		Downsell: Downsell{
			Hook: "Not ready for the full program? Start here.",
			Offer: Offer{
				Name:       "Starter Kit",
				Price:      "$200",
				Guarantee:  "30-day refund",
				TotalValue: "$900",
				Stack: []OfferStackItem{
					{Problem: "No plan at all", Solution: "A one-page starter plan"},
				},
			},
		},
	}
}
