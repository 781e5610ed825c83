package pbexport

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
)

func TestEnsureAssetContentThreshold(t *testing.T) {
	tests := []struct {
		name         string
		contentLen   int
		wantGenerate bool
	}{
		{"empty content", 0, true},
		{"one char", 1, true},
		{"just below threshold", MinAssetContentLen - 1, true},
		{"at threshold", MinAssetContentLen, false},
		{"above threshold", MinAssetContentLen + 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := newMockGenerator()
			m := NewMaterializer(gen)
			item := OfferStackItem{
				Problem:  "p",
				Solution: "s",
				Asset: &Asset{
					Name:    "Worksheet",
					Type:    AssetTemplate,
					Content: strings.Repeat("x", tt.contentLen),
				},
			}

			out, err := m.EnsureAssetContent(context.Background(), item, testContext())
			if err != nil {
				t.Fatalf("EnsureAssetContent: %v", err)
			}

			generated := len(gen.callNames()) > 0
			if generated != tt.wantGenerate {
				t.Errorf("generated = %v, want %v", generated, tt.wantGenerate)
			}
			if !out.Asset.Materialized() {
				t.Error("result asset not materialized")
			}
		})
	}
}

func TestEnsureAssetContentNoAssetPassThrough(t *testing.T) {
	gen := newMockGenerator()
	item := OfferStackItem{Problem: "p", Solution: "s"}

	out, err := NewMaterializer(gen).EnsureAssetContent(context.Background(), item, BusinessContext{})
	if err != nil {
		t.Fatalf("EnsureAssetContent: %v", err)
	}
	if out.Asset != nil {
		t.Error("asset appeared from nowhere")
	}
	if len(gen.callNames()) != 0 {
		t.Error("generator called for asset-free item")
	}
}

func TestEnsureAssetContentMissingContext(t *testing.T) {
	gen := newMockGenerator()
	item := OfferStackItem{Asset: &Asset{Name: "Worksheet", Type: AssetTemplate}}

	_, err := NewMaterializer(gen).EnsureAssetContent(context.Background(), item, BusinessContext{})
	if !errors.Is(err, ErrMissingContext) {
		t.Fatalf("err = %v, want ErrMissingContext", err)
	}
	if len(gen.callNames()) != 0 {
		t.Error("generator called without business context")
	}
}

func TestEnsureAssetContentDoesNotMutateInput(t *testing.T) {
	gen := newMockGenerator()
	item := OfferStackItem{Asset: &Asset{Name: "Worksheet", Type: AssetTemplate}}

	out, err := NewMaterializer(gen).EnsureAssetContent(context.Background(), item, testContext())
	if err != nil {
		t.Fatalf("EnsureAssetContent: %v", err)
	}
	if item.Asset.Content != "" {
		t.Error("input item was mutated")
	}
	if out.Asset == item.Asset {
		t.Error("result shares asset pointer with input")
	}
}

func TestEnsureAssetContentIdempotent(t *testing.T) {
	gen := newMockGenerator()
	m := NewMaterializer(gen)
	item := OfferStackItem{Asset: &Asset{Name: "Worksheet", Type: AssetTemplate}}

	out, err := m.EnsureAssetContent(context.Background(), item, testContext())
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	again, err := m.EnsureAssetContent(context.Background(), out, testContext())
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if got := len(gen.callNames()); got != 1 {
		t.Errorf("generator called %d times, want 1", got)
	}
	if again.Asset.Content != out.Asset.Content {
		t.Error("second pass changed content")
	}
}

func TestEnsureAssetContentGenerationError(t *testing.T) {
	gen := newMockGenerator()
	gen.err = errors.New("rate limited")
	item := OfferStackItem{Asset: &Asset{Name: "Worksheet", Type: AssetTemplate}}

	_, err := NewMaterializer(gen).EnsureAssetContent(context.Background(), item, testContext())

	var genErr *AssetGenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want *AssetGenerationError", err)
	}
	if genErr.AssetName != "Worksheet" {
		t.Errorf("AssetName = %q, want %q", genErr.AssetName, "Worksheet")
	}
}

func TestMaterializeOffer(t *testing.T) {
	gen := newMockGenerator()
	p := testPlaybook()

	mat, err := NewMaterializer(gen).MaterializeOffer(context.Background(), p.OfferOne, testContext(), nil)
	if err != nil {
		t.Fatalf("MaterializeOffer: %v", err)
	}

	// Only the empty asset triggers generation; the materialized one and
	// the asset-free item do not.
	if got := gen.callNames(); len(got) != 1 || got[0] != "Follow-Up Script" {
		t.Errorf("generator calls = %v, want [Follow-Up Script]", got)
	}
	for i, item := range mat.Stack {
		if item.Asset != nil && !item.Asset.Materialized() {
			t.Errorf("stack[%d] asset still empty after materialization", i)
		}
	}
	if p.OfferOne.Stack[1].Asset.Content != "" {
		t.Error("source offer was mutated")
	}
}

func TestMaterializeOfferOnItemFiresPerAsset(t *testing.T) {
	gen := newMockGenerator()
	p := testPlaybook()
	var ticks atomic.Int32

	_, err := NewMaterializer(gen).MaterializeOffer(context.Background(), p.OfferOne, testContext(), func() { ticks.Add(1) })
	if err != nil {
		t.Fatalf("MaterializeOffer: %v", err)
	}
	// Two asset-bearing items, regardless of whether they needed
	// generation.
	if got := ticks.Load(); got != 2 {
		t.Errorf("onItem fired %d times, want 2", got)
	}
}

func TestMaterializeAll(t *testing.T) {
	gen := newMockGenerator()
	p := testPlaybook()

	mat, err := NewMaterializer(gen).MaterializeAll(context.Background(), p, testContext(), nil)
	if err != nil {
		t.Fatalf("MaterializeAll: %v", err)
	}

	if needsMaterialization(mat) {
		t.Error("materialized playbook still reports missing content")
	}
	if !needsMaterialization(p) {
		t.Error("source playbook was mutated")
	}
	// Follow-Up Script and Delegation Framework were empty.
	if got := len(gen.callNames()); got != 2 {
		t.Errorf("generator called %d times, want 2", got)
	}
}

func TestMaterializeAllPropagatesFailure(t *testing.T) {
	gen := newMockGenerator()
	gen.failFor = map[string]error{"Delegation Framework": errors.New("boom")}
	p := testPlaybook()

	_, err := NewMaterializer(gen).MaterializeAll(context.Background(), p, testContext(), nil)

	var genErr *AssetGenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want *AssetGenerationError", err)
	}
	if genErr.AssetName != "Delegation Framework" {
		t.Errorf("AssetName = %q", genErr.AssetName)
	}
}

func TestAssetItemCount(t *testing.T) {
	p := testPlaybook()
	if got := AssetItemCount(p); got != 3 {
		t.Errorf("AssetItemCount = %d, want 3", got)
	}
}
