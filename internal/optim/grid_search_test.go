package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/lienard/internal/config"
	"github.com/san-kum/lienard/internal/dynamo"
)

func baseConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Frames = 3
	cfg.Grid = "none"
	return cfg
}

func TestGridSearch_Maximize(t *testing.T) {
	g := NewGridSearch([]string{"charge", "c"}, [][]float64{{0.5, 1, 2}, {1, 2}}, Maximize)
	best, val, trials, err := g.Search(context.Background(), baseConfig(), "e_intensity")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(trials) != 6 {
		t.Errorf("expected 6 trials, got %d", len(trials))
	}
	if best["charge"] != 2 {
		t.Errorf("expected charge 2, got %v", best)
	}
	if !(val > 0) {
		t.Errorf("expected positive intensity, got %g", val)
	}
}

func TestGridSearch_Minimize(t *testing.T) {
	g := NewGridSearch([]string{"charge"}, [][]float64{{2, 0.5, 1}}, Minimize)
	best, _, _, err := g.Search(context.Background(), baseConfig(), "e_intensity")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if best["charge"] != 0.5 {
		t.Errorf("expected charge 0.5, got %v", best)
	}
}

func TestGridSearch_FailedPoints(t *testing.T) {
	g := NewGridSearch([]string{"c"}, [][]float64{{-1, 1}}, Maximize)
	best, _, trials, err := g.Search(context.Background(), baseConfig(), "e_intensity")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if trials[0].Err == nil || !errors.Is(trials[0].Err, dynamo.ErrParameterBounds) {
		t.Errorf("expected bounds error for c=-1, got %v", trials[0].Err)
	}
	if best["c"] != 1 {
		t.Errorf("expected c=1, got %v", best)
	}

	g = NewGridSearch([]string{"c"}, [][]float64{{-1}}, Maximize)
	if _, _, _, err := g.Search(context.Background(), baseConfig(), "e_intensity"); err == nil {
		t.Error("expected error when no point completes")
	}
}

func TestGridSearch_Invalid(t *testing.T) {
	g := NewGridSearch([]string{"c"}, nil, Maximize)
	if _, _, _, err := g.Search(context.Background(), baseConfig(), "e_intensity"); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
	g = NewGridSearch([]string{"c"}, [][]float64{{1}}, Maximize)
	if _, _, _, err := g.Search(context.Background(), baseConfig(), "nope"); err == nil {
		t.Error("expected unknown metric error")
	}
}

func TestGridSearch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGridSearch([]string{"c"}, [][]float64{{1, 2}}, Maximize)
	if _, _, _, err := g.Search(ctx, baseConfig(), "e_intensity"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Linspace[%d] = %g, want %g", i, got[i], want[i])
		}
	}
	if Linspace(0, 1, 0) != nil {
		t.Error("expected nil for n=0")
	}
	if v := Linspace(3, 9, 1); len(v) != 1 || v[0] != 3 {
		t.Errorf("unexpected %v", v)
	}
}
