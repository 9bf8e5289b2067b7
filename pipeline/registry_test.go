package pipeline

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/cwbudde/algo-audiokit/dsp/core"
	"github.com/cwbudde/algo-audiokit/dsp/filter/design"
)

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	noop := func(Params) (Step, error) { return TrimStep{}, nil }

	if err := r.Register("", noop); err == nil {
		t.Fatal("empty op accepted")
	}

	if err := r.Register("x", nil); err == nil {
		t.Fatal("nil factory accepted")
	}

	if err := r.Register("x", noop); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := r.Register("x", noop); !errors.Is(err, errDuplicateOp) {
		t.Fatalf("duplicate error = %v", err)
	}

	if r.Lookup("x") == nil || r.Lookup("y") != nil {
		t.Fatal("Lookup mismatch")
	}
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	r := DefaultRegistry()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()

	r.MustRegister(OpTrim, func(Params) (Step, error) { return TrimStep{}, nil })
}

func TestDefaultRegistryOps(t *testing.T) {
	want := []string{OpFade, OpFilter, OpNormalize, OpTrim, OpVolume}
	if got := DefaultRegistry().Ops(); !slices.Equal(got, want) {
		t.Fatalf("Ops() = %v, want %v", got, want)
	}
}

func TestDefaultRegistryBuild(t *testing.T) {
	r := DefaultRegistry()

	cases := []struct {
		params Params
		want   Step
	}{
		{Params{Op: OpNormalize}, NormalizeStep{TargetPeak: 0.8}},
		{Params{Op: OpNormalize, Num: map[string]float64{"target": 0.5}}, NormalizeStep{TargetPeak: 0.5}},
		{Params{Op: OpVolume, Num: map[string]float64{"factor": 1.5}}, VolumeStep{Factor: 1.5}},
		{Params{Op: OpFade, Num: map[string]float64{"in": 0.25}}, FadeStep{In: 0.25}},
		{Params{Op: OpTrim}, TrimStep{Threshold: 0.01}},
		{
			Params{Op: OpFilter, Num: map[string]float64{"cutoff": 300, "high_cutoff": 3000}, Str: map[string]string{"kind": "band"}},
			FilterStep{Spec: design.FilterSpec{Kind: design.KindBand, CutoffHz: 300, HighCutoffHz: 3000, Order: 5}},
		},
		{
			Params{Op: OpFilter, Num: map[string]float64{"cutoff": 1000, "order": 2}, Str: map[string]string{"kind": "lowpass"}},
			FilterStep{Spec: design.FilterSpec{Kind: design.KindLow, CutoffHz: 1000, Order: 2}},
		},
	}

	for _, tc := range cases {
		got, err := r.Build(tc.params)
		if err != nil {
			t.Fatalf("Build(%+v): %v", tc.params, err)
		}

		if got != tc.want {
			t.Errorf("Build(%+v) = %+v, want %+v", tc.params, got, tc.want)
		}
	}
}

func TestDefaultRegistryBuildErrors(t *testing.T) {
	r := DefaultRegistry()

	if _, err := r.Build(Params{Op: "reverb"}); !errors.Is(err, ErrInvalidRecipe) {
		t.Errorf("unknown op error = %v", err)
	}

	if _, err := r.Build(Params{Op: OpVolume}); !errors.Is(err, ErrInvalidRecipe) {
		t.Errorf("missing factor error = %v", err)
	}

	if _, err := r.Build(Params{Op: OpFilter, Str: map[string]string{"kind": "notch"}, Num: map[string]float64{"cutoff": 1}}); !errors.Is(err, core.ErrInvalidFilterSpec) {
		t.Errorf("bad kind error = %v", err)
	}
}

func TestParamsRejectNonFiniteAndFractional(t *testing.T) {
	p := Params{Op: OpFilter, Num: map[string]float64{"a": math.NaN(), "b": math.Inf(1), "c": 2, "f": 2.7}}

	for _, key := range []string{"a", "b"} {
		if _, err := p.Float(key, 1); !errors.Is(err, ErrInvalidRecipe) {
			t.Errorf("Float(%q) error = %v, want ErrInvalidRecipe", key, err)
		}

		if _, err := p.RequireFloat(key); !errors.Is(err, ErrInvalidRecipe) {
			t.Errorf("RequireFloat(%q) error = %v, want ErrInvalidRecipe", key, err)
		}
	}

	if _, err := p.Int("f", 5); !errors.Is(err, ErrInvalidRecipe) {
		t.Errorf("Int(2.7) error = %v, want ErrInvalidRecipe", err)
	}

	if v, err := p.Float("c", 1); err != nil || v != 2 {
		t.Errorf("Float(c) = %v, %v", v, err)
	}

	if v, err := p.Float("missing", 3); err != nil || v != 3 {
		t.Errorf("Float(missing) = %v, %v", v, err)
	}

	if v, err := p.Int("c", 5); err != nil || v != 2 {
		t.Errorf("Int(c) = %v, %v", v, err)
	}

	if v, err := p.Int("missing", 5); err != nil || v != 5 {
		t.Errorf("Int(missing) = %v, %v", v, err)
	}
}

func TestDefaultRegistryRejectsBadNumbers(t *testing.T) {
	r := DefaultRegistry()

	cases := []Params{
		{Op: OpNormalize, Num: map[string]float64{"target": math.NaN()}},
		{Op: OpVolume, Num: map[string]float64{"factor": math.Inf(1)}},
		{Op: OpFade, Num: map[string]float64{"out": math.Inf(-1)}},
		{Op: OpTrim, Num: map[string]float64{"threshold": math.NaN()}},
		{Op: OpFilter, Num: map[string]float64{"cutoff": 1000, "order": 2.7}, Str: map[string]string{"kind": "low"}},
		{Op: OpFilter, Num: map[string]float64{"cutoff": math.NaN()}, Str: map[string]string{"kind": "low"}},
	}

	for _, p := range cases {
		if _, err := r.Build(p); !errors.Is(err, ErrInvalidRecipe) {
			t.Errorf("Build(%+v) error = %v, want ErrInvalidRecipe", p, err)
		}
	}
}
