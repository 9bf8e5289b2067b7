package feature

import (
	"encoding/json"
	"math"
	"slices"
	"strings"
	"testing"
)

func TestKeysOrder(t *testing.T) {
	keys := Keys()
	if len(keys) != NumKeys || NumKeys != 23 {
		t.Fatalf("len(Keys()) = %d, NumKeys = %d, want 23", len(keys), NumKeys)
	}

	want := []string{"mean", "std", "max", "min", "zeroCrossingRate",
		"spectralCentroid", "spectralBandwidth", "spectralRolloff",
		"mfcc_1", "mfcc_2", "mfcc_3", "mfcc_4", "mfcc_5", "mfcc_6", "mfcc_7",
		"mfcc_8", "mfcc_9", "mfcc_10", "mfcc_11", "mfcc_12", "mfcc_13",
		"chromaMean", "tonnetzMean"}
	if !slices.Equal(keys, want) {
		t.Fatalf("keys = %v", keys)
	}

	keys[0] = "mutated"
	if Keys()[0] != "mean" {
		t.Fatal("Keys exposes internal state")
	}
}

func TestVectorAccessors(t *testing.T) {
	var v Vector
	v.set(KeyStd, 0.25)
	v.set(MFCCKey(13), -4)

	if got, ok := v.Get("std"); !ok || got != 0.25 {
		t.Fatalf("Get(std) = %v, %v", got, ok)
	}
	if _, ok := v.Get("loudness"); ok {
		t.Fatal("unknown key reported present")
	}

	m := v.Map()
	if len(m) != NumKeys || m["mfcc_13"] != -4 {
		t.Fatalf("Map() = %v", m)
	}

	entries := v.Entries()
	if entries[1].Name != "std" || entries[20].Name != "mfcc_13" || entries[20].Value != -4 {
		t.Fatalf("entries out of order: %v", entries)
	}
	if vals := v.Values(); len(vals) != NumKeys || vals[1] != 0.25 {
		t.Fatalf("Values() = %v", vals)
	}
}

func TestVectorDiff(t *testing.T) {
	var a, b Vector
	a.set(KeyMax, 0.5)
	b.set(KeyMax, 0.2)
	b.set(KeyMin, -0.1)

	d := a.Diff(b)
	if got, _ := d.Get(KeyMax); math.Abs(got-0.3) > 1e-15 {
		t.Fatalf("diff max = %v", got)
	}
	if got, _ := d.Get(KeyMin); got != 0.1 {
		t.Fatalf("diff min = %v", got)
	}
}

func TestVectorJSONOrderedRoundTrip(t *testing.T) {
	var v Vector
	v.set(KeyMean, 0.125)
	v.set(KeyTonnetzMean, -0.5)

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	s := string(data)
	if !strings.HasPrefix(s, `{"mean":0.125,"std":0,`) || !strings.HasSuffix(s, `"tonnetzMean":-0.5}`) {
		t.Fatalf("unexpected encoding %s", s)
	}

	var back Vector
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != v {
		t.Fatalf("round trip mismatch: %v vs %v", back, v)
	}
}

func TestVectorUnmarshalRejectsPartial(t *testing.T) {
	var v Vector
	if err := json.Unmarshal([]byte(`{"mean":1}`), &v); err == nil {
		t.Fatal("expected error for missing keys")
	}
}
