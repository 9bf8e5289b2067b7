package feature

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Key names, in vector order.
const (
	KeyMean              = "mean"
	KeyStd               = "std"
	KeyMax               = "max"
	KeyMin               = "min"
	KeyZeroCrossingRate  = "zeroCrossingRate"
	KeySpectralCentroid  = "spectralCentroid"
	KeySpectralBandwidth = "spectralBandwidth"
	KeySpectralRolloff   = "spectralRolloff"
	KeyChromaMean        = "chromaMean"
	KeyTonnetzMean       = "tonnetzMean"
)

const (
	// NumMFCC is the number of cepstral coefficients in a vector.
	NumMFCC = 13
	// NumKeys is the vector width.
	NumKeys = 8 + NumMFCC + 2
)

// MFCCKey returns the key of the i-th cepstral coefficient, 1-based.
func MFCCKey(i int) string {
	return "mfcc_" + strconv.Itoa(i)
}

var (
	orderedKeys = func() []string {
		k := []string{
			KeyMean, KeyStd, KeyMax, KeyMin, KeyZeroCrossingRate,
			KeySpectralCentroid, KeySpectralBandwidth, KeySpectralRolloff,
		}
		for i := 1; i <= NumMFCC; i++ {
			k = append(k, MFCCKey(i))
		}

		return append(k, KeyChromaMean, KeyTonnetzMean)
	}()

	keyIndex = func() map[string]int {
		m := make(map[string]int, len(orderedKeys))
		for i, k := range orderedKeys {
			m[k] = i
		}

		return m
	}()
)

// Keys returns the vector keys in order.
func Keys() []string {
	return append([]string(nil), orderedKeys...)
}

// Entry is one named value.
type Entry struct {
	Name  string
	Value float64
}

// Vector is an ordered set of named features. The zero value holds every
// key at 0.
type Vector struct {
	values [NumKeys]float64
}

// Len returns the number of features.
func (v Vector) Len() int { return len(v.values) }

// Get returns the value stored under name.
func (v Vector) Get(name string) (float64, bool) {
	i, ok := keyIndex[name]
	if !ok {
		return 0, false
	}

	return v.values[i], true
}

func (v *Vector) set(name string, value float64) {
	v.values[keyIndex[name]] = value
}

// Values returns the values in key order.
func (v Vector) Values() []float64 {
	return append([]float64(nil), v.values[:]...)
}

// Entries returns name/value pairs in key order.
func (v Vector) Entries() []Entry {
	out := make([]Entry, len(orderedKeys))
	for i, k := range orderedKeys {
		out[i] = Entry{Name: k, Value: v.values[i]}
	}

	return out
}

// Map returns the features as an unordered map.
func (v Vector) Map() map[string]float64 {
	out := make(map[string]float64, len(orderedKeys))
	for i, k := range orderedKeys {
		out[k] = v.values[i]
	}

	return out
}

// Diff returns v - other, key by key.
func (v Vector) Diff(other Vector) Vector {
	var out Vector
	for i := range v.values {
		out.values[i] = v.values[i] - other.values[i]
	}

	return out
}

// MarshalJSON encodes the vector as a JSON object in key order.
func (v Vector) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer

	b.WriteByte('{')
	for i, k := range orderedKeys {
		if i > 0 {
			b.WriteByte(',')
		}

		name, _ := json.Marshal(k)
		b.Write(name)
		b.WriteByte(':')

		value, err := json.Marshal(v.values[i])
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", k, err)
		}

		b.Write(value)
	}
	b.WriteByte('}')

	return b.Bytes(), nil
}

// UnmarshalJSON decodes an object produced by MarshalJSON. Every key must
// be present and no other key is accepted.
func (v *Vector) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	if len(m) != len(orderedKeys) {
		return fmt.Errorf("feature vector has %d keys, want %d", len(m), len(orderedKeys))
	}

	var out Vector
	for k, val := range m {
		i, ok := keyIndex[k]
		if !ok {
			return fmt.Errorf("unknown feature key %q", k)
		}

		out.values[i] = val
	}

	*v = out

	return nil
}
