package freq

import (
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name         string
		capacity     int
		sampleFactor int64
		wantErr      bool
	}{
		{"valid", 1000, 10, false},
		{"sample_factor_floored", 1000, 0, false},
		{"zero_capacity", 0, 10, true},
		{"negative_capacity", -5, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New[string](tt.capacity, tt.sampleFactor)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got == nil {
				t.Fatal("New() = nil, want instance")
			}
		})
	}
}

func TestRecordEstimate(t *testing.T) {
	t.Run("first_access_counts_via_doorkeeper", func(t *testing.T) {
		f, err := New[string](1000, 10)
		if err != nil {
			t.Fatal(err)
		}
		f.Record("key")
		if got := f.Estimate("key"); got != 1 {
			t.Errorf("Estimate() = %d, want 1", got)
		}
	})

	t.Run("repeat_accesses_accumulate", func(t *testing.T) {
		f, err := New[string](1000, 10)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 5; i++ {
			f.Record("key")
		}
		// Doorkeeper absorbs the first touch; the sketch counts the rest.
		if got := f.Estimate("key"); got != 5 {
			t.Errorf("Estimate() = %d, want 5", got)
		}
	})

	t.Run("unrecorded_key_is_zero", func(t *testing.T) {
		f, err := New[string](1000, 10)
		if err != nil {
			t.Fatal(err)
		}
		f.Record("key")
		if got := f.Estimate("other"); got != 0 {
			t.Errorf("Estimate(other) = %d, want 0", got)
		}
	})

	t.Run("hot_keys_rank_above_cold", func(t *testing.T) {
		f, err := New[uint64](1000, 100)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 40; i++ {
			f.Record(uint64(1))
		}
		f.Record(uint64(2))
		if hot, cold := f.Estimate(uint64(1)), f.Estimate(uint64(2)); hot <= cold {
			t.Errorf("Estimate(hot) = %d, Estimate(cold) = %d, want hot > cold", hot, cold)
		}
	})
}

func TestSampleWindowReset(t *testing.T) {
	f, err := New[uint64](100, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		f.Record(uint64(7))
	}
	before := f.Estimate(uint64(7))

	// Crossing the sample window halves the sketch and clears the doorkeeper.
	for i := 0; i < 60; i++ {
		f.Record(uint64(i + 1000))
	}
	after := f.Estimate(uint64(7))
	if after >= before {
		t.Errorf("Estimate() = %d after sample window, want < %d", after, before)
	}
}

func TestClear(t *testing.T) {
	f, err := New[string](1000, 10)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		f.Record("key")
	}
	f.Clear()
	if got := f.Estimate("key"); got != 0 {
		t.Errorf("Estimate() after Clear = %d, want 0", got)
	}
}
