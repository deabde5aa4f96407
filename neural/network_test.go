package neural

import (
	"math"
	"testing"
)

func TestPredictKnownWeights(t *testing.T) {
	net, err := New(
		Layer{Weights: [][]float64{{1, 0}, {0, 1}}, Biases: []float64{0, 0}},
		Layer{Weights: [][]float64{{2, -1}}, Biases: []float64{0.5}},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := net.Predict([]float64{0.3, 0.7})
	want := 2*math.Tanh(0.3) - math.Tanh(0.7) + 0.5
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Predict = %v, want %v", got, want)
	}
}

func TestOutputLayerIsLinear(t *testing.T) {
	net, err := New(Layer{Weights: [][]float64{{10}}, Biases: []float64{3}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := net.Predict([]float64{2}); got != 23 {
		t.Errorf("Predict = %v, want 23", got)
	}
}

func TestNewRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name   string
		layers []Layer
	}{
		{"empty", nil},
		{"bias count", []Layer{{Weights: [][]float64{{1}}, Biases: nil}}},
		{"ragged", []Layer{{Weights: [][]float64{{1, 2}, {1}}, Biases: []float64{0, 0}}}},
		{"chain mismatch", []Layer{
			{Weights: [][]float64{{1}, {1}}, Biases: []float64{0, 0}},
			{Weights: [][]float64{{1, 1, 1}}, Biases: []float64{0}},
		}},
		{"two outputs", []Layer{{Weights: [][]float64{{1}, {1}}, Biases: []float64{0, 0}}}},
	}
	for _, tt := range tests {
		if _, err := New(tt.layers...); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestRandomIsDeterministic(t *testing.T) {
	a, err := Random([]int{104, 16, 1}, 0.1, 7)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	b, _ := Random([]int{104, 16, 1}, 0.1, 7)
	if a.InputSize() != 104 || a.Layers() != 2 {
		t.Fatalf("shape = %d inputs, %d layers", a.InputSize(), a.Layers())
	}
	in := make([]float64, 104)
	for i := range in {
		in[i] = float64(i) / 104
	}
	if a.Predict(in) != b.Predict(in) {
		t.Error("same seed produced different networks")
	}
}

func TestPredictPanicsOnSizeMismatch(t *testing.T) {
	net, _ := Random([]int{3, 1}, 1, 1)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	net.Predict([]float64{1, 2})
}
