package maths

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeAxis(t *testing.T) {
	times, err := TimeAxis(1e-2, 1e5)
	require.NoError(t, err)
	require.Len(t, times, 1000)
	assert.Equal(t, 0.0, times[0])
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			t.Fatalf("时间轴必须严格递增: times[%d]=%v times[%d]=%v", i-1, times[i-1], i, times[i])
		}
	}
	assert.Less(t, times[len(times)-1], 1e-2)
	assert.InDelta(t, 1e-5, times[1], 1e-18)

	one, err := TimeAxis(1, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, one)
}

func TestSampleCount(t *testing.T) {
	tests := []struct {
		duration   float64
		sampleRate float64
		want       int
	}{
		{1e-2, 1e5, 1000},
		{1e-3, 1e5, 100},
		{2e-3, 5e4, 100},
		{0.1, 30, 3},
		{0.0159, 100, 1},
		{0.0299, 100, 2},
		{1.99, 1, 1},
	}
	for _, tt := range tests {
		n, err := SampleCount(tt.duration, tt.sampleRate)
		require.NoError(t, err)
		assert.Equal(t, tt.want, n, "duration=%v rate=%v", tt.duration, tt.sampleRate)
	}
	_, err := SampleCount(0.0159, 50)
	assert.ErrorIs(t, err, ErrNoSamples)
}

func TestTimeAxisInvalid(t *testing.T) {
	tests := []struct {
		name       string
		duration   float64
		sampleRate float64
		err        error
	}{
		{"ZeroDuration", 0, 1e5, ErrInvalidWindow},
		{"NegativeRate", 1e-2, -1, ErrInvalidWindow},
		{"NaN", math.NaN(), 1e5, ErrInvalidWindow},
		{"Inf", 1e-2, math.Inf(1), ErrInvalidWindow},
		{"NoSamples", 1e-6, 1e2, ErrNoSamples},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TimeAxis(tt.duration, tt.sampleRate)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestMulElem(t *testing.T) {
	a := []float64{1, 2, -3, 4}
	b := []float64{10, 0.5, 2, -1}
	got, err := MulElem(a, b, 1e-3)
	require.NoError(t, err)
	for i := range a {
		assert.InDelta(t, a[i]*b[i]*1e-3, got[i], 1e-15)
	}
	assert.Equal(t, []float64{1, 2, -3, 4}, a)

	_, err = MulElem(a, b[:2], 1)
	assert.ErrorIs(t, err, ErrLength)
	_, err = MulElem(nil, nil, 1)
	assert.ErrorIs(t, err, ErrLength)
}
