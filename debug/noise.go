package debug

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/AdrianaBogosel/PlasmaReactorSimulation/maths"
)

// Noise 高斯噪声发生器，相同种子产生相同序列
type Noise struct {
	mu  sync.Mutex
	src rand.Source
}

// NewNoise 创建噪声发生器
func NewNoise(seed uint64) *Noise {
	return &Noise{src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
}

// Generate 长度为 round(duration*sampleRate) 的 N(0, severity) 噪声
func (n *Noise) Generate(duration, sampleRate, severity float64) ([]float64, error) {
	count, err := maths.SampleCount(duration, sampleRate)
	if err != nil {
		return nil, err
	}
	return n.Samples(count, severity)
}

// Samples count 个 N(0, severity) 噪声，severity 为 0 时全部为 0
func (n *Noise) Samples(count int, severity float64) ([]float64, error) {
	if err := checkSeverity(severity); err != nil {
		return nil, err
	}
	out := make([]float64, count)
	if severity == 0 {
		return out, nil
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	dist := distuv.Normal{Mu: 0, Sigma: severity, Src: n.src}
	for i := range out {
		out[i] = dist.Rand()
	}
	return out, nil
}

func checkSeverity(severity float64) error {
	if severity < 0 || math.IsNaN(severity) || math.IsInf(severity, 0) {
		return fmt.Errorf("%w: %v", ErrSigma, severity)
	}
	return nil
}
