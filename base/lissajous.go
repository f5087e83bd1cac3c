package base

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/AdrianaBogosel/PlasmaReactorSimulation/types"
)

// 李萨如曲线标题与坐标轴
const (
	LissajousTitle  = "Lissajous Curve"
	LissajousXLabel = "Voltage [kV]"
	LissajousYLabel = "Charge [C]"
)

// ErrLissajous 李萨如曲线参数无效
var ErrLissajous = errors.New("base: 李萨如曲线参数无效")

// LissajousConfig 李萨如曲线参数
// x = AmplitudeX*sin(OmegaX*τ + Phase)，y = AmplitudeY*sin(OmegaY*τ)，τ ∈ [0, 2π]
type LissajousConfig struct {
	AmplitudeX float64 // 横轴幅值
	AmplitudeY float64 // 纵轴幅值
	OmegaX     float64 // 横轴角频率
	OmegaY     float64 // 纵轴角频率
	Phase      float64 // 相位差
	Points     int     // 采样点数
	Noise      float64 // 横轴噪声强度
}

// DefaultLissajous 默认参数
func DefaultLissajous() LissajousConfig {
	return LissajousConfig{
		AmplitudeX: types.LissajousAmplitude,
		AmplitudeY: types.LissajousAmplitude,
		OmegaX:     types.LissajousOmega,
		OmegaY:     types.LissajousOmega,
		Phase:      types.LissajousPhase,
		Points:     types.LissajousPoints,
		Noise:      types.LissajousNoise,
	}
}

// Validate 校验参数
func (c LissajousConfig) Validate() error {
	if c.Points < 2 {
		return fmt.Errorf("%w: 采样点数 %d", ErrLissajous, c.Points)
	}
	for name, v := range map[string]float64{
		"AmplitudeX": c.AmplitudeX,
		"AmplitudeY": c.AmplitudeY,
		"OmegaX":     c.OmegaX,
		"OmegaY":     c.OmegaY,
		"Phase":      c.Phase,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%v", ErrLissajous, name, v)
		}
	}
	if c.Noise < 0 || math.IsNaN(c.Noise) || math.IsInf(c.Noise, 0) {
		return fmt.Errorf("%w: 噪声 %v", ErrLissajous, c.Noise)
	}
	return nil
}

// Lissajous 不含噪声的曲线坐标
func Lissajous(cfg LissajousConfig) (x, y []float64, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	tau := floats.Span(make([]float64, cfg.Points), 0, 2*math.Pi)
	x = make([]float64, cfg.Points)
	y = make([]float64, cfg.Points)
	for i, t := range tau {
		x[i] = cfg.AmplitudeX * math.Sin(cfg.OmegaX*t+cfg.Phase)
		y[i] = cfg.AmplitudeY * math.Sin(cfg.OmegaY*t)
	}
	return x, y, nil
}
