// Package debug 仿真结果的诊断输出
// 同一组曲线可以同时写成 PNG 图片、HTML 图表页和 YAML 摘要。
package debug

import (
	"errors"
	"fmt"

	"github.com/AdrianaBogosel/PlasmaReactorSimulation/maths"
)

// 绘图错误
var (
	ErrLength  = errors.New("debug: 数据长度与时间轴不一致")
	ErrNoData  = errors.New("debug: 数据为空")
	ErrTitle   = errors.New("debug: 标题不能为空")
	ErrSigma   = errors.New("debug: 噪声强度必须为非负有限实数")
	ErrNoSink  = errors.New("debug: 未配置输出")
	ErrNotAxis = errors.New("debug: 时间轴未初始化")
)

// TimeLabel 时间曲线横轴名称
const TimeLabel = "Time (ms)"

// CurveSink 任意 x-y 曲线输出
type CurveSink interface {
	PlotCurve(title, xLabel, yLabel string, x, y []float64) error
}

// Sink 时间曲线输出，横轴为创建时给定的共享时间轴
// severity 为叠加在绘制数据上的高斯噪声强度，原始数据不会被修改。
type Sink interface {
	CurveSink
	Plot(title, yLabel string, data []float64, severity float64) error
}

// Axis 共享时间轴
type Axis struct {
	Time       []float64 // 时间点 (s)
	Duration   float64   // 时长 (s)
	SampleRate float64   // 采样率 (1/s)
}

// NewAxis 创建时间轴
func NewAxis(duration, sampleRate float64) (Axis, error) {
	times, err := maths.TimeAxis(duration, sampleRate)
	if err != nil {
		return Axis{}, err
	}
	return Axis{Time: times, Duration: duration, SampleRate: sampleRate}, nil
}

// Millis 以毫秒表示的时间点
func (a Axis) Millis() []float64 {
	ms := make([]float64, len(a.Time))
	for i, t := range a.Time {
		ms[i] = t * 1e3
	}
	return ms
}

// check 校验数据与时间轴
func (a Axis) check(title string, data []float64) error {
	if title == "" {
		return ErrTitle
	}
	if len(a.Time) == 0 {
		return ErrNotAxis
	}
	if len(data) != len(a.Time) {
		return fmt.Errorf("%w: %s %d != %d", ErrLength, title, len(data), len(a.Time))
	}
	return nil
}

// noisy 返回叠加噪声后的数据副本
func (a Axis) noisy(noise *Noise, data []float64, severity float64) ([]float64, error) {
	out := append([]float64(nil), data...)
	if severity == 0 {
		return out, nil
	}
	if noise == nil {
		noise = NewNoise(0)
	}
	n, err := noise.Generate(a.Duration, a.SampleRate, severity)
	if err != nil {
		return nil, err
	}
	if len(n) != len(out) {
		return nil, fmt.Errorf("%w: 噪声 %d != %d", ErrLength, len(n), len(out))
	}
	for i := range out {
		out[i] += n[i]
	}
	return out, nil
}

func checkCurve(title string, x, y []float64) error {
	if title == "" {
		return ErrTitle
	}
	if len(x) == 0 {
		return ErrNoData
	}
	if len(x) != len(y) {
		return fmt.Errorf("%w: %s x=%d y=%d", ErrLength, title, len(x), len(y))
	}
	return nil
}

// Multi 依次写入多个输出，遇到第一个错误即返回
type Multi []Sink

// NewMulti 组合多个输出，忽略 nil
func NewMulti(sinks ...Sink) Multi {
	m := make(Multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

// Plot 时间曲线
func (m Multi) Plot(title, yLabel string, data []float64, severity float64) error {
	if len(m) == 0 {
		return ErrNoSink
	}
	for _, s := range m {
		if err := s.Plot(title, yLabel, data, severity); err != nil {
			return err
		}
	}
	return nil
}

// PlotCurve x-y 曲线
func (m Multi) PlotCurve(title, xLabel, yLabel string, x, y []float64) error {
	if len(m) == 0 {
		return ErrNoSink
	}
	for _, s := range m {
		if err := s.PlotCurve(title, xLabel, yLabel, x, y); err != nil {
			return err
		}
	}
	return nil
}
