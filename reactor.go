// Package reactor 介质阻挡放电 (DBD) 反应器仿真
// 电压源、电荷和电流以符号方程描述，按固定顺序代入化简后在时间窗口内逐点求解。
package reactor

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/AdrianaBogosel/PlasmaReactorSimulation/base"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/debug"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/element"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/logging"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/maths"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/metrics"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/types"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/utils"
)

// ErrNilInput 电容或电压源为空
var ErrNilInput = errors.New("reactor: 电容或电压源为空")

// 求解量名称
const (
	QuantityIntensity = "intensity"
	QuantityVoltage   = "voltage"
)

// 诊断曲线
const (
	IntensityTitle  = "Intensity I(t)"
	IntensityLabel  = "Intensity (mA)"
	VoltageTitle    = "Tension V(t)"
	VoltageLabel    = "Tension (V)"
	PowerTitle      = "Power approximated P(t)"
	NoisyPowerTitle = "Power approximated P(t) with noise"
	PowerLabel      = "Power (W)"
)

// Result 一次仿真的结果，各序列长度相同
type Result struct {
	RunID     string        // 运行标识
	Time      []float64     // 时间 (s)
	Intensity []float64     // 电流 (mA)
	Voltage   []float64     // 电压 (V)
	Power     []float64     // 功率 (W)
	Elapsed   time.Duration // 耗时
}

// Reactor 反应器
type Reactor struct {
	log       logr.Logger
	cell      *element.Capacitor
	barrier   *element.Capacitor
	gap       *element.Capacitor
	vs        *element.VoltageSource
	charge    *base.Charge
	intensity *base.Intensity

	metrics   *metrics.Recorder
	runID     string
	noise     *debug.Noise
	lissajous base.LissajousConfig
}

// Option 反应器选项
type Option func(*Reactor)

// WithMetrics 记录求解指标
func WithMetrics(m *metrics.Recorder) Option { return func(r *Reactor) { r.metrics = m } }

// WithRunID 指定运行标识，默认随机生成
func WithRunID(id string) Option { return func(r *Reactor) { r.runID = id } }

// WithNoise 诊断曲线使用的噪声发生器
func WithNoise(n *debug.Noise) Option { return func(r *Reactor) { r.noise = n } }

// WithLissajous 李萨如曲线参数
func WithLissajous(cfg base.LissajousConfig) Option { return func(r *Reactor) { r.lissajous = cfg } }

// New 创建反应器并完成电流方程的全部代入
// barrier 和 gap 只做记录，不参与方程。
func New(log logr.Logger, cell, barrier, gap *element.Capacitor, vs *element.VoltageSource, opts ...Option) (*Reactor, error) {
	if cell == nil || barrier == nil || gap == nil || vs == nil {
		return nil, ErrNilInput
	}
	r := &Reactor{
		log:       log.WithName("Reactor"),
		cell:      cell,
		barrier:   barrier,
		gap:       gap,
		vs:        vs,
		runID:     uuid.NewString(),
		lissajous: base.DefaultLissajous(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.noise == nil {
		r.noise = debug.NewNoise(1)
	}
	for _, c := range []*element.Capacitor{cell, barrier, gap} {
		r.log.Info("电容", "symbol", c.Symbol(), "value", c.Value())
	}
	r.log.Info("电压源", "equation", vs.String())

	var err error
	if r.charge, err = base.NewCharge(log, types.ChargeSymbol, vs, cell); err != nil {
		return nil, err
	}
	if r.intensity, err = base.NewIntensity(log, r.charge); err != nil {
		return nil, err
	}
	if err := r.intensity.SubstituteCharge(r.charge); err != nil {
		return nil, err
	}
	if err := r.intensity.SubstituteVoltage(vs); err != nil {
		return nil, err
	}
	if err := r.intensity.SubstituteCapacitance(cell.Value()); err != nil {
		return nil, err
	}
	r.log.V(logging.DEBUG).Info("电流方程", "equation", r.intensity.Equation().String())
	return r, nil
}

// Cell 反应器单元电容
func (r *Reactor) Cell() *element.Capacitor { return r.cell }

// Barrier 介质阻挡层电容
func (r *Reactor) Barrier() *element.Capacitor { return r.barrier }

// Gap 等离子间隙电容
func (r *Reactor) Gap() *element.Capacitor { return r.gap }

// VoltageSource 电压源
func (r *Reactor) VoltageSource() *element.VoltageSource { return r.vs }

// Charge 电荷模型
func (r *Reactor) Charge() *base.Charge { return r.charge }

// Intensity 电流模型
func (r *Reactor) Intensity() *base.Intensity { return r.intensity }

// RunID 运行标识
func (r *Reactor) RunID() string { return r.runID }

// Simulate 在 [0, duration) 上按 sampleRate 采样，同时求解电流和电压
func (r *Reactor) Simulate(duration, sampleRate float64) (res *Result, err error) {
	defer func() { r.metrics.ObserveSimulation(err) }()
	var watch utils.StopWatch
	watch.Start()
	r.log.Info("Simulation started.", "run", r.runID, "duration", duration, "sampleRate", sampleRate)

	times, err := maths.TimeAxis(duration, sampleRate)
	if err != nil {
		return nil, err
	}
	var intensity, voltage []float64
	s := utils.NewScheduler()
	s.Schedule(QuantityIntensity, func() (err error) {
		intensity, err = r.timed(QuantityIntensity, len(times), func() ([]float64, error) { return r.intensity.Solve(times) })
		return err
	})
	s.Schedule(QuantityVoltage, func() (err error) {
		voltage, err = r.timed(QuantityVoltage, len(times), func() ([]float64, error) { return r.vs.Solve(times) })
		return err
	})
	if err := s.Run(); err != nil {
		r.log.Error(err, "仿真失败", "run", r.runID)
		return nil, fmt.Errorf("仿真失败: %w", err)
	}
	r.log.V(logging.DEBUG).Info("求解完成", "run", r.runID, "elapsed", watch.Elapsed().String())
	if len(intensity) != len(times) || len(voltage) != len(times) {
		return nil, fmt.Errorf("%w: 电流 %d 电压 %d 时间 %d", maths.ErrLength, len(intensity), len(voltage), len(times))
	}
	power, err := maths.MulElem(intensity, voltage, types.PowerScale)
	if err != nil {
		return nil, err
	}
	res = &Result{
		RunID:     r.runID,
		Time:      times,
		Intensity: intensity,
		Voltage:   voltage,
		Power:     power,
		Elapsed:   watch.Stop(),
	}
	r.log.Info("Simulation finished.", "run", r.runID, "samples", len(times), "elapsed", res.Elapsed.String())
	return res, nil
}

// SimulateWithPlots 仿真后输出电流、电压、功率和李萨如诊断曲线
func (r *Reactor) SimulateWithPlots(duration, sampleRate float64, sink debug.Sink) (*Result, error) {
	if sink == nil {
		return nil, debug.ErrNoSink
	}
	res, err := r.Simulate(duration, sampleRate)
	if err != nil {
		return nil, err
	}
	plots := []struct {
		title, label string
		data         []float64
		severity     float64
	}{
		{IntensityTitle, IntensityLabel, res.Intensity, types.IntensityNoise},
		{VoltageTitle, VoltageLabel, res.Voltage, types.VoltageNoise},
		{PowerTitle, PowerLabel, res.Power, types.PowerNoise},
		{NoisyPowerTitle, PowerLabel, res.Power, types.NoisyPowerNoise},
	}
	for _, p := range plots {
		if err := sink.Plot(p.title, p.label, p.data, p.severity); err != nil {
			return nil, fmt.Errorf("%s: %w", p.title, err)
		}
	}
	if err := r.charge.PlotLissajous(sink, r.noise, r.lissajous); err != nil {
		return nil, err
	}
	r.log.Info("诊断曲线已输出", "run", r.runID, "plots", len(plots)+1)
	return res, nil
}

func (r *Reactor) timed(quantity string, samples int, solve func() ([]float64, error)) ([]float64, error) {
	start := time.Now()
	data, err := solve()
	if err != nil {
		return nil, err
	}
	r.metrics.ObserveSolve(quantity, samples, time.Since(start))
	return data, nil
}
