// Package base 反应器的电荷与电流模型
// 电流方程由电荷方程求导得到，再按电荷、电压、电容的固定顺序代入，最终化为只含 t 的闭式。
package base

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/AdrianaBogosel/PlasmaReactorSimulation/debug"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/element"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/logging"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/maths/symbolic"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/types"
)

// 模型错误
var (
	ErrNilInput          = errors.New("base: 电压源或电容为空")
	ErrSubstitutionOrder = errors.New("base: 代入顺序错误")
	ErrSymbolMissing     = errors.New("base: 方程中不存在待代入的符号")
	ErrNotReduced        = errors.New("base: 方程未化简为只含时间的闭式")
)

// Charge 电荷模型 Q(t) = V(t)*C，创建后不可修改
type Charge struct {
	log         logr.Logger
	symbol      *symbolic.Applied // Q(t)
	capacitance *symbolic.Sym     // 电容符号
	equation    symbolic.Equation // Q(t) = V(t)*C
}

// NewCharge 由电压源和电容创建电荷模型
func NewCharge(log logr.Logger, symbol string, vs *element.VoltageSource, c *element.Capacitor) (*Charge, error) {
	if vs == nil || c == nil {
		return nil, ErrNilInput
	}
	if symbol == "" {
		return nil, element.ErrInvalidSymbol
	}
	if err := element.CheckSymbol(c.Symbol()); err != nil {
		return nil, err
	}
	if symbol == c.Symbol() || symbol == types.TimeSymbol || symbol == types.IntensitySymbol || symbol == types.VoltageSymbol {
		return nil, fmt.Errorf("%w: 电荷符号 %q", element.ErrReservedSymbol, symbol)
	}
	capacitance := symbolic.S(c.Symbol())
	q := &Charge{
		log:         log.WithName("Charge"),
		symbol:      symbolic.Fn(symbol, symbolic.S(types.TimeSymbol)),
		capacitance: capacitance,
	}
	q.equation = symbolic.Eq(q.symbol, symbolic.MulOf(vs.Symbol(), capacitance))
	q.log.V(logging.DEBUG).Info("电荷方程已创建", "equation", q.equation.String())
	return q, nil
}

// Symbol 电荷符号 Q(t)
func (q *Charge) Symbol() symbolic.Expr { return q.symbol }

// Equation 电荷方程
func (q *Charge) Equation() symbolic.Equation { return q.equation }

// Rhs 方程右侧 V(t)*C
func (q *Charge) Rhs() symbolic.Expr { return q.equation.RHS }

// CapacitanceSymbol 方程中使用的电容符号
func (q *Charge) CapacitanceSymbol() symbolic.Expr { return q.capacitance }

// PlotLissajous 绘制电压-电荷李萨如示意曲线，横轴叠加 N(0, cfg.Noise) 噪声
func (q *Charge) PlotLissajous(sink debug.CurveSink, noise *debug.Noise, cfg LissajousConfig) error {
	if sink == nil {
		return debug.ErrNoSink
	}
	x, y, err := Lissajous(cfg)
	if err != nil {
		return err
	}
	if noise == nil {
		noise = debug.NewNoise(0)
	}
	jitter, err := noise.Samples(len(x), cfg.Noise)
	if err != nil {
		return err
	}
	for i := range x {
		x[i] += jitter[i]
	}
	q.log.V(logging.DEBUG).Info("绘制李萨如曲线", "points", len(x))
	if err := sink.PlotCurve(LissajousTitle, LissajousXLabel, LissajousYLabel, x, y); err != nil {
		return fmt.Errorf("李萨如曲线: %w", err)
	}
	return nil
}

func (q *Charge) String() string { return q.equation.String() }
