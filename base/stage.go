package base

import (
	"fmt"
	"slices"

	"github.com/AdrianaBogosel/PlasmaReactorSimulation/element"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/maths/symbolic"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/types"
)

// Stage 电流方程所处的代入阶段
type Stage int

const (
	StageDerived Stage = iota // i(t) = d/dt Q(t)
	StageCharged              // 已代入电荷
	StageVoltage              // 已代入电压
	StageReduced              // 已代入电容并求导，只含 t
)

func (s Stage) String() string {
	switch s {
	case StageDerived:
		return "derived"
	case StageCharged:
		return "charged"
	case StageVoltage:
		return "voltage"
	case StageReduced:
		return "reduced"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// StageEquation 各阶段方程的公共视图
type StageEquation interface {
	Equation() symbolic.Equation
	Stage() Stage
}

// DerivedEquation i(t) = d/dt Q(t)
type DerivedEquation struct {
	eq symbolic.Equation
}

// Derive 由电流符号和电荷符号建立导数方程
func Derive(current, charge symbolic.Expr) DerivedEquation {
	return DerivedEquation{eq: symbolic.Eq(current, symbolic.DerivativeOf(charge, types.TimeSymbol))}
}

func (d DerivedEquation) Equation() symbolic.Equation { return d.eq }
func (d DerivedEquation) Stage() Stage                { return StageDerived }

// WithCharge 用 Q(t) = V(t)*C 替换 Q(t)
func (d DerivedEquation) WithCharge(q *Charge) (ChargedEquation, error) {
	if q == nil {
		return ChargedEquation{}, ErrNilInput
	}
	if !d.eq.Contains(q.Symbol()) {
		return ChargedEquation{}, fmt.Errorf("%w: %s 不在 %s 中", ErrSymbolMissing, q.Symbol(), d.eq)
	}
	return ChargedEquation{
		eq:          d.eq.Replace(q.Symbol(), q.Rhs()),
		capacitance: q.CapacitanceSymbol(),
	}, nil
}

// ChargedEquation i(t) = d/dt (V(t)*C)
type ChargedEquation struct {
	eq          symbolic.Equation
	capacitance symbolic.Expr
}

func (c ChargedEquation) Equation() symbolic.Equation { return c.eq }
func (c ChargedEquation) Stage() Stage                { return StageCharged }

// WithVoltage 用电压表达式替换 V(t)
func (c ChargedEquation) WithVoltage(vs *element.VoltageSource) (VoltageEquation, error) {
	if vs == nil {
		return VoltageEquation{}, ErrNilInput
	}
	if !c.eq.Contains(vs.Symbol()) {
		return VoltageEquation{}, fmt.Errorf("%w: %s 不在 %s 中", ErrSymbolMissing, vs.Symbol(), c.eq)
	}
	return VoltageEquation{
		eq:          c.eq.Replace(vs.Symbol(), vs.Expression()),
		capacitance: c.capacitance,
	}, nil
}

// VoltageEquation i(t) = d/dt (A*sin(ω*t)*C)
type VoltageEquation struct {
	eq          symbolic.Equation
	capacitance symbolic.Expr
}

func (v VoltageEquation) Equation() symbolic.Equation { return v.eq }
func (v VoltageEquation) Stage() Stage                { return StageVoltage }

// WithCapacitance 代入电容数值并展开导数
func (v VoltageEquation) WithCapacitance(value float64) (ReducedEquation, error) {
	if err := element.CheckCapacitance(value); err != nil {
		return ReducedEquation{}, err
	}
	if v.capacitance == nil || !v.eq.Contains(v.capacitance) {
		return ReducedEquation{}, fmt.Errorf("%w: %v 不在 %s 中", ErrSymbolMissing, v.capacitance, v.eq)
	}
	eq := v.eq.Replace(v.capacitance, symbolic.N(value)).Doit()
	if symbolic.HasDerivative(eq.RHS) {
		return ReducedEquation{}, fmt.Errorf("%w: %s", ErrNotReduced, eq)
	}
	if !eq.LHS.Equal(v.eq.LHS) {
		return ReducedEquation{}, fmt.Errorf("%w: 左侧 %s 被改写为 %s", ErrNotReduced, v.eq.LHS, eq.LHS)
	}
	if names := (symbolic.Equation{LHS: eq.RHS, RHS: symbolic.N(0)}).Symbols(); !slices.Equal(names, []string{types.TimeSymbol}) {
		return ReducedEquation{}, fmt.Errorf("%w: %s 含有 %v", ErrNotReduced, eq, names)
	}
	return ReducedEquation{eq: eq}, nil
}

// ReducedEquation i(t) = A*ω*C*cos(ω*t)
type ReducedEquation struct {
	eq symbolic.Equation
}

func (r ReducedEquation) Equation() symbolic.Equation { return r.eq }
func (r ReducedEquation) Stage() Stage                { return StageReduced }

// Solve 逐点求解电流，结果换算为 mA
func (r ReducedEquation) Solve(times []float64) ([]float64, error) {
	if err := element.CheckTimes(times); err != nil {
		return nil, err
	}
	fn, ok := r.eq.LHS.(*symbolic.Applied)
	if !ok {
		return nil, fmt.Errorf("%w: 左侧 %s 不是时间函数", ErrNotReduced, r.eq.LHS)
	}
	data, err := symbolic.SolveSeries(r.eq, fn.Name, symbolic.S(types.TimeSymbol), times)
	if err != nil {
		return nil, err
	}
	for i := range data {
		data[i] *= types.MilliScale
	}
	return data, nil
}
