package base

import (
	"fmt"
	"slices"
	"sync"

	"github.com/go-logr/logr"

	"github.com/AdrianaBogosel/PlasmaReactorSimulation/element"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/logging"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/maths/symbolic"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/types"
)

// Intensity 电流模型
// 每次代入生成新的阶段方程，模型只保存最新一个；代入必须按 电荷 -> 电压 -> 电容 的顺序进行。
type Intensity struct {
	log    logr.Logger
	symbol *symbolic.Applied // i(t)

	mu        sync.RWMutex
	current   StageEquation // 当前阶段方程
	solutions []float64     // 最近一次求解结果 (mA)
}

// NewIntensity 建立 i(t) = d/dt Q(t)
func NewIntensity(log logr.Logger, q *Charge) (*Intensity, error) {
	if q == nil {
		return nil, ErrNilInput
	}
	symbol := symbolic.Fn(types.IntensitySymbol, symbolic.S(types.TimeSymbol))
	i := &Intensity{
		log:     log.WithName("Intensity"),
		symbol:  symbol,
		current: Derive(symbol, q.Symbol()),
	}
	i.log.V(logging.DEBUG).Info("电流方程已创建", "equation", i.current.Equation().String())
	return i, nil
}

// SubstituteCharge 代入电荷方程
func (i *Intensity) SubstituteCharge(q *Charge) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	d, ok := i.current.(DerivedEquation)
	if !ok {
		return i.orderError(StageDerived)
	}
	next, err := d.WithCharge(q)
	if err != nil {
		return err
	}
	i.advance(next)
	return nil
}

// SubstituteVoltage 代入电压表达式
func (i *Intensity) SubstituteVoltage(vs *element.VoltageSource) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	c, ok := i.current.(ChargedEquation)
	if !ok {
		return i.orderError(StageCharged)
	}
	next, err := c.WithVoltage(vs)
	if err != nil {
		return err
	}
	i.advance(next)
	return nil
}

// SubstituteCapacitance 代入电容数值，完成后方程只含 t
func (i *Intensity) SubstituteCapacitance(value float64) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	v, ok := i.current.(VoltageEquation)
	if !ok {
		return i.orderError(StageVoltage)
	}
	next, err := v.WithCapacitance(value)
	if err != nil {
		return err
	}
	i.advance(next)
	return nil
}

// Solve 逐点求解电流 (mA)，结果与输入顺序一致并被缓存
func (i *Intensity) Solve(times []float64) ([]float64, error) {
	i.mu.RLock()
	r, ok := i.current.(ReducedEquation)
	var err error
	if !ok {
		err = i.orderError(StageReduced)
	}
	i.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	i.log.V(logging.DEBUG).Info("求解方程", "equation", r.Equation().String(), "samples", len(times))
	data, err := r.Solve(times)
	if err != nil {
		return nil, fmt.Errorf("电流求解失败: %w", err)
	}
	i.mu.Lock()
	i.solutions = data
	i.mu.Unlock()
	return slices.Clone(data), nil
}

// Solutions 最近一次求解结果的副本，未求解时为 nil
func (i *Intensity) Solutions() []float64 {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.solutions)
}

// Equation 当前方程
func (i *Intensity) Equation() symbolic.Equation {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.current.Equation()
}

// Rhs 当前方程右侧
func (i *Intensity) Rhs() symbolic.Expr { return i.Equation().RHS }

// Symbol 电流符号 i(t)
func (i *Intensity) Symbol() symbolic.Expr { return i.symbol }

// Stage 当前阶段
func (i *Intensity) Stage() Stage {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.current.Stage()
}

func (i *Intensity) advance(next StageEquation) {
	i.current = next
	i.log.V(logging.DEBUG).Info("代入完成", "stage", next.Stage().String(), "equation", next.Equation().String())
}

func (i *Intensity) orderError(want Stage) error {
	return fmt.Errorf("%w: 当前阶段 %s, 需要 %s", ErrSubstitutionOrder, i.current.Stage(), want)
}
