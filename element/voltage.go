package element

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/go-logr/logr"

	"github.com/AdrianaBogosel/PlasmaReactorSimulation/logging"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/maths/symbolic"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/types"
)

// VoltageSource 正弦交流电压源 V(t) = A*sin(ω*t)
// 参数在创建后不可修改，Solve 只会更新最近一次的求解缓存。
type VoltageSource struct {
	log       logr.Logger
	amplitude float64           // 幅值 (V)
	omega     float64           // 角频率 (rad/s)
	time      *symbolic.Sym     // 时间变量 t
	symbol    *symbolic.Applied // V(t)
	expr      symbolic.Expr     // A*sin(ω*t)
	equation  symbolic.Equation // V(t) = A*sin(ω*t)

	mu        sync.RWMutex
	solutions []float64 // 最近一次求解结果
}

// NewVoltageSource 创建电压源
func NewVoltageSource(log logr.Logger, amplitude, omega float64) (*VoltageSource, error) {
	if math.IsNaN(amplitude) || math.IsInf(amplitude, 0) {
		return nil, fmt.Errorf("%w: 幅值 %v", ErrInvalidVoltage, amplitude)
	}
	if omega <= 0 || math.IsNaN(omega) || math.IsInf(omega, 0) {
		return nil, fmt.Errorf("%w: 角频率 %v", ErrInvalidVoltage, omega)
	}
	t := symbolic.S(types.TimeSymbol)
	vs := &VoltageSource{
		log:       log.WithName("VoltageSource"),
		amplitude: amplitude,
		omega:     omega,
		time:      t,
		symbol:    symbolic.Fn(types.VoltageSymbol, t),
		expr:      symbolic.MulOf(symbolic.N(amplitude), symbolic.SinOf(symbolic.MulOf(symbolic.N(omega), t))),
	}
	vs.equation = symbolic.Eq(vs.symbol, vs.expr)
	vs.log.V(logging.DEBUG).Info("电压波形已创建", "symbol", vs.symbol.String(), "equation", vs.expr.String())
	return vs, nil
}

// Expression 电压表达式 A*sin(ω*t)
func (vs *VoltageSource) Expression() symbolic.Expr { return vs.expr }

// Symbol 其他方程引用“t 时刻电压”时使用的符号 V(t)
func (vs *VoltageSource) Symbol() symbolic.Expr { return vs.symbol }

// Equation 电压方程 V(t) = A*sin(ω*t)
func (vs *VoltageSource) Equation() symbolic.Equation { return vs.equation }

// Amplitude 幅值
func (vs *VoltageSource) Amplitude() float64 { return vs.amplitude }

// Frequency 角频率
func (vs *VoltageSource) Frequency() float64 { return vs.omega }

// Solve 对每个时间点求解电压，结果与输入顺序一致并被缓存
func (vs *VoltageSource) Solve(times []float64) ([]float64, error) {
	if err := CheckTimes(times); err != nil {
		return nil, err
	}
	vs.log.V(logging.DEBUG).Info("求解方程", "equation", vs.equation.String(), "samples", len(times))
	data, err := symbolic.SolveSeries(vs.equation, types.VoltageSymbol, vs.time, times)
	if err != nil {
		return nil, fmt.Errorf("电压求解失败: %w", err)
	}
	vs.mu.Lock()
	vs.solutions = data
	vs.mu.Unlock()
	return slices.Clone(data), nil
}

// Solutions 最近一次求解结果的副本，未求解时为 nil
func (vs *VoltageSource) Solutions() []float64 {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	return slices.Clone(vs.solutions)
}

func (vs *VoltageSource) String() string {
	return fmt.Sprintf("%s = %s", vs.symbol, vs.expr)
}
