package element

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/AdrianaBogosel/PlasmaReactorSimulation/maths/symbolic"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/types"
)

// 元件参数错误
var (
	ErrInvalidCapacitance = errors.New("element: 电容值必须为正有限实数")
	ErrInvalidSymbol      = errors.New("element: 符号名不能为空")
	ErrReservedSymbol     = errors.New("element: 符号名与方程中的时间变量或函数名冲突")
	ErrInvalidVoltage     = errors.New("element: 电压源参数无效")
	ErrEmptyTimes         = errors.New("element: 时间序列为空")
	ErrInvalidTime        = errors.New("element: 时间值必须为有限实数")
)

// Capacitor 电容，数值与方程中的符号名绑定，创建后不可修改
type Capacitor struct {
	value  float64       // 电容值 (F)
	symbol *symbolic.Sym // 方程符号
}

// NewCapacitor 创建电容
func NewCapacitor(value float64, symbol string) (*Capacitor, error) {
	if err := CheckCapacitance(value); err != nil {
		return nil, err
	}
	if err := CheckSymbol(symbol); err != nil {
		return nil, err
	}
	return &Capacitor{value: value, symbol: symbolic.S(symbol)}, nil
}

// CheckCapacitance 校验电容值
func CheckCapacitance(value float64) error {
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidCapacitance, value)
	}
	return nil
}

// CheckSymbol 校验电容符号名
func CheckSymbol(symbol string) error {
	if symbol == "" {
		return ErrInvalidSymbol
	}
	if slices.Contains(types.ReservedSymbols, symbol) {
		return fmt.Errorf("%w: %q", ErrReservedSymbol, symbol)
	}
	return nil
}

// CheckTimes 校验求解用的时间序列
func CheckTimes(times []float64) error {
	if len(times) == 0 {
		return ErrEmptyTimes
	}
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("%w: times[%d]=%v", ErrInvalidTime, i, t)
		}
	}
	return nil
}

// Value 电容值
func (c *Capacitor) Value() float64 { return c.value }

// Symbol 符号名
func (c *Capacitor) Symbol() string { return c.symbol.Name }

// Expr 符号表达式
func (c *Capacitor) Expr() symbolic.Expr { return c.symbol }

func (c *Capacitor) String() string { return fmt.Sprintf("%s=%gF", c.symbol.Name, c.value) }
