package symbolic

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// 求解错误
var (
	ErrNoSolution        = errors.New("symbolic: 方程无解")
	ErrMultipleSolutions = errors.New("symbolic: 方程解不唯一")
	ErrNonLinear         = errors.New("symbolic: 方程对未知量非线性")
	ErrNotNumeric        = errors.New("symbolic: 方程含有未代入的符号")
)

// unknownName 求解时替换未知量的内部占位符
const unknownName = "_unknown"

// Equation 方程 LHS = RHS
type Equation struct {
	LHS Expr // 左侧
	RHS Expr // 右侧
}

// Eq 创建方程
func Eq(lhs, rhs Expr) Equation { return Equation{LHS: lhs, RHS: rhs} }

// String 打印
func (eq Equation) String() string { return eq.LHS.String() + " = " + eq.RHS.String() }

// Replace 两侧同时替换，返回新的方程
func (eq Equation) Replace(old, new Expr) Equation {
	return Equation{LHS: eq.LHS.Replace(old, new), RHS: eq.RHS.Replace(old, new)}
}

// Doit 两侧展开导数
func (eq Equation) Doit() Equation { return Equation{LHS: Doit(eq.LHS), RHS: Doit(eq.RHS)} }

// Residual LHS - RHS
func (eq Equation) Residual() Expr { return Sub(eq.LHS, eq.RHS) }

// Contains 判断任意一侧是否含有 target
func (eq Equation) Contains(target Expr) bool {
	return Contains(eq.LHS, target) || Contains(eq.RHS, target)
}

// Symbols 两侧自由符号名，按字母排序
func (eq Equation) Symbols() []string {
	set := map[string]struct{}{}
	eq.LHS.Symbols(set)
	eq.RHS.Symbols(set)
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Solve 对 unknown 求解方程
// 只接受对未知量线性、且其余部分均为数值的方程，成功时返回恰好一个根。
// 无根返回 ErrNoSolution，恒等式返回 ErrMultipleSolutions。
func Solve(eq Equation, unknown Expr) ([]float64, error) {
	x := S(unknownName)
	residual := Doit(eq.Replace(unknown, x).Residual())
	for _, name := range (Equation{LHS: residual, RHS: N(0)}).Symbols() {
		if name != unknownName {
			return nil, fmt.Errorf("%w: %s (%s)", ErrNotNumeric, name, eq)
		}
	}
	constant, ok := residual.Replace(x, N(0)).Eval()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotNumeric, eq)
	}
	slope, ok := Doit(residual.Diff(unknownName)).Eval()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNonLinear, eq)
	}
	if slope == 0 {
		if constant == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMultipleSolutions, eq)
		}
		return nil, fmt.Errorf("%w: %s", ErrNoSolution, eq)
	}
	root := -constant / slope
	if math.IsNaN(root) || math.IsInf(root, 0) {
		return nil, fmt.Errorf("%w: %s", ErrNoSolution, eq)
	}
	return []float64{root}, nil
}

// SolveOne 对 unknown 求解并直接返回唯一根
func SolveOne(eq Equation, unknown Expr) (float64, error) {
	roots, err := Solve(eq, unknown)
	if err != nil {
		return 0, err
	}
	return roots[0], nil
}
