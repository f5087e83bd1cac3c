// Package symbolic 提供反应器方程所需的最小符号代数内核。
// 只覆盖电荷、电流、电压三个方程用到的运算：常数、符号、未定义函数、
// 加法、乘法、正弦、余弦以及未求值的导数。
package symbolic

import (
	"math"
	"strconv"
	"strings"
)

// Expr 符号表达式接口
// 所有实现都是不可变值，替换和求导总是返回新的表达式。
type Expr interface {
	String() string                  // 文本形式
	Equal(other Expr) bool           // 结构相等
	Replace(old, new Expr) Expr      // 结构替换
	Diff(wrt string) Expr            // 对符号 wrt 求导
	Eval() (float64, bool)           // 数值求值，存在自由符号时返回假
	Symbols(set map[string]struct{}) // 收集自由符号及未定义函数名
}

// Num 数值常量
type Num struct{ V float64 }

// N 创建数值常量
func N(v float64) *Num { return &Num{V: v} }

func (n *Num) String() string {
	return strconv.FormatFloat(n.V, 'g', -1, 64)
}
func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && o.V == n.V
}
func (n *Num) Replace(old, new Expr) Expr {
	if n.Equal(old) {
		return new
	}
	return n
}
func (n *Num) Diff(string) Expr {
	return N(0)
}
func (n *Num) Eval() (float64, bool) {
	return n.V, true
}
func (n *Num) Symbols(map[string]struct{}) {}
func (n *Num) isZero() bool {
	return n.V == 0
}

// Sym 命名占位符号，如 t、C_cell
type Sym struct{ Name string }

// S 创建符号
func S(name string) *Sym { return &Sym{Name: name} }

func (s *Sym) String() string {
	return s.Name
}
func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && o.Name == s.Name
}
func (s *Sym) Replace(old, new Expr) Expr {
	if s.Equal(old) {
		return new
	}
	return s
}
func (s *Sym) Diff(wrt string) Expr {
	if s.Name == wrt {
		return N(1)
	}
	return N(0)
}
func (s *Sym) Eval() (float64, bool) {
	return 0, false
}
func (s *Sym) Symbols(set map[string]struct{}) { set[s.Name] = struct{}{} }

// Applied 未定义函数的应用，如 Q(t)、V(t)、i(t)
type Applied struct {
	Name string // 函数名
	Arg  Expr   // 自变量
}

// Fn 创建未定义函数应用
func Fn(name string, arg Expr) *Applied { return &Applied{Name: name, Arg: arg} }

func (a *Applied) String() string {
	return a.Name + "(" + a.Arg.String() + ")"
}
func (a *Applied) Equal(other Expr) bool {
	o, ok := other.(*Applied)
	return ok && o.Name == a.Name && o.Arg.Equal(a.Arg)
}
func (a *Applied) Replace(old, new Expr) Expr {
	if a.Equal(old) {
		return new
	}
	return Fn(a.Name, a.Arg.Replace(old, new))
}

// Diff 未定义函数的导数保持未求值
func (a *Applied) Diff(wrt string) Expr {
	if !DependsOn(a.Arg, wrt) {
		return N(0)
	}
	return &Derivative{Operand: a, Wrt: wrt}
}
func (a *Applied) Eval() (float64, bool) {
	return 0, false
}
func (a *Applied) Symbols(set map[string]struct{}) {
	set[a.Name] = struct{}{}
	a.Arg.Symbols(set)
}

// Add 求和
type Add struct{ Terms []Expr }

// AddOf 构造化简后的和：展开嵌套求和、合并常数、去掉零项
func AddOf(terms ...Expr) Expr {
	out := make([]Expr, 0, len(terms))
	constant := 0.0
	var push func(e Expr)
	push = func(e Expr) {
		switch v := e.(type) {
		case *Add:
			for _, t := range v.Terms {
				push(t)
			}
		case *Num:
			constant += v.V
		default:
			out = append(out, e)
		}
	}
	for _, t := range terms {
		push(t)
	}
	if constant != 0 {
		out = append(out, N(constant))
	}
	switch len(out) {
	case 0:
		return N(0)
	case 1:
		return out[0]
	}
	return &Add{Terms: out}
}

// Sub 差 a - b
func Sub(a, b Expr) Expr { return AddOf(a, Neg(b)) }

func (a *Add) String() string {
	parts := make([]string, len(a.Terms))
	for i, t := range a.Terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}
func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	return ok && equalAll(a.Terms, o.Terms)
}
func (a *Add) Replace(old, new Expr) Expr {
	if a.Equal(old) {
		return new
	}
	return AddOf(replaceAll(a.Terms, old, new)...)
}
func (a *Add) Diff(wrt string) Expr {
	terms := make([]Expr, len(a.Terms))
	for i, t := range a.Terms {
		terms[i] = t.Diff(wrt)
	}
	return AddOf(terms...)
}
func (a *Add) Eval() (float64, bool) {
	sum := 0.0
	for _, t := range a.Terms {
		v, ok := t.Eval()
		if !ok {
			return 0, false
		}
		sum += v
	}
	return sum, true
}
func (a *Add) Symbols(set map[string]struct{}) {
	for _, t := range a.Terms {
		t.Symbols(set)
	}
}

// Mul 乘积，数值系数总在首位
type Mul struct{ Factors []Expr }

// MulOf 构造化简后的积：展开嵌套乘积、合并系数、含零因子时为零
func MulOf(factors ...Expr) Expr {
	out := make([]Expr, 0, len(factors)+1)
	coef := 1.0
	var push func(e Expr)
	push = func(e Expr) {
		switch v := e.(type) {
		case *Mul:
			for _, f := range v.Factors {
				push(f)
			}
		case *Num:
			coef *= v.V
		default:
			out = append(out, e)
		}
	}
	for _, f := range factors {
		push(f)
	}
	if coef == 0 || len(out) == 0 {
		return N(coef)
	}
	if coef != 1 {
		out = append([]Expr{N(coef)}, out...)
	}
	if len(out) == 1 {
		return out[0]
	}
	return &Mul{Factors: out}
}

// Neg 取负
func Neg(e Expr) Expr { return MulOf(N(-1), e) }

func (m *Mul) String() string {
	parts := make([]string, 0, len(m.Factors))
	for i, f := range m.Factors {
		if n, ok := f.(*Num); ok && i == 0 && n.V == -1 {
			parts = append(parts, "-")
			continue
		}
		s := f.String()
		if _, ok := f.(*Add); ok {
			s = "(" + s + ")"
		}
		parts = append(parts, s)
	}
	return strings.Replace(strings.Join(parts, "*"), "-*", "-", 1)
}
func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	return ok && equalAll(m.Factors, o.Factors)
}
func (m *Mul) Replace(old, new Expr) Expr {
	if m.Equal(old) {
		return new
	}
	return MulOf(replaceAll(m.Factors, old, new)...)
}

// Diff 乘积法则
func (m *Mul) Diff(wrt string) Expr {
	terms := make([]Expr, 0, len(m.Factors))
	for i := range m.Factors {
		d := m.Factors[i].Diff(wrt)
		if n, ok := d.(*Num); ok && n.isZero() {
			continue
		}
		factors := make([]Expr, len(m.Factors))
		copy(factors, m.Factors)
		factors[i] = d
		terms = append(terms, MulOf(factors...))
	}
	return AddOf(terms...)
}
func (m *Mul) Eval() (float64, bool) {
	prod := 1.0
	for _, f := range m.Factors {
		v, ok := f.Eval()
		if !ok {
			return 0, false
		}
		prod *= v
	}
	return prod, true
}
func (m *Mul) Symbols(set map[string]struct{}) {
	for _, f := range m.Factors {
		f.Symbols(set)
	}
}

// Sin 正弦
type Sin struct{ Arg Expr }

// SinOf 常数自变量直接求值
func SinOf(arg Expr) Expr {
	if n, ok := arg.(*Num); ok {
		return N(math.Sin(n.V))
	}
	return &Sin{Arg: arg}
}

func (s *Sin) String() string {
	return "sin(" + s.Arg.String() + ")"
}
func (s *Sin) Equal(other Expr) bool {
	o, ok := other.(*Sin)
	return ok && o.Arg.Equal(s.Arg)
}
func (s *Sin) Replace(old, new Expr) Expr {
	if s.Equal(old) {
		return new
	}
	return SinOf(s.Arg.Replace(old, new))
}
func (s *Sin) Diff(wrt string) Expr {
	return MulOf(CosOf(s.Arg), s.Arg.Diff(wrt))
}
func (s *Sin) Eval() (float64, bool) {
	v, ok := s.Arg.Eval()
	return math.Sin(v), ok
}
func (s *Sin) Symbols(set map[string]struct{}) { s.Arg.Symbols(set) }

// Cos 余弦
type Cos struct{ Arg Expr }

// CosOf 常数自变量直接求值
func CosOf(arg Expr) Expr {
	if n, ok := arg.(*Num); ok {
		return N(math.Cos(n.V))
	}
	return &Cos{Arg: arg}
}

func (c *Cos) String() string {
	return "cos(" + c.Arg.String() + ")"
}
func (c *Cos) Equal(other Expr) bool {
	o, ok := other.(*Cos)
	return ok && o.Arg.Equal(c.Arg)
}
func (c *Cos) Replace(old, new Expr) Expr {
	if c.Equal(old) {
		return new
	}
	return CosOf(c.Arg.Replace(old, new))
}
func (c *Cos) Diff(wrt string) Expr {
	return MulOf(N(-1), SinOf(c.Arg), c.Arg.Diff(wrt))
}
func (c *Cos) Eval() (float64, bool) {
	v, ok := c.Arg.Eval()
	return math.Cos(v), ok
}
func (c *Cos) Symbols(set map[string]struct{}) { c.Arg.Symbols(set) }

func equalAll(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func replaceAll(list []Expr, old, new Expr) []Expr {
	out := make([]Expr, len(list))
	for i, e := range list {
		out[i] = e.Replace(old, new)
	}
	return out
}
