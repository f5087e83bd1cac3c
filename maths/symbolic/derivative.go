package symbolic

// Derivative 未求值导数 d/dWrt Operand
// 被求导对象含有依赖 Wrt 的未定义函数时无法展开，保持原样直到其被替换。
type Derivative struct {
	Operand Expr   // 被求导表达式
	Wrt     string // 求导变量
}

// DerivativeOf 创建未求值导数
func DerivativeOf(operand Expr, wrt string) Expr {
	return &Derivative{Operand: operand, Wrt: wrt}
}

func (d *Derivative) String() string {
	return "Derivative(" + d.Operand.String() + ", " + d.Wrt + ")"
}

func (d *Derivative) Equal(other Expr) bool {
	o, ok := other.(*Derivative)
	return ok && o.Wrt == d.Wrt && o.Operand.Equal(d.Operand)
}

// Replace 替换求导变量本身时先展开导数再代入，其余替换进入被求导表达式
func (d *Derivative) Replace(old, new Expr) Expr {
	if d.Equal(old) {
		return new
	}
	if s, ok := old.(*Sym); ok && s.Name == d.Wrt {
		evaluated := Doit(d)
		if HasDerivative(evaluated) {
			return d
		}
		return evaluated.Replace(old, new)
	}
	return DerivativeOf(d.Operand.Replace(old, new), d.Wrt)
}

func (d *Derivative) Diff(wrt string) Expr { return DerivativeOf(d, wrt) }

func (d *Derivative) Eval() (float64, bool) {
	evaluated := Doit(d)
	if HasDerivative(evaluated) {
		return 0, false
	}
	return evaluated.Eval()
}

func (d *Derivative) Symbols(set map[string]struct{}) { d.Operand.Symbols(set) }

// Doit 展开所有可以求值的导数
func Doit(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.Terms))
		for i, t := range v.Terms {
			terms[i] = Doit(t)
		}
		return AddOf(terms...)
	case *Mul:
		factors := make([]Expr, len(v.Factors))
		for i, f := range v.Factors {
			factors[i] = Doit(f)
		}
		return MulOf(factors...)
	case *Sin:
		return SinOf(Doit(v.Arg))
	case *Cos:
		return CosOf(Doit(v.Arg))
	case *Applied:
		return Fn(v.Name, Doit(v.Arg))
	case *Derivative:
		inner := Doit(v.Operand)
		if hasUndefined(inner, v.Wrt) {
			return DerivativeOf(inner, v.Wrt)
		}
		return Doit(inner.Diff(v.Wrt))
	}
	return e
}

// DependsOn 判断表达式是否含有符号 name
func DependsOn(e Expr, name string) bool {
	set := map[string]struct{}{}
	e.Symbols(set)
	_, ok := set[name]
	return ok
}

// Contains 判断表达式中是否存在与 target 结构相等的子表达式
func Contains(e, target Expr) bool {
	found := false
	Walk(e, func(sub Expr) bool {
		if sub.Equal(target) {
			found = true
		}
		return !found
	})
	return found
}

// HasDerivative 判断表达式中是否残留未求值导数
func HasDerivative(e Expr) bool {
	found := false
	Walk(e, func(sub Expr) bool {
		if _, ok := sub.(*Derivative); ok {
			found = true
		}
		return !found
	})
	return found
}

// Walk 先序遍历表达式树，visit 返回假时停止深入
func Walk(e Expr, visit func(Expr) bool) {
	if !visit(e) {
		return
	}
	for _, child := range children(e) {
		Walk(child, visit)
	}
}

func children(e Expr) []Expr {
	switch v := e.(type) {
	case *Add:
		return v.Terms
	case *Mul:
		return v.Factors
	case *Sin:
		return []Expr{v.Arg}
	case *Cos:
		return []Expr{v.Arg}
	case *Applied:
		return []Expr{v.Arg}
	case *Derivative:
		return []Expr{v.Operand}
	}
	return nil
}

// hasUndefined 是否存在依赖 wrt 的未定义函数
func hasUndefined(e Expr, wrt string) bool {
	found := false
	Walk(e, func(sub Expr) bool {
		if a, ok := sub.(*Applied); ok && DependsOn(a.Arg, wrt) {
			found = true
		}
		return !found
	})
	return found
}
