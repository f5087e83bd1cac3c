package symbolic

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplify(t *testing.T) {
	x := S("x")
	// 常数合并与零项、单位因子
	assert.True(t, AddOf(N(1), N(2)).Equal(N(3)))
	assert.True(t, AddOf(x, N(0)).Equal(x))
	assert.True(t, MulOf(N(1), x).Equal(x))
	assert.True(t, MulOf(N(0), x).Equal(N(0)))
	assert.True(t, MulOf(N(2), MulOf(N(3), x)).Equal(MulOf(N(6), x)))
	assert.Equal(t, "6*x", MulOf(N(2), N(3), x).String())
	assert.Equal(t, "-sin(x)", Neg(SinOf(x)).String())
	assert.True(t, SinOf(N(0)).Equal(N(0)))
	assert.True(t, CosOf(N(0)).Equal(N(1)))
}

func TestDiff(t *testing.T) {
	tt := S("t")
	// d/dt 6000*sin(910*t) = 5460000*cos(910*t)
	v := MulOf(N(6000), SinOf(MulOf(N(910), tt)))
	d := v.Diff("t")
	assert.True(t, d.Equal(MulOf(N(6000*910), CosOf(MulOf(N(910), tt)))), d.String())
	// d/dt cos(t) = -sin(t)
	assert.True(t, CosOf(tt).Diff("t").Equal(Neg(SinOf(tt))))
	// 不依赖 t 的符号导数为零
	assert.True(t, S("C").Diff("t").Equal(N(0)))
	// 未定义函数导数保持未求值
	q := Fn("Q", tt)
	assert.True(t, q.Diff("t").Equal(DerivativeOf(q, "t")))
	assert.True(t, Fn("Q", N(1)).Diff("t").Equal(N(0)))
}

func TestDerivativeSubstitution(t *testing.T) {
	tt := S("t")
	q := Fn("Q", tt)
	v := Fn("V", tt)
	c := S("C_cell")
	eq := Eq(Fn("i", tt), DerivativeOf(q, "t"))

	// 未定义函数存在时导数无法展开
	assert.True(t, HasDerivative(Doit(eq.RHS)))
	_, ok := eq.RHS.Eval()
	assert.False(t, ok)

	eq = eq.Replace(q, MulOf(v, c))
	assert.True(t, eq.Contains(v))
	eq = eq.Replace(v, MulOf(N(6000), SinOf(MulOf(N(910), tt))))
	eq = eq.Replace(c, N(1.347e-9))
	eq = eq.Doit()
	assert.False(t, HasDerivative(eq.RHS))
	assert.Equal(t, []string{"i", "t"}, eq.Symbols())

	got, ok := eq.RHS.Replace(tt, N(0)).Eval()
	require.True(t, ok)
	assert.InDelta(t, 6000*910*1.347e-9, got, 1e-15)
}

func TestDerivativeReplaceVariable(t *testing.T) {
	tt := S("t")
	d := DerivativeOf(MulOf(N(2), SinOf(tt)), "t")
	// 代入求导变量时先求导再代入
	got, ok := d.Replace(tt, N(math.Pi)).Eval()
	require.True(t, ok)
	assert.InDelta(t, -2, got, 1e-12)
	// 无法展开的导数不被代入
	u := DerivativeOf(Fn("Q", tt), "t")
	assert.True(t, u.Replace(tt, N(1)).Equal(u))
}

func TestSolve(t *testing.T) {
	x := Fn("V", N(0.5))
	// V(0.5) = 3*sin(0.5)
	roots, err := Solve(Eq(x, MulOf(N(3), SinOf(N(0.5)))), x)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.InDelta(t, 3*math.Sin(0.5), roots[0], 1e-12)

	// 2*x + 4 = 0
	y := S("y")
	root, err := SolveOne(Eq(AddOf(MulOf(N(2), y), N(4)), N(0)), y)
	require.NoError(t, err)
	assert.InDelta(t, -2, root, 1e-12)
}

func TestSolveErrors(t *testing.T) {
	x := S("x")
	tests := []struct {
		name string
		eq   Equation
		want error
	}{
		{"无解", Eq(N(1), N(2)), ErrNoSolution},
		{"恒等式", Eq(MulOf(N(2), x), MulOf(N(2), x)), ErrMultipleSolutions},
		{"非线性", Eq(SinOf(x), N(0.5)), ErrNonLinear},
		{"残留符号", Eq(x, S("C")), ErrNotNumeric},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Solve(tc.eq, x)
			if !errors.Is(err, tc.want) {
				t.Errorf("错误类型不正确: 期望 %v, 实际 %v", tc.want, err)
			}
		})
	}
}

func TestSolveSeries(t *testing.T) {
	tt := S("t")
	eq := Eq(Fn("V", tt), MulOf(N(2), CosOf(tt)))
	times := []float64{1, 0, 0.5}
	got, err := SolveSeries(eq, "V", tt, times)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, x := range times {
		assert.InDelta(t, 2*math.Cos(x), got[i], 1e-12)
	}

	bad := Eq(Fn("V", tt), MulOf(S("C"), tt))
	_, err = SolveSeries(bad, "V", tt, times)
	assert.True(t, errors.Is(err, ErrNotNumeric), err)
}
