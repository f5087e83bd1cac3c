package symbolic

import "fmt"

// SolveSeries 依次将 wrt 代入每个时间点并对 fn(t_k) 求解
// 输出与输入一一对应且保持输入顺序，任一点求解失败即返回错误。
func SolveSeries(eq Equation, fn string, wrt *Sym, times []float64) ([]float64, error) {
	out := make([]float64, len(times))
	for i, t := range times {
		at := N(t)
		root, err := SolveOne(eq.Replace(wrt, at), Fn(fn, at))
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", wrt.Name, t, err)
		}
		out[i] = root
	}
	return out, nil
}
