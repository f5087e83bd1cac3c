package maths

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// 时间轴与逐点运算错误
var (
	ErrInvalidWindow = errors.New("maths: 仿真时长和采样率必须为正有限实数")
	ErrNoSamples     = errors.New("maths: 采样点数为 0")
	ErrLength        = errors.New("maths: 序列长度不一致")
)

// sampleEpsilon 截断前允许的相对浮点误差
const sampleEpsilon = 1e-9

// SampleCount 时间窗口内的采样点数 floor(duration*sampleRate)
func SampleCount(duration, sampleRate float64) (int, error) {
	if !positive(duration) || !positive(sampleRate) {
		return 0, fmt.Errorf("%w: duration=%v rate=%v", ErrInvalidWindow, duration, sampleRate)
	}
	x := duration * sampleRate
	n := math.Floor(x + sampleEpsilon*math.Max(1, x))
	if n < 1 {
		return 0, fmt.Errorf("%w: duration=%v rate=%v", ErrNoSamples, duration, sampleRate)
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: 采样点数 %v 过大", ErrInvalidWindow, n)
	}
	return int(n), nil
}

// TimeAxis 生成 [0, duration) 上的等间距时间点
// 第 k 个点为 k*duration/n，不包含终点。
func TimeAxis(duration, sampleRate float64) ([]float64, error) {
	n, err := SampleCount(duration, sampleRate)
	if err != nil {
		return nil, err
	}
	step := duration / float64(n)
	times := make([]float64, n)
	for k := range times {
		times[k] = float64(k) * step
	}
	return times, nil
}

// MulElem 逐点相乘后整体缩放 scale*a[i]*b[i]，输入不会被修改
func MulElem(a, b []float64, scale float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLength, len(a), len(b))
	}
	if len(a) == 0 {
		return nil, fmt.Errorf("%w: 空序列", ErrLength)
	}
	va := mat.NewVecDense(len(a), append([]float64(nil), a...))
	vb := mat.NewVecDense(len(b), append([]float64(nil), b...))
	out := mat.NewVecDense(len(a), nil)
	out.MulElemVec(va, vb)
	out.ScaleVec(scale, out)
	return out.RawVector().Data, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
