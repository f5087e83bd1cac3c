package types

import "math"

// 方程符号常量定义
const (
	TimeSymbol      = "t" // 时间变量
	ChargeSymbol    = "Q" // 电荷函数
	IntensitySymbol = "i" // 电流函数
	VoltageSymbol   = "V" // 电压源函数
)

// ReservedSymbols 方程中已占用的符号名，电容不能使用
var ReservedSymbols = []string{TimeSymbol, ChargeSymbol, IntensitySymbol, VoltageSymbol}

// 单位换算
const (
	MilliScale = 1e3  // A -> mA
	PowerScale = 1e-3 // mA*V -> W
)

// 默认参数常量定义
var (
	DefaultAmplitude   = 6000.0       // 电压源幅值 (V)
	DefaultOmega       = 910.0        // 电压源角频率 (rad/s)
	DefaultCell        = 1.347e-9     // 反应器单元电容 (F)
	DefaultBarrier     = 2.13e-9      // 介质阻挡层电容 (F)
	DefaultGap         = 3.660e-9     // 等离子间隙电容 (F)
	DefaultDuration    = 1e-2         // 仿真时长 (s)
	DefaultSampleRate  = 1e5          // 采样率 (1/s)
	LissajousPoints    = 10_000       // 李萨如曲线采样点数
	LissajousNoise     = 0.005        // 李萨如曲线横轴噪声
	LissajousAmplitude = 1.5          // 李萨如曲线默认幅值
	LissajousOmega     = 6.0          // 李萨如曲线默认角频率
	LissajousPhase     = math.Pi / 21 // 李萨如曲线默认相位差
)

// 诊断曲线噪声强度
var (
	IntensityNoise  = 8e-1 // 电流曲线
	VoltageNoise    = 1e2  // 电压曲线
	PowerNoise      = 0.0  // 功率曲线
	NoisyPowerNoise = 2.0  // 带噪声功率曲线
)
