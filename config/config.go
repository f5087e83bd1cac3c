// Package config 仿真参数
// 优先级: 命令行 > 环境变量 (REACTOR_ 前缀) > 配置文件 > 默认值。
package config

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/AdrianaBogosel/PlasmaReactorSimulation/maths"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/types"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "REACTOR"

// ErrInvalid 配置无效
var ErrInvalid = errors.New("config: 配置无效")

// Config 全部仿真参数
type Config struct {
	Voltage    Voltage    `mapstructure:"voltage" yaml:"voltage"`
	Capacitors Capacitors `mapstructure:"capacitors" yaml:"capacitors"`
	Simulation Simulation `mapstructure:"simulation" yaml:"simulation"`
	Output     Output     `mapstructure:"output" yaml:"output"`
	Log        Log        `mapstructure:"log" yaml:"log"`
	Noise      Noise      `mapstructure:"noise" yaml:"noise"`
}

// Voltage 电压源
type Voltage struct {
	Amplitude float64 `mapstructure:"amplitude" yaml:"amplitude"` // 幅值 (V)
	Frequency float64 `mapstructure:"frequency" yaml:"frequency"` // 角频率 (rad/s)
}

// Capacitor 单个电容
type Capacitor struct {
	Value  float64 `mapstructure:"value" yaml:"value"`   // 电容值 (F)
	Symbol string  `mapstructure:"symbol" yaml:"symbol"` // 方程符号
}

// Capacitors 反应器电容
type Capacitors struct {
	Cell    Capacitor `mapstructure:"cell" yaml:"cell"`
	Barrier Capacitor `mapstructure:"barrier" yaml:"barrier"`
	Gap     Capacitor `mapstructure:"gap" yaml:"gap"`
}

// Simulation 时间窗口
type Simulation struct {
	Duration   float64 `mapstructure:"duration" yaml:"duration"`       // 时长 (s)
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"` // 采样率 (1/s)
}

// Output 输出位置，空字符串表示不输出
type Output struct {
	Dir     string `mapstructure:"dir" yaml:"dir"`         // PNG 目录
	Charts  string `mapstructure:"charts" yaml:"charts"`   // HTML 图表页
	Summary string `mapstructure:"summary" yaml:"summary"` // YAML 摘要
	Metrics string `mapstructure:"metrics" yaml:"metrics"` // prometheus textfile
}

// Log 日志
type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Noise 诊断曲线噪声
type Noise struct {
	Seed uint64 `mapstructure:"seed" yaml:"seed"`
}

// Default 默认参数
func Default() Config {
	return Config{
		Voltage: Voltage{Amplitude: types.DefaultAmplitude, Frequency: types.DefaultOmega},
		Capacitors: Capacitors{
			Cell:    Capacitor{Value: types.DefaultCell, Symbol: "C_cell"},
			Barrier: Capacitor{Value: types.DefaultBarrier, Symbol: "C_barrier"},
			Gap:     Capacitor{Value: types.DefaultGap, Symbol: "C_gap"},
		},
		Simulation: Simulation{Duration: types.DefaultDuration, SampleRate: types.DefaultSampleRate},
		Output:     Output{Dir: "plots"},
		Log:        Log{Level: "info", File: "simulation.log"},
		Noise:      Noise{Seed: 1},
	}
}

// Validate 校验参数
func (c *Config) Validate() error {
	if !finite(c.Voltage.Amplitude) || c.Voltage.Amplitude == 0 {
		return fmt.Errorf("%w: voltage.amplitude 必须为非零有限实数, 实际 %v", ErrInvalid, c.Voltage.Amplitude)
	}
	if !positive(c.Voltage.Frequency) {
		return fmt.Errorf("%w: voltage.frequency 必须为正, 实际 %v", ErrInvalid, c.Voltage.Frequency)
	}
	seen := map[string]string{}
	for name, capacitor := range map[string]Capacitor{
		"cell":    c.Capacitors.Cell,
		"barrier": c.Capacitors.Barrier,
		"gap":     c.Capacitors.Gap,
	} {
		if !positive(capacitor.Value) {
			return fmt.Errorf("%w: capacitors.%s.value 必须为正, 实际 %v", ErrInvalid, name, capacitor.Value)
		}
		if capacitor.Symbol == "" {
			return fmt.Errorf("%w: capacitors.%s.symbol 为空", ErrInvalid, name)
		}
		if slices.Contains(types.ReservedSymbols, capacitor.Symbol) {
			return fmt.Errorf("%w: capacitors.%s.symbol %q 与方程符号冲突", ErrInvalid, name, capacitor.Symbol)
		}
		if other, ok := seen[capacitor.Symbol]; ok {
			return fmt.Errorf("%w: capacitors.%s 与 capacitors.%s 符号相同 %q", ErrInvalid, name, other, capacitor.Symbol)
		}
		seen[capacitor.Symbol] = name
	}
	if !positive(c.Simulation.Duration) {
		return fmt.Errorf("%w: simulation.duration 必须为正, 实际 %v", ErrInvalid, c.Simulation.Duration)
	}
	if !positive(c.Simulation.SampleRate) {
		return fmt.Errorf("%w: simulation.sample_rate 必须为正, 实际 %v", ErrInvalid, c.Simulation.SampleRate)
	}
	if _, err := maths.SampleCount(c.Simulation.Duration, c.Simulation.SampleRate); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// YAML 以 YAML 输出当前配置
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Flags 在 fs 上注册全部参数
func Flags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("config", "", "配置文件 (yaml)")
	fs.Float64("voltage.amplitude", d.Voltage.Amplitude, "电压源幅值 (V)")
	fs.Float64("voltage.frequency", d.Voltage.Frequency, "电压源角频率 (rad/s)")
	fs.Float64("capacitors.cell.value", d.Capacitors.Cell.Value, "反应器单元电容 (F)")
	fs.String("capacitors.cell.symbol", d.Capacitors.Cell.Symbol, "反应器单元电容符号")
	fs.Float64("capacitors.barrier.value", d.Capacitors.Barrier.Value, "介质阻挡层电容 (F)")
	fs.String("capacitors.barrier.symbol", d.Capacitors.Barrier.Symbol, "介质阻挡层电容符号")
	fs.Float64("capacitors.gap.value", d.Capacitors.Gap.Value, "等离子间隙电容 (F)")
	fs.String("capacitors.gap.symbol", d.Capacitors.Gap.Symbol, "等离子间隙电容符号")
	fs.Float64("simulation.duration", d.Simulation.Duration, "仿真时长 (s)")
	fs.Float64("simulation.sample_rate", d.Simulation.SampleRate, "采样率 (1/s)")
	fs.String("output.dir", d.Output.Dir, "PNG 输出目录")
	fs.String("output.charts", d.Output.Charts, "HTML 图表页路径")
	fs.String("output.summary", d.Output.Summary, "YAML 摘要路径")
	fs.String("output.metrics", d.Output.Metrics, "prometheus textfile 路径")
	fs.String("log.level", d.Log.Level, "日志级别")
	fs.String("log.file", d.Log.File, "日志文件")
	fs.Uint64("noise.seed", d.Noise.Seed, "噪声随机种子")
}

// Load 解析命令行、环境变量和配置文件
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	if fs.Lookup("config") == nil {
		Flags(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if file, _ := fs.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件 %s 失败: %w", file, err)
		}
	}
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func positive(v float64) bool { return v > 0 && finite(v) }
