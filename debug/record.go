package debug

import (
	"io"
	"slices"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// Series 一条已记录曲线的统计摘要
type Series struct {
	Title    string    `yaml:"title"`
	XLabel   string    `yaml:"x_label"`
	YLabel   string    `yaml:"y_label"`
	Severity float64   `yaml:"severity"`
	Len      int       `yaml:"len"`
	Min      float64   `yaml:"min"`
	Max      float64   `yaml:"max"`
	Mean     float64   `yaml:"mean"`
	Data     []float64 `yaml:"-"` // 原始数据，不含噪声
}

// Record 记录历史曲线，输出为 YAML 摘要
type Record struct {
	Axis Axis // 共享时间轴

	mu     sync.Mutex
	series []Series
}

// NewRecord 创建记录
func NewRecord(axis Axis) *Record { return &Record{Axis: axis} }

// Plot 记录时间曲线
func (r *Record) Plot(title, yLabel string, data []float64, severity float64) error {
	if err := r.Axis.check(title, data); err != nil {
		return err
	}
	if err := checkSeverity(severity); err != nil {
		return err
	}
	r.add(summarize(title, TimeLabel, yLabel, data, severity))
	return nil
}

// PlotCurve 记录 x-y 曲线，统计量取自 y
func (r *Record) PlotCurve(title, xLabel, yLabel string, x, y []float64) error {
	if err := checkCurve(title, x, y); err != nil {
		return err
	}
	r.add(summarize(title, xLabel, yLabel, y, 0))
	return nil
}

// Series 按标题查找曲线
func (r *Record) Series(title string) (Series, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.series {
		if s.Title == title {
			return s, true
		}
	}
	return Series{}, false
}

// Titles 按记录顺序返回标题
func (r *Record) Titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	titles := make([]string, len(r.series))
	for i, s := range r.series {
		titles[i] = s.Title
	}
	return titles
}

// Render 格式和输出内容
func (r *Record) Render(w io.Writer) error {
	r.mu.Lock()
	out := struct {
		Samples int      `yaml:"samples"`
		Series  []Series `yaml:"series"`
	}{Samples: len(r.Axis.Time), Series: slices.Clone(r.series)}
	r.mu.Unlock()
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}

func (r *Record) add(s Series) {
	r.mu.Lock()
	r.series = append(r.series, s)
	r.mu.Unlock()
}

func summarize(title, xLabel, yLabel string, data []float64, severity float64) Series {
	return Series{
		Title:    title,
		XLabel:   xLabel,
		YLabel:   yLabel,
		Severity: severity,
		Len:      len(data),
		Min:      floats.Min(data),
		Max:      floats.Max(data),
		Mean:     stat.Mean(data, nil),
		Data:     slices.Clone(data),
	}
}
