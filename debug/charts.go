package debug

import (
	"io"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Charts 曲线绘制，所有曲线汇总到同一个 HTML 页面
type Charts struct {
	Axis  Axis   // 共享时间轴
	Noise *Noise // 噪声发生器

	mu     sync.Mutex
	charts []components.Charter
}

// NewCharts 创建 HTML 图表输出
func NewCharts(axis Axis, noise *Noise) *Charts {
	return &Charts{Axis: axis, Noise: noise}
}

// Plot 时间曲线
func (c *Charts) Plot(title, yLabel string, data []float64, severity float64) error {
	if err := c.Axis.check(title, data); err != nil {
		return err
	}
	ys, err := c.Axis.noisy(c.Noise, data, severity)
	if err != nil {
		return err
	}
	items := make([]opts.LineData, len(ys))
	for i, v := range ys {
		items[i] = opts.LineData{Value: v}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: yLabel,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:        TimeLabel,
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  yLabel,
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithAnimation(false),
	)
	line.SetXAxis(c.Axis.Millis()).AddSeries(title, items)
	c.add(line)
	return nil
}

// PlotCurve x-y 曲线，以数值横轴的散点绘制
func (c *Charts) PlotCurve(title, xLabel, yLabel string, x, y []float64) error {
	if err := checkCurve(title, x, y); err != nil {
		return err
	}
	items := make([]opts.ScatterData, len(x))
	for i := range x {
		items[i] = opts.ScatterData{Value: []float64{x[i], y[i]}, SymbolSize: 2}
	}
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:  xLabel,
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  yLabel,
			Scale: opts.Bool(true),
		}),
		charts.WithAnimation(false),
	)
	scatter.AddSeries(title, items)
	c.add(scatter)
	return nil
}

// Len 已记录的图表数量
func (c *Charts) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.charts)
}

// Render 格式化
func (c *Charts) Render(w io.Writer) error {
	c.mu.Lock()
	list := append([]components.Charter(nil), c.charts...)
	c.mu.Unlock()
	page := components.NewPage()
	page.SetPageTitle("DBD Reactor")
	page.AddCharts(list...)
	return page.Render(w)
}

func (c *Charts) add(chart components.Charter) {
	c.mu.Lock()
	c.charts = append(c.charts, chart)
	c.mu.Unlock()
}
