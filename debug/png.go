package debug

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// PNG 每条曲线写入 <Dir>/<title>.png
type PNG struct {
	Dir   string    // 输出目录
	Axis  Axis      // 共享时间轴
	Noise *Noise    // 噪声发生器
	Width vg.Length // 图片宽度
	High  vg.Length // 图片高度
	DPI   int       // 分辨率
}

// NewPNG 创建 PNG 输出
func NewPNG(dir string, axis Axis, noise *Noise) *PNG {
	return &PNG{
		Dir:   dir,
		Axis:  axis,
		Noise: noise,
		Width: 8 * vg.Inch,
		High:  6 * vg.Inch,
		DPI:   96,
	}
}

// Plot 时间曲线，横轴为毫秒
func (p *PNG) Plot(title, yLabel string, data []float64, severity float64) error {
	if err := p.Axis.check(title, data); err != nil {
		return err
	}
	ys, err := p.Axis.noisy(p.Noise, data, severity)
	if err != nil {
		return err
	}
	return p.save(title, TimeLabel, yLabel, p.Axis.Millis(), ys)
}

// PlotCurve x-y 曲线
func (p *PNG) PlotCurve(title, xLabel, yLabel string, x, y []float64) error {
	if err := checkCurve(title, x, y); err != nil {
		return err
	}
	return p.save(title, xLabel, yLabel, x, y)
}

// Path 标题对应的图片路径
func (p *PNG) Path(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, title)
	return filepath.Join(p.Dir, name+".png")
}

func (p *PNG) save(title, xLabel, yLabel string, xs, ys []float64) error {
	plt := plot.New()
	plt.Title.Text = title
	plt.X.Label.Text = xLabel
	plt.Y.Label.Text = yLabel
	stylePlot(plt)
	plt.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("%s: %w", title, err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	plt.Add(line)
	return p.write(plt, p.Path(title))
}

func (p *PNG) write(plt *plot.Plot, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}
	c := vgimg.NewWith(
		vgimg.UseWH(p.Width, p.High),
		vgimg.UseDPI(p.DPI),
	)
	plt.Draw(draw.New(c))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("创建图片失败: %w", err)
	}
	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		f.Close()
		return fmt.Errorf("写入图片失败: %w", err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("写入图片失败: %w", err)
	}
	return f.Close()
}

// limitedTicker 固定数量的刻度
func limitedTicker(maxLabels int, labelFmt string) plot.Ticker {
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return nil
		}
		if min == max {
			return []plot.Tick{{Value: min, Label: fmt.Sprintf(labelFmt, min)}}
		}
		step := (max - min) / float64(maxLabels-1)
		ticks := make([]plot.Tick, 0, maxLabels)
		for i := 0; i < maxLabels; i++ {
			v := min + float64(i)*step
			ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf(labelFmt, v)})
		}
		return ticks
	})
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(8)
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.X.Tick.Marker = limitedTicker(11, "%.3g")
	p.Y.Tick.Marker = limitedTicker(9, "%.3g")
}
