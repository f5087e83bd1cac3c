// Package metrics 仿真过程的 prometheus 指标
// 仿真是批处理任务，指标写入 node-exporter textfile 目录而不是通过 HTTP 暴露。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 仿真结果
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder 指标记录器，使用独立的 registry
type Recorder struct {
	registry    *prometheus.Registry
	samples     *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	simulations *prometheus.CounterVec
}

// NewRecorder 创建并注册全部指标
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reactor",
			Name:      "samples_solved_total",
			Help:      "Number of time samples solved, per quantity.",
		}, []string{"quantity"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "reactor",
			Name:      "solve_duration_seconds",
			Help:      "Time spent solving one quantity over the time axis.",
			Buckets:   prometheus.ExponentialBuckets(1e-4, 4, 10),
		}, []string{"quantity"}),
		simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reactor",
			Name:      "simulations_total",
			Help:      "Number of simulations run, per outcome.",
		}, []string{"outcome"}),
	}
	r.registry.MustRegister(r.samples, r.duration, r.simulations)
	return r
}

// ObserveSolve 记录一次求解
func (r *Recorder) ObserveSolve(quantity string, samples int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.samples.WithLabelValues(quantity).Add(float64(samples))
	r.duration.WithLabelValues(quantity).Observe(elapsed.Seconds())
}

// ObserveSimulation 记录一次仿真结果
func (r *Recorder) ObserveSimulation(err error) {
	if r == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	r.simulations.WithLabelValues(outcome).Inc()
}

// Registry 底层 registry
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteTextfile 以 textfile 格式写出全部指标
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
