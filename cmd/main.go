package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/spf13/pflag"

	reactor "github.com/AdrianaBogosel/PlasmaReactorSimulation"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/config"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/debug"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/element"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/logging"
	"github.com/AdrianaBogosel/PlasmaReactorSimulation/metrics"
)

func main() {
	fs := pflag.NewFlagSet(filepath.Base(os.Args[0]), pflag.ExitOnError)
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, sync, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File, Color: true})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	err = run(log, cfg)
	if err != nil {
		log.Error(err, "仿真中止")
	}
	_ = sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(log logr.Logger, cfg *config.Config) error {
	if text, err := cfg.YAML(); err == nil {
		log.V(logging.DEBUG).Info("配置", "config", text)
	}
	cell, err := element.NewCapacitor(cfg.Capacitors.Cell.Value, cfg.Capacitors.Cell.Symbol)
	if err != nil {
		return err
	}
	barrier, err := element.NewCapacitor(cfg.Capacitors.Barrier.Value, cfg.Capacitors.Barrier.Symbol)
	if err != nil {
		return err
	}
	gap, err := element.NewCapacitor(cfg.Capacitors.Gap.Value, cfg.Capacitors.Gap.Symbol)
	if err != nil {
		return err
	}
	vs, err := element.NewVoltageSource(log, cfg.Voltage.Amplitude, cfg.Voltage.Frequency)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	noise := debug.NewNoise(cfg.Noise.Seed)
	r, err := reactor.New(log, cell, barrier, gap, vs,
		reactor.WithRunID(uuid.NewString()),
		reactor.WithMetrics(recorder),
		reactor.WithNoise(noise),
	)
	if err != nil {
		return err
	}

	axis, err := debug.NewAxis(cfg.Simulation.Duration, cfg.Simulation.SampleRate)
	if err != nil {
		return err
	}
	var (
		charts *debug.Charts
		record *debug.Record
		sinks  []debug.Sink
	)
	if cfg.Output.Dir != "" {
		sinks = append(sinks, debug.NewPNG(cfg.Output.Dir, axis, noise))
	}
	if cfg.Output.Charts != "" {
		charts = debug.NewCharts(axis, noise)
		sinks = append(sinks, charts)
	}
	if cfg.Output.Summary != "" {
		record = debug.NewRecord(axis)
		sinks = append(sinks, record)
	}

	var res *reactor.Result
	if len(sinks) == 0 {
		res, err = r.Simulate(cfg.Simulation.Duration, cfg.Simulation.SampleRate)
	} else {
		res, err = r.SimulateWithPlots(cfg.Simulation.Duration, cfg.Simulation.SampleRate, debug.NewMulti(sinks...))
	}
	if cfg.Output.Metrics != "" {
		if werr := recorder.WriteTextfile(cfg.Output.Metrics); werr != nil {
			log.Error(werr, "写入指标失败", "path", cfg.Output.Metrics)
		}
	}
	if err != nil {
		return err
	}
	if charts != nil {
		if err := writeFile(cfg.Output.Charts, charts.Render); err != nil {
			return err
		}
	}
	if record != nil {
		if err := writeFile(cfg.Output.Summary, record.Render); err != nil {
			return err
		}
	}
	log.Info("Simulation completed.", "run", res.RunID, "samples", len(res.Time), "elapsed", res.Elapsed.String())
	return nil
}

func writeFile(path string, render func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return f.Close()
}
