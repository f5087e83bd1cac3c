package utils

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrNoJobs 没有待执行的任务
var ErrNoJobs = errors.New("utils: 没有待执行的任务")

// Job 调度任务
type Job struct {
	Name string                          // 任务名，出错时附加在错误前
	Run  func(ctx context.Context) error // 任务函数
}

// Scheduler 并发任务调度
// @ Schedule 只登记任务，Run 同时启动所有任务并等待全部结束.
// @ 任一任务出错时取消共享的 context，返回第一个错误.
// @ Run 结束后任务列表被清空，调度器可以再次使用.
type Scheduler struct {
	mu   sync.Mutex
	jobs []Job
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler { return &Scheduler{} }

// Schedule 登记任务
func (s *Scheduler) Schedule(name string, run func() error) {
	s.ScheduleContext(name, func(context.Context) error { return run() })
}

// ScheduleContext 登记可感知取消的任务
func (s *Scheduler) ScheduleContext(name string, run func(ctx context.Context) error) {
	s.mu.Lock()
	s.jobs = append(s.jobs, Job{Name: name, Run: run})
	s.mu.Unlock()
}

// Len 待执行任务数
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Run 执行全部任务
func (s *Scheduler) Run() error { return s.RunContext(context.Background()) }

// RunContext 在给定 context 下执行全部任务
func (s *Scheduler) RunContext(ctx context.Context) error {
	s.mu.Lock()
	jobs := s.jobs
	s.jobs = nil
	s.mu.Unlock()
	if len(jobs) == 0 {
		return ErrNoJobs
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			if err := job.Run(ctx); err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
