package utils

import (
	"log"
	"sync"
)

// WorkerPool 全局协程池
// 限制并发处理的请求数量，队列满时 Submit 阻塞而不是拒绝
type WorkerPool struct {
	jobs    chan func()
	workers int
	wg      sync.WaitGroup
}

var (
	GlobalWorkerPool *WorkerPool
	poolOnce         sync.Once
)

// InitGlobalWorkerPool 初始化全局协程池，只生效一次
func InitGlobalWorkerPool(workers, queueSize int) {
	poolOnce.Do(func() {
		GlobalWorkerPool = NewWorkerPool(workers, queueSize)
		GlobalWorkerPool.Start()
	})
}

func NewWorkerPool(workers, queueSize int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = workers
	}
	return &WorkerPool{
		jobs:    make(chan func(), queueSize),
		workers: workers,
	}
}

// Start 启动全部 worker
func (p *WorkerPool) Start() {
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.run()
	}
}

func (p *WorkerPool) run() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.invoke(job)
	}
}

// invoke 执行单个任务
// recover 防止单个任务 panic 拖垮 worker
func (p *WorkerPool) invoke(job func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("worker pool job panic: %v", r)
		}
	}()
	job()
}

// Submit 提交任务到协程池，队列满时阻塞等待
func (p *WorkerPool) Submit(job func()) {
	p.jobs <- job
}

// Stop 关闭队列并等待在途任务执行完
func (p *WorkerPool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// QueueDepth 当前排队任务数
func (p *WorkerPool) QueueDepth() int {
	return len(p.jobs)
}
