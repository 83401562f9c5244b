/*
 * @Date: 2025-06-15 10:35:46
 * @Description: 工作池模式实现
 */
package services

import (
	"context"
	"sync"
)

// WorkerPool 固定数量worker的任务池，批量检查走这里避免请求风暴
type WorkerPool struct {
	tasks   chan func()
	wg      sync.WaitGroup
	workers int
}

// NewWorkerPool 创建指定worker数量的工作池
func NewWorkerPool(workers int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &WorkerPool{
		tasks:   make(chan func(), workers*2), // 缓冲为worker数量的两倍
		workers: workers,
	}
}

// Start 启动工作池
func (p *WorkerPool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for task := range p.tasks {
				task()
			}
		}()
	}
}

// Submit 提交任务，队列已满时返回false
func (p *WorkerPool) Submit(task func()) bool {
	select {
	case p.tasks <- task:
		return true
	default:
		return false
	}
}

// SubmitWithContext 提交任务，上下文取消或队列已满时返回false
func (p *WorkerPool) SubmitWithContext(ctx context.Context, task func()) bool {
	select {
	case <-ctx.Done():
		return false
	case p.tasks <- task:
		return true
	default:
		return false
	}
}

// Stop 停止工作池并等待在途任务完成
func (p *WorkerPool) Stop() {
	close(p.tasks)
	p.wg.Wait()
}
