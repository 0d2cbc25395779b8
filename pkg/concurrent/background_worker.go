package concurrent

import "sync"

type JobI interface {
	JobID() string
}

type JobFunc[T JobI, G any] func(job T) G

// BackgroundWorker runs jobFunc for every triggered job on a fixed number of goroutines and publishes the
// results on Results(). the results channel is closed by Close once every worker has returned.
type BackgroundWorker[T JobI, G any] struct {
	workers   int
	msgC      chan T
	resultC   chan G
	waitGroup sync.WaitGroup
	jobFunc   JobFunc[T, G]
}

func NewBackgroundWorker[T JobI, G any](workers, buffer int, jobFunc JobFunc[T, G]) *BackgroundWorker[T, G] {
	if workers < 1 {
		workers = 1
	}
	return &BackgroundWorker[T, G]{
		workers: workers,
		msgC:    make(chan T, buffer),
		resultC: make(chan G, buffer),
		jobFunc: jobFunc,
	}
}

func (bw *BackgroundWorker[T, G]) TriggerProcessing(jobData T) {
	bw.msgC <- jobData
}

func (bw *BackgroundWorker[T, G]) Results() <-chan G {
	return bw.resultC
}

func (bw *BackgroundWorker[T, G]) Start() {

	bw.waitGroup.Add(bw.workers)
	for i := 0; i < bw.workers; i++ {
		go func() {
			defer bw.waitGroup.Done()
			for jobData := range bw.msgC {
				// process
				bw.resultC <- bw.jobFunc(jobData)
			}
		}()
	}
}

// Close stops accepting jobs, waits for the queued ones and closes Results(). the results channel must keep
// being drained until it is closed.
func (bw *BackgroundWorker[T, G]) Close() {
	close(bw.msgC)
	bw.waitGroup.Wait()
	close(bw.resultC)
}
