package concurrent

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

type squareJob struct {
	n int
}

func (j squareJob) JobID() string {
	return strconv.Itoa(j.n)
}

func TestBackgroundWorker(t *testing.T) {
	bw := NewBackgroundWorker[squareJob, int](3, 10, func(job squareJob) int {
		return job.n * job.n
	})
	bw.Start()

	for i := 1; i <= 5; i++ {
		bw.TriggerProcessing(squareJob{n: i})
	}

	got := []int{}
	done := make(chan struct{})
	go func() {
		for r := range bw.Results() {
			got = append(got, r)
		}
		close(done)
	}()

	bw.Close()
	<-done

	assert.ElementsMatch(t, []int{1, 4, 9, 16, 25}, got)
}
