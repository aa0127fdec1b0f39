package logging

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullLogger_ChainedOperations(t *testing.T) {
	var l Logger = NullLogger{}

	child := l.WithFields(IntField("a", 1)).WithFields(IntField("b", 2))
	child.Info("msg", ErrorField(nil))
	child.LogCheck(CheckRecord{Key: "size", Passed: true})

	_, ok := child.(NullLogger)
	assert.True(t, ok)
	assert.NoError(t, child.Close())
}

func TestNullLogger_ConcurrentAccess(t *testing.T) {
	l := NullLogger{}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			l.Debug("concurrent", IntField("n", n))
			l.LogCheck(CheckRecord{Diffs: n})
		}(i)
	}
	wg.Wait()
}
