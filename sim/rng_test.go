package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunSeed_WorkloadUsesMasterSeed(t *testing.T) {
	direct := rand.New(rand.NewSource(42))
	workload := NewRunSeed(42).WorkloadRNG()
	for i := 0; i < 10; i++ {
		assert.Equal(t, direct.Int63(), workload.Int63())
	}
}

func TestRunSeed_StreamsAreIndependent(t *testing.T) {
	seed := NewRunSeed(7)

	// draining the workload stream must not shift the packer stream
	drained := NewRunSeed(7)
	w := drained.WorkloadRNG()
	for i := 0; i < 100; i++ {
		w.Int63()
	}
	assert.Equal(t, seed.PackerRNG().Int63(), drained.PackerRNG().Int63())

	// and the two streams of one seed differ from each other
	assert.NotEqual(t, seed.WorkloadRNG().Int63(), seed.PackerRNG().Int63())
}

func TestRunSeed_Deterministic(t *testing.T) {
	a := NewRunSeed(3).PackerRNG()
	b := NewRunSeed(3).PackerRNG()
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Int63(), b.Int63())
	}
}

func TestRunSeed_DifferentSeedsDiverge(t *testing.T) {
	a := NewRunSeed(1).PackerRNG()
	b := NewRunSeed(2).PackerRNG()

	same := true
	for i := 0; i < 4; i++ {
		if a.Int63() != b.Int63() {
			same = false
		}
	}
	assert.False(t, same)
}
