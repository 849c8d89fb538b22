package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPct(t *testing.T) {
	vs := []time.Duration{5, 1, 4, 2, 3}
	assert.Equal(t, time.Duration(3), pct(vs, 0.50))
	assert.Equal(t, time.Duration(5), pct(vs, 0.99))
	assert.Equal(t, time.Duration(1), pct(vs, 0))
	assert.Zero(t, pct(nil, 0.5))
	assert.Equal(t, time.Duration(5), vs[0], "input is not reordered")
}

func TestEnvInt(t *testing.T) {
	t.Setenv("BENCH_N", "42")
	assert.Equal(t, 42, envInt("BENCH_N", 7))
	t.Setenv("BENCH_N", "-1")
	assert.Equal(t, 7, envInt("BENCH_N", 7))
	assert.Equal(t, 7, envInt("BENCH_UNSET", 7))
}
