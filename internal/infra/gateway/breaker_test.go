//go:build unit

package gateway

import (
	"errors"
	"testing"
	"time"

	"parkflow/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

var errRemote = errors.New("remote down")

func countAll(error) bool { return true }

func TestBreaker(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	b := NewBreaker(3, 30*time.Second, clk)
	fail := func() error { return errRemote }
	ok := func() error { return nil }

	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, b.Execute(fail, countAll), errRemote)
	}
	assert.NoError(t, b.Execute(ok, countAll), "success resets the count")
	for i := 0; i < 3; i++ {
		_ = b.Execute(fail, countAll)
	}
	assert.Equal(t, BreakerOpen, b.State())

	called := false
	err := b.Execute(func() error { called = true; return nil }, countAll)
	assert.ErrorIs(t, err, ErrBreakerOpen)
	assert.False(t, called)

	clk.Add(31 * time.Second)
	assert.ErrorIs(t, b.Execute(fail, countAll), errRemote, "half-open probe runs")
	assert.Equal(t, BreakerOpen, b.State(), "failed probe re-opens")

	clk.Add(31 * time.Second)
	assert.NoError(t, b.Execute(ok, countAll))
	assert.Equal(t, BreakerClosed, b.State())
}

func TestBreaker_IgnoresUncountedErrors(t *testing.T) {
	clk := clock.NewMockClock(time.Now())
	b := NewBreaker(1, time.Minute, clk)

	_ = b.Execute(func() error { return errRemote }, func(error) bool { return false })
	assert.Equal(t, BreakerClosed, b.State())
}

func TestClassifyStatus(t *testing.T) {
	assert.NoError(t, classifyStatus("charge", 201, ""))
	assert.NoError(t, classifyStatus("charge", 0, ""))
	assert.True(t, isTransient(classifyStatus("charge", 503, "")))
	assert.True(t, isTransient(classifyStatus("charge", 429, "")))
	assert.False(t, isTransient(classifyStatus("charge", 400, "")))
	assert.Equal(t, 406, parseStatusCode("406"))
	assert.Equal(t, 0, parseStatusCode("abc"))
}

func TestParseStatusCode(t *testing.T) {
	cases := map[string]int{
		"200":                     200,
		"":                        0,
		"20x":                     0,
		"-1":                      0,
		"99999999999999999999999": 0,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseStatusCode(in), "input %q", in)
	}
}
