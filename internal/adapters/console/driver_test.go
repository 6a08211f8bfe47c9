package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/picquiz/internal/application"
	"github.com/bnema/picquiz/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pool = []domain.Item{
	{ID: "1", Answer: "cat", Image: "🐱"},
	{ID: "2", Answer: "dog", Image: "🐶"},
	{ID: "3", Answer: "fox"},
}

func newTestDriver(t *testing.T, items []domain.Item) (*Driver, *application.Engine, *clockwork.FakeClock, *syncBuffer) {
	t.Helper()

	engine, err := application.NewEngine(items, application.WithSelector(application.NewSelector(firstRandom{})))
	require.NoError(t, err)

	clock := clockwork.NewFakeClock()
	out := &syncBuffer{}
	driver := New(engine, out, Options{Clock: clock, TickInterval: time.Second, Logger: zerolog.Nop()})

	return driver, engine, clock, out
}

func TestDriverStartsOnEmptyLine(t *testing.T) {
	t.Parallel()

	driver, engine, _, out := newTestDriver(t, pool)

	quit, err := driver.handleLine("")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, domain.PhaseRunning, engine.Phase())
	assert.NotNil(t, driver.ticker)
	assert.Contains(t, out.String(), "[1/3] 🐱  (5s)")
}

func TestDriverCorrectAnswerAdvancesRound(t *testing.T) {
	t.Parallel()

	driver, engine, _, out := newTestDriver(t, pool)
	_, err := driver.handleLine(cmdStart)
	require.NoError(t, err)

	_, err = driver.handleLine("  Cat ")
	require.NoError(t, err)

	assert.Equal(t, 1, engine.State().RoundsCorrect)
	assert.Contains(t, out.String(), "correct!")
	assert.Contains(t, out.String(), "[2/3] 🐶  (5s)")
}

func TestDriverUsesIDWhenImageMissing(t *testing.T) {
	t.Parallel()

	driver, _, _, out := newTestDriver(t, pool)
	for _, line := range []string{"", "cat", "dog"} {
		_, err := driver.handleLine(line)
		require.NoError(t, err)
	}

	assert.Contains(t, out.String(), "[3/3] 3  (5s)")
}

func TestDriverTicksUntilTimeout(t *testing.T) {
	t.Parallel()

	driver, engine, _, out := newTestDriver(t, pool)
	_, err := driver.handleLine("")
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		require.NoError(t, driver.handleTick())
	}
	assert.Contains(t, out.String(), "time left: 1s")
	require.NotNil(t, driver.ticker)

	require.NoError(t, driver.handleTick())
	assert.Equal(t, domain.PhaseIdle, engine.Phase())
	assert.Nil(t, driver.ticker, "ticker stops when the session ends")
	assert.Contains(t, out.String(), "time is up")
	assert.Contains(t, out.String(), "Elapsed: 5s")
}

func TestDriverLateTickIsNoOp(t *testing.T) {
	t.Parallel()

	driver, engine, _, _ := newTestDriver(t, pool)
	_, err := driver.handleLine("")
	require.NoError(t, err)
	_, err = driver.handleLine(cmdEnd)
	require.NoError(t, err)

	before := engine.State()
	require.NoError(t, driver.handleTick())
	assert.Equal(t, before, engine.State())
}

func TestDriverManualEnd(t *testing.T) {
	t.Parallel()

	driver, engine, _, out := newTestDriver(t, pool)
	_, err := driver.handleLine("")
	require.NoError(t, err)

	_, err = driver.handleLine(" :end ")
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseIdle, engine.Phase())
	assert.Nil(t, driver.ticker)
	assert.Contains(t, out.String(), "stopped")
}

func TestDriverIdleCommands(t *testing.T) {
	t.Parallel()

	driver, engine, _, out := newTestDriver(t, pool)

	quit, err := driver.handleLine("hello")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, domain.PhaseIdle, engine.Phase())
	assert.Contains(t, out.String(), `type "start" or press enter`)

	quit, err = driver.handleLine(" QUIT ")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestDriverEmptyPoolFailsStart(t *testing.T) {
	t.Parallel()

	driver, _, _, _ := newTestDriver(t, nil)

	_, err := driver.handleLine("")
	require.ErrorIs(t, err, domain.ErrPoolEmpty)
	assert.Nil(t, driver.ticker)
}

func TestDriverRunWithFakeClock(t *testing.T) {
	t.Parallel()

	driver, engine, clock, out := newTestDriver(t, pool)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	inR, inW := io.Pipe()
	done := make(chan error, 1)
	go func() {
		done <- driver.Run(ctx, inR)
	}()

	_, err := io.WriteString(inW, "start\n")
	require.NoError(t, err)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(time.Second)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "time left: 4s")
	}, 5*time.Second, 10*time.Millisecond)

	_, err = io.WriteString(inW, "nope\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "wrong answer")
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, inW.Close())
	require.NoError(t, <-done)
	assert.Equal(t, domain.PhaseIdle, engine.Phase())
	assert.Contains(t, out.String(), "Answer: cat")
}

func TestDriverRunStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	driver, _, _, _ := newTestDriver(t, pool)
	ctx, cancel := context.WithCancel(context.Background())

	inR, inW := io.Pipe()
	defer inW.Close()

	done := make(chan error, 1)
	go func() {
		done <- driver.Run(ctx, inR)
	}()

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type firstRandom struct{}

func (firstRandom) IntN(int) int {
	return 0
}
