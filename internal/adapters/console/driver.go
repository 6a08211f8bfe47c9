// Package console drives a quiz session over plain line-oriented input and
// output. A single loop serializes input lines and ticker ticks so the engine
// only ever sees one call at a time.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/picquiz/internal/adapters/render/summary"
	"github.com/bnema/picquiz/internal/application"
	"github.com/bnema/picquiz/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

const (
	defaultTickInterval = time.Second

	cmdStart = "start"
	cmdQuit  = "quit"
	cmdEnd   = ":end"
)

type Options struct {
	TickInterval time.Duration
	Clock        clockwork.Clock
	Logger       zerolog.Logger
}

type Driver struct {
	engine   *application.Engine
	out      io.Writer
	clock    clockwork.Clock
	interval time.Duration
	logger   zerolog.Logger
	ticker   clockwork.Ticker
}

func New(engine *application.Engine, out io.Writer, opts Options) *Driver {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	return &Driver{
		engine:   engine,
		out:      out,
		clock:    opts.Clock,
		interval: opts.TickInterval,
		logger:   opts.Logger,
	}
}

// Run reads commands and answers from in until quit, EOF or ctx is done.
func (d *Driver) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	readDone := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readDone <- scanner.Err()
	}()

	defer d.stopTicker()

	if err := d.printIdle(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line := <-lines:
			quit, err := d.handleLine(line)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		case <-d.tickChan():
			if err := d.handleTick(); err != nil {
				return err
			}
		case err := <-readDone:
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return nil
		}
	}
}

func (d *Driver) handleLine(line string) (bool, error) {
	trimmed := strings.TrimSpace(line)

	if d.engine.Phase() != domain.PhaseRunning {
		switch strings.ToLower(trimmed) {
		case cmdQuit:
			return true, nil
		case "", cmdStart:
			return false, d.start()
		default:
			return false, d.printf("type %q or press enter to play, %q to leave\n", cmdStart, cmdQuit)
		}
	}

	if trimmed == cmdEnd {
		result, err := d.engine.End()
		if err != nil {
			return false, nil
		}
		return false, d.finish(result)
	}

	outcome, err := d.engine.Submit(line)
	if err != nil {
		d.logger.Debug().Err(err).Msg("answer ignored")
		return false, nil
	}
	if outcome.Ended {
		return false, d.finish(outcome.Summary)
	}

	if d.ticker != nil {
		d.ticker.Reset(d.interval)
	}
	if err := d.printf("correct!\n"); err != nil {
		return false, err
	}
	return false, d.printRound()
}

func (d *Driver) handleTick() error {
	outcome, err := d.engine.Tick()
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			d.stopTicker()
			return nil
		}
		return err
	}
	if outcome.Ended {
		return d.finish(outcome.Summary)
	}

	return d.printf("time left: %ds\n", d.engine.State().RemainingSeconds)
}

func (d *Driver) start() error {
	if _, err := d.engine.Start(); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	d.stopTicker()
	d.ticker = d.clock.NewTicker(d.interval)

	return d.printRound()
}

func (d *Driver) finish(result domain.Summary) error {
	d.stopTicker()

	rendered, err := summary.Render(result, summary.RenderOptions{})
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	if err := d.printf("%s\n", rendered); err != nil {
		return err
	}

	return d.printIdle()
}

func (d *Driver) tickChan() <-chan time.Time {
	if d.ticker == nil {
		return nil
	}
	return d.ticker.Chan()
}

func (d *Driver) stopTicker() {
	if d.ticker == nil {
		return
	}
	d.ticker.Stop()
	d.ticker = nil
}

func (d *Driver) printRound() error {
	state := d.engine.State()
	image := "?"
	if state.CurrentItem != nil {
		image = state.CurrentItem.Image
		if strings.TrimSpace(image) == "" {
			image = string(state.CurrentItem.ID)
		}
	}

	return d.printf("[%d/%d] %s  (%ds)\n", state.RoundsCorrect+1, d.engine.PoolSize(), image, state.RemainingSeconds)
}

func (d *Driver) printIdle() error {
	state := d.engine.State()
	return d.printf("best: %d  previous: %d  -- press enter to start, %q to leave\n", state.MaxRoundsCorrect, state.PreviousRoundsCorrect, cmdQuit)
}

func (d *Driver) printf(format string, args ...any) error {
	if _, err := fmt.Fprintf(d.out, format, args...); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
