package recorder

import (
	"bufio"
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"time"

	"github.com/yanun0323/errors"

	"main/internal/market"
)

var (
	ErrEmptyPath    = stderrors.New("recorder: journal path is empty")
	ErrInvalidSpeed = stderrors.New("recorder: playback speed must be >= 0")
	ErrNilHandler   = stderrors.New("recorder: playback handler is nil")
)

// Clock allows deterministic playback pacing in tests.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Playback replays a journal in file order. Speed scales the recorded
// inter-event gaps; zero speed replays as fast as possible.
type Playback struct {
	path  string
	speed float64
	clock Clock
}

func NewPlayback(path string, speed float64) (*Playback, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if speed < 0 {
		return nil, ErrInvalidSpeed
	}
	return &Playback{path: path, speed: speed, clock: realClock{}}, nil
}

// WithClock swaps the pacing clock.
func (p *Playback) WithClock(clock Clock) *Playback {
	if clock != nil {
		p.clock = clock
	}
	return p
}

// Run replays every journaled event through the handler.
func (p *Playback) Run(ctx context.Context, handler func(*market.Event) error) error {
	if handler == nil {
		return ErrNilHandler
	}
	file, err := os.Open(p.path)
	if err != nil {
		return errors.Wrap(err, "open journal")
	}
	defer file.Close()

	var prevTime int64
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec eventRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return errors.Wrap(err, "decode event")
		}

		if err := p.pace(ctx, rec.Time, &prevTime); err != nil {
			return err
		}
		if err := handler(fromRecord(rec)); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "read journal")
	}
	return nil
}

func (p *Playback) pace(ctx context.Context, current int64, prev *int64) error {
	if p.speed <= 0 || current <= 0 {
		return nil
	}
	if *prev > 0 {
		if delta := current - *prev; delta > 0 {
			if err := p.clock.Sleep(ctx, time.Duration(float64(delta)/p.speed)); err != nil {
				return err
			}
		}
	}
	*prev = current
	return nil
}
