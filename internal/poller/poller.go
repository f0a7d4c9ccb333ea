// Package poller watches an asynchronous transcoding job at the hosted video
// platform until it becomes ready or a fixed attempt budget runs out. The
// platform owns the state machine; this side only observes it.
package poller

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// PlaybackID is one playback variant of a processed asset, tagged with its
// access policy ("public" or "signed").
type PlaybackID struct {
	ID     string
	Policy string
}

// AssetStatus is the observed state of a submitted job.
type AssetStatus struct {
	AssetID         string
	Ready           bool
	Errored         bool
	DurationSeconds float64
	PlaybackIDs     []PlaybackID
}

// CheckFunc resolves the current status of the watched job.
type CheckFunc func(ctx context.Context) (AssetStatus, error)

// ReadyFunc stamps the domain record once, on the transition to ready.
type ReadyFunc func(ctx context.Context, status AssetStatus, playback *PlaybackID) error

// Clock abstracts the wait between attempts so tests can run on simulated
// time. Sleep returns early with the context's error on cancellation.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Outcome is the terminal result of a poll chain. A chain that ran out of
// attempts, or whose status query failed, ends with Ready=false and a nil
// error: the asset will appear later, and the caller is not blocked on it.
type Outcome struct {
	Ready    bool
	Failed   bool
	Attempts int
	AssetID  string
	Playback *PlaybackID
}

type Poller struct {
	Interval    time.Duration
	MaxAttempts int
	Clock       Clock
	Log         logrus.FieldLogger
}

func New(interval time.Duration, maxAttempts int, log logrus.FieldLogger) *Poller {
	return &Poller{
		Interval:    interval,
		MaxAttempts: maxAttempts,
		Clock:       realClock{},
		Log:         log,
	}
}

// Poll waits one interval, queries the job status, and repeats until the job
// is ready or MaxAttempts queries have been issued. onReady runs at most
// once, on the transition to ready, with the selected playback variant.
//
// A failed status query ends the chain the same way as budget exhaustion:
// a non-error "still processing" outcome. Only context cancellation and a
// failed onReady write surface as errors.
func (p *Poller) Poll(ctx context.Context, check CheckFunc, onReady ReadyFunc) (Outcome, error) {
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := p.Clock.Sleep(ctx, p.Interval); err != nil {
			return Outcome{Attempts: attempt - 1}, err
		}

		status, err := check(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return Outcome{Attempts: attempt}, ctx.Err()
			}
			p.Log.WithError(err).WithField("attempt", attempt).Warn("asset status query failed, giving up politely")
			return Outcome{Attempts: attempt}, nil
		}

		if status.Errored {
			return Outcome{Failed: true, Attempts: attempt, AssetID: status.AssetID}, nil
		}

		if status.Ready {
			playback := ChoosePlayback(status.PlaybackIDs)
			if onReady != nil {
				if err := onReady(ctx, status, playback); err != nil {
					return Outcome{Ready: true, Attempts: attempt, AssetID: status.AssetID, Playback: playback}, err
				}
			}
			return Outcome{Ready: true, Attempts: attempt, AssetID: status.AssetID, Playback: playback}, nil
		}
	}

	p.Log.WithField("attempts", p.MaxAttempts).Info("asset still processing after attempt budget, stopping")
	return Outcome{Attempts: p.MaxAttempts}, nil
}

// ChoosePlayback picks the variant tagged "public" when present, otherwise
// the first variant, otherwise nil.
func ChoosePlayback(ids []PlaybackID) *PlaybackID {
	for i := range ids {
		if ids[i].Policy == "public" {
			return &ids[i]
		}
	}
	if len(ids) > 0 {
		return &ids[0]
	}
	return nil
}
