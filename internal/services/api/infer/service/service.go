// Package service runs inference requests against the shared engine
package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"parachute/internal/core/inference"
	perr "parachute/internal/platform/errors"
	"parachute/internal/platform/logger"
	"parachute/internal/platform/metrics"
	pstrings "parachute/internal/platform/strings"
	"parachute/internal/services/api/infer/domain"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Service defines the service contract for inference
type Service interface{ domain.ServicePort }

// Config tunes the service
type Config struct {
	// Workers bounds how many batch videos run at once
	Workers int
}

// Svc implements Service
type Svc struct {
	Eng *inference.Engine
	Cfg Config

	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	votes    prometheus.Observer
	comments prometheus.Counter

	newID func() string
}

// New creates an inference service. reg may be nil
func New(eng *inference.Engine, cfg Config, reg *metrics.Registry) *Svc {
	if eng == nil {
		panic("infer.Service requires a non nil Engine")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if reg == nil {
		reg = metrics.New(metrics.Options{})
	}
	return &Svc{
		Eng: eng,
		Cfg: cfg,
		runs: reg.Counter("inference_runs_total",
			"Inference runs by entry point and outcome.", "source", "outcome"),
		duration: reg.Histogram("inference_run_duration_seconds",
			"Wall time of one inference run.", nil, "source"),
		votes: reg.Histogram("inference_votes",
			"Votes behind the elected skip point.", []float64{0, 1, 2, 3, 5, 10, 25, 50, 100}).WithLabelValues(),
		comments: reg.Counter("inference_comments_total",
			"Comments analyzed across all runs.").WithLabelValues(),
		newID: uuid.NewString,
	}
}

// Infer decodes the buffers, adds the plain comments and runs the engine
func (s *Svc) Infer(ctx context.Context, in domain.InferInput) (domain.InferOutput, error) {
	return s.infer(ctx, "json", in)
}

// InferRaw runs the engine over a single binary buffer
func (s *Svc) InferRaw(ctx context.Context, in domain.RawInput) (domain.InferOutput, error) {
	if in.DurationSeconds < 0 {
		return domain.InferOutput{}, perr.WithField(perr.InvalidArgf("duration must be 0 or greater"), "duration")
	}
	buf := inference.Buffer{Kind: in.Kind, Label: in.Label, Data: in.Data}
	if buf.Kind == "" {
		buf.Kind = inference.KindSegment
	}
	return s.run(ctx, "raw", "", []inference.Buffer{buf}, nil, in.DurationSeconds), nil
}

// Batch runs every video concurrently, at most Cfg.Workers at a time. A
// failing video does not fail the batch
func (s *Svc) Batch(ctx context.Context, in domain.BatchInput) (domain.BatchOutput, error) {
	out := domain.BatchOutput{Items: make([]domain.BatchItem, len(in.Videos))}

	sem := make(chan struct{}, s.Cfg.Workers)
	wg := sync.WaitGroup{}

	for i := range in.Videos {
		if err := ctx.Err(); err != nil {
			w := perr.WireFrom(perr.Wrap(err, perr.ErrorCodeTimeout, "batch cancelled"))
			out.Items[i] = domain.BatchItem{ID: in.Videos[i].ID, Error: &w}
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			v := in.Videos[i]
			res, err := s.infer(ctx, "batch", v)
			if err != nil {
				w := perr.WireFrom(err)
				out.Items[i] = domain.BatchItem{ID: v.ID, Error: &w}
				return
			}
			out.Items[i] = domain.BatchItem{ID: v.ID, RunID: res.RunID, Result: &res.Result}
		}(i)
	}
	wg.Wait()

	for _, it := range out.Items {
		switch {
		case it.Error != nil:
			out.Failed++
		case it.Result.Found():
			out.Found++
		}
	}
	return out, nil
}

func (s *Svc) infer(ctx context.Context, source string, in domain.InferInput) (domain.InferOutput, error) {
	bufs, err := decodeBuffers(in.Buffers)
	if err != nil {
		return domain.InferOutput{}, err
	}
	comments := make([]inference.Comment, len(in.Comments))
	for i, c := range in.Comments {
		comments[i] = inference.Comment{TimeSeconds: c.Time, Text: c.Text}
	}
	return s.run(ctx, source, in.ID, bufs, comments, in.DurationSeconds), nil
}

func (s *Svc) run(ctx context.Context, source, id string, bufs []inference.Buffer, comments []inference.Comment, duration int) domain.InferOutput {
	runID := s.newID()
	ctx = logger.WithRun(ctx, runID)

	start := time.Now()
	res := s.Eng.RunMixed(bufs, comments, nil, inference.Options{DurationSeconds: duration})
	elapsed := time.Since(start)

	outcome := "none"
	if res.Found() {
		outcome = "found"
	}
	s.runs.WithLabelValues(source, outcome).Inc()
	s.duration.WithLabelValues(source).Observe(elapsed.Seconds())
	s.votes.Observe(float64(res.VoteCount))
	s.comments.Add(float64(res.Stats.Comments))

	ev := logger.C(ctx).Info().
		Str("source", source).
		Str("video", pstrings.Truncate(id, 64)).
		Int("buffers", res.Stats.Buffers).
		Int("comments", res.Stats.Comments).
		Int("candidates", res.Stats.Candidates).
		Int("votes", res.VoteCount).
		Dur("elapsed", elapsed)
	if res.Found() {
		ev = ev.Str("best", res.BestLabel)
	}
	ev.Msg("inference run")

	return domain.InferOutput{ID: id, RunID: runID, Result: res}
}

func decodeBuffers(in []domain.BufferInput) ([]inference.Buffer, error) {
	out := make([]inference.Buffer, 0, len(in))
	for i, b := range in {
		kind, err := inference.ParseKind(b.Kind)
		if err != nil {
			return nil, perr.WithField(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid buffer kind"),
				fmt.Sprintf("buffers[%d].kind", i))
		}
		data, err := base64.StdEncoding.DecodeString(b.Data)
		if err != nil {
			return nil, perr.WithField(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "buffer data is not base64"),
				fmt.Sprintf("buffers[%d].data", i))
		}
		label := pstrings.FirstNonEmpty(b.Label, fmt.Sprintf("buffer-%d", i))
		out = append(out, inference.Buffer{Kind: kind, Label: label, Data: data})
	}
	return out, nil
}
