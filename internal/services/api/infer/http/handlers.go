// Package http provides http transport for inference
package http

import (
	stdhttp "net/http"
	"strconv"

	"parachute/internal/core/inference"
	"parachute/internal/modkit/httpkit"
	perr "parachute/internal/platform/errors"
	"parachute/internal/services/api/infer/domain"
	svc "parachute/internal/services/api/infer/service"
)

// Register mounts inference endpoints on the given router. maxBody caps every
// request body
func Register(r httpkit.Router, s svc.Service, maxBody int64) {
	h := &handlers{svc: s, maxBody: maxBody}
	opts := httpkit.JSONOptions{MaxBytes: maxBody, DisallowUnknown: true}

	httpkit.PostJSON(r, "/", h.infer, opts)
	httpkit.PostRaw(r, "/raw", h.raw)
	httpkit.PostJSON(r, "/batch", h.batch, opts)
}

type handlers struct {
	svc     svc.Service
	maxBody int64
}

// swagger:route POST /infer Infer inferRun
// @Summary Infer the skip point of one video
// @Tags Infer
// @Accept json
// @Produce json
// @Param payload body domain.InferInput true "Buffers and comments"
// @Success 200 {object} domain.InferOutput "ok"
// @Router /infer [post]
func (h *handlers) infer(r *stdhttp.Request, in domain.InferInput) (any, error) {
	return h.svc.Infer(r.Context(), in)
}

// swagger:route POST /infer/raw Infer inferRaw
// @Summary Infer from one binary danmaku buffer
// @Tags Infer
// @Accept octet-stream
// @Produce json
// @Param duration query int false "Video duration in seconds"
// @Param kind query string false "segment, history or view"
// @Param label query string false "Buffer label"
// @Success 200 {object} domain.InferOutput "ok"
// @Router /infer/raw [post]
func (h *handlers) raw(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()

	duration := 0
	if v := q.Get("duration"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, perr.WithField(perr.InvalidArgf("duration must be a non negative integer"), "duration")
		}
		duration = n
	}
	kind, err := inference.ParseKind(q.Get("kind"))
	if err != nil {
		return nil, perr.WithField(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid buffer kind"), "kind")
	}

	data, err := httpkit.ReadBody(r, h.maxBody)
	if err != nil {
		return nil, err
	}
	return h.svc.InferRaw(r.Context(), domain.RawInput{
		Data:            data,
		Kind:            kind,
		Label:           q.Get("label"),
		DurationSeconds: duration,
	})
}

// swagger:route POST /infer/batch Infer inferBatch
// @Summary Infer several videos concurrently
// @Tags Infer
// @Accept json
// @Produce json
// @Param payload body domain.BatchInput true "Videos"
// @Success 200 {object} domain.BatchOutput "ok"
// @Router /infer/batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	return h.svc.Batch(r.Context(), in)
}
