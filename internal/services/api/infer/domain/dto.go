// Package domain holds DTOs for infer http and service contracts
package domain

import (
	"parachute/internal/core/inference"
	perr "parachute/internal/platform/errors"
)

// BufferInput is one binary danmaku buffer, base64 encoded
type BufferInput struct {
	Kind  string `json:"kind,omitempty" validate:"omitempty,buffer_kind" example:"history"`
	Label string `json:"label,omitempty" validate:"max=128" example:"2024-05-01"`
	Data  string `json:"data" validate:"required,base64"`
}

// CommentInput is an already decoded comment
type CommentInput struct {
	Time float64 `json:"time" validate:"gte=0" example:"12.5"`
	Text string  `json:"text" validate:"max=1000" example:"空降 1:30"`
}

// InferInput is one video's worth of danmaku
type InferInput struct {
	ID              string         `json:"id,omitempty" validate:"max=128" example:"BV1xx411c7mD"`
	DurationSeconds int            `json:"duration_seconds" validate:"gte=0" example:"600"`
	Buffers         []BufferInput  `json:"buffers,omitempty" validate:"max=512,dive"`
	Comments        []CommentInput `json:"comments,omitempty" validate:"max=200000,dive"`
}

// RawInput is a single binary buffer posted as the request body
type RawInput struct {
	Data            []byte
	Kind            inference.Kind
	Label           string
	DurationSeconds int
}

// InferOutput is the inference result tagged with the run id
type InferOutput struct {
	ID    string `json:"id,omitempty"`
	RunID string `json:"run_id"`
	inference.Result
}

// BatchInput is several independent videos
type BatchInput struct {
	Videos []InferInput `json:"videos" validate:"required,min=1,max=64,dive"`
}

// BatchItem is one video's outcome in a batch, in request order
type BatchItem struct {
	ID     string            `json:"id,omitempty"`
	RunID  string            `json:"run_id,omitempty"`
	Result *inference.Result `json:"result,omitempty"`
	Error  *perr.Wire        `json:"error,omitempty"`
}

// BatchOutput is the batch response
type BatchOutput struct {
	Items  []BatchItem `json:"items"`
	Found  int         `json:"found"`
	Failed int         `json:"failed"`
}
