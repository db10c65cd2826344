package domain

import "context"

// ServicePort defines the service contract for inference
type ServicePort interface {
	Infer(ctx context.Context, in InferInput) (InferOutput, error)
	InferRaw(ctx context.Context, in RawInput) (InferOutput, error)
	Batch(ctx context.Context, in BatchInput) (BatchOutput, error)
}
