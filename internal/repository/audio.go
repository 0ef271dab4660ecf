package repository

import "context"

// AudioCache stores synthesized speech by key.
type AudioCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, audio []byte) error
}
