package model

import "context"

// BotVerifier validates a human verification token.
type BotVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}
