package game

import "context"

// Service plays one game session
type Service interface {
	// Play runs turns until the game ends and reports how it ended
	Play(ctx context.Context) (*PlayOutput, error)
}

// Prompter writes a prompt and blocks for one line of input
type Prompter interface {
	Prompt(ctx context.Context, message string) (string, error)
}
