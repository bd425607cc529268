package messaging

import "context"

// Service renders the text lines of the console protocol
type Service interface {
	// GetTurnStartMessage returns the header printed when a player's turn begins
	GetTurnStartMessage(ctx context.Context, input *GetTurnStartMessageInput) (*GetTurnStartMessageOutput, error)

	// GetRollResultMessage returns the lines printed after a roll
	GetRollResultMessage(ctx context.Context, input *GetRollResultMessageInput) (*GetRollResultMessageOutput, error)

	// GetHoldMessage returns the line printed after a hold
	GetHoldMessage(ctx context.Context, input *GetHoldMessageInput) (*GetHoldMessageOutput, error)

	// GetWinnerMessage returns the winner announcement
	GetWinnerMessage(ctx context.Context, input *GetWinnerMessageInput) (*GetWinnerMessageOutput, error)

	// GetErrorMessage returns the message for rejected input
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
