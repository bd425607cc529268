package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// service implements the Service interface
type service struct{}

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct{}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	return &service{}, nil
}

// GetTurnStartMessage returns the header printed when a player's turn begins
func (s *service) GetTurnStartMessage(ctx context.Context, input *GetTurnStartMessageInput) (*GetTurnStartMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	return &GetTurnStartMessageOutput{
		Message: fmt.Sprintf("\n%s's turn", input.PlayerName),
	}, nil
}

// GetRollResultMessage returns the lines printed after a roll
func (s *service) GetRollResultMessage(ctx context.Context, input *GetRollResultMessageInput) (*GetRollResultMessageOutput, error) {
	if input == nil || input.Roll == nil || input.Player == nil {
		return nil, errors.New("input, roll and player cannot be nil")
	}

	lines := []string{
		fmt.Sprintf("Rolled a %d", input.Roll.Value),
		fmt.Sprintf("Turn total: %d, Total score: %d", input.Player.TurnTotal, input.Player.Score),
	}
	if input.Roll.IsBust {
		lines = append(lines, "Turn over, no points gained.")
	}

	return &GetRollResultMessageOutput{
		Lines: lines,
	}, nil
}

// GetHoldMessage returns the line printed after a hold
func (s *service) GetHoldMessage(ctx context.Context, input *GetHoldMessageInput) (*GetHoldMessageOutput, error) {
	if input == nil || input.Player == nil {
		return nil, errors.New("input and player cannot be nil")
	}

	return &GetHoldMessageOutput{
		Message: fmt.Sprintf("%s held. Turn total: %d, Total score: %d",
			input.Player.Name, input.Player.TurnTotal, input.Player.Score),
	}, nil
}

// GetWinnerMessage returns the winner announcement
func (s *service) GetWinnerMessage(ctx context.Context, input *GetWinnerMessageInput) (*GetWinnerMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	message := fmt.Sprintf("Player(s) %s wins!", strings.Join(input.PlayerNames, ", "))
	if input.TimeUp {
		message = "\nTime is up! " + message
	}

	return &GetWinnerMessageOutput{
		Message: message,
	}, nil
}

// GetErrorMessage returns the message for rejected input
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var message string
	switch input.ErrorType {
	case ErrorTypeInvalidCommand:
		message = "Invalid input. Enter 'r' to roll or 'h' to hold."
	case ErrorTypeInvalidPlayerCount:
		message = "Invalid number of players. Please enter a whole number."
	case ErrorTypeTooFewPlayers:
		message = "Number of players must be at least 2."
	case ErrorTypeInvalidPlayerType:
		message = "Invalid player type. Please enter 'human' or 'computer'."
	default:
		return nil, fmt.Errorf("unknown error type %q", input.ErrorType)
	}

	return &GetErrorMessageOutput{
		Message: message,
	}, nil
}
