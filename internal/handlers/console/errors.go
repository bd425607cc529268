package console

// ConsoleError is a custom error type for console session errors
type ConsoleError string

// Error implements the error interface
func (e ConsoleError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig     ConsoleError = "config cannot be nil"
	ErrNilInput      ConsoleError = "input cannot be nil"
	ErrNilOutput     ConsoleError = "output cannot be nil"
	ErrNilFactory    ConsoleError = "player factory cannot be nil"
	ErrNilDiceRoller ConsoleError = "dice roller cannot be nil"
)
