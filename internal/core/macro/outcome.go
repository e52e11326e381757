package macro

import (
	"errors"

	"moonwalk/internal/config"
)

// Kind is the tri-state result of a macro run.
type Kind int

const (
	KindSuccess Kind = iota
	// KindRecoverable means the user can fix the input and retry.
	KindRecoverable
	// KindFatal means the OS rejected an operation.
	KindFatal
)

// Severity drives status colouring.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

type Outcome struct {
	Kind     Kind
	Severity Severity
	Message  string
}

// Classify turns the result of a run into the status shown to the user.
func Classify(action Action, err error) Outcome {
	if err == nil {
		return Outcome{
			Kind:     KindSuccess,
			Severity: SeveritySuccess,
			Message:  action.Title() + " executed successfully",
		}
	}

	msg := action.Title() + " failed: " + err.Error()
	var verr *config.ValidationError
	if errors.As(err, &verr) {
		return Outcome{Kind: KindRecoverable, Severity: SeverityWarning, Message: msg}
	}
	return Outcome{Kind: KindFatal, Severity: SeverityError, Message: msg}
}
