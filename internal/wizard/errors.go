package wizard

import "errors"

// Sentinel errors for the wizard.
var (
	ErrGateNotSatisfied = errors.New("stage requirements not met")
	ErrAtFirstStage     = errors.New("already at the first stage")
	ErrNotAtConfirm     = errors.New("send is only available at the confirm stage")
	ErrNoRecipients     = errors.New("no recipients selected")
	ErrNoTemplate       = errors.New("no template selected")
	ErrSendInProgress   = errors.New("a batch send is already running")
)
