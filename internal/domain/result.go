package domain

// AlertType tags the outcome of every public action. The presentation layer
// maps it directly to user-visible alerts.
type AlertType string

const (
	AlertSuccess AlertType = "SUCCESS"
	AlertError   AlertType = "ERROR"
	AlertNeutral AlertType = "NEUTRAL"
)

// ActionResult is the uniform envelope returned by all actions. No fault is
// allowed to escape an action boundary as a raw error.
type ActionResult struct {
	Type    AlertType `json:"type"`
	Message string    `json:"message"`
}

func Success(msg string) ActionResult { return ActionResult{Type: AlertSuccess, Message: msg} }
func Error(msg string) ActionResult   { return ActionResult{Type: AlertError, Message: msg} }
func Neutral(msg string) ActionResult { return ActionResult{Type: AlertNeutral, Message: msg} }
