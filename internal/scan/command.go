package scan

import "context"

// Command actions accepted over the loose command boundary.
const (
	ActionToggle = "toggle"
	ActionRun    = "run"
	ActionCancel = "cancel"
)

// HandleCommand dispatches a loosely-typed command payload against the
// engine. The payload shape is {action: toggle|run|cancel} with an
// "enabled" boolean for toggle. Malformed payloads are logged and
// dropped; the boundary never propagates errors back to the sender.
func (e *Engine) HandleCommand(ctx context.Context, payload map[string]any) {
	action, ok := payload["action"].(string)
	if !ok {
		e.logger.Warn("command dropped: action missing or not a string")
		return
	}

	switch action {
	case ActionRun:
		if _, err := e.Trigger(ctx); err != nil {
			e.logger.Warn("triggered scan failed", "error", err)
		}
	case ActionCancel:
		e.Cancel()
	case ActionToggle:
		enabled, ok := payload["enabled"].(bool)
		if !ok {
			e.logger.Warn("command dropped: toggle without a boolean enabled field")
			return
		}
		if enabled {
			if _, err := e.Trigger(ctx); err != nil {
				e.logger.Warn("triggered scan failed", "error", err)
			}
		} else {
			e.Clear()
		}
	default:
		e.logger.Warn("command dropped: unknown action", "action", action)
	}
}
