package logging

// Standard attribute keys.
const (
	FieldComponent  = "component"
	FieldRunID      = "run_id"
	FieldSession    = "session"
	FieldTrackCount = "tracks"
	FieldEventType  = "event_type"
	FieldErrorHint  = "error_hint"
	FieldImpact     = "impact"
)
