package types

// Event statuses emitted during a streamed analysis, in stage order. The
// completed status is always terminal; a stream that ends without it failed.
const (
	StatusStarting   = "starting"
	StatusParsing    = "parsing"
	StatusScoring    = "scoring"
	StatusScored     = "scored"
	StatusImproving  = "improving"
	StatusSuggestion = "suggestion"
	StatusCompleted  = "completed"
)

// AnalysisEvent is one progress update from an analysis run. Exactly one of
// the optional fields is set depending on Status: Score for scored,
// Suggestion for suggestion, Result for completed.
type AnalysisEvent struct {
	Status     string           `json:"status"`
	Message    string           `json:"message,omitempty"`
	Score      *float64         `json:"score,omitempty"`
	Suggestion *SuggestionEvent `json:"suggestion,omitempty"`
	Result     *Improvement     `json:"result,omitempty"`
}

// SuggestionEvent carries one improvement suggestion with its position in the
// suggestion list.
type SuggestionEvent struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	Reference string `json:"reference,omitempty"`
}

// StageEvent builds a progress event for a pipeline stage.
func StageEvent(status, message string) AnalysisEvent {
	return AnalysisEvent{Status: status, Message: message}
}

// ScoredEvent builds the event announcing the initial compatibility score.
func ScoredEvent(score float64) AnalysisEvent {
	return AnalysisEvent{Status: StatusScored, Score: &score}
}

// CompletedEvent builds the terminal event carrying the persisted artifact.
func CompletedEvent(result *Improvement) AnalysisEvent {
	return AnalysisEvent{Status: StatusCompleted, Result: result}
}
