// Package chat interprets the typed event stream arriving over the
// conversation WebSocket and maintains the message log for one chat
// session.
package chat

import (
	"encoding/json"
	"fmt"

	"github.com/Maroco0109/AgentForge-sub000/pkg/design"
)

// EventType discriminates inbound socket frames.
type EventType string

// Event types emitted by the backend. Anything else decodes as
// EventUnknown.
const (
	EventUserMessageReceived EventType = "user_message_received"
	EventClarification       EventType = "clarification"
	EventDesignsPresented    EventType = "designs_presented"
	EventCritiqueComplete    EventType = "critique_complete"
	EventPlanGenerated       EventType = "plan_generated"
	EventPipelineStarted     EventType = "pipeline_started"
	EventAgentCompleted      EventType = "agent_completed"
	EventPipelineResult      EventType = "pipeline_result"
	EventPipelineFailed      EventType = "pipeline_failed"
	EventSecurityWarning     EventType = "security_warning"
	EventError               EventType = "error"
	EventAssistantMessage    EventType = "assistant_message"
	EventUnknown             EventType = "unknown"
)

// Event is the decoded form of one inbound frame. Type selects which
// of the optional fields carry data; Raw always holds the original
// payload.
type Event struct {
	Type    EventType
	Content string

	// Clarification questions, one per entry.
	Questions []string

	// Designs proposed by the orchestrator.
	Designs []design.Design

	// Per-agent completion details.
	Agent  string
	Cost   float64
	Tokens int64

	// Pipeline identifier for lifecycle events.
	PipelineID string

	// Raw is the undecoded frame, kept for the fallback renderer.
	Raw json.RawMessage
}

// frame mirrors the wire shape; every field is optional.
type frame struct {
	Type       string          `json:"type"`
	Content    string          `json:"content"`
	Message    string          `json:"message"`
	Questions  []string        `json:"questions"`
	Designs    []design.Design `json:"designs"`
	Agent      string          `json:"agent"`
	Cost       float64         `json:"cost"`
	Tokens     int64           `json:"tokens"`
	PipelineID string          `json:"pipeline_id"`
}

// known maps wire type values to EventType.
var known = map[string]EventType{
	string(EventUserMessageReceived): EventUserMessageReceived,
	string(EventClarification):       EventClarification,
	string(EventDesignsPresented):    EventDesignsPresented,
	string(EventCritiqueComplete):    EventCritiqueComplete,
	string(EventPlanGenerated):       EventPlanGenerated,
	string(EventPipelineStarted):     EventPipelineStarted,
	string(EventAgentCompleted):      EventAgentCompleted,
	string(EventPipelineResult):      EventPipelineResult,
	string(EventPipelineFailed):      EventPipelineFailed,
	string(EventSecurityWarning):     EventSecurityWarning,
	string(EventError):               EventError,
	string(EventAssistantMessage):    EventAssistantMessage,
}

// Decode parses one inbound frame. Unknown type values (and frames
// that are not JSON objects) never error; they decode as EventUnknown
// with the raw bytes preserved so the caller can still display
// something.
func Decode(data []byte) Event {
	raw := json.RawMessage(append([]byte(nil), data...))

	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Event{Type: EventUnknown, Raw: raw}
	}

	et, ok := known[f.Type]
	if !ok {
		et = EventUnknown
	}

	content := f.Content
	if content == "" {
		content = f.Message
	}

	return Event{
		Type:       et,
		Content:    content,
		Questions:  f.Questions,
		Designs:    f.Designs,
		Agent:      f.Agent,
		Cost:       f.Cost,
		Tokens:     f.Tokens,
		PipelineID: f.PipelineID,
		Raw:        raw,
	}
}

// Render turns an event into the display text shown in the message
// log. The fallback for anything unrecognized is the content field,
// then the whole raw frame.
func Render(ev Event) string {
	switch ev.Type {
	case EventClarification:
		return renderClarification(ev)
	case EventDesignsPresented:
		return renderDesigns(ev)
	case EventAgentCompleted:
		return renderAgentCompleted(ev)
	case EventPipelineStarted:
		if ev.Content != "" {
			return ev.Content
		}
		return "Pipeline started"
	case EventPipelineFailed:
		if ev.Content != "" {
			return "Pipeline failed: " + ev.Content
		}
		return "Pipeline failed"
	case EventSecurityWarning:
		return "Security warning: " + ev.Content
	case EventError:
		return "Error: " + ev.Content
	default:
		if ev.Content != "" {
			return ev.Content
		}
		return string(ev.Raw)
	}
}

// renderClarification numbers the questions one per line.
func renderClarification(ev Event) string {
	text := ev.Content
	if text == "" {
		text = "I need a few details before designing the pipeline:"
	}
	for i, q := range ev.Questions {
		text += fmt.Sprintf("\n%d. %s", i+1, q)
	}
	return text
}

// renderDesigns summarizes each proposed design as "name — N agents".
func renderDesigns(ev Event) string {
	text := ev.Content
	if text == "" {
		text = "Proposed designs:"
	}
	for _, d := range ev.Designs {
		name := d.Name
		if name == "" {
			name = "Untitled design"
		}
		noun := "agents"
		if len(d.Agents) == 1 {
			noun = "agent"
		}
		text += fmt.Sprintf("\n%s — %d %s", name, len(d.Agents), noun)
	}
	return text
}

// renderAgentCompleted reports per-agent cost and token usage.
func renderAgentCompleted(ev Event) string {
	if ev.Agent == "" {
		if ev.Content != "" {
			return ev.Content
		}
		return "Agent completed"
	}
	return fmt.Sprintf("%s completed ($%.4f, %d tokens)", ev.Agent, ev.Cost, ev.Tokens)
}
