package websocket

import "time"

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Motion status messages
	MessageTypeMotionStatus MessageType = "motion_status"
	MessageTypeMotionMode   MessageType = "motion_mode"

	// Controller diagnostics
	MessageTypeDiagnostic MessageType = "diagnostic"

	// System messages
	MessageTypeSystemStatus MessageType = "system_status"
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// MotionModeData represents a motion mode change
type MotionModeData struct {
	Mode     string `json:"mode"`
	Previous string `json:"previous_mode"`
}

// DiagnosticData carries one controller diagnostic message
type DiagnosticData struct {
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// NewMessage creates a new message with current timestamp
func NewMessage(msgType MessageType, data interface{}) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Helper functions for creating specific message types

func NewMotionStatusMessage(snapshot interface{}) Message {
	return NewMessage(MessageTypeMotionStatus, snapshot)
}

func NewMotionModeMessage(mode, previous string) Message {
	return NewMessage(MessageTypeMotionMode, MotionModeData{
		Mode:     mode,
		Previous: previous,
	})
}

func NewDiagnosticMessage(message string, at time.Time) Message {
	return NewMessage(MessageTypeDiagnostic, DiagnosticData{
		Message: message,
		At:      at,
	})
}
