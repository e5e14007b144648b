package domain

import (
	"encoding/json"
	"fmt"
)

// CommandType names a remote-control action. The vocabulary is closed;
// unknown types are rejected at the parse boundary.
type CommandType string

const (
	CommandPlay          CommandType = "play"
	CommandPause         CommandType = "pause"
	CommandStop          CommandType = "stop"
	CommandNextSegment   CommandType = "next_segment"
	CommandPrevSegment   CommandType = "prev_segment"
	CommandSetSpeed      CommandType = "set_speed"
	CommandSeek          CommandType = "seek"
	CommandToggleMirror  CommandType = "toggle_mirror"
	CommandResetPosition CommandType = "reset_position"
	CommandGoLive        CommandType = "go_live"
	CommandExitLive      CommandType = "exit_live"
)

var commandTypes = map[CommandType]bool{
	CommandPlay:          true,
	CommandPause:         true,
	CommandStop:          true,
	CommandNextSegment:   true,
	CommandPrevSegment:   true,
	CommandSetSpeed:      true,
	CommandSeek:          true,
	CommandToggleMirror:  true,
	CommandResetPosition: true,
	CommandGoLive:        true,
	CommandExitLive:      true,
}

// valuedCommands require a numeric payload.
var valuedCommands = map[CommandType]bool{
	CommandSetSpeed: true,
	CommandSeek:     true,
}

// Command is the single tagged command shape used by every surface:
// local input, broadcast relay, and the cross-device bridge.
type Command struct {
	Type      CommandType
	Value     float64
	HasValue  bool
	Timestamp int64
}

// NewCommand builds a valueless command stamped with the current time.
func NewCommand(t CommandType) Command {
	return Command{Type: t, Timestamp: NowMillis()}
}

// NewValuedCommand builds a command carrying a numeric payload.
func NewValuedCommand(t CommandType, v float64) Command {
	return Command{Type: t, Value: v, HasValue: true, Timestamp: NowMillis()}
}

// Validate rejects unknown types and valued commands without a value.
func (c Command) Validate() error {
	if !commandTypes[c.Type] {
		return fmt.Errorf("unknown command type: %q", c.Type)
	}
	if valuedCommands[c.Type] && !c.HasValue {
		return fmt.Errorf("command %q requires a value", c.Type)
	}
	return nil
}

type commandJSON struct {
	Type      CommandType `json:"type"`
	Value     *float64    `json:"value,omitempty"`
	Timestamp int64       `json:"timestamp,omitempty"`
}

// MarshalJSON encodes the command in the wire envelope
// {type, value?, timestamp}.
func (c Command) MarshalJSON() ([]byte, error) {
	out := commandJSON{Type: c.Type, Timestamp: c.Timestamp}
	if c.HasValue {
		v := c.Value
		out.Value = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the wire envelope, distinguishing an absent
// value from an explicit zero.
func (c *Command) UnmarshalJSON(data []byte) error {
	var in commandJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	c.Type = in.Type
	c.Timestamp = in.Timestamp
	c.HasValue = in.Value != nil
	if in.Value != nil {
		c.Value = *in.Value
	}
	return nil
}

// ParseCommand decodes and validates a command from raw JSON.
func ParseCommand(data []byte) (Command, error) {
	var c Command
	if err := json.Unmarshal(data, &c); err != nil {
		return Command{}, fmt.Errorf("malformed command: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Command{}, err
	}
	return c, nil
}
