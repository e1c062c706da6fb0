package stream

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// MessageHello is the type of the first text message sent to every client.
const MessageHello = "hello"

// Hello announces the frame dimensions. Frames that follow are binary
// messages holding zstd-compressed RGBA bytes, 4*Width*Height once inflated.
type Hello struct {
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Command kinds accepted from clients.
const (
	CommandPaint   = "paint"
	CommandExplode = "explode"
	CommandClear   = "clear"
)

// Command is a validated control message sent by a client. Radius is -1 when
// the client left it out.
type Command struct {
	Type     string `json:"type"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Material string `json:"material,omitempty"`
	Radius   int    `json:"radius"`
	Brush    string `json:"brush,omitempty"`
}

//go:embed schemas/control.schema.json
var controlSchemaJSON string

const controlSchemaURL = "control.schema.json"

func compileControlSchema() (*jsonschema.Schema, error) {
	s, err := jsonschema.CompileString(controlSchemaURL, controlSchemaJSON)
	if err != nil {
		return nil, fmt.Errorf("compile control schema: %w", err)
	}
	return s, nil
}

// parseCommand validates raw against the control schema and decodes it.
func parseCommand(schema *jsonschema.Schema, raw []byte) (Command, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Command{}, fmt.Errorf("control message: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return Command{}, fmt.Errorf("control message: %w", err)
	}
	cmd := Command{Radius: -1}
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return Command{}, fmt.Errorf("control message: %w", err)
	}
	return cmd, nil
}
