package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

type BedrockParameter struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// BedrockEvent is the payload an agent action group sends to a lambda function.
type BedrockEvent struct {
	ActionGroup string             `json:"actionGroup"`
	Function    string             `json:"function"`
	Parameters  []BedrockParameter `json:"parameters"`
}

type BedrockFunctionResponse struct {
	ResponseBody map[string]map[string]string `json:"responseBody"`
}

type BedrockResponseContainer struct {
	ActionGroup      string                  `json:"actionGroup"`
	Function         string                  `json:"function"`
	FunctionResponse BedrockFunctionResponse `json:"functionResponse"`
}

type BedrockOutput struct {
	MessageVersion string                   `json:"messageVersion"`
	Response       BedrockResponseContainer `json:"response"`
}

// DecodeEvent re-marshals a raw lambda event. It reports whether the event came from an agent;
// otherwise the payload is unmarshalled into target.
func DecodeEvent(event any, target any) (*BedrockEvent, error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	var bedrockEvent BedrockEvent
	if err := json.Unmarshal(raw, &bedrockEvent); err == nil && bedrockEvent.ActionGroup != "" {
		return &bedrockEvent, nil
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return nil, nil
}

func (e *BedrockEvent) GetParameter(name string) string {
	for _, p := range e.Parameters {
		if strings.EqualFold(p.Name, name) {
			return p.Value
		}
	}
	return ""
}

func NewBedrockResponse(e *BedrockEvent, results any) BedrockOutput {
	resBody, _ := json.Marshal(results)
	return BedrockOutput{
		MessageVersion: "1.0",
		Response: BedrockResponseContainer{
			ActionGroup: e.ActionGroup,
			Function:    e.Function,
			FunctionResponse: BedrockFunctionResponse{
				ResponseBody: map[string]map[string]string{
					"TEXT": {"body": string(resBody)},
				},
			},
		},
	}
}
