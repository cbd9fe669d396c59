package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainEvent struct {
	StartDate string `json:"startDate"`
}

func TestDecodeEvent(t *testing.T) {
	t.Run("agent event", func(t *testing.T) {
		event := map[string]any{
			"actionGroup": "reports",
			"function":    "attendance",
			"parameters": []map[string]string{
				{"name": "StartDate", "type": "string", "value": "2024-01-01"},
			},
		}
		var target plainEvent
		bedrockEvent, err := DecodeEvent(event, &target)
		require.NoError(t, err)
		require.NotNil(t, bedrockEvent)
		assert.Equal(t, "reports", bedrockEvent.ActionGroup)
		assert.Equal(t, "2024-01-01", bedrockEvent.GetParameter("startdate"))
		assert.Empty(t, bedrockEvent.GetParameter("endDate"))
		assert.Empty(t, target.StartDate)
	})

	t.Run("plain event", func(t *testing.T) {
		var target plainEvent
		bedrockEvent, err := DecodeEvent(map[string]any{"startDate": "2024-02-01"}, &target)
		require.NoError(t, err)
		assert.Nil(t, bedrockEvent)
		assert.Equal(t, "2024-02-01", target.StartDate)
	})

	t.Run("wrong shape", func(t *testing.T) {
		var target plainEvent
		_, err := DecodeEvent(map[string]any{"startDate": 5}, &target)
		assert.Error(t, err)
	})
}

func TestNewBedrockResponse(t *testing.T) {
	out := NewBedrockResponse(&BedrockEvent{ActionGroup: "reports", Function: "attendance"}, map[string]int{"rows": 3})
	assert.Equal(t, "1.0", out.MessageVersion)
	assert.Equal(t, "attendance", out.Response.Function)

	var body map[string]int
	require.NoError(t, json.Unmarshal([]byte(out.Response.FunctionResponse.ResponseBody["TEXT"]["body"]), &body))
	assert.Equal(t, 3, body["rows"])
}
