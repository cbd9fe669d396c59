package utils

import (
	"fmt"

	"github.com/firebase/genkit/go/ai"
)

// PrintUsage reports token counts for a response. Responses without usage are ignored.
func PrintUsage(res *ai.ModelResponse) {
	if res == nil || res.Usage == nil {
		return
	}
	fmt.Printf("Prompt tokens: %d\n", res.Usage.InputTokens)
	fmt.Printf("Thoughts tokens: %d\n", res.Usage.ThoughtsTokens)
	fmt.Printf("Output tokens: %d\n", res.Usage.OutputTokens)
	fmt.Printf("Total tokens: %d\n", res.Usage.TotalTokens)
}
