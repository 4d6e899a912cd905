// Package provider contains the upstream language-model adapters and the
// gateway that fronts them with rate gating, retry and statistics.
package provider

import (
	"encoding/json"
	"fmt"
)

// systemPrompt steers every provider toward emitting BASIC statements only.
const systemPrompt = `You are an AI assistant that helps convert natural language instructions into BASIC-M6502 commands for a vintage computer emulator.

Your responses should:
1. Be clear and concise
2. Use proper BASIC-M6502 syntax
3. Include line numbers (10, 20, 30, etc.)
4. Focus on the specific request
5. Provide executable commands

Examples:
- "Print hello" → 10 PRINT "hello"
- "Set x to 5" → 10 LET X = 5
- "Loop from 1 to 10" → 10 FOR I = 1 TO 10
20 PRINT I
30 NEXT I

Always respond with valid BASIC-M6502 commands only.`

// contextMessage renders caller-supplied context data as an additional
// system message.
func contextMessage(contextData map[string]any) (string, bool) {
	if len(contextData) == 0 {
		return "", false
	}
	encoded, err := json.MarshalIndent(contextData, "", "  ")
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("Additional context: %s", encoded), true
}
