package llm

import (
	"sort"
	"strings"
)

// ModelCost is USD pricing per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of one call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1e6 +
		float64(outputTokens)*c.OutputPerMTok/1e6
}

// modelCosts is keyed by model family prefix. Dated snapshots such as
// claude-haiku-4-5-20251001 resolve through the longest matching prefix.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4-5": {3, 15},
	"claude-sonnet-4":   {3, 15},
	"claude-opus-4-5":   {5, 25},
	"claude-opus-4":     {15, 75},
	"claude-3-5-haiku":  {0.8, 4},

	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4o":       {2.5, 10},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1":      {2, 8},
	"gpt-5-nano":   {0.05, 0.4},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5":        {1.25, 10},
	"o4-mini":      {1.1, 4.4},

	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-pro":        {1.25, 10},
}

// costPrefixes holds the modelCosts keys, longest first.
var costPrefixes = func() []string {
	keys := make([]string, 0, len(modelCosts))
	for k := range modelCosts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	return keys
}()

// LookupCost returns pricing for a model ID, or nil if unknown. OpenRouter
// IDs ("openai/gpt-4o-mini") are matched on the part after the slash.
func LookupCost(modelID string) *ModelCost {
	if i := strings.LastIndexByte(modelID, '/'); i >= 0 {
		modelID = modelID[i+1:]
	}
	for _, p := range costPrefixes {
		if strings.HasPrefix(modelID, p) {
			c := modelCosts[p]
			return &c
		}
	}
	return nil
}
