// Package policy decides, from a transcript alone, whether the assistant should keep asking
// clarifying questions or emit the finished schema.
//
// The decision is a fixed count of user turns. Once the threshold is reached every later turn is
// a generation request, even if the user asks another question; there is no way back.
package policy

import (
	"fmt"

	"schema-designer-backend/internal/models"
)

// DefaultGenerationThreshold is the number of user turns after which a schema is requested.
const DefaultGenerationThreshold = 3

type Mode int

const (
	ModeClarify Mode = iota
	ModeGenerate
)

func (m Mode) String() string {
	if m == ModeGenerate {
		return "generate"
	}
	return "clarify"
}

type Policy struct {
	threshold int
}

// New returns a policy switching to generation at threshold user turns.
// Non-positive thresholds fall back to DefaultGenerationThreshold.
func New(threshold int) Policy {
	if threshold <= 0 {
		threshold = DefaultGenerationThreshold
	}
	return Policy{threshold: threshold}
}

func (p Policy) Threshold() int {
	if p.threshold <= 0 {
		return DefaultGenerationThreshold
	}
	return p.threshold
}

func (p Policy) Mode(history []models.Message) Mode {
	if CountUserTurns(history) >= p.Threshold() {
		return ModeGenerate
	}
	return ModeClarify
}

// Instruction returns the system instruction to prepend to history.
func (p Policy) Instruction(history []models.Message, schemaType models.SchemaType) string {
	return InstructionFor(p.Mode(history), schemaType)
}

func InstructionFor(mode Mode, schemaType models.SchemaType) string {
	sql := schemaType == models.SchemaTypeSQL
	switch {
	case mode == ModeGenerate && sql:
		return fmt.Sprintf(generateInstructionSQL, FenceTag(schemaType))
	case mode == ModeGenerate:
		return fmt.Sprintf(generateInstructionNoSQL, FenceTag(schemaType))
	case sql:
		return clarifyInstructionSQL
	default:
		return clarifyInstructionNoSQL
	}
}

// FenceTag is the language tag the schema block is requested under.
func FenceTag(schemaType models.SchemaType) string {
	if schemaType == models.SchemaTypeSQL {
		return "sql"
	}
	return "json"
}

func CountUserTurns(history []models.Message) int {
	n := 0
	for _, m := range history {
		if m.Role == models.RoleUser {
			n++
		}
	}
	return n
}
