package edischema

import (
	"fmt"
)

const defaultMaxSchemaTypes = 4096

type schemaLimits struct {
	maxTypes int
}

func resolveSchemaLimits(maxTypes int) (schemaLimits, error) {
	if maxTypes < 0 {
		return schemaLimits{}, fmt.Errorf("schema max types must be >= 0")
	}
	resolved := maxTypes
	if resolved == 0 {
		resolved = defaultMaxSchemaTypes
	}
	return schemaLimits{
		maxTypes: resolved,
	}, nil
}
