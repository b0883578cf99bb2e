package config

import "strings"

// pick returns the last non-nil layer value, or cur when every layer is nil.
func pick[T any](cur T, layer *T) T {
	if layer == nil {
		return cur
	}
	return *layer
}

func pickTrimmed(cur string, layer *string) string {
	return strings.TrimSpace(pick(cur, layer))
}

// pickList copies the layer list. An explicitly empty list clears cur.
func pickList(cur []string, layer *[]string) []string {
	if layer == nil {
		return cur
	}
	if len(*layer) == 0 {
		return []string{}
	}
	return cloneStrings(*layer)
}
