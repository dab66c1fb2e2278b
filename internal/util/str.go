package util

import "strings"

// Slugify lowercases the input and joins its fields with hyphens,
// producing a stable identifier fragment ("서울 근교" -> "서울-근교").
func Slugify(input string) string {
	var result string
	result = input

	result = strings.TrimSpace(result)
	result = strings.Join(strings.Fields(result), "-")
	result = strings.ToLower(result)

	return result
}
