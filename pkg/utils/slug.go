package utils

import "strings"

// Slugify converte um rótulo livre em um fragmento de nome de coluna:
// remove espaços das pontas, passa para minúsculas e troca sequências de espaços por "_".
func Slugify(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), "_")
}
