package oracle

import (
	"fmt"
	"strings"

	"github.com/AlexRiks/AccountingDesk-IA/internal/model"
)

// BuildPrompt renders the classification prompt: the raw description plus the
// newline-joined catalog as a closed candidate set. The description goes in
// unmodified because casing and punctuation can carry signal the normalized
// lookup key deliberately discards.
func BuildPrompt(description string, candidates []model.CategoryEntry) string {
	labels := make([]string, len(candidates))
	for i, entry := range candidates {
		labels[i] = entry.Label()
	}

	return fmt.Sprintf(`Given the following transaction description:
'%s'

And the following list of valid categories and subcategories (format: Category - Subcategory):
%s

What is the most appropriate category and subcategory from the list for this transaction?
Respond only with 'Category - Subcategory' exactly as it appears in the list, or respond 'Uncategorized' if no option from the list is clearly suitable.
Do not invent new categories. If multiple options are possible, choose the most specific one.`,
		description,
		strings.Join(labels, "\n"))
}
