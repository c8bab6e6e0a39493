package services

import (
	"strings"

	"safaisync-be/models"
)

// hazardKeywords mark descriptions that need urgent pickup: stagnant water,
// drains, proximity to hospitals, schools or animals, decay and overflow.
var hazardKeywords = []string{
	"stagnant",
	"pani",
	"drain",
	"hospital",
	"school",
	"animal",
	"gali sarri",
	"decay",
	"rotting",
	"overflow",
}

// InferPriority derives a complaint priority from the classifier's
// description and the waste amount.
func InferPriority(description string, amount models.WasteAmount) models.Priority {
	text := strings.ToLower(description)
	for _, k := range hazardKeywords {
		if strings.Contains(text, k) {
			return models.PriorityHigh
		}
	}
	switch amount {
	case models.AmountLarge:
		return models.PriorityHigh
	case models.AmountMedium:
		return models.PriorityMedium
	}
	return models.PriorityLow
}
