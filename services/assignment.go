package services

import (
	"strings"

	"safaisync-be/models"
)

// ResolveAssignment picks a vehicle for a complaint at location.
//
// Only Available vehicles are considered. The first one whose area appears in
// the location (case-insensitive) wins; otherwise the first available vehicle
// is returned. It returns nil when no vehicle is available. Vehicle status is
// never changed here.
func ResolveAssignment(location string, vehicles []models.Vehicle) *models.Vehicle {
	var available []models.Vehicle
	for _, v := range vehicles {
		if v.Status == models.Available {
			available = append(available, v)
		}
	}
	if len(available) == 0 {
		return nil
	}

	loc := strings.ToLower(location)
	for i := range available {
		area := strings.ToLower(strings.TrimSpace(available[i].Area))
		if area != "" && strings.Contains(loc, area) {
			return &available[i]
		}
	}
	return &available[0]
}
