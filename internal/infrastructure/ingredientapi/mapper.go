package ingredientapi

import (
	"strings"

	"github.com/Amaru333/cci-hackathon-2025-backend/internal/domain"
)

// listResponse is one page of GET /v1/ingredients.
type listResponse struct {
	Ingredients []ingredientDTO `json:"ingredients"`
	// NextPage is zero on the last page.
	NextPage int `json:"next_page"`
}

type ingredientDTO struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Expiry   int    `json:"expiry"`
}

// mapIngredients converts service entries to domain ingredients, dropping
// entries without a usable name.
func mapIngredients(dtos []ingredientDTO) []domain.CanonicalIngredient {
	out := make([]domain.CanonicalIngredient, 0, len(dtos))
	for _, dto := range dtos {
		name := strings.TrimSpace(dto.Name)
		if name == "" {
			continue
		}
		out = append(out, domain.CanonicalIngredient{
			Name:     name,
			Category: dto.Category,
			Expiry:   dto.Expiry,
		})
	}
	return out
}
