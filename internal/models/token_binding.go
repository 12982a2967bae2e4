package models

// TokenBinding holds the push tokens registered for a plant.
type TokenBinding struct {
	PlantID string   `json:"plant_id"`
	Tokens  []string `json:"tokens"`
}

// Has reports whether token is already bound.
func (b TokenBinding) Has(token string) bool {
	for _, t := range b.Tokens {
		if t == token {
			return true
		}
	}
	return false
}
