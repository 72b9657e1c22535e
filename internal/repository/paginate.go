package repository

import (
	"math"
	"slices"

	"github.com/honeynil/PlayerServiceTochka/internal/models"
)

// Paginate sorts players by order and cuts out the requested page for stores
// that filter in process. It never returns nil.
func Paginate(players []models.Player, order models.Order, pageNumber, pageSize int) []models.Player {
	slices.SortFunc(players, func(a, b models.Player) int {
		return order.Compare(&a, &b)
	})
	if pageSize <= 0 || pageNumber < 0 || pageNumber > math.MaxInt/pageSize {
		return []models.Player{}
	}
	start := pageNumber * pageSize
	if start >= len(players) {
		return []models.Player{}
	}
	end := min(start+pageSize, len(players))
	return slices.Clone(players[start:end])
}
