//go:build unit

package core

import "product-browser/internal/core/model"

func mk(id int, category string, price, rate float64) model.Product {
	return model.Product{
		ID:       id,
		Category: category,
		Title:    "P" + string(rune('0'+id)),
		Price:    price,
		Rating:   model.Rating{Rate: rate, Count: id * 10},
		Image:    "https://example.test/img/" + string(rune('0'+id)) + ".png",
	}
}

// sixProducts has duplicate prices (2, 4) and duplicate rates (3, 5) to exercise stability.
func sixProducts() []model.Product {
	return []model.Product{
		mk(1, "a", 10, 4.5),
		mk(2, "b", 5, 3.0),
		mk(3, "c", 7.5, 4.0),
		mk(4, "b", 5, 2.0),
		mk(5, "c", 20, 4.0),
		mk(6, "a", 1, 5.0),
	}
}

func ids(ps []model.Product) []int {
	out := make([]int, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}
