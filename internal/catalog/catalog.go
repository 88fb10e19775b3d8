// Package catalog holds the static product/size/price list. Prices are in
// whole rupees. There is no runtime mutation; a price change is a deploy.
package catalog

import "fmt"

var products = []string{
	"Dubai Mafia",
	"Pine Desire",
	"Edible Musk",
	"Skin Obsessed",
	"Coco Crave",
}

var sizes = []string{"3ml", "6ml", "8ml", "12ml"}

var prices = map[string]map[string]int{
	"Dubai Mafia":   {"3ml": 399, "6ml": 649, "8ml": 849, "12ml": 1199},
	"Pine Desire":   {"3ml": 329, "6ml": 499, "8ml": 699, "12ml": 999},
	"Edible Musk":   {"3ml": 319, "6ml": 499, "8ml": 699, "12ml": 999},
	"Skin Obsessed": {"3ml": 299, "6ml": 399, "8ml": 599, "12ml": 899},
	"Coco Crave":    {"3ml": 299, "6ml": 399, "8ml": 599, "12ml": 899},
}

// Products returns product names in menu order.
func Products() []string {
	out := make([]string, len(products))
	copy(out, products)
	return out
}

// Sizes returns the size options for a product in menu order.
func Sizes(product string) ([]string, bool) {
	if _, ok := prices[product]; !ok {
		return nil, false
	}
	out := make([]string, len(sizes))
	copy(out, sizes)
	return out, true
}

func HasProduct(product string) bool {
	_, ok := prices[product]
	return ok
}

func Price(product, size string) (int, bool) {
	p, ok := prices[product][size]
	return p, ok
}

// Amount computes the order total. It is the only place an amount comes
// from; user-supplied text never reaches it.
func Amount(product, size string, pcs int) (int, error) {
	if pcs <= 0 {
		return 0, fmt.Errorf("catalog: pcs must be positive, got %d", pcs)
	}
	price, ok := Price(product, size)
	if !ok {
		return 0, fmt.Errorf("catalog: unknown product/size %q/%q", product, size)
	}
	return price * pcs, nil
}
