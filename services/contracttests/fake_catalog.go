package contracttests

import (
	"context"

	"github.com/MarcGrol/delivecrous/services/catalog"
)

// FakeCatalog is a fixed catalog.Accessor that behaves like the real catalog service
type FakeCatalog struct {
	dishes map[string]catalog.Dish
}

func NewFakeCatalog(dishes ...catalog.Dish) *FakeCatalog {
	f := &FakeCatalog{
		dishes: map[string]catalog.Dish{},
	}
	for _, d := range dishes {
		f.dishes[d.UID] = d
	}
	return f
}

func (f *FakeCatalog) FindDishByUID(c context.Context, dishUID string) (catalog.Dish, bool, error) {
	dish, found := f.dishes[dishUID]
	return dish, found, nil
}
