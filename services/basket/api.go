package basket

import (
	"errors"
)

var (
	ErrBasketNotFound  = errors.New("basket not found")
	ErrItemNotInBasket = errors.New("item not in basket")
	ErrStorageFailure  = errors.New("basket storage failure")
)
