package basket

import (
	"time"
)

type Basket struct {
	UID             string
	DishUIDs        []string
	TotalPrice      int
	ItemCount       int
	IsConfirmed     bool
	DeliveryAddress *string
	CreatedAt       time.Time
	LastModified    *time.Time
}

func (b Basket) Timestamp() string {
	return b.CreatedAt.Format("2006-01-02 15:04:05")
}

func (b Basket) containsDish(dishUID string) bool {
	for _, uid := range b.DishUIDs {
		if uid == dishUID {
			return true
		}
	}
	return false
}

// withoutDish returns a copy of the dish uids with every occurrence of dishUID left out
func (b Basket) withoutDish(dishUID string) []string {
	remaining := make([]string, 0, len(b.DishUIDs))
	for _, uid := range b.DishUIDs {
		if uid != dishUID {
			remaining = append(remaining, uid)
		}
	}
	return remaining
}

func newBasket(uid string, createdAt time.Time) Basket {
	return Basket{
		UID:         uid,
		DishUIDs:    []string{},
		TotalPrice:  0,
		ItemCount:   0,
		IsConfirmed: false,
		CreatedAt:   createdAt,
	}
}
