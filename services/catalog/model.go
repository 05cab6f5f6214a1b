package catalog

import (
	"time"
)

type Dish struct {
	UID          string
	Name         string
	Description  string
	Price        int
	ImageURL     string
	CreatedAt    time.Time
	LastModified *time.Time
}
