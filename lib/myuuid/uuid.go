package myuuid

import "github.com/google/uuid"

// RealUUIDer hands out random version 4 uids for baskets and dishes
type RealUUIDer struct{}

func (u RealUUIDer) Create() string {
	return uuid.NewString()
}
