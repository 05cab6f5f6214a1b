package catalog

import (
	"github.com/MarcGrol/delivecrous/lib/mylog"
	"github.com/MarcGrol/delivecrous/lib/mystore"
	"github.com/MarcGrol/delivecrous/lib/mytime"
	"github.com/MarcGrol/delivecrous/lib/myuuid"
)

type service struct {
	dishStore mystore.Store[Dish]
	nower     mytime.Nower
	uuider    myuuid.UUIDer
	logger    mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[Dish], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		dishStore: store,
		nower:     nower,
		uuider:    uuider,
		logger:    logger,
	}
}
