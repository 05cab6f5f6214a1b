package basket

import (
	"github.com/MarcGrol/delivecrous/lib/mylog"
	"github.com/MarcGrol/delivecrous/lib/mypublisher"
	"github.com/MarcGrol/delivecrous/lib/mystore"
	"github.com/MarcGrol/delivecrous/lib/mytime"
	"github.com/MarcGrol/delivecrous/lib/myuuid"
	"github.com/MarcGrol/delivecrous/services/catalog"
)

type service struct {
	basketStore mystore.Store[Basket]
	catalog     catalog.Accessor
	publisher   mypublisher.Publisher
	nower       mytime.Nower
	uuider      myuuid.UUIDer
	logger      mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[Basket], catalogAccessor catalog.Accessor, pub mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		basketStore: store,
		catalog:     catalogAccessor,
		publisher:   pub,
		nower:       nower,
		uuider:      uuider,
		logger:      logger,
	}
}
