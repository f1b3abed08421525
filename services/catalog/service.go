package catalog

import (
	"github.com/MarcGrol/foodorder/lib/mylog"
	"github.com/MarcGrol/foodorder/lib/mystore"
	"github.com/MarcGrol/foodorder/lib/mytime"
	"github.com/MarcGrol/foodorder/lib/myuuid"
)

type service struct {
	foodItemStore mystore.Store[FoodItem]
	nower         mytime.Nower
	uuider        myuuid.UUIDer
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[FoodItem], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		foodItemStore: store,
		nower:         nower,
		uuider:        uuider,
		logger:        logger,
	}
}
