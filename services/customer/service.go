package customer

import (
	"github.com/MarcGrol/foodorder/lib/mylog"
	"github.com/MarcGrol/foodorder/lib/mystore"
	"github.com/MarcGrol/foodorder/lib/mytime"
)

type service struct {
	profileStore mystore.Store[Profile]
	nower        mytime.Nower
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[Profile], nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		profileStore: store,
		nower:        nower,
		logger:       logger,
	}
}
