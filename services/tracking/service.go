package tracking

import (
	"github.com/MarcGrol/foodorder/lib/mylog"
	"github.com/MarcGrol/foodorder/lib/mypubsub"
	"github.com/MarcGrol/foodorder/lib/mystore"
	"github.com/MarcGrol/foodorder/lib/mytime"
)

type service struct {
	timelineStore mystore.Store[Timeline]
	pubsub        mypubsub.PubSub
	nower         mytime.Nower
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[Timeline], pubsub mypubsub.PubSub, nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		timelineStore: store,
		pubsub:        pubsub,
		nower:         nower,
		logger:        logger,
	}
}
