package checkout

import (
	"github.com/MarcGrol/foodorder/lib/mylog"
	"github.com/MarcGrol/foodorder/lib/mypublisher"
	"github.com/MarcGrol/foodorder/lib/mystore"
	"github.com/MarcGrol/foodorder/lib/mytime"
	"github.com/MarcGrol/foodorder/lib/myuuid"
	"github.com/MarcGrol/foodorder/services/cart"
	"github.com/MarcGrol/foodorder/services/customer"
	"github.com/MarcGrol/foodorder/services/order"
)

type service struct {
	cartStore    *cart.Store
	profileStore mystore.Store[customer.Profile]
	orderStore   mystore.Store[order.Order]
	lineStore    mystore.Store[order.OrderLine]
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	logger       mylog.Logger
	publisher    mypublisher.Publisher
}

func newService(cartStore *cart.Store, profileStore mystore.Store[customer.Profile], orderStore mystore.Store[order.Order], lineStore mystore.Store[order.OrderLine], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger, pub mypublisher.Publisher) *service {
	return &service{
		cartStore:    cartStore,
		profileStore: profileStore,
		orderStore:   orderStore,
		lineStore:    lineStore,
		nower:        nower,
		uuider:       uuider,
		logger:       logger,
		publisher:    pub,
	}
}
