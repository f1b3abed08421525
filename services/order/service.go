package order

import (
	"github.com/MarcGrol/foodorder/lib/mylog"
	"github.com/MarcGrol/foodorder/lib/mypublisher"
	"github.com/MarcGrol/foodorder/lib/mystore"
	"github.com/MarcGrol/foodorder/lib/mytime"
)

type service struct {
	orderStore mystore.Store[Order]
	lineStore  mystore.Store[OrderLine]
	publisher  mypublisher.Publisher
	nower      mytime.Nower
	logger     mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(orderStore mystore.Store[Order], lineStore mystore.Store[OrderLine], nower mytime.Nower, logger mylog.Logger, pub mypublisher.Publisher) *service {
	return &service{
		orderStore: orderStore,
		lineStore:  lineStore,
		publisher:  pub,
		nower:      nower,
		logger:     logger,
	}
}
