package checkout

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/foodorder/lib/mycontext"
	"github.com/MarcGrol/foodorder/lib/myhttp"
	"github.com/MarcGrol/foodorder/lib/mylog"
	"github.com/MarcGrol/foodorder/lib/mypublisher"
	"github.com/MarcGrol/foodorder/lib/mystore"
	"github.com/MarcGrol/foodorder/lib/mytime"
	"github.com/MarcGrol/foodorder/lib/myuuid"
	"github.com/MarcGrol/foodorder/services/cart"
	"github.com/MarcGrol/foodorder/services/customer"
	"github.com/MarcGrol/foodorder/services/order"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(cartStore *cart.Store, profileStore mystore.Store[customer.Profile], orderStore mystore.Store[order.Order], lineStore mystore.Store[order.OrderLine], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger, pub mypublisher.Publisher) *webService {
	return &webService{
		service: newService(cartStore, profileStore, orderStore, lineStore, nower, uuider, logger, pub),
		logger:  logger,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/checkout/{sessionUID}", s.checkoutPage()).Methods("POST")
}

func (s webService) Subscribe(c context.Context) error {
	return s.service.Subscribe(c)
}

type checkoutResponse struct {
	Orders        []order.Order
	PaymentMethod string
}

func (s webService) checkoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := mux.Vars(r)["sessionUID"]

		orders, err := s.service.placeOrder(c, sessionUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, checkoutResponse{
			Orders:        orders,
			PaymentMethod: PaymentMethodCashOnDelivery,
		})
	}
}
