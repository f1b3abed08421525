package order

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/foodorder/lib/mycontext"
	"github.com/MarcGrol/foodorder/lib/myerrors"
	"github.com/MarcGrol/foodorder/lib/myhttp"
	"github.com/MarcGrol/foodorder/lib/mylog"
	"github.com/MarcGrol/foodorder/lib/mypublisher"
	"github.com/MarcGrol/foodorder/lib/mystore"
	"github.com/MarcGrol/foodorder/lib/mytime"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(orderStore mystore.Store[Order], lineStore mystore.Store[OrderLine], nower mytime.Nower, logger mylog.Logger, pub mypublisher.Publisher) *webService {
	return &webService{
		service: newService(orderStore, lineStore, nower, logger, pub),
		logger:  logger,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	// Customer facing
	router.HandleFunc("/api/order/{orderUID}", s.orderDetailsPage()).Methods("GET")
	router.HandleFunc("/api/customer/{customerUID}/orders", s.customerOrdersPage()).Methods("GET")

	// Vendor facing: dashboard and kitchen display write status directly
	router.HandleFunc("/api/vendor/{vendorUID}/orders", s.vendorOpenOrdersPage()).Methods("GET")
	router.HandleFunc("/api/order/{orderUID}/status/{status}", s.updateStatusPage()).Methods("PUT")
}

func (s webService) Subscribe(c context.Context) error {
	return s.service.Subscribe(c)
}

func (s webService) orderDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		orderUID := mux.Vars(r)["orderUID"]

		orderWithLines, err := s.service.getOrder(c, orderUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, orderWithLines)
	}
}

func (s webService) customerOrdersPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		customerUID := mux.Vars(r)["customerUID"]

		orders, err := s.service.listCustomerOrders(c, customerUID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, orders)
	}
}

func (s webService) vendorOpenOrdersPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		vendorUID := mux.Vars(r)["vendorUID"]

		orders, err := s.service.listVendorOpenOrders(c, vendorUID)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, orders)
	}
}

func (s webService) updateStatusPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		orderUID := mux.Vars(r)["orderUID"]
		status, err := ParseStatus(mux.Vars(r)["status"])
		if err != nil {
			errorWriter.WriteError(c, w, 4, myerrors.NewInvalidInputError(err))
			return
		}

		ord, err := s.service.updateStatus(c, orderUID, status)
		if err != nil {
			errorWriter.WriteError(c, w, 5, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, ord)
	}
}
