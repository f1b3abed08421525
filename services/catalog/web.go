package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/foodorder/lib/mycontext"
	"github.com/MarcGrol/foodorder/lib/myerrors"
	"github.com/MarcGrol/foodorder/lib/myhttp"
	"github.com/MarcGrol/foodorder/lib/mylog"
	"github.com/MarcGrol/foodorder/lib/mystore"
	"github.com/MarcGrol/foodorder/lib/mytime"
	"github.com/MarcGrol/foodorder/lib/myuuid"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[FoodItem], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *webService {
	return &webService{
		service: newService(store, nower, uuider, logger),
		logger:  logger,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	// Customer facing: browse the catalog
	router.HandleFunc("/api/fooditem", s.listFoodItemsPage()).Methods("GET")
	router.HandleFunc("/api/fooditem/{foodItemUID}", s.foodItemDetailsPage()).Methods("GET")

	// Vendor facing: manage the menu
	router.HandleFunc("/api/vendor/{vendorUID}/fooditem", s.listVendorFoodItemsPage()).Methods("GET")
	router.HandleFunc("/api/fooditem", s.upsertFoodItemPage()).Methods("PUT")
	router.HandleFunc("/api/fooditem/{foodItemUID}/availability/{available}", s.setAvailabilityPage()).Methods("PUT")
}

func (s webService) listFoodItemsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		items, err := s.service.listAvailableFoodItems(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, items)
	}
}

func (s webService) foodItemDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		foodItemUID := mux.Vars(r)["foodItemUID"]

		item, err := s.service.getFoodItem(c, foodItemUID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, item)
	}
}

func (s webService) listVendorFoodItemsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		vendorUID := mux.Vars(r)["vendorUID"]

		items, err := s.service.listVendorFoodItems(c, vendorUID)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, items)
	}
}

func (s webService) upsertFoodItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		item := FoodItem{}
		err := json.NewDecoder(r.Body).Decode(&item)
		if err != nil {
			errorWriter.WriteError(c, w, 4, myerrors.NewInvalidInputError(err))
			return
		}

		item, err = s.service.upsertFoodItem(c, item)
		if err != nil {
			errorWriter.WriteError(c, w, 5, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, item)
	}
}

func (s webService) setAvailabilityPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		foodItemUID := mux.Vars(r)["foodItemUID"]
		available, err := strconv.ParseBool(mux.Vars(r)["available"])
		if err != nil {
			errorWriter.WriteError(c, w, 6, myerrors.NewInvalidInputError(err))
			return
		}

		item, err := s.service.setAvailability(c, foodItemUID, available)
		if err != nil {
			errorWriter.WriteError(c, w, 7, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, item)
	}
}
