package customer

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/foodorder/lib/mycontext"
	"github.com/MarcGrol/foodorder/lib/myerrors"
	"github.com/MarcGrol/foodorder/lib/myhttp"
	"github.com/MarcGrol/foodorder/lib/mylog"
	"github.com/MarcGrol/foodorder/lib/mystore"
	"github.com/MarcGrol/foodorder/lib/mytime"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[Profile], nower mytime.Nower, logger mylog.Logger) *webService {
	return &webService{
		service: newService(store, nower, logger),
		logger:  logger,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/customer/{customerUID}", s.profilePage()).Methods("GET")
	router.HandleFunc("/api/customer/{customerUID}", s.upsertProfilePage()).Methods("PUT")
}

func (s webService) profilePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		customerUID := mux.Vars(r)["customerUID"]

		profile, err := s.service.getProfile(c, customerUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, profile)
	}
}

func (s webService) upsertProfilePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		profile := Profile{}
		err := json.NewDecoder(r.Body).Decode(&profile)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}
		profile.UID = mux.Vars(r)["customerUID"]

		profile, err = s.service.upsertProfile(c, profile)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, profile)
	}
}
