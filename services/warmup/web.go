package warmup

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/foodorder/lib/mycontext"
	"github.com/MarcGrol/foodorder/lib/myhttp"
	"github.com/MarcGrol/foodorder/lib/mylog"
	"github.com/MarcGrol/foodorder/lib/mystore"
	"github.com/MarcGrol/foodorder/services/catalog"
)

type webService struct {
	logger        mylog.Logger
	foodItemStore mystore.Store[catalog.FoodItem]
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(foodItemStore mystore.Store[catalog.FoodItem]) *webService {
	return &webService{
		logger:        mylog.New("warmup"),
		foodItemStore: foodItemStore,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	// app-engine calls this before routing traffic to a fresh instance
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
}

func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		// touch the datastore so the connection is established before real traffic arrives
		items, err := s.foodItemStore.List(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.logger.Log(c, "", mylog.SeverityInfo, "Warmed up with %d catalog items", len(items))

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully warmed up",
		})
	}
}
