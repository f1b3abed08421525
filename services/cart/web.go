package cart

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/foodorder/lib/mycontext"
	"github.com/MarcGrol/foodorder/lib/myerrors"
	"github.com/MarcGrol/foodorder/lib/myhttp"
	"github.com/MarcGrol/foodorder/lib/mylog"
	"github.com/MarcGrol/foodorder/lib/mystore"
	"github.com/MarcGrol/foodorder/services/cart/cartapi"
	"github.com/MarcGrol/foodorder/services/catalog"
)

type webService struct {
	cartStore     *Store
	foodItemStore mystore.Store[catalog.FoodItem]
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(cartStore *Store, foodItemStore mystore.Store[catalog.FoodItem], logger mylog.Logger) *webService {
	return &webService{
		cartStore:     cartStore,
		foodItemStore: foodItemStore,
		logger:        logger,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/cart/{sessionUID}", s.cartPage()).Methods("GET")
	router.HandleFunc("/api/cart/{sessionUID}", s.clearCartPage()).Methods("DELETE")
	router.HandleFunc("/api/cart/{sessionUID}/items", s.addItemPage()).Methods("POST")
	router.HandleFunc("/api/cart/{sessionUID}/items/{foodItemUID}", s.removeItemPage()).Methods("DELETE")
	router.HandleFunc("/api/cart/{sessionUID}/items/{foodItemUID}/quantity/{quantity}", s.updateQuantityPage()).Methods("PUT")
	router.HandleFunc("/api/cart/{sessionUID}/items/{foodItemUID}/instructions", s.updateInstructionsPage()).Methods("PUT")
}

// snapshotResponse is what the cart screen, the catalog badges and the
// header badge render from.
type snapshotResponse struct {
	Lines            []Line
	TotalPrice       int
	NutritionSummary Nutrition
	ItemCount        int
}

func newSnapshotResponse(state State) snapshotResponse {
	return snapshotResponse{
		Lines:            state.Lines,
		TotalPrice:       state.TotalPrice,
		NutritionSummary: state.NutritionSummary,
		ItemCount:        state.ItemCount(),
	}
}

func (s webService) cartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := mux.Vars(r)["sessionUID"]

		errorWriter.Write(c, w, http.StatusOK, newSnapshotResponse(s.cartStore.Snapshot(sessionUID)))
	}
}

func (s webService) addItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := mux.Vars(r)["sessionUID"]

		addItem, err := cartapi.NewAddItemFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		item, found, err := s.foodItemStore.Get(c, addItem.FoodItemUID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInternalError(err))
			return
		}
		if !found {
			errorWriter.WriteError(c, w, 3, myerrors.NewNotFoundError(fmt.Errorf("food-item with uid %s not found", addItem.FoodItemUID)))
			return
		}

		s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Add %d x %s to cart of session %s", addItem.Quantity, item.Name, sessionUID)

		state := s.cartStore.AddItem(sessionUID, snapshotFoodItem(item), addItem.Quantity, addItem.Instructions)

		errorWriter.Write(c, w, http.StatusOK, newSnapshotResponse(state))
	}
}

func (s webService) removeItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := mux.Vars(r)["sessionUID"]
		foodItemUID := mux.Vars(r)["foodItemUID"]

		state := s.cartStore.RemoveItem(sessionUID, foodItemUID)

		errorWriter.Write(c, w, http.StatusOK, newSnapshotResponse(state))
	}
}

func (s webService) updateQuantityPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := mux.Vars(r)["sessionUID"]
		foodItemUID := mux.Vars(r)["foodItemUID"]
		quantity, err := strconv.Atoi(mux.Vars(r)["quantity"])
		if err != nil {
			errorWriter.WriteError(c, w, 4, myerrors.NewInvalidInputError(err))
			return
		}

		state := s.cartStore.UpdateQuantity(sessionUID, foodItemUID, quantity)

		errorWriter.Write(c, w, http.StatusOK, newSnapshotResponse(state))
	}
}

func (s webService) updateInstructionsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := mux.Vars(r)["sessionUID"]
		foodItemUID := mux.Vars(r)["foodItemUID"]

		update, err := cartapi.NewUpdateInstructionsFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 5, err)
			return
		}

		state := s.cartStore.UpdateInstructions(sessionUID, foodItemUID, update.Instructions)

		errorWriter.Write(c, w, http.StatusOK, newSnapshotResponse(state))
	}
}

func (s webService) clearCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := mux.Vars(r)["sessionUID"]

		s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Clear cart of session %s", sessionUID)

		state := s.cartStore.Clear(sessionUID)

		errorWriter.Write(c, w, http.StatusOK, newSnapshotResponse(state))
	}
}

// snapshotFoodItem freezes the catalog item into the value the cart keeps:
// whatever the item looked like at the moment of adding is what the cart
// shows, even if the vendor changes the catalog afterwards.
func snapshotFoodItem(item catalog.FoodItem) FoodItem {
	snapshot := FoodItem{
		UID:             item.UID,
		VendorUID:       item.VendorUID,
		Name:            item.Name,
		Description:     item.Description,
		Price:           item.Price,
		Currency:        item.Currency,
		DietaryTags:     item.DietaryTags,
		Allergens:       item.Allergens,
		PrepTimeMinutes: item.PrepTimeMinutes,
	}
	if item.Nutrition != nil {
		nutrition := Nutrition{
			Calories: item.Nutrition.Calories,
			Protein:  item.Nutrition.Protein,
			Carbs:    item.Nutrition.Carbs,
			Fat:      item.Nutrition.Fat,
		}
		snapshot.Nutrition = &nutrition
	}
	return snapshot
}
