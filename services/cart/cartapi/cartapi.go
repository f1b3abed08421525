package cartapi

import (
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"

	"github.com/MarcGrol/foodorder/lib/myerrors"
)

// AddItem is the form payload with which a screen puts a catalog item in the cart.
type AddItem struct {
	FoodItemUID  string `form:"foodItemUid"`
	Quantity     int    `form:"quantity"`
	Instructions string `form:"instructions"`
}

// UpdateInstructions carries the free-text special instructions for one cart line.
type UpdateInstructions struct {
	Instructions string `form:"instructions"`
}

func NewAddItemFromRequest(r *http.Request) (AddItem, error) {
	err := r.ParseForm()
	if err != nil {
		return AddItem{}, myerrors.NewInvalidInputError(err)
	}
	return newAddItemFromValues(r.Form)
}

func newAddItemFromValues(values url.Values) (AddItem, error) {
	addItem := AddItem{}
	err := formcodec.NewDecoder().Decode(&addItem, values)
	if err != nil {
		return AddItem{}, myerrors.NewInvalidInputErrorf("error decoding form: %s", err)
	}

	if addItem.FoodItemUID == "" {
		return AddItem{}, myerrors.NewInvalidInputErrorf("missing foodItemUid")
	}
	// an unspecified quantity means a single item
	if addItem.Quantity == 0 {
		addItem.Quantity = 1
	}
	if addItem.Quantity < 0 {
		return AddItem{}, myerrors.NewInvalidInputErrorf("quantity must be positive")
	}

	return addItem, nil
}

func NewUpdateInstructionsFromRequest(r *http.Request) (UpdateInstructions, error) {
	err := r.ParseForm()
	if err != nil {
		return UpdateInstructions{}, myerrors.NewInvalidInputError(err)
	}

	update := UpdateInstructions{}
	err = formcodec.NewDecoder().Decode(&update, r.Form)
	if err != nil {
		return UpdateInstructions{}, myerrors.NewInvalidInputErrorf("error decoding form: %s", err)
	}

	return update, nil
}
