package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/MarcGrol/foodorder/lib/myerrors"
	"github.com/MarcGrol/foodorder/lib/mylog"
	"github.com/MarcGrol/foodorder/services/cart"
	"github.com/MarcGrol/foodorder/services/order"
	"github.com/MarcGrol/foodorder/services/order/orderevents"
)

const (
	deliveryFeeInCents        = 399
	estimatedDeliveryDuration = 45 * time.Minute

	// Payment happens at the door, so checkout itself never talks to a PSP.
	PaymentMethodCashOnDelivery = "cash_on_delivery"
)

func (s *service) Subscribe(c context.Context) error {
	err := s.publisher.CreateTopic(c, orderevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", orderevents.TopicName, err)
	}

	return nil
}

// placeOrder converts the session's cart into persisted orders, one per
// vendor. The cart is only cleared when every order has been stored and
// announced: a failed checkout leaves the cart exactly as it was.
func (s *service) placeOrder(c context.Context, sessionUID string) ([]order.Order, error) {
	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Checkout of cart of session %s", sessionUID)

	profile, found, err := s.profileStore.Get(c, sessionUID)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}
	if !found || !profile.HasDeliveryAddress() {
		return nil, myerrors.NewInvalidInputErrorf("session %s has no delivery address on file", sessionUID)
	}

	state := s.cartStore.Snapshot(sessionUID)
	if state.IsEmpty() {
		return nil, myerrors.NewInvalidInputErrorf("cart of session %s is empty", sessionUID)
	}

	orders, lines := s.composeOrders(sessionUID, profile.DeliveryAddress, state)

	err = s.orderStore.RunInTransaction(c, func(c context.Context) error {
		for _, ord := range orders {
			err := s.orderStore.Put(c, ord.UID, ord)
			if err != nil {
				return myerrors.NewInternalError(err)
			}
		}
		for _, line := range lines {
			err := s.lineStore.Put(c, line.UID, line)
			if err != nil {
				return myerrors.NewInternalError(err)
			}
		}
		for _, ord := range orders {
			err := s.publisher.Publish(c, orderevents.TopicName, orderevents.OrderPlaced{
				OrderUID:           ord.UID,
				CustomerUID:        ord.CustomerUID,
				VendorUID:          ord.VendorUID,
				TotalAmountInCents: ord.TotalAmount,
				Currency:           ord.Currency,
			})
			if err != nil {
				return myerrors.NewInternalError(err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cartStore.Clear(sessionUID)

	for _, ord := range orders {
		s.logger.Log(c, ord.UID, mylog.SeverityInfo, "Placed order %s (%s) at vendor %s", ord.UID, ord.GetPriceInCurrency(), ord.VendorUID)
	}

	return orders, nil
}

// composeOrders groups the cart lines per vendor, in the order the vendors
// first appear in the cart. Lines from different vendors become separate
// orders so each kitchen only sees its own work.
func (s *service) composeOrders(sessionUID string, deliveryAddress string, state cart.State) ([]order.Order, []order.OrderLine) {
	now := s.nower.Now()
	estimatedDelivery := now.Add(estimatedDeliveryDuration)

	vendorUIDs := []string{}
	linesPerVendor := map[string][]cart.Line{}
	for _, line := range state.Lines {
		vendorUID := line.Item.VendorUID
		if _, seen := linesPerVendor[vendorUID]; !seen {
			vendorUIDs = append(vendorUIDs, vendorUID)
		}
		linesPerVendor[vendorUID] = append(linesPerVendor[vendorUID], line)
	}

	orders := make([]order.Order, 0, len(vendorUIDs))
	orderLines := []order.OrderLine{}
	for _, vendorUID := range vendorUIDs {
		cartLines := linesPerVendor[vendorUID]

		orderUID := s.uuider.Create()

		subTotal := 0
		for idx, cartLine := range cartLines {
			subTotal += cartLine.TotalPrice()
			orderLines = append(orderLines, order.OrderLine{
				UID:          fmt.Sprintf("%s_%d", orderUID, idx),
				OrderUID:     orderUID,
				FoodItemUID:  cartLine.Item.UID,
				Name:         cartLine.Item.Name,
				Quantity:     cartLine.Quantity,
				UnitPrice:    cartLine.Item.Price,
				Instructions: cartLine.Instructions,
			})
		}

		orders = append(orders, order.Order{
			UID:                   orderUID,
			CustomerUID:           sessionUID,
			VendorUID:             vendorUID,
			Status:                order.StatusPending,
			TotalAmount:           subTotal + deliveryFeeInCents,
			Currency:              cartLines[0].Item.Currency,
			DeliveryAddress:       deliveryAddress,
			DeliveryFee:           deliveryFeeInCents,
			EstimatedDeliveryTime: estimatedDelivery,
			CreatedAt:             now,
		})
	}

	return orders, orderLines
}
