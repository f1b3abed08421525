package checkout

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/foodorder/lib/mylog"
	"github.com/MarcGrol/foodorder/lib/mypublisher"
	"github.com/MarcGrol/foodorder/lib/mystore"
	"github.com/MarcGrol/foodorder/lib/mytime"
	"github.com/MarcGrol/foodorder/lib/myuuid"
	"github.com/MarcGrol/foodorder/services/cart"
	"github.com/MarcGrol/foodorder/services/customer"
	"github.com/MarcGrol/foodorder/services/order"
	"github.com/MarcGrol/foodorder/services/order/orderevents"
)

var (
	hungryCustomer = customer.Profile{
		UID:             "session_1",
		FullName:        "Sam Eater",
		EmailAddress:    "sam@example.com",
		DeliveryAddress: "Main street 1, Utrecht",
	}
	homelessProfile = customer.Profile{
		UID:          "session_2",
		FullName:     "No Address",
		EmailAddress: "nowhere@example.com",
	}
	burger = cart.FoodItem{
		UID:       "item_burger",
		VendorUID: "vendor_grill",
		Name:      "Veggie Burger",
		Price:     500,
		Currency:  "EUR",
	}
	fries = cart.FoodItem{
		UID:       "item_fries",
		VendorUID: "vendor_grill",
		Name:      "Fries",
		Price:     300,
		Currency:  "EUR",
	}
	sushi = cart.FoodItem{
		UID:       "item_sushi",
		VendorUID: "vendor_sushi",
		Name:      "Sushi Box",
		Price:     1200,
		Currency:  "EUR",
	}
)

func TestCheckoutService(t *testing.T) {

	t.Run("Checkout single vendor cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, deps := setup(ctrl)
		deps.profileStore.Put(ctx, hungryCustomer.UID, hungryCustomer)
		deps.cartStore.AddItem("session_1", burger, 2, "no onions")
		deps.cartStore.AddItem("session_1", fries, 1, "")

		// given
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime)
		deps.uuider.EXPECT().Create().Return("order_a")
		deps.publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, orderevents.OrderPlaced{
			OrderUID:           "order_a",
			CustomerUID:        "session_1",
			VendorUID:          "vendor_grill",
			TotalAmountInCents: 1699, // 2*500 + 300 + 399 delivery fee
			Currency:           "EUR",
		}).Return(nil)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/checkout/session_1", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, "order_a")
		assert.Contains(t, got, "cash_on_delivery")
		assert.Contains(t, got, "Main street 1, Utrecht")

		ord, exists, _ := deps.orderStore.Get(ctx, "order_a")
		assert.True(t, exists)
		assert.Equal(t, order.StatusPending, ord.Status)
		assert.Equal(t, 1699, ord.TotalAmount)
		assert.Equal(t, 399, ord.DeliveryFee)
		assert.Equal(t, mytime.ExampleTime.Add(45*time.Minute), ord.EstimatedDeliveryTime)

		line, exists, _ := deps.lineStore.Get(ctx, "order_a_0")
		assert.True(t, exists)
		assert.Equal(t, "Veggie Burger", line.Name)
		assert.Equal(t, 2, line.Quantity)
		assert.Equal(t, "no onions", line.Instructions)

		// cart is gone
		assert.True(t, deps.cartStore.Snapshot("session_1").IsEmpty())
	})

	t.Run("Checkout splits cart per vendor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, deps := setup(ctrl)
		deps.profileStore.Put(ctx, hungryCustomer.UID, hungryCustomer)
		deps.cartStore.AddItem("session_1", burger, 1, "")
		deps.cartStore.AddItem("session_1", sushi, 1, "")

		// given
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime)
		deps.uuider.EXPECT().Create().Return("order_a")
		deps.uuider.EXPECT().Create().Return("order_b")
		deps.publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, gomock.Any()).Return(nil).Times(2)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/checkout/session_1", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then: one order per vendor, each with its own delivery fee
		assert.Equal(t, 200, response.Code)

		grillOrder, exists, _ := deps.orderStore.Get(ctx, "order_a")
		assert.True(t, exists)
		assert.Equal(t, "vendor_grill", grillOrder.VendorUID)
		assert.Equal(t, 500+399, grillOrder.TotalAmount)

		sushiOrder, exists, _ := deps.orderStore.Get(ctx, "order_b")
		assert.True(t, exists)
		assert.Equal(t, "vendor_sushi", sushiOrder.VendorUID)
		assert.Equal(t, 1200+399, sushiOrder.TotalAmount)
	})

	t.Run("Checkout empty cart fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, deps := setup(ctrl)
		deps.profileStore.Put(ctx, hungryCustomer.UID, hungryCustomer)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/checkout/session_1", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Checkout without delivery address fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, deps := setup(ctrl)
		deps.profileStore.Put(ctx, homelessProfile.UID, homelessProfile)
		deps.cartStore.AddItem("session_2", burger, 1, "")

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/checkout/session_2", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then: nothing ordered, cart untouched
		assert.Equal(t, 400, response.Code)
		assert.Equal(t, 1, deps.cartStore.Snapshot("session_2").ItemCount())
	})

	t.Run("Failed checkout leaves cart intact", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, deps := setup(ctrl)
		deps.profileStore.Put(ctx, hungryCustomer.UID, hungryCustomer)
		deps.cartStore.AddItem("session_1", burger, 2, "no onions")

		// given
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime)
		deps.uuider.EXPECT().Create().Return("order_a")
		deps.publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, gomock.Any()).Return(errors.New("broker down"))

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/checkout/session_1", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then: the cart can be checked out again later
		assert.Equal(t, 500, response.Code)
		state := deps.cartStore.Snapshot("session_1")
		assert.Equal(t, 2, state.ItemCount())
		assert.Equal(t, "no onions", state.Lines[0].Instructions)
	})
}

type testDeps struct {
	cartStore    *cart.Store
	profileStore mystore.Store[customer.Profile]
	orderStore   mystore.Store[order.Order]
	lineStore    mystore.Store[order.OrderLine]
	nower        *mytime.MockNower
	uuider       *myuuid.MockUUIDer
	publisher    *mypublisher.MockPublisher
}

func setup(ctrl *gomock.Controller) (context.Context, *mux.Router, testDeps) {
	c := context.TODO()
	router := mux.NewRouter()

	deps := testDeps{
		cartStore: cart.NewStore(),
		nower:     mytime.NewMockNower(ctrl),
		uuider:    myuuid.NewMockUUIDer(ctrl),
		publisher: mypublisher.NewMockPublisher(ctrl),
	}
	deps.profileStore, _, _ = mystore.NewInMemoryStore[customer.Profile](c)
	deps.orderStore, _, _ = mystore.NewInMemoryStore[order.Order](c)
	deps.lineStore, _, _ = mystore.NewInMemoryStore[order.OrderLine](c)

	sut := NewService(deps.cartStore, deps.profileStore, deps.orderStore, deps.lineStore, deps.nower, deps.uuider, mylog.New("checkout"), deps.publisher)
	sut.RegisterEndpoints(c, router)

	return c, router, deps
}
