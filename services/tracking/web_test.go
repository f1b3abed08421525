package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/foodorder/lib/myevents"
	"github.com/MarcGrol/foodorder/lib/mylog"
	"github.com/MarcGrol/foodorder/lib/mypubsub"
	"github.com/MarcGrol/foodorder/lib/mystore"
	"github.com/MarcGrol/foodorder/lib/mytime"
	"github.com/MarcGrol/foodorder/services/order/orderevents"
)

func TestTrackingService(t *testing.T) {

	t.Run("Order placed starts a timeline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, timelineStore, nower := setup(ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)

		// when
		response := postEvent(t, router, orderevents.OrderPlaced{
			OrderUID:           "order_1",
			CustomerUID:        "cust_1",
			VendorUID:          "vendor_1",
			TotalAmountInCents: 1699,
			Currency:           "EUR",
		})

		// then
		assert.Equal(t, 200, response.Code)
		timeline, exists, _ := timelineStore.Get(ctx, "order_1")
		assert.True(t, exists)
		assert.Equal(t, "cust_1", timeline.CustomerUID)
		assert.Len(t, timeline.Entries, 1)
		assert.Equal(t, "pending", timeline.Entries[0].Status)
		assert.Equal(t, mytime.ExampleTime, timeline.Entries[0].At)
	})

	t.Run("Duplicate placed event is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, timelineStore, nower := setup(ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime).Times(2)
		placed := orderevents.OrderPlaced{OrderUID: "order_1", CustomerUID: "cust_1", VendorUID: "vendor_1"}

		// when
		postEvent(t, router, placed)
		response := postEvent(t, router, placed)

		// then
		assert.Equal(t, 200, response.Code)
		timeline, _, _ := timelineStore.Get(ctx, "order_1")
		assert.Len(t, timeline.Entries, 1)
	})

	t.Run("Status changes extend the timeline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, timelineStore, nower := setup(ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime).Times(3)

		// given
		postEvent(t, router, orderevents.OrderPlaced{OrderUID: "order_1", CustomerUID: "cust_1", VendorUID: "vendor_1"})

		// when
		postEvent(t, router, orderevents.OrderStatusChanged{OrderUID: "order_1", OldStatus: "pending", NewStatus: "confirmed"})
		postEvent(t, router, orderevents.OrderStatusChanged{OrderUID: "order_1", OldStatus: "confirmed", NewStatus: "preparing"})

		// then
		timeline, _, _ := timelineStore.Get(ctx, "order_1")
		assert.Len(t, timeline.Entries, 3)
		assert.Equal(t, "preparing", timeline.Entries[2].Status)
	})

	t.Run("Duplicate status event is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, timelineStore, nower := setup(ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime).Times(3)
		changed := orderevents.OrderStatusChanged{OrderUID: "order_1", OldStatus: "pending", NewStatus: "confirmed"}

		// given
		postEvent(t, router, orderevents.OrderPlaced{OrderUID: "order_1", CustomerUID: "cust_1", VendorUID: "vendor_1"})

		// when
		postEvent(t, router, changed)
		response := postEvent(t, router, changed)

		// then
		assert.Equal(t, 200, response.Code)
		timeline, _, _ := timelineStore.Get(ctx, "order_1")
		assert.Len(t, timeline.Entries, 2)
	})

	t.Run("Fetch timeline of order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, nower := setup(ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		postEvent(t, router, orderevents.OrderPlaced{OrderUID: "order_1", CustomerUID: "cust_1", VendorUID: "vendor_1"})

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/tracking/order_1", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "pending")
	})

	t.Run("Fetch timeline of unknown order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _ := setup(ctrl)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/tracking/order_unknown", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Unparsable event is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _ := setup(ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/tracking/event", bytes.NewBufferString("this is not json"))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
	})
}

// postEvent wraps an event the way the pubsub push-subscription would
func postEvent(t *testing.T, router *mux.Router, event myevents.Event) *httptest.ResponseRecorder {
	payload, err := json.Marshal(event)
	assert.NoError(t, err)

	envelope, err := json.Marshal(myevents.EventEnvelope{
		Topic:         orderevents.TopicName,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(payload),
	})
	assert.NoError(t, err)

	pushRequest, err := json.Marshal(myevents.PushRequest{
		Message: myevents.PushMessage{Data: envelope},
	})
	assert.NoError(t, err)

	request, err := http.NewRequest(http.MethodPost, "/api/tracking/event", bytes.NewBuffer(pushRequest))
	assert.NoError(t, err)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	return response
}

func setup(ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[Timeline], *mytime.MockNower) {
	c := context.TODO()
	router := mux.NewRouter()
	timelineStore, _, _ := mystore.NewInMemoryStore[Timeline](c)
	nower := mytime.NewMockNower(ctrl)
	pubsub, _, _ := mypubsub.New(c)

	sut := NewService(timelineStore, pubsub, nower, mylog.New("tracking"))
	sut.RegisterEndpoints(c, router)

	return c, router, timelineStore, nower
}
