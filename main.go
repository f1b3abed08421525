package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/MarcGrol/foodorder/lib/mylog"
	"github.com/MarcGrol/foodorder/lib/mypublisher"
	"github.com/MarcGrol/foodorder/lib/mypubsub"
	"github.com/MarcGrol/foodorder/lib/myqueue"
	"github.com/MarcGrol/foodorder/lib/mystore"
	"github.com/MarcGrol/foodorder/lib/mytime"
	"github.com/MarcGrol/foodorder/lib/myuuid"
	"github.com/MarcGrol/foodorder/services/cart"
	"github.com/MarcGrol/foodorder/services/catalog"
	"github.com/MarcGrol/foodorder/services/checkout"
	"github.com/MarcGrol/foodorder/services/customer"
	"github.com/MarcGrol/foodorder/services/order"
	"github.com/MarcGrol/foodorder/services/tracking"
	"github.com/MarcGrol/foodorder/services/warmup"
)

func main() {
	c := context.Background()

	// local development: flip to the gcloud backed infra by setting GOOGLE_CLOUD_PROJECT
	err := godotenv.Load()
	if err != nil {
		log.Printf("No .env file found, using environment as-is")
	}

	router := mux.NewRouter()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task queue: %s", err)
	}
	defer queueCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	foodItemStore, foodItemCleanup, err := mystore.New[catalog.FoodItem](c)
	if err != nil {
		log.Fatalf("Error creating food-item store: %s", err)
	}
	defer foodItemCleanup()

	profileStore, profileCleanup, err := mystore.New[customer.Profile](c)
	if err != nil {
		log.Fatalf("Error creating profile store: %s", err)
	}
	defer profileCleanup()

	orderStore, orderCleanup, err := mystore.New[order.Order](c)
	if err != nil {
		log.Fatalf("Error creating order store: %s", err)
	}
	defer orderCleanup()

	lineStore, lineCleanup, err := mystore.New[order.OrderLine](c)
	if err != nil {
		log.Fatalf("Error creating order-line store: %s", err)
	}
	defer lineCleanup()

	timelineStore, timelineCleanup, err := mystore.New[tracking.Timeline](c)
	if err != nil {
		log.Fatalf("Error creating timeline store: %s", err)
	}
	defer timelineCleanup()

	// carts live in memory only: they are per-session UI state, not records
	cartStore := cart.NewStore()

	catalogService := catalog.NewService(foodItemStore, nower, uuider, mylog.New("catalog"))
	catalogService.RegisterEndpoints(c, router)

	customerService := customer.NewService(profileStore, nower, mylog.New("customer"))
	customerService.RegisterEndpoints(c, router)

	cartService := cart.NewService(cartStore, foodItemStore, mylog.New("cart"))
	cartService.RegisterEndpoints(c, router)

	orderService := order.NewService(orderStore, lineStore, nower, mylog.New("order"), publisher)
	orderService.RegisterEndpoints(c, router)
	err = orderService.Subscribe(c)
	if err != nil {
		log.Fatalf("Error subscribing order service: %s", err)
	}

	checkoutService := checkout.NewService(cartStore, profileStore, orderStore, lineStore, nower, uuider, mylog.New("checkout"), publisher)
	checkoutService.RegisterEndpoints(c, router)
	err = checkoutService.Subscribe(c)
	if err != nil {
		log.Fatalf("Error subscribing checkout service: %s", err)
	}

	trackingService := tracking.NewService(timelineStore, pubsub, nower, mylog.New("tracking"))
	trackingService.RegisterEndpoints(c, router)
	err = trackingService.Subscribe(c)
	if err != nil {
		log.Fatalf("Error subscribing tracking service: %s", err)
	}

	warmupService := warmup.NewService(foodItemStore)
	warmupService.RegisterEndpoints(c, router)

	startWebServerBlocking(router)
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
