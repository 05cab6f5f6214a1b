package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/delivecrous/lib/mylog"
	"github.com/MarcGrol/delivecrous/lib/mypublisher"
	"github.com/MarcGrol/delivecrous/lib/mypubsub"
	"github.com/MarcGrol/delivecrous/lib/myqueue"
	"github.com/MarcGrol/delivecrous/lib/mystore"
	"github.com/MarcGrol/delivecrous/lib/mytime"
	"github.com/MarcGrol/delivecrous/lib/myuuid"
	"github.com/MarcGrol/delivecrous/services/basket"
	"github.com/MarcGrol/delivecrous/services/catalog"
)

type application struct {
	router  *mux.Router
	catalog dishAdder
}

func newApplication(c context.Context) (*application, func(), error) {
	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	fail := func(err error) (*application, func(), error) {
		cleanup()
		return nil, nil, err
	}

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}
	router := mux.NewRouter()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		return fail(fmt.Errorf("error creating pubsub: %s", err))
	}
	cleanups = append(cleanups, pubsubCleanup)

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		return fail(fmt.Errorf("error creating queue: %s", err))
	}
	cleanups = append(cleanups, queueCleanup)

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		return fail(fmt.Errorf("error creating publisher: %s", err))
	}
	cleanups = append(cleanups, publisherCleanup)
	publisher.RegisterEndpoints(c, router)

	dishStore, dishStoreCleanup, err := mystore.New[catalog.Dish](c)
	if err != nil {
		return fail(fmt.Errorf("error creating dish store: %s", err))
	}
	cleanups = append(cleanups, dishStoreCleanup)
	catalogService := catalog.NewService(dishStore, nower, uuider, mylog.New("catalog"))
	catalogService.RegisterEndpoints(c, router)

	basketStore, basketStoreCleanup, err := mystore.New[basket.Basket](c)
	if err != nil {
		return fail(fmt.Errorf("error creating basket store: %s", err))
	}
	cleanups = append(cleanups, basketStoreCleanup)
	basketService := basket.NewService(basketStore, catalogService, publisher, nower, uuider, mylog.New("basket"))
	err = basketService.RegisterEndpoints(c, router)
	if err != nil {
		return fail(fmt.Errorf("error registering basket endpoints: %s", err))
	}

	return &application{
		router:  router,
		catalog: catalogService,
	}, cleanup, nil
}

func startWebServerBlocking(router *mux.Router, port string) error {
	log.Printf("Starting webserver on port %s (try http://localhost:%s/api/dish)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		return fmt.Errorf("error starting webserver on port %s: %s", port, err)
	}
	return nil
}
