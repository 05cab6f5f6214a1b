package basket

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/delivecrous/lib/mycontext"
	"github.com/MarcGrol/delivecrous/lib/myhttp"
	"github.com/MarcGrol/delivecrous/lib/mylog"
	"github.com/MarcGrol/delivecrous/lib/mypublisher"
	"github.com/MarcGrol/delivecrous/lib/mystore"
	"github.com/MarcGrol/delivecrous/lib/mytime"
	"github.com/MarcGrol/delivecrous/lib/myuuid"
	"github.com/MarcGrol/delivecrous/services/basket/basketapi"
	"github.com/MarcGrol/delivecrous/services/basket/basketevents"
	"github.com/MarcGrol/delivecrous/services/catalog"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[Basket], catalogAccessor catalog.Accessor, pub mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *webService {
	return &webService{
		service: newService(store, catalogAccessor, pub, nower, uuider, logger),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	err := s.service.publisher.CreateTopic(c, basketevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", basketevents.TopicName, err)
	}

	router.HandleFunc("/api/basket", s.listBasketsPage()).Methods("GET")
	router.HandleFunc("/api/basket", s.initializeBasketPage()).Methods("POST")
	router.HandleFunc("/api/basket/{basketUID}", s.getBasketPage()).Methods("GET")
	router.HandleFunc("/api/basket/{basketUID}/dish/{dishUID}", s.addDishPage()).Methods("POST")
	router.HandleFunc("/api/basket/{basketUID}/dish/{dishUID}", s.removeDishPage()).Methods("DELETE")
	router.HandleFunc("/api/basket/{basketUID}/deliveryAddress", s.setDeliveryAddressPage()).Methods("PUT")

	return nil
}

func (s *webService) listBasketsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		baskets, err := s.service.listBaskets(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, baskets)
	}
}

func (s *webService) getBasketPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		basketUID := mux.Vars(r)["basketUID"]

		basket, err := s.service.getBasket(c, basketUID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, basket)
	}
}

func (s *webService) initializeBasketPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		basket, err := s.service.initializeBasket(c)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("%s/api/basket/%s", myhttp.HostnameWithScheme(r), basket.UID))
		errorWriter.Write(c, w, http.StatusCreated, basket)
	}
}

func (s *webService) addDishPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		basketUID := mux.Vars(r)["basketUID"]
		dishUID := mux.Vars(r)["dishUID"]

		basket, err := s.service.addDishToBasket(c, basketUID, dishUID)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, basket)
	}
}

func (s *webService) removeDishPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		basketUID := mux.Vars(r)["basketUID"]
		dishUID := mux.Vars(r)["dishUID"]

		basket, err := s.service.removeDishFromBasket(c, basketUID, dishUID)
		if err != nil {
			errorWriter.WriteError(c, w, 5, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, basket)
	}
}

func (s *webService) setDeliveryAddressPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		basketUID := mux.Vars(r)["basketUID"]

		form, err := basketapi.NewFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 6, err)
			return
		}

		basket, err := s.service.setDeliveryAddress(c, basketUID, form.DeliveryAddress)
		if err != nil {
			errorWriter.WriteError(c, w, 6, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, basket)
	}
}
