package catalog

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/delivecrous/lib/mycontext"
	"github.com/MarcGrol/delivecrous/lib/myhttp"
	"github.com/MarcGrol/delivecrous/lib/mylog"
	"github.com/MarcGrol/delivecrous/lib/mystore"
	"github.com/MarcGrol/delivecrous/lib/mytime"
	"github.com/MarcGrol/delivecrous/lib/myuuid"
	"github.com/MarcGrol/delivecrous/services/catalog/catalogapi"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[Dish], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *webService {
	return &webService{
		service: newService(store, nower, uuider, logger),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/dish", s.listDishesPage()).Methods("GET")
	router.HandleFunc("/api/dish", s.addDishPage()).Methods("POST")
	router.HandleFunc("/api/dish/{dishUID}", s.getDishPage()).Methods("GET")
	router.HandleFunc("/api/dish/{dishUID}", s.updateDishPage()).Methods("PUT")
	router.HandleFunc("/api/dish/{dishUID}", s.deleteDishPage()).Methods("DELETE")
}

// FindDishByUID makes the web service usable as catalog accessor for other services
func (s *webService) FindDishByUID(c context.Context, dishUID string) (Dish, bool, error) {
	return s.service.findDishByUID(c, dishUID)
}

// AddDish is used for seeding the catalog outside of a http request
func (s *webService) AddDish(c context.Context, form catalogapi.DishForm) (Dish, error) {
	return s.service.addDish(c, form)
}

func (s *webService) listDishesPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		dishes, err := s.service.listDishes(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, dishes)
	}
}

func (s *webService) getDishPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		dishUID := mux.Vars(r)["dishUID"]

		dish, err := s.service.getDish(c, dishUID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, dish)
	}
}

func (s *webService) addDishPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		form, err := catalogapi.NewFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		dish, err := s.service.addDish(c, form)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusCreated, dish)
	}
}

func (s *webService) updateDishPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		dishUID := mux.Vars(r)["dishUID"]

		form, err := catalogapi.NewPatchFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		dish, err := s.service.updateDish(c, dishUID, form)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, dish)
	}
}

func (s *webService) deleteDishPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		dishUID := mux.Vars(r)["dishUID"]

		dish, err := s.service.deleteDish(c, dishUID)
		if err != nil {
			errorWriter.WriteError(c, w, 5, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, dish)
	}
}
