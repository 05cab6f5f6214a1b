package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/delivecrous/lib/mylog"
	"github.com/MarcGrol/delivecrous/lib/mystore"
	"github.com/MarcGrol/delivecrous/lib/mytime"
	"github.com/MarcGrol/delivecrous/lib/myuuid"
)

var (
	dish1 = Dish{UID: "d1", Name: "Ratatouille", Description: "Stewed vegetables", Price: 1250, ImageURL: "https://example.com/r.jpg", CreatedAt: mytime.ExampleTime}
	dish2 = Dish{UID: "d2", Name: "Crepe", Description: "Sweet pancake", Price: 500, CreatedAt: mytime.ExampleTime}
)

func TestCatalogService(t *testing.T) {

	t.Run("List dishes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _, _, _ := setup(ctrl)

		// given
		storer.Put(ctx, dish1.UID, dish1)
		storer.Put(ctx, dish2.UID, dish2)

		// when
		response := serve(t, router, http.MethodGet, "/api/dish", "")

		// then
		assert.Equal(t, 200, response.Code)
		dishes := []Dish{}
		assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &dishes))
		assert.Len(t, dishes, 2)
		assert.Equal(t, "Crepe", dishes[0].Name)
		assert.Equal(t, "Ratatouille", dishes[1].Name)
	})

	t.Run("Get dish", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _, _, _ := setup(ctrl)

		// given
		storer.Put(ctx, dish1.UID, dish1)

		// when
		response := serve(t, router, http.MethodGet, "/api/dish/d1", "")

		// then
		assert.Equal(t, 200, response.Code)
		got := Dish{}
		assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &got))
		assert.Equal(t, 1250, got.Price)
	})

	t.Run("Get dish not exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _ := setup(ctrl)

		// when
		response := serve(t, router, http.MethodGet, "/api/dish/d1", "")

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Add dish", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, nower, uuider, _ := setup(ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("d3")

		// when
		response := serve(t, router, http.MethodPost, "/api/dish", "name=Quiche&description=Lorraine&price=800&imageUrl=https%3A%2F%2Fexample.com%2Fq.jpg")

		// then
		assert.Equal(t, 201, response.Code)
		dish, exists, err := storer.Get(ctx, "d3")
		assert.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, Dish{UID: "d3", Name: "Quiche", Description: "Lorraine", Price: 800, ImageURL: "https://example.com/q.jpg", CreatedAt: mytime.ExampleTime}, dish)
	})

	t.Run("Add dish with negative price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _, _, _ := setup(ctrl)

		// when
		response := serve(t, router, http.MethodPost, "/api/dish", "name=Quiche&price=-1")

		// then
		assert.Equal(t, 400, response.Code)
		all, _ := storer.List(ctx)
		assert.Empty(t, all)
	})

	t.Run("Update dish", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, nower, _, _ := setup(ctrl)

		// given
		storer.Put(ctx, dish1.UID, dish1)
		nower.EXPECT().Now().Return(mytime.ExampleTime)

		// when
		response := serve(t, router, http.MethodPut, "/api/dish/d1", "name=Ratatouille&description=Nicoise&price=1400&imageUrl=https%3A%2F%2Fexample.com%2Fn.jpg")

		// then
		assert.Equal(t, 200, response.Code)
		dish, _, _ := storer.Get(ctx, "d1")
		assert.Equal(t, "Nicoise", dish.Description)
		assert.Equal(t, 1400, dish.Price)
		assert.Equal(t, "https://example.com/n.jpg", dish.ImageURL)
		assert.Equal(t, &mytime.ExampleTime, dish.LastModified)
		assert.Equal(t, mytime.ExampleTime, dish.CreatedAt)
	})

	t.Run("Update price only keeps other fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, nower, _, _ := setup(ctrl)

		// given
		storer.Put(ctx, dish1.UID, dish1)
		nower.EXPECT().Now().Return(mytime.ExampleTime)

		// when
		response := serve(t, router, http.MethodPut, "/api/dish/d1", "price=1400")

		// then
		assert.Equal(t, 200, response.Code)
		dish, _, _ := storer.Get(ctx, "d1")
		assert.Equal(t, 1400, dish.Price)
		assert.Equal(t, dish1.Name, dish.Name)
		assert.Equal(t, dish1.Description, dish.Description)
		assert.Equal(t, dish1.ImageURL, dish.ImageURL)
	})

	t.Run("Update name only keeps price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, nower, _, _ := setup(ctrl)

		// given
		storer.Put(ctx, dish1.UID, dish1)
		nower.EXPECT().Now().Return(mytime.ExampleTime)

		// when
		response := serve(t, router, http.MethodPut, "/api/dish/d1", "name=Ratatouille+Nicoise")

		// then
		assert.Equal(t, 200, response.Code)
		dish, _, _ := storer.Get(ctx, "d1")
		assert.Equal(t, "Ratatouille Nicoise", dish.Name)
		assert.Equal(t, dish1.Price, dish.Price)
		assert.Equal(t, dish1.Description, dish.Description)
		assert.Equal(t, dish1.ImageURL, dish.ImageURL)
	})

	t.Run("Update with negative price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _, _, _ := setup(ctrl)

		// given
		storer.Put(ctx, dish1.UID, dish1)

		// when
		response := serve(t, router, http.MethodPut, "/api/dish/d1", "price=-1")

		// then
		assert.Equal(t, 400, response.Code)
		dish, _, _ := storer.Get(ctx, "d1")
		assert.Equal(t, dish1, dish)
	})

	t.Run("Update dish not exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, nower, _, _ := setup(ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)

		// when
		response := serve(t, router, http.MethodPut, "/api/dish/d1", "name=Ratatouille&price=1400")

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Delete dish", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _, _, _ := setup(ctrl)

		// given
		storer.Put(ctx, dish1.UID, dish1)

		// when
		response := serve(t, router, http.MethodDelete, "/api/dish/d1", "")

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "Ratatouille")
		_, exists, _ := storer.Get(ctx, "d1")
		assert.False(t, exists)
	})

	t.Run("Delete dish not exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _ := setup(ctrl)

		// when
		response := serve(t, router, http.MethodDelete, "/api/dish/d1", "")

		// then
		assert.Equal(t, 404, response.Code)
	})
}

func TestFindDishByUID(t *testing.T) {

	t.Run("Found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, _, storer, _, _, sut := setup(ctrl)

		// given
		storer.Put(ctx, dish1.UID, dish1)

		// when
		dish, found, err := sut.FindDishByUID(ctx, "d1")

		// then
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, dish1, dish)
	})

	t.Run("Not found is not an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, _, _, _, _, sut := setup(ctrl)

		// when
		_, found, err := sut.FindDishByUID(ctx, "unknown")

		// then
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Storage failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx := context.TODO()
		storer := mystore.NewMockStore[Dish](ctrl)
		sut := NewService(storer, mytime.NewMockNower(ctrl), myuuid.NewMockUUIDer(ctrl), mylog.New("catalog"))

		// given
		storer.EXPECT().Get(gomock.Any(), "d1").Return(Dish{}, false, fmt.Errorf("connection refused"))

		// when
		_, found, err := sut.FindDishByUID(ctx, "d1")

		// then
		assert.False(t, found)
		assert.True(t, errors.Is(err, ErrStorageFailure))
	})
}

func serve(t *testing.T, router *mux.Router, method string, url string, formBody string) *httptest.ResponseRecorder {
	request, err := http.NewRequest(method, url, strings.NewReader(formBody))
	assert.NoError(t, err)
	if formBody != "" {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	request.Host = "localhost:8888"
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func setup(ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[Dish], *mytime.MockNower, *myuuid.MockUUIDer, *webService) {
	c := context.TODO()
	storer, _, _ := mystore.NewInMemoryStore[Dish](c)
	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)

	sut := NewService(storer, nower, uuider, mylog.New("catalog"))
	router := mux.NewRouter()
	sut.RegisterEndpoints(c, router)

	return c, router, storer, nower, uuider, sut
}
