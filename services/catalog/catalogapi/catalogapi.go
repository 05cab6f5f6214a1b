package catalogapi

import (
	"fmt"
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"

	"github.com/MarcGrol/delivecrous/lib/myerrors"
)

type DishForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Price       int    `form:"price"`
	ImageURL    string `form:"imageUrl"`
}

func (f DishForm) Validate() error {
	if f.Price < 0 {
		return fmt.Errorf("price must not be negative, got %d", f.Price)
	}
	return nil
}

func NewFromRequest(r *http.Request) (DishForm, error) {
	err := r.ParseForm()
	if err != nil {
		return DishForm{}, myerrors.NewInvalidInputError(err)
	}
	return NewFromValues(r.Form)
}

func NewFromValues(values url.Values) (DishForm, error) {
	form := DishForm{}
	err := formcodec.NewDecoder().Decode(&form, values)
	if err != nil {
		return form, myerrors.NewInvalidInputError(fmt.Errorf("error decoding dish form: %s", err))
	}

	return form, nil
}

func (f DishForm) ToForm() (url.Values, error) {
	values, err := formcodec.NewEncoder().Encode(f)
	if err != nil {
		return nil, fmt.Errorf("error encoding dish form: %s", err)
	}

	return values, nil
}

// DishPatchForm only carries the fields that were present in the request
type DishPatchForm struct {
	Name        *string `form:"name"`
	Description *string `form:"description"`
	Price       *int    `form:"price"`
	ImageURL    *string `form:"imageUrl"`
}

func (f DishPatchForm) Validate() error {
	if f.Price != nil && *f.Price < 0 {
		return fmt.Errorf("price must not be negative, got %d", *f.Price)
	}
	return nil
}

func NewPatchFromRequest(r *http.Request) (DishPatchForm, error) {
	err := r.ParseForm()
	if err != nil {
		return DishPatchForm{}, myerrors.NewInvalidInputError(err)
	}
	return NewPatchFromValues(r.Form)
}

func NewPatchFromValues(values url.Values) (DishPatchForm, error) {
	form := DishPatchForm{}
	err := formcodec.NewDecoder().Decode(&form, values)
	if err != nil {
		return form, myerrors.NewInvalidInputError(fmt.Errorf("error decoding dish patch form: %s", err))
	}

	return form, nil
}
