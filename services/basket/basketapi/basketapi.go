package basketapi

import (
	"fmt"
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"

	"github.com/MarcGrol/delivecrous/lib/myerrors"
)

type DeliveryAddressForm struct {
	DeliveryAddress string `form:"deliveryAddress"`
}

func NewFromRequest(r *http.Request) (DeliveryAddressForm, error) {
	err := r.ParseForm()
	if err != nil {
		return DeliveryAddressForm{}, myerrors.NewInvalidInputError(err)
	}
	return NewFromValues(r.Form)
}

func NewFromValues(values url.Values) (DeliveryAddressForm, error) {
	form := DeliveryAddressForm{}
	err := formcodec.NewDecoder().Decode(&form, values)
	if err != nil {
		return form, myerrors.NewInvalidInputError(fmt.Errorf("error decoding delivery-address form: %s", err))
	}

	return form, nil
}

func (f DeliveryAddressForm) ToForm() (url.Values, error) {
	values, err := formcodec.NewEncoder().Encode(f)
	if err != nil {
		return nil, fmt.Errorf("error encoding delivery-address form: %s", err)
	}

	return values, nil
}
