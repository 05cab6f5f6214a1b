package basket

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/MarcGrol/delivecrous/lib/myerrors"
	"github.com/MarcGrol/delivecrous/lib/mylog"
	"github.com/MarcGrol/delivecrous/services/basket/basketevents"
)

func (s *service) listBaskets(c context.Context) ([]Basket, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch all baskets")

	baskets, err := s.basketStore.List(c)
	if err != nil {
		return nil, storageError(err)
	}

	sort.Slice(baskets, func(i, j int) bool {
		return baskets[i].CreatedAt.After(baskets[j].CreatedAt)
	})
	return baskets, nil
}

func (s *service) getBasket(c context.Context, basketUID string) (Basket, error) {
	s.logger.Log(c, basketUID, mylog.SeverityInfo, "Fetch details of basket uid %s", basketUID)

	return s.loadBasket(c, basketUID)
}

func (s *service) initializeBasket(c context.Context) (Basket, error) {
	basketUID := s.uuider.Create()
	basket := newBasket(basketUID, s.nower.Now())

	s.logger.Log(c, basketUID, mylog.SeverityInfo, "Initializing new basket with uid %s", basketUID)

	err := s.basketStore.RunInTransaction(c, func(c context.Context) error {
		err := s.basketStore.Put(c, basketUID, basket)
		if err != nil {
			return storageError(err)
		}

		err = s.publisher.Publish(c, basketevents.TopicName, basketevents.BasketInitialized{
			BasketUID: basketUID,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Basket{}, err
	}

	return basket, nil
}

func (s *service) addDishToBasket(c context.Context, basketUID string, dishUID string) (Basket, error) {
	s.logger.Log(c, basketUID, mylog.SeverityInfo, "Add dish %s to basket %s", dishUID, basketUID)

	now := s.nower.Now()

	var basket Basket
	err := s.basketStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		basket, err = s.loadBasket(c, basketUID)
		if err != nil {
			return err
		}

		// Resolved before mutating: a lookup failure leaves the loaded basket untouched and unsaved.
		// A dish that cannot be resolved is still appended but adds nothing to the total.
		dish, found, err := s.catalog.FindDishByUID(c, dishUID)
		if err != nil {
			return storageError(err)
		}

		basket.DishUIDs = append(slices.Clip(basket.DishUIDs), dishUID)
		if found {
			basket.TotalPrice += dish.Price
		}
		basket.ItemCount = len(basket.DishUIDs)
		basket.LastModified = &now

		err = s.basketStore.Put(c, basketUID, basket)
		if err != nil {
			return storageError(err)
		}

		err = s.publisher.Publish(c, basketevents.TopicName, basketevents.DishAdded{
			BasketUID:  basketUID,
			DishUID:    dishUID,
			Resolved:   found,
			TotalPrice: basket.TotalPrice,
			ItemCount:  basket.ItemCount,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Basket{}, err
	}

	return basket, nil
}

// removeDishFromBasket drops every occurrence of the dish, but the total is lowered by a single dish price only
func (s *service) removeDishFromBasket(c context.Context, basketUID string, dishUID string) (Basket, error) {
	s.logger.Log(c, basketUID, mylog.SeverityInfo, "Remove dish %s from basket %s", dishUID, basketUID)

	now := s.nower.Now()

	var basket Basket
	err := s.basketStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		basket, err = s.loadBasket(c, basketUID)
		if err != nil {
			return err
		}

		if !basket.containsDish(dishUID) {
			return myerrors.NewInvalidInputError(fmt.Errorf("dish %s in basket %s: %w", dishUID, basketUID, ErrItemNotInBasket))
		}

		dish, found, err := s.catalog.FindDishByUID(c, dishUID)
		if err != nil {
			return storageError(err)
		}

		basket.DishUIDs = basket.withoutDish(dishUID)
		if found {
			basket.TotalPrice = max(basket.TotalPrice-dish.Price, 0)
		}
		basket.ItemCount = len(basket.DishUIDs)
		basket.LastModified = &now

		err = s.basketStore.Put(c, basketUID, basket)
		if err != nil {
			return storageError(err)
		}

		err = s.publisher.Publish(c, basketevents.TopicName, basketevents.DishRemoved{
			BasketUID:  basketUID,
			DishUID:    dishUID,
			Resolved:   found,
			TotalPrice: basket.TotalPrice,
			ItemCount:  basket.ItemCount,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Basket{}, err
	}

	return basket, nil
}

func (s *service) setDeliveryAddress(c context.Context, basketUID string, deliveryAddress string) (Basket, error) {
	s.logger.Log(c, basketUID, mylog.SeverityInfo, "Set delivery address of basket %s", basketUID)

	now := s.nower.Now()

	var basket Basket
	err := s.basketStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		basket, err = s.loadBasket(c, basketUID)
		if err != nil {
			return err
		}

		basket.DeliveryAddress = &deliveryAddress
		basket.LastModified = &now

		err = s.basketStore.Put(c, basketUID, basket)
		if err != nil {
			return storageError(err)
		}

		err = s.publisher.Publish(c, basketevents.TopicName, basketevents.DeliveryAddressUpdated{
			BasketUID:       basketUID,
			DeliveryAddress: deliveryAddress,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Basket{}, err
	}

	return basket, nil
}

func (s *service) loadBasket(c context.Context, basketUID string) (Basket, error) {
	basket, found, err := s.basketStore.Get(c, basketUID)
	if err != nil {
		return Basket{}, storageError(err)
	}
	if !found {
		return Basket{}, myerrors.NewNotFoundError(fmt.Errorf("basket with uid %s: %w", basketUID, ErrBasketNotFound))
	}
	if basket.DishUIDs == nil {
		basket.DishUIDs = []string{}
	}

	return basket, nil
}

func storageError(err error) error {
	return myerrors.NewInternalError(fmt.Errorf("%w: %w", ErrStorageFailure, err))
}
