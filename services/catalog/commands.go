package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/MarcGrol/delivecrous/lib/myerrors"
	"github.com/MarcGrol/delivecrous/lib/mylog"
	"github.com/MarcGrol/delivecrous/services/catalog/catalogapi"
)

func (s *service) listDishes(c context.Context) ([]Dish, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch all dishes")

	dishes, err := s.dishStore.List(c)
	if err != nil {
		return nil, storageError(err)
	}

	sort.Slice(dishes, func(i, j int) bool {
		return dishes[i].Name < dishes[j].Name
	})
	return dishes, nil
}

func (s *service) getDish(c context.Context, dishUID string) (Dish, error) {
	s.logger.Log(c, dishUID, mylog.SeverityInfo, "Fetch details of dish uid %s", dishUID)

	dish, found, err := s.dishStore.Get(c, dishUID)
	if err != nil {
		return Dish{}, storageError(err)
	}
	if !found {
		return Dish{}, notFoundError(dishUID)
	}

	return dish, nil
}

func (s *service) findDishByUID(c context.Context, dishUID string) (Dish, bool, error) {
	dish, found, err := s.dishStore.Get(c, dishUID)
	if err != nil {
		return Dish{}, false, storageError(err)
	}
	if !found {
		s.logger.Log(c, dishUID, mylog.SeverityWarn, "Dish with uid %s not in catalog", dishUID)
		return Dish{}, false, nil
	}

	return dish, true, nil
}

func (s *service) addDish(c context.Context, form catalogapi.DishForm) (Dish, error) {
	err := form.Validate()
	if err != nil {
		return Dish{}, myerrors.NewInvalidInputError(err)
	}

	dishUID := s.uuider.Create()
	dish := Dish{
		UID:         dishUID,
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		ImageURL:    form.ImageURL,
		CreatedAt:   s.nower.Now(),
	}

	s.logger.Log(c, dishUID, mylog.SeverityInfo, "Adding dish %q with uid %s", dish.Name, dishUID)

	err = s.dishStore.Put(c, dishUID, dish)
	if err != nil {
		return Dish{}, storageError(err)
	}

	return dish, nil
}

// updateDish only changes the fields present in the form
func (s *service) updateDish(c context.Context, dishUID string, form catalogapi.DishPatchForm) (Dish, error) {
	s.logger.Log(c, dishUID, mylog.SeverityInfo, "Updating dish with uid %s", dishUID)

	err := form.Validate()
	if err != nil {
		return Dish{}, myerrors.NewInvalidInputError(err)
	}

	now := s.nower.Now()

	var dish Dish
	err = s.dishStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		dish, found, err = s.dishStore.Get(c, dishUID)
		if err != nil {
			return storageError(err)
		}
		if !found {
			return notFoundError(dishUID)
		}

		if form.Name != nil {
			dish.Name = *form.Name
		}
		if form.Description != nil {
			dish.Description = *form.Description
		}
		if form.Price != nil {
			dish.Price = *form.Price
		}
		if form.ImageURL != nil {
			dish.ImageURL = *form.ImageURL
		}
		dish.LastModified = &now

		err = s.dishStore.Put(c, dishUID, dish)
		if err != nil {
			return storageError(err)
		}

		return nil
	})
	if err != nil {
		return Dish{}, err
	}

	return dish, nil
}

func (s *service) deleteDish(c context.Context, dishUID string) (Dish, error) {
	s.logger.Log(c, dishUID, mylog.SeverityInfo, "Deleting dish with uid %s", dishUID)

	var dish Dish
	err := s.dishStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		dish, found, err = s.dishStore.Get(c, dishUID)
		if err != nil {
			return storageError(err)
		}
		if !found {
			return notFoundError(dishUID)
		}

		err = s.dishStore.Delete(c, dishUID)
		if err != nil {
			return storageError(err)
		}

		return nil
	})
	if err != nil {
		return Dish{}, err
	}

	return dish, nil
}

func notFoundError(dishUID string) error {
	return myerrors.NewNotFoundError(fmt.Errorf("dish with uid %s: %w", dishUID, ErrDishNotFound))
}

func storageError(err error) error {
	return myerrors.NewInternalError(fmt.Errorf("%w: %w", ErrStorageFailure, err))
}
