package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/MarcGrol/foodorder/lib/myerrors"
	"github.com/MarcGrol/foodorder/lib/mylog"
)

func (s *service) listAvailableFoodItems(c context.Context) ([]FoodItem, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch all available food-items")

	items, err := s.foodItemStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	available := make([]FoodItem, 0, len(items))
	for _, item := range items {
		if item.IsAvailable {
			available = append(available, item)
		}
	}

	sort.Slice(available, func(i, j int) bool {
		return available[i].Name < available[j].Name
	})

	return available, nil
}

func (s *service) listVendorFoodItems(c context.Context, vendorUID string) ([]FoodItem, error) {
	s.logger.Log(c, vendorUID, mylog.SeverityInfo, "Fetch food-items of vendor %s", vendorUID)

	items, err := s.foodItemStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	owned := make([]FoodItem, 0, len(items))
	for _, item := range items {
		if item.VendorUID == vendorUID {
			owned = append(owned, item)
		}
	}

	sort.Slice(owned, func(i, j int) bool {
		return owned[i].Name < owned[j].Name
	})

	return owned, nil
}

func (s *service) getFoodItem(c context.Context, foodItemUID string) (FoodItem, error) {
	s.logger.Log(c, foodItemUID, mylog.SeverityInfo, "Fetch details of food-item %s", foodItemUID)

	item, found, err := s.foodItemStore.Get(c, foodItemUID)
	if err != nil {
		return FoodItem{}, myerrors.NewInternalError(err)
	}
	if !found {
		return FoodItem{}, myerrors.NewNotFoundError(fmt.Errorf("food-item with uid %s not found", foodItemUID))
	}

	return item, nil
}

func (s *service) upsertFoodItem(c context.Context, item FoodItem) (FoodItem, error) {
	if item.VendorUID == "" {
		return FoodItem{}, myerrors.NewInvalidInputErrorf("food-item is missing a vendor")
	}
	if item.Name == "" {
		return FoodItem{}, myerrors.NewInvalidInputErrorf("food-item is missing a name")
	}
	if item.Price <= 0 {
		return FoodItem{}, myerrors.NewInvalidInputErrorf("food-item needs a positive price")
	}

	now := s.nower.Now()

	err := s.foodItemStore.RunInTransaction(c, func(c context.Context) error {
		if item.UID == "" {
			item.UID = s.uuider.Create()
			item.CreatedAt = now
		} else {
			existing, found, err := s.foodItemStore.Get(c, item.UID)
			if err != nil {
				return myerrors.NewInternalError(err)
			}
			if !found {
				return myerrors.NewNotFoundError(fmt.Errorf("food-item with uid %s not found", item.UID))
			}
			item.CreatedAt = existing.CreatedAt
			item.LastModified = &now
		}

		err := s.foodItemStore.Put(c, item.UID, item)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return FoodItem{}, err
	}

	s.logger.Log(c, item.UID, mylog.SeverityInfo, "Stored food-item %s (%s) of vendor %s", item.UID, item.Name, item.VendorUID)

	return item, nil
}

func (s *service) setAvailability(c context.Context, foodItemUID string, available bool) (FoodItem, error) {
	s.logger.Log(c, foodItemUID, mylog.SeverityInfo, "Set availability of food-item %s to %t", foodItemUID, available)

	now := s.nower.Now()

	var item FoodItem
	err := s.foodItemStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		item, found, err = s.foodItemStore.Get(c, foodItemUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("food-item with uid %s not found", foodItemUID))
		}

		item.IsAvailable = available
		item.LastModified = &now

		err = s.foodItemStore.Put(c, foodItemUID, item)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return FoodItem{}, err
	}

	return item, nil
}
