package order

import (
	"context"
	"fmt"
	"sort"

	"github.com/MarcGrol/foodorder/lib/myerrors"
	"github.com/MarcGrol/foodorder/lib/mylog"
	"github.com/MarcGrol/foodorder/services/order/orderevents"
)

func (s *service) Subscribe(c context.Context) error {
	err := s.publisher.CreateTopic(c, orderevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", orderevents.TopicName, err)
	}

	return nil
}

func (s *service) getOrder(c context.Context, orderUID string) (OrderWithLines, error) {
	s.logger.Log(c, orderUID, mylog.SeverityInfo, "Fetch details of order %s", orderUID)

	ord, found, err := s.orderStore.Get(c, orderUID)
	if err != nil {
		return OrderWithLines{}, myerrors.NewInternalError(err)
	}
	if !found {
		return OrderWithLines{}, myerrors.NewNotFoundError(fmt.Errorf("order with uid %s not found", orderUID))
	}

	lines, err := s.linesOfOrder(c, orderUID)
	if err != nil {
		return OrderWithLines{}, err
	}

	return OrderWithLines{Order: ord, Lines: lines}, nil
}

func (s *service) listCustomerOrders(c context.Context, customerUID string) ([]Order, error) {
	s.logger.Log(c, customerUID, mylog.SeverityInfo, "Fetch orders of customer %s", customerUID)

	orders, err := s.orderStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	owned := make([]Order, 0, len(orders))
	for _, ord := range orders {
		if ord.CustomerUID == customerUID {
			owned = append(owned, ord)
		}
	}

	sortNewestFirst(owned)

	return owned, nil
}

// listVendorOpenOrders feeds the kitchen display: everything that still
// needs work, oldest first.
func (s *service) listVendorOpenOrders(c context.Context, vendorUID string) ([]Order, error) {
	s.logger.Log(c, vendorUID, mylog.SeverityInfo, "Fetch open orders of vendor %s", vendorUID)

	orders, err := s.orderStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	open := make([]Order, 0, len(orders))
	for _, ord := range orders {
		if ord.VendorUID != vendorUID {
			continue
		}
		if ord.Status == StatusDelivered || ord.Status == StatusCancelled {
			continue
		}
		open = append(open, ord)
	}

	sort.Slice(open, func(i, j int) bool {
		return open[i].CreatedAt.Before(open[j].CreatedAt)
	})

	return open, nil
}

func (s *service) updateStatus(c context.Context, orderUID string, newStatus Status) (Order, error) {
	s.logger.Log(c, orderUID, mylog.SeverityInfo, "Update status of order %s to %s", orderUID, newStatus)

	now := s.nower.Now()

	var ord Order
	err := s.orderStore.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent
		var found bool
		var err error
		ord, found, err = s.orderStore.Get(c, orderUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("order with uid %s not found", orderUID))
		}

		if ord.Status == newStatus {
			return nil
		}

		if !ord.Status.CanTransitionTo(newStatus) {
			return myerrors.NewInvalidInputErrorf("order %s cannot go from %s to %s", orderUID, ord.Status, newStatus)
		}

		oldStatus := ord.Status
		ord.Status = newStatus
		ord.LastModified = &now

		err = s.orderStore.Put(c, orderUID, ord)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, orderevents.TopicName, orderevents.OrderStatusChanged{
			OrderUID:  orderUID,
			OldStatus: string(oldStatus),
			NewStatus: string(newStatus),
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Order{}, err
	}

	return ord, nil
}

func (s *service) linesOfOrder(c context.Context, orderUID string) ([]OrderLine, error) {
	lines, err := s.lineStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	owned := make([]OrderLine, 0, len(lines))
	for _, line := range lines {
		if line.OrderUID == orderUID {
			owned = append(owned, line)
		}
	}

	sort.Slice(owned, func(i, j int) bool {
		return owned[i].UID < owned[j].UID
	})

	return owned, nil
}

func sortNewestFirst(orders []Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
