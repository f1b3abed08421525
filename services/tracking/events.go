package tracking

import (
	"context"
	"fmt"

	"github.com/MarcGrol/foodorder/lib/myerrors"
	"github.com/MarcGrol/foodorder/lib/myhttp"
	"github.com/MarcGrol/foodorder/lib/mylog"
	"github.com/MarcGrol/foodorder/services/order"
	"github.com/MarcGrol/foodorder/services/order/orderevents"
)

func (s *service) Subscribe(c context.Context) error {
	err := s.pubsub.Subscribe(c, orderevents.TopicName, myhttp.GuessHostnameWithScheme()+"/api/tracking/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %s", orderevents.TopicName, err)
	}

	return nil
}

func (s *service) OnOrderPlaced(c context.Context, topic string, event orderevents.OrderPlaced) error {
	s.logger.Log(c, event.OrderUID, mylog.SeverityInfo, "Webhook: order %s placed at vendor %s", event.OrderUID, event.VendorUID)

	now := s.nower.Now()

	return s.timelineStore.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent
		timeline, found, err := s.timelineStore.Get(c, event.OrderUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if found {
			return nil
		}

		timeline = Timeline{
			OrderUID:    event.OrderUID,
			CustomerUID: event.CustomerUID,
			VendorUID:   event.VendorUID,
			Entries: []TimelineEntry{
				{Status: string(order.StatusPending), At: now},
			},
		}

		err = s.timelineStore.Put(c, event.OrderUID, timeline)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
}

func (s *service) OnOrderStatusChanged(c context.Context, topic string, event orderevents.OrderStatusChanged) error {
	s.logger.Log(c, event.OrderUID, mylog.SeverityInfo, "Webhook: order %s went from %s to %s", event.OrderUID, event.OldStatus, event.NewStatus)

	now := s.nower.Now()

	return s.timelineStore.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent
		timeline, found, err := s.timelineStore.Get(c, event.OrderUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			// status event arrived before the placed event, start the timeline here
			timeline = Timeline{OrderUID: event.OrderUID}
		}

		if timeline.currentStatus() == event.NewStatus {
			return nil
		}

		timeline.Entries = append(timeline.Entries, TimelineEntry{Status: event.NewStatus, At: now})

		err = s.timelineStore.Put(c, event.OrderUID, timeline)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
}

func (s *service) getTimeline(c context.Context, orderUID string) (Timeline, error) {
	timeline, found, err := s.timelineStore.Get(c, orderUID)
	if err != nil {
		return Timeline{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Timeline{}, myerrors.NewNotFoundError(fmt.Errorf("no tracking info for order %s", orderUID))
	}

	return timeline, nil
}
