package app

import (
	"context"
	"errors"

	"go.uber.org/dig"

	"courier-delivery-service/internal/apperr"
	"courier-delivery-service/internal/config"
	"courier-delivery-service/internal/logx"
	"courier-delivery-service/internal/service/trackingfeed"
	"courier-delivery-service/internal/transport/kafka"
)

// makeTrackingFeedHandler adapts the tracking feed service to the Kafka
// consumer. Validation, unknown-package and transition failures are permanent;
// redelivering those messages can never succeed.
func makeTrackingFeedHandler(feed *trackingfeed.Service) kafka.HandleFunc {
	return func(ctx context.Context, up trackingfeed.Update) error {
		err := feed.Apply(ctx, up)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, apperr.ErrInvalid),
			errors.Is(err, apperr.ErrNotFound),
			errors.Is(err, apperr.ErrConflict):
			return kafka.Permanent(err)
		default:
			return err
		}
	}
}

func newKafkaConsumer(cfg *config.Config, h kafka.HandleFunc, logger logx.Logger) (*kafka.Consumer, error) {
	return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h, logger)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		makeTrackingFeedHandler,
		newKafkaConsumer,
	)
}
