package docstore

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"perftrack/internal/apperror"
	"perftrack/internal/platform/config"
)

func Connect(ctx context.Context, cfg config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.DocumentTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.DocumentStoreURI).
		SetServerSelectionTimeout(cfg.DocumentTimeout).
		SetConnectTimeout(cfg.DocumentTimeout).
		SetTimeout(cfg.DocumentTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, Classify(err, "connect document store")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, Classify(err, "ping document store")
	}
	return client, nil
}

func Collection(client *mongo.Client, cfg config.Config) *mongo.Collection {
	return client.Database(cfg.DocumentDatabase).Collection(cfg.DocumentCollection)
}

// Classify maps a driver error onto an apperror code.
func Classify(err error, op string) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}

	message := op + ": " + err.Error()
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperror.Wrap(apperror.CodeNotFound, op+": not found", err)
	case mongo.IsDuplicateKeyError(err):
		return apperror.Wrap(apperror.CodeConstraint, message, err)
	case isUnreachable(err):
		return apperror.Wrap(apperror.CodeUnreachable, message, err)
	default:
		return apperror.Wrap(apperror.CodeInternal, message, err)
	}
}

func isUnreachable(err error) bool {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "server selection")
}
