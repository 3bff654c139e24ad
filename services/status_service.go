package services

import (
	"context"
	"errors"
	"time"

	apperrors "catalog-service/common/errors"
	"catalog-service/repository"
)

const (
	statusRunning         = "✅ Running"
	statusNotInitialized  = "⚠️  Available but not initialized"
	statusWorking         = "✅ Connected & Working"
	statusConnectedError  = "⚠️  Connected but Error: "
	statusConnected       = "Connected"
	statusNotConnected    = "Not Connected"
	statusSet             = "✅ Set"
	statusNotSet          = "❌ Not Set"
	maxReportedCollection = 10
	maxErrorLength        = 50
	statusCheckTimeout    = 5 * time.Second
)

// StatusService reports whether the document store is reachable.
type StatusService struct {
	store           repository.Handle
	databaseURLSet  bool
	databaseNameSet bool
}

// NewStatusService builds the service; the flags say whether DATABASE_URL
// and DATABASE_NAME were configured.
func NewStatusService(store repository.Handle, databaseURLSet, databaseNameSet bool) *StatusService {
	return &StatusService{store: store, databaseURLSet: databaseURLSet, databaseNameSet: databaseNameSet}
}

// Check never fails: store errors end up in the report.
func (s *StatusService) Check(ctx context.Context) StatusReport {
	report := StatusReport{
		Backend:          statusRunning,
		Database:         statusNotInitialized,
		ConnectionStatus: statusNotConnected,
		Collections:      []string{},
	}

	if store, ok := s.store.Get(); ok {
		report.ConnectionStatus = statusConnected

		ctx, cancel := context.WithTimeout(ctx, statusCheckTimeout)
		defer cancel()

		names, err := store.ListCollections(ctx)
		if err != nil {
			report.Database = statusConnectedError + truncate(causeMessage(err), maxErrorLength)
		} else {
			report.Database = statusWorking
			if len(names) > maxReportedCollection {
				names = names[:maxReportedCollection]
			}
			report.Collections = append(report.Collections, names...)
		}
	}

	report.DatabaseURL = presence(s.databaseURLSet)
	report.DatabaseName = presence(s.databaseNameSet)
	return report
}

// Ready pings the store. Without a store it returns ErrStoreUnavailable; a
// failed ping is reported as ErrServiceUnavailable.
func (s *StatusService) Ready(ctx context.Context) error {
	store, err := s.store.Require()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, statusCheckTimeout)
	defer cancel()

	if err := store.Ping(ctx); err != nil {
		return apperrors.Wrap(apperrors.ErrServiceUnavailable, err)
	}
	return nil
}

// causeMessage strips the application error wrapper so the driver message
// is what gets reported.
func causeMessage(err error) string {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Err != nil {
		return appErr.Err.Error()
	}
	return err.Error()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func presence(set bool) string {
	if set {
		return statusSet
	}
	return statusNotSet
}
