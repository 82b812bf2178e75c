package ldappool

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
)

// fallback tries resolvers in order until one answers.
//
// An answer with no records still counts as an answer: only transport and server
// failures move on to the next resolver. If every resolver fails, the returned error
// combines all of their errors.
func fallback(ctx context.Context, name string, resolvers []resolver, logger Logger) ([]srvRecord, error) {
	var errs error

	for _, res := range resolvers {
		records, err := res.LookupSRV(ctx, name)
		if err == nil {
			logger.Debug("nameserver answered",
				Field{"nameserver", res.Name()},
				Field{"name", name},
				Field{"records", len(records)})
			return records, nil
		}

		errs = multierr.Append(errs, fmt.Errorf("%s: %w", res.Name(), err))
		logger.Debug("nameserver failed, trying next",
			Field{"nameserver", res.Name()},
			Field{"name", name},
			Field{"error", err.Error()})

		if ctx.Err() != nil {
			break
		}
	}

	if errs == nil {
		return nil, fmt.Errorf("no nameservers configured")
	}
	return nil, errs
}
