package deps

import (
	"github.com/getsentry/raven-go"
)

// IgniteSentry builds the error reporting client. Without sentry.dsn the
// client is disabled and captures are dropped.
func IgniteSentry(container Deps) (Deps, error) {
	client, err := raven.NewClient(container.Config().UString("sentry.dsn", ""), map[string]string{
		"environment": ENV,
	})
	if err != nil {
		return container, err
	}

	container.SentryProvider = client
	return container, nil
}
