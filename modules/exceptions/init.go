package exceptions

import (
	"errors"
	"fmt"

	"github.com/getsentry/raven-go"
)

type ExceptionsModule struct {
	ErrorService *raven.Client `inject:""`
}

// Capture reports err with tags. Nil errors and a missing client are ignored.
func (di *ExceptionsModule) Capture(err error, tags map[string]string) {
	if err == nil || di == nil || di.ErrorService == nil {
		return
	}
	di.ErrorService.CaptureError(err, tags)
}

// Recover reports a panic in progress and swallows it. Call it deferred.
func (di *ExceptionsModule) Recover() {
	if rval := recover(); rval != nil {
		di.report(rval, map[string]string{})
	}
}

// Report sends a recovered value to sentry.
func (di *ExceptionsModule) Report(rval interface{}, tags map[string]string) {
	di.report(rval, tags)
}

func (di *ExceptionsModule) report(rval interface{}, tags map[string]string) {
	if di == nil || di.ErrorService == nil {
		return
	}

	var packet *raven.Packet
	switch rval := rval.(type) {
	case error:
		packet = raven.NewPacket(rval.Error(), raven.NewException(rval, raven.NewStacktrace(3, 3, nil)))
	default:
		rvalStr := fmt.Sprint(rval)
		packet = raven.NewPacket(rvalStr, raven.NewException(errors.New(rvalStr), raven.NewStacktrace(3, 3, nil)))
	}

	// Grab the error and send it to sentry
	di.ErrorService.Capture(packet, tags)
}
