package platform

import "time"

// DefaultAppName identifies cragmark to the notification service.
const DefaultAppName = "cragmark"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName defaults to DefaultAppName.
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Timeout is how long the notification stays visible where the platform
	// lets the sender choose. Zero means five seconds.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}

func (o Options) timeoutMillis() int32 {
	if o.Timeout <= 0 {
		return 5000
	}
	return int32(o.Timeout / time.Millisecond)
}
