package platform

import (
	"testing"
	"time"
)

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if o.appName() != DefaultAppName {
		t.Fatalf("app name %q", o.appName())
	}
	if o.timeoutMillis() != 5000 {
		t.Fatalf("timeout %d", o.timeoutMillis())
	}
	o = Options{AppName: "crag", Timeout: 2 * time.Second}
	if o.appName() != "crag" || o.timeoutMillis() != 2000 {
		t.Fatalf("explicit options ignored: %q %d", o.appName(), o.timeoutMillis())
	}
}
