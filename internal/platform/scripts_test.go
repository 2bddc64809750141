package platform

import (
	"strings"
	"testing"
	"time"
)

func TestPSQuote(t *testing.T) {
	if got := psQuote("it's"); got != "'it''s'" {
		t.Fatalf("psQuote = %s", got)
	}
}

func TestToastScript(t *testing.T) {
	s := toastScript("Saved", "Bob's wall", Options{Timeout: 3 * time.Second})
	for _, want := range []string{"ToastText02", "'Bob''s wall'", "AddMilliseconds(3000)", "CreateToastNotifier('cragmark')"} {
		if !strings.Contains(s, want) {
			t.Errorf("script missing %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, `"image"`) {
		t.Errorf("image element set without an icon")
	}
	s = toastScript("Saved", "x", Options{IconPath: " C:\\icon.png "})
	if !strings.Contains(s, "ToastImageAndText02") || !strings.Contains(s, `"src", 'C:\icon.png'`) {
		t.Errorf("icon not used:\n%s", s)
	}
}

func TestAppleScript(t *testing.T) {
	got := appleScript("Exported", `say "hi"`, Options{AppName: "crag"})
	want := `display notification "say \"hi\"" with title "Exported" subtitle "crag"`
	if got != want {
		t.Fatalf("appleScript = %s", got)
	}
}
