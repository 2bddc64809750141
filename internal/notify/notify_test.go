package notify

import (
	"image"
	"os"
	"strings"
	"testing"

	"github.com/example/cragmark/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func capture(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	orig := send
	send = func(title, body string, opts platform.Options) error {
		s := sent{title: title, body: body, opts: opts}
		if opts.IconPath != "" {
			_, err := os.Stat(opts.IconPath)
			s.iconExisted = err == nil
		}
		got = append(got, s)
		return nil
	}
	t.Cleanup(func() { send = orig })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Save("s1", "")
	n.Copy("")
	n.Export("out.png", nil)
	if len(*got) != 0 {
		t.Fatalf("sent %v", *got)
	}
}

func TestSaveAndCopy(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Enable(EventCopy, true)
	n.Save("s1", "")
	n.Copy("")
	if len(*got) != 2 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	if (*got)[0].body != "Saved session s1" || (*got)[0].title != "cragmark" {
		t.Fatalf("save notification %+v", (*got)[0])
	}
	if (*got)[1].body != "Copied image to clipboard" {
		t.Fatalf("copy notification %+v", (*got)[1])
	}
}

func TestExportAttachesPreview(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventExport, true)
	n.Export("out.png", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	s := (*got)[0]
	if !strings.HasPrefix(s.body, "Exported ") || !strings.HasSuffix(s.body, "out.png") {
		t.Fatalf("body %q", s.body)
	}
	if !s.iconExisted {
		t.Fatal("preview icon missing while notifying")
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("preview not cleaned up: %v", err)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("CRAGMARK_NOTIFY_TITLE", "Crags")
	t.Setenv("CRAGMARK_NOTIFY_SAVE_TEXT", "Stored %s")
	p := LoadPreferences()
	if p.Title != "Crags" || p.Events[EventSave].Template != "Stored %s" {
		t.Fatalf("preferences %+v", p)
	}
	if p.Events[EventCopy].Template == "" {
		t.Fatal("unset event lost its default")
	}
}
