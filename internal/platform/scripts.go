package platform

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported is returned where the host has no notification service.
var ErrUnsupported = errors.New("desktop notifications are not supported on this platform")

// appleScript builds the osascript program for Notification Center. The
// app name is shown as the subtitle because osascript cannot post as
// another application.
func appleScript(title, body string, opts Options) string {
	return fmt.Sprintf("display notification %q with title %q subtitle %q", body, title, opts.appName())
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// toastScript builds the PowerShell program that shows a WinRT toast,
// with the icon as the toast image when one is set.
func toastScript(title, body string, opts Options) string {
	tmpl := "ToastText02"
	icon := strings.TrimSpace(opts.IconPath)
	if icon != "" {
		tmpl = "ToastImageAndText02"
	}
	var sb strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&sb, format, args...)
		sb.WriteString("; ")
	}
	line("[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null")
	line("$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::%s)", tmpl)
	line(`$texts = $template.GetElementsByTagName("text")`)
	line("$texts.Item(0).AppendChild($template.CreateTextNode(%s)) > $null", psQuote(title))
	line("$texts.Item(1).AppendChild($template.CreateTextNode(%s)) > $null", psQuote(body))
	if icon != "" {
		line(`$template.GetElementsByTagName("image").Item(0).SetAttribute("src", %s)`, psQuote(icon))
	}
	line("$toast = [Windows.UI.Notifications.ToastNotification]::new($template)")
	line("$toast.ExpirationTime = [DateTimeOffset]::Now.AddMilliseconds(%d)", opts.timeoutMillis())
	line("[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s).Show($toast)", psQuote(opts.appName()))
	return strings.TrimSuffix(sb.String(), " ")
}
