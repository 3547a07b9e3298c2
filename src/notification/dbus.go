package notification

import (
	"context"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyCall = busName + ".Notify"

	urgencyNormal byte = 1
)

func sendDBus(ctx context.Context, title, message string, timeout time.Duration) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{"urgency": dbus.MakeVariant(urgencyNormal)}
	obj := conn.Object(busName, objectPath)
	call := obj.CallWithContext(ctx, notifyCall, 0,
		AppName,    // app_name
		uint32(0),  // replaces_id
		"",         // app_icon
		title,      // summary
		message,    // body
		[]string{}, // actions
		hints,
		int32(timeout.Milliseconds()),
	)
	return call.Err
}
