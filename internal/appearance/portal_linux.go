//go:build linux
// +build linux

package appearance

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/fluesternde/berggeist-theme/internal/debug"
	"github.com/fluesternde/berggeist-theme/internal/types"
)

const (
	portalDest       = "org.freedesktop.portal.Desktop"
	portalPath       = "/org/freedesktop/portal/desktop"
	portalSettings   = "org.freedesktop.portal.Settings"
	appearanceNS     = "org.freedesktop.appearance"
	colorSchemeKey   = "color-scheme"
	portalSchemeDark = 1
)

// PortalSource reads the freedesktop settings portal over the session bus.
type PortalSource struct {
	*Broadcaster
	conn *dbus.Conn
}

// NewPlatform connects to the desktop settings portal.
func NewPlatform() (Source, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	s := &PortalSource{conn: conn}
	pref, err := s.readScheme()
	if err != nil {
		conn.Close()
		return nil, err
	}
	s.Broadcaster = NewManual(pref)
	s.activate = s.subscribe
	s.read = func() (types.ColorScheme, bool) {
		p, err := s.readScheme()
		return p, err == nil
	}
	return s, nil
}

func (s *PortalSource) readScheme() (types.ColorScheme, error) {
	obj := s.conn.Object(portalDest, portalPath)
	var v dbus.Variant
	if err := obj.Call(portalSettings+".Read", 0, appearanceNS, colorSchemeKey).Store(&v); err != nil {
		return "", fmt.Errorf("read portal color-scheme: %w", err)
	}
	return schemeFromVariant(v), nil
}

// schemeFromVariant unwraps the (possibly nested) variant holding the portal's
// uint32: 0 no preference, 1 dark, 2 light.
func schemeFromVariant(v dbus.Variant) types.ColorScheme {
	val := v.Value()
	for {
		inner, ok := val.(dbus.Variant)
		if !ok {
			break
		}
		val = inner.Value()
	}
	if n, ok := val.(uint32); ok && n == portalSchemeDark {
		return types.SchemeDark
	}
	return types.SchemeLight
}

func (s *PortalSource) subscribe() (func(), error) {
	opts := []dbus.MatchOption{
		dbus.WithMatchInterface(portalSettings),
		dbus.WithMatchMember("SettingChanged"),
		dbus.WithMatchObjectPath(portalPath),
	}
	if err := s.conn.AddMatchSignal(opts...); err != nil {
		return nil, fmt.Errorf("subscribe to portal settings: %w", err)
	}

	signals := make(chan *dbus.Signal, 8)
	done := make(chan struct{})
	s.conn.Signal(signals)

	go func() {
		for {
			select {
			case <-done:
				return
			case sig, ok := <-signals:
				if !ok {
					return
				}
				s.handleSignal(sig)
			}
		}
	}()

	return func() {
		s.conn.RemoveSignal(signals)
		if err := s.conn.RemoveMatchSignal(opts...); err != nil {
			debug.Warn(debug.CategoryAppearance, "failed to remove portal match", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}, nil
}

func (s *PortalSource) handleSignal(sig *dbus.Signal) {
	if sig == nil || len(sig.Body) < 3 {
		return
	}
	ns, _ := sig.Body[0].(string)
	key, _ := sig.Body[1].(string)
	if ns != appearanceNS || key != colorSchemeKey {
		return
	}
	v, ok := sig.Body[2].(dbus.Variant)
	if !ok {
		return
	}
	s.Set(schemeFromVariant(v))
}

// Close disconnects from the session bus.
func (s *PortalSource) Close() error {
	return s.conn.Close()
}
