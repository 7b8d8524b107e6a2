package rfid

import (
	"encoding/hex"
	"errors"
	"strings"
)

// ErrNoDevice is returned when no reader hardware is reachable.
var ErrNoDevice = errors.New("no RFID device available")

// Device is one attached badge reader. Implementations wrap the
// USB-HID vendor protocol; tests use a fake.
type Device interface {
	// ReadTag polls once. bits is 0 when no badge is in the field.
	ReadTag() (raw []byte, bits int, err error)

	// SetLED drives the two feedback LEDs.
	SetLED(red, green bool) error

	Close() error
}

// DeviceOpener opens the attached reader hardware.
type DeviceOpener func() (Device, error)

// OpenDevice is the process-wide reader opener. Builds with real
// hardware support install their opener here; the default reports
// ErrNoDevice, which makes the factory fall back to the mock.
var OpenDevice DeviceOpener = func() (Device, error) {
	return nil, ErrNoDevice
}

// tagFromBytes converts a raw read to the wire format: the device
// reports little-endian bytes, the tag id is the big-endian uppercase
// hex rendering.
func tagFromBytes(raw []byte) string {
	reversed := make([]byte, len(raw))
	for i, b := range raw {
		reversed[len(raw)-1-i] = b
	}
	return strings.ToUpper(hex.EncodeToString(reversed))
}
