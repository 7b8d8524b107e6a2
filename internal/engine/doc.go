// Package engine contains the kiosk's event loop and scan handling.
//
// The Dispatcher is a single-threaded cooperative loop that owns the
// AppState and all calls into the store. The ScanRouter debounces tag
// reads arriving from the RFID worker thread, stamps each accepted scan
// with a correlation token, and dispatches on the current operating
// mode. The ClockEngine turns identified employees into persisted clock
// actions with LED and state side effects.
//
// Threading rules:
//   - Dispatcher.Post and ScheduleAfter: any goroutine
//   - ScanRouter.OnTag: any goroutine (forwards to the dispatcher)
//   - Everything else in this package: dispatcher goroutine only
package engine
