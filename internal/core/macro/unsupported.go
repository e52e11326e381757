package macro

import "errors"

var ErrInjectionUnsupported = errors.New("synthetic input is not supported on this platform")

// Unsupported is the injector used on hosts without a backend.
type Unsupported struct{}

func (Unsupported) KeyDown(Key) error { return ErrInjectionUnsupported }
func (Unsupported) KeyUp(Key) error   { return ErrInjectionUnsupported }
func (Unsupported) Close() error      { return nil }
