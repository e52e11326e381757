//go:build !windows

package wininput

import (
	"fmt"

	"moonwalk/internal/core/macro"
)

type Injector struct{}

func NewInjector(logger macro.Logger) (*Injector, error) {
	return nil, fmt.Errorf("windows input injector is only available on Windows")
}

func (i *Injector) KeyDown(macro.Key) error {
	return fmt.Errorf("windows input injector is only available on Windows")
}

func (i *Injector) KeyUp(macro.Key) error {
	return fmt.Errorf("windows input injector is only available on Windows")
}

func (i *Injector) Close() error {
	return nil
}
