package linuxinput

import (
	"errors"
	"sort"
	"syscall"
	"time"

	evdev "github.com/holoplot/go-evdev"
)

func sortedCodes(codes []evdev.EvCode) []evdev.EvCode {
	sort.Slice(codes, func(i, j int) bool {
		return codes[i] < codes[j]
	})
	return codes
}

func isDeviceClosedError(err error) bool {
	return errors.Is(err, syscall.EBADF) || errors.Is(err, syscall.ENODEV)
}

func isWouldBlockError(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}

func sleepWithStop(stop <-chan struct{}, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-stop:
		return false
	case <-timer.C:
		return true
	}
}
