package utils

import (
	"os"
	"os/signal"
	"reflect"
	"strings"
	"syscall"
	"unsafe"
)

func WaitInterrupt() os.Signal {
	sigint := make(chan os.Signal, 1)
	signal.Notify(
		sigint,
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	return <-sigint
}

func StringToByte(s string) (b []byte) {
	bh := (*reflect.SliceHeader)(unsafe.Pointer(&b))
	sh := (*reflect.StringHeader)(unsafe.Pointer(&s))
	bh.Data = sh.Data
	bh.Cap = sh.Len
	bh.Len = sh.Len
	return b
}

// TruncateSecret keeps the first n characters of s and masks the rest, so
// tokens can be debug-logged without leaking them.
func TruncateSecret(s string, n int) string {
	if n >= len(s) {
		return s
	}
	return s[:n] + strings.Repeat("X", len(s)-n)
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
