//go:build windows
// +build windows

package winpipe

import "golang.org/x/sys/windows"

// connectPipeNonblocking issues ConnectNamedPipe and, if no client is
// already waiting (ERROR_IO_PENDING), cancels the request immediately and
// reports ErrWouldBlock instead of waiting for a connection to arrive.
func connectPipeNonblocking(p *win32File) error {
	c, err := p.prepareIO()
	if err != nil {
		return err
	}

	err = connectNamedPipe(p.handle, &c.o)
	switch err { //nolint:errorlint // err is Errno
	case windows.ERROR_PIPE_CONNECTED, nil:
		p.wg.Done()
		return nil
	case windows.ERROR_IO_PENDING:
		windows.CancelIoEx(p.handle, &c.o) //nolint:errcheck
		<-c.ch
		p.wg.Done()
		return ErrWouldBlock
	default:
		p.wg.Done()
		return err
	}
}
