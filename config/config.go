// Package config loads ListenerOptions defaults from a TOML file, for
// daemons that want an endpoint name, instance limit, buffer sizes and
// wait timeout externally configurable rather than hardcoded. Nothing in
// the core requires a config file; localsocket.ListenerOptions can always
// be built by hand instead.
package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	ipc "github.com/kotauskas/interprocess"
	"github.com/kotauskas/interprocess/localsocket"
)

// WindowsOptions carries the `[listener.windows]` table. Options passes the
// buffer size hints through (the Unix backend ignores them) and does not
// carry Mode or AcceptRemote into ListenerOptions. On non-Windows builds a
// non-empty AllowedAccounts makes Options fail.
type WindowsOptions struct {
	Mode                 string   `toml:"mode"`
	InputBufferSizeHint  int32    `toml:"input_buffer_size_hint"`
	OutputBufferSizeHint int32    `toml:"output_buffer_size_hint"`
	AcceptRemote         bool     `toml:"accept_remote"`
	AllowedAccounts      []string `toml:"allowed_accounts"`
}

// Listener is the decoded `[listener]` table of a config file.
type Listener struct {
	Name          string         `toml:"name"`
	InstanceLimit int32          `toml:"instance_limit"`
	WaitTimeout   string         `toml:"wait_timeout"`
	ReclaimName   bool           `toml:"reclaim_name"`
	Windows       WindowsOptions `toml:"windows"`
}

type document struct {
	Listener Listener `toml:"listener"`
}

// Load reads and decodes the `[listener]` table of the TOML file at path.
func Load(path string) (*Listener, error) {
	var doc document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, errors.Wrapf(err, "config: decode %q", path)
	}
	return &doc.Listener, nil
}

// WaitTimeoutDuration parses WaitTimeout, returning zero if unset.
func (l *Listener) WaitTimeoutDuration() (time.Duration, error) {
	if l.WaitTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(l.WaitTimeout)
	if err != nil {
		return 0, errors.Wrapf(err, "config: invalid wait_timeout %q", l.WaitTimeout)
	}
	return d, nil
}

// Options converts the decoded file into a localsocket.ListenerOptions,
// resolving Name through the legacy `@`-prefix convenience parser so the
// same config file works whether Name is a path or a namespaced name.
func (l *Listener) Options() (localsocket.ListenerOptions, error) {
	name, err := ipc.ToName(l.Name)
	if err != nil {
		return localsocket.ListenerOptions{}, err
	}
	sd, err := windowsSecurityDescriptor(l.Windows.AllowedAccounts)
	if err != nil {
		return localsocket.ListenerOptions{}, err
	}
	nb := localsocket.NonblockingNeither
	return localsocket.ListenerOptions{
		Name:               name,
		Nonblocking:        nb,
		ReclaimName:        l.ReclaimName,
		InstanceLimit:      l.InstanceLimit,
		InputBufferSize:    l.Windows.InputBufferSizeHint,
		OutputBufferSize:   l.Windows.OutputBufferSizeHint,
		SecurityDescriptor: sd,
	}, nil
}
