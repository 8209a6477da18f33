// Package uds implements the Unix-domain-socket backend of the local-socket
// toolkit: a blocking (and optionally nonblocking) SOCK_STREAM listener and
// stream, Linux abstract-namespace and filesystem-path names, name
// reclamation (unlink-on-drop), and SO_PEERCRED-style peer credentials.
package uds
