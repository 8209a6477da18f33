package fs

// SecurityImpersonationLevel backs the SECURITY_SQOS_PRESENT flags
// tryDialPipe passes to CreateFile; winpipe always dials with
// SECURITY_ANONYMOUS so a malicious server can't impersonate the
// connecting client's security context.
//
// https://learn.microsoft.com/en-us/windows/win32/api/winnt/ne-winnt-security_impersonation_level
type SecurityImpersonationLevel int32 // C++ default enums underlying type is `int`, which is Go `int32`

// Impersonation levels
const (
	SecurityAnonymous      = 0
	SecurityIdentification = 1
	SecurityImpersonation  = 2
	SecurityDelegation     = 3
)
