//go:build windows
// +build windows

package winpipe

import "testing"

func TestLookupInvalidNameFails(t *testing.T) {
	_, err := LookupSidByName(".\\weoifjdsklfj")
	aerr, ok := err.(*AccountLookupError)
	if !ok || aerr.Err != cERROR_NONE_MAPPED {
		t.Fatalf("expected AccountLookupError with ERROR_NONE_MAPPED, got %s", err)
	}
}

func TestLookupEmptyNameFails(t *testing.T) {
	_, err := LookupSidByName("")
	aerr, ok := err.(*AccountLookupError)
	if !ok || aerr.Err != cERROR_NONE_MAPPED {
		t.Fatalf("expected AccountLookupError with ERROR_NONE_MAPPED, got %s", err)
	}
}

func TestLookupValidAccountResolvesSid(t *testing.T) {
	everyone := "S-1-1-0"
	sid, err := LookupSidByName("Everyone")
	if err != nil || sid != everyone {
		t.Fatalf("expected %s, got %s, %s", everyone, sid, err)
	}
}

func TestSddlToSecurityDescriptorRejectsGarbage(t *testing.T) {
	_, err := SddlToSecurityDescriptor("not a descriptor")
	if _, ok := err.(*SddlConversionError); !ok {
		t.Fatalf("expected SddlConversionError, got %v", err)
	}
}
