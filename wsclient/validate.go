package wsclient

import "fmt"

const (
	// MaxCloseReason is the largest close reason, in bytes, that fits a
	// control frame next to the two-byte status code.
	MaxCloseReason = 123

	CloseNormal   uint16 = 1000
	closeAppFirst uint16 = 3000
	closeAppLast  uint16 = 4999
)

// ValidateSubprotocols checks that every entry is a non-empty token of
// printable ASCII (0x21-0x7E) and appears only once.
func ValidateSubprotocols(protocols []string) error {
	for i, p := range protocols {
		if p == "" {
			return NewError(ErrorSyntax, "empty subprotocol")
		}
		for j := 0; j < len(p); j++ {
			if p[j] < 0x21 || p[j] > 0x7e {
				return NewError(ErrorSyntax, fmt.Sprintf("subprotocol %q contains invalid character", p))
			}
		}
		for _, later := range protocols[i+1:] {
			if later == p {
				return NewError(ErrorSyntax, fmt.Sprintf("duplicate subprotocol %q", p))
			}
		}
	}
	return nil
}

// ValidateCloseCode accepts 1000 and the application range 3000-4999.
func ValidateCloseCode(code uint16) error {
	if code == CloseNormal || (code >= closeAppFirst && code <= closeAppLast) {
		return nil
	}
	return NewError(ErrorInvalidAccess, fmt.Sprintf("close code %d is not 1000 or in 3000-4999", code))
}

// ValidateCloseReason rejects reasons longer than MaxCloseReason bytes.
func ValidateCloseReason(reason string) error {
	if len(reason) > MaxCloseReason {
		return NewError(ErrorSyntax, fmt.Sprintf("close reason is %d bytes, max %d", len(reason), MaxCloseReason))
	}
	return nil
}
