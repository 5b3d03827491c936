// Package validate provides configuration validation utilities for cloak
// components.
//
// Implements bind address, field, and email validation using the
// go-playground/validator library. Prevents configuration errors that could
// cause binding failures at startup or malformed bootstrap data reaching the
// user store.
//
// VALIDATION UTILITIES:
//   - Address validation: combined host and port parsing for bind addresses
//   - Field validation: single-value checks against validator tags
//   - Address lists: multiple addresses for cluster joining
//   - Email validation: format rule for the bootstrap admin account
package validate

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var (
	// Global validator instance using built-in validations
	validate *validator.Validate
)

func init() {
	validate = validator.New()
	// Using built-in validators: ip, min, max, email - no custom registration needed
}

// NetworkAddress represents a validated network address with host and port
// components. Uses struct tags for automatic validation via the
// go-playground/validator library.
type NetworkAddress struct {
	Host string `validate:"required,ip"`              // Built-in IP validator
	Port int    `validate:"required,min=0,max=65535"` // Built-in range validator
}

// String returns the network address in standard "host:port" format.
func (na NetworkAddress) String() string {
	return fmt.Sprintf("%s:%d", na.Host, na.Port)
}

// ParseBindAddress parses and validates a "host:port" address string for
// service binding. Ensures the address is properly formatted and valid before
// attempting network operations, with clear error messages for troubleshooting.
func ParseBindAddress(addr string) (*NetworkAddress, error) {
	if addr == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address format '%s': %w", addr, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port '%s': %w", portStr, err)
	}

	netAddr := &NetworkAddress{
		Host: host,
		Port: port,
	}

	if err := validate.Struct(netAddr); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return netAddr, nil
}

// ValidateField validates individual values against specified validation
// rules using the go-playground/validator library.
//
// Example: ValidateField("192.168.1.1", "required,ip")
func ValidateField(value interface{}, tag string) error {
	return validate.Var(value, tag)
}

// ValidateAddressList validates multiple network addresses for cluster
// joining. Ensures that if the first address is unreachable, subsequent
// addresses are at least well formed and can be attempted.
func ValidateAddressList(addresses []string) error {
	if len(addresses) == 0 {
		return fmt.Errorf("address list cannot be empty")
	}

	for i, addr := range addresses {
		if _, err := ParseBindAddress(addr); err != nil {
			return fmt.Errorf("invalid address at index %d: %w", i, err)
		}
	}

	return nil
}

// EmailFormat validates an email address against the validator library's
// built-in email rule. Used for the bootstrap admin account before any
// persistence is attempted.
func EmailFormat(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("invalid email address: %s", email)
	}
	return nil
}
