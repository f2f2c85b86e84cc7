package enums

import "fmt"

// TenantType identifies the marketplace role of a tenant account.
type TenantType string

const (
	TenantTypeBuyer       TenantType = "buyer"
	TenantTypeSeller      TenantType = "seller"
	TenantTypeDistributor TenantType = "distributor"
)

var validTenantTypes = []TenantType{
	TenantTypeBuyer,
	TenantTypeSeller,
	TenantTypeDistributor,
}

// String implements fmt.Stringer.
func (t TenantType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TenantType.
func (t TenantType) IsValid() bool {
	for _, candidate := range validTenantTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTenantType converts raw input into a TenantType.
func ParseTenantType(value string) (TenantType, error) {
	for _, candidate := range validTenantTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tenant type %q", value)
}
