package upload

import (
	"errors"

	"ops-console/internal/domain/user"
)

var ErrUnknownType = errors.New("unknown upload type")

// Type is the closed set of bulk upload kinds. Each kind fixes the CSV
// columns, the validation rules and the mutation performed at apply time.
type Type string

const (
	TypeMenuPricesAvailability Type = "menuPricesAvailability"
	TypeMenuStock              Type = "menuStock"
	TypeCampaignDiscounts      Type = "campaignDiscounts"
)

func ParseType(s string) (Type, error) {
	t := Type(s)
	switch t {
	case TypeMenuPricesAvailability, TypeMenuStock, TypeCampaignDiscounts:
		return t, nil
	default:
		return "", ErrUnknownType
	}
}

func (t Type) String() string {
	return string(t)
}

// IsMenuType reports whether rows of this type target outlet menu items and
// may therefore use the sku fallback instead of item_id.
func (t Type) IsMenuType() bool {
	return t == TypeMenuPricesAvailability || t == TypeMenuStock
}

// RequiredColumns returns the headers that must be present in the CSV.
// For menu types item_id may be substituted by sku; MissingColumns applies
// that fallback, so item_id is listed here as the canonical key column.
func (t Type) RequiredColumns() []string {
	switch t {
	case TypeMenuPricesAvailability:
		return []string{"outlet_id", "item_id", "base_price", "is_available"}
	case TypeMenuStock:
		return []string{"outlet_id", "item_id", "stock"}
	case TypeCampaignDiscounts:
		return []string{"outlet_id", "campaign_id", "item_id", "discount_type", "discount_value"}
	default:
		return nil
	}
}

// MissingColumns reports required columns absent from headers. item_id is
// satisfied by a sku column for menu-type uploads.
func (t Type) MissingColumns(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	var missing []string
	for _, col := range t.RequiredColumns() {
		if present[col] {
			continue
		}
		if col == "item_id" && t.IsMenuType() && present["sku"] {
			continue
		}
		missing = append(missing, col)
	}
	return missing
}

// AllowsRole implements the per-type authorization policy: price changes are
// admin-only, stock and discount uploads are open to operators as well.
func (t Type) AllowsRole(r user.Role) bool {
	switch t {
	case TypeMenuPricesAvailability:
		return r == user.RoleAdmin
	case TypeMenuStock, TypeCampaignDiscounts:
		return r == user.RoleAdmin || r == user.RoleOperator
	default:
		return false
	}
}
