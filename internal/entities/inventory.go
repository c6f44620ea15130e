package entities

import (
	"strings"

	apperr "github.com/librogame/passomorto/internal/errors"
)

// ItemType routes an item into one of the three inventory lists
type ItemType string

const (
	ItemTypeWeapon  ItemType = "weapon"
	ItemTypeWorn    ItemType = "worn"
	ItemTypeGeneric ItemType = "generic"
)

// Inventory capacity limits
const (
	MaxWeapons       = 3
	MaxBackpackItems = 8
)

// backpackName is the base name of the backpack itself; removing it drops
// everything it contains
const backpackName = "zaino"

// ParseItemType maps the authored (Italian) item type labels to an
// ItemType. Unknown labels fall back to generic.
func ParseItemType(label string) ItemType {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "arma", string(ItemTypeWeapon):
		return ItemTypeWeapon
	case "indossato", string(ItemTypeWorn):
		return ItemTypeWorn
	default:
		return ItemTypeGeneric
	}
}

// ItemBaseName returns the portion of an item name before the /subtype
// separator ("Corpetto di Cuoio/Armatura" -> "Corpetto di Cuoio")
func ItemBaseName(name string) string {
	base, _, _ := strings.Cut(name, "/")
	return strings.TrimSpace(base)
}

// ItemSubtype returns the lowercased /subtype suffix of an item name, or
// "" when the name has none
func ItemSubtype(name string) string {
	_, subtype, found := strings.Cut(name, "/")
	if !found {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(subtype))
}

// InferItemType derives an item's type from its /subtype naming
// convention: armor and shields are worn, weapons go to the weapon list,
// anything else is generic backpack cargo.
func InferItemType(name string) ItemType {
	subtype := ItemSubtype(name)
	switch {
	case strings.HasPrefix(subtype, "armatura"), strings.HasPrefix(subtype, "scudo"):
		return ItemTypeWorn
	case strings.HasPrefix(subtype, "arma"):
		return ItemTypeWeapon
	default:
		return ItemTypeGeneric
	}
}

// Inventory holds the player's three item lists
type Inventory struct {
	Weapons     []string `json:"weapons"`
	Worn        []string `json:"worn"`
	Backpack    []string `json:"backpack"`
	HasBackpack bool     `json:"has_backpack"`
}

// StartingInventory returns the canonical starting equipment
func StartingInventory() *Inventory {
	return &Inventory{
		Weapons:     []string{"Spada/Arma da corpo a corpo", "Arco/Arma dalla distanza"},
		Worn:        []string{"Corpetto di Cuoio/Armatura", "Scudo/Scudo"},
		Backpack:    []string{},
		HasBackpack: true,
	}
}

// Clone returns a deep copy of the inventory
func (inv *Inventory) Clone() *Inventory {
	if inv == nil {
		return nil
	}
	return &Inventory{
		Weapons:     append([]string{}, inv.Weapons...),
		Worn:        append([]string{}, inv.Worn...),
		Backpack:    append([]string{}, inv.Backpack...),
		HasBackpack: inv.HasBackpack,
	}
}

// Has reports whether any list contains an item whose name starts with
// the given base name (case-insensitive)
func (inv *Inventory) Has(baseName string) bool {
	prefix := strings.ToLower(strings.TrimSpace(baseName))
	if prefix == "" {
		return false
	}
	for _, list := range [][]string{inv.Weapons, inv.Worn, inv.Backpack} {
		for _, item := range list {
			if strings.HasPrefix(strings.ToLower(item), prefix) {
				return true
			}
		}
	}
	return false
}

// HasWornContaining reports whether a worn item name contains the given
// substring (case-insensitive). Combat uses this for the shield and the
// leather corset.
func (inv *Inventory) HasWornContaining(substr string) bool {
	return inv.findWornContaining(substr) >= 0
}

func (inv *Inventory) findWornContaining(substr string) int {
	needle := strings.ToLower(substr)
	for i, item := range inv.Worn {
		if strings.Contains(strings.ToLower(item), needle) {
			return i
		}
	}
	return -1
}

// CanAdd validates an AddItem call without mutating the inventory
func (inv *Inventory) CanAdd(name string, itemType ItemType) error {
	base := ItemBaseName(name)
	if base == "" {
		return apperr.InvalidArgument("item name is required")
	}

	if inv.Has(base) {
		return apperr.AlreadyExistsf("already carrying '%s'", base)
	}

	switch itemType {
	case ItemTypeWeapon:
		if len(inv.Weapons) >= MaxWeapons {
			return apperr.Validationf("cannot carry more than %d weapons", MaxWeapons)
		}
	case ItemTypeGeneric:
		if !inv.HasBackpack {
			return apperr.Validation("no backpack to store the item in")
		}
		if len(inv.Backpack) >= MaxBackpackItems {
			return apperr.Validationf("backpack is full (%d items)", MaxBackpackItems)
		}
	case ItemTypeWorn:
		// One item per worn subtype: a second /armatura or /scudo is
		// rejected. Unsuffixed worn items are unconstrained.
		if subtype := ItemSubtype(name); subtype != "" {
			for _, worn := range inv.Worn {
				if ItemSubtype(worn) == subtype {
					return apperr.Validationf("already wearing a %s", subtype)
				}
			}
		}
	default:
		return apperr.InvalidArgumentf("unknown item type '%s'", itemType)
	}

	return nil
}

// AddItem adds an item to the list selected by its type. Duplicate base
// names are rejected across all three lists.
func (inv *Inventory) AddItem(name string, itemType ItemType) error {
	if err := inv.CanAdd(name, itemType); err != nil {
		return err
	}

	switch itemType {
	case ItemTypeWeapon:
		inv.Weapons = append(inv.Weapons, name)
	case ItemTypeGeneric:
		inv.Backpack = append(inv.Backpack, name)
	case ItemTypeWorn:
		inv.Worn = append(inv.Worn, name)
	}

	return nil
}

// RemoveItem removes the first item whose name starts with the given base
// name, searching backpack, then weapons, then worn. Removing the
// backpack itself drops everything it contains. Returns the full name of
// the removed item.
func (inv *Inventory) RemoveItem(name string) (string, error) {
	base := ItemBaseName(name)
	if base == "" {
		return "", apperr.InvalidArgument("item name is required")
	}

	if strings.EqualFold(base, backpackName) {
		if !inv.HasBackpack {
			return "", apperr.NotFound("no backpack to remove")
		}
		inv.HasBackpack = false
		inv.Backpack = []string{}
		return backpackName, nil
	}

	prefix := strings.ToLower(base)
	lists := []*[]string{&inv.Backpack, &inv.Weapons, &inv.Worn}
	for _, list := range lists {
		for i, item := range *list {
			if strings.HasPrefix(strings.ToLower(item), prefix) {
				removed := item
				*list = append((*list)[:i], (*list)[i+1:]...)
				return removed, nil
			}
		}
	}

	return "", apperr.NotFoundf("item '%s' not found", base)
}
