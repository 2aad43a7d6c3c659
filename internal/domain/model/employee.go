//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import (
	"sort"
	"strings"
	"time"
)

// NotAvailable is the display value used when an employee has no department or no allocated SIM.
const NotAvailable = "N/A"

// SIMCardAssetType is the asset classification the gateway treats as a work phone.
const SIMCardAssetType = "SIM Card"

// AllocationStatus is the lifecycle state of one device assignment.
type AllocationStatus string

const (
	AllocationAllocated AllocationStatus = "allocated"
	AllocationReturned  AllocationStatus = "returned"
	AllocationLost      AllocationStatus = "lost"
	AllocationReplaced  AllocationStatus = "replaced"
)

// Valid reports whether s is one of the known statuses.
func (s AllocationStatus) Valid() bool {
	switch s {
	case AllocationAllocated, AllocationReturned, AllocationLost, AllocationReplaced:
		return true
	default:
		return false
	}
}

// Department is read-only reference data.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AssetType classifies an asset, e.g. "SIM Card".
type AssetType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Asset is a physical device that can be issued to an employee.
type Asset struct {
	ID           string     `json:"id"`
	Name         string     `json:"name,omitempty"`
	SerialNumber string     `json:"serial_number,omitempty"`
	Type         *AssetType `json:"type,omitempty"`
}

// Allocation is one historical or current device assignment.
// Asset is nil when the referenced asset no longer resolves.
type Allocation struct {
	Asset       *Asset           `json:"asset,omitempty"`
	AllocatedAt *time.Time       `json:"allocated_at,omitempty"`
	ReturnedAt  *time.Time       `json:"returned_at,omitempty"`
	Status      AllocationStatus `json:"status"`
}

// Employee is the internal registry record for a person.
// Assets keeps the registry's stored order.
type Employee struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Department *Department  `json:"department,omitempty"`
	Assets     []Allocation `json:"assets,omitempty"`
}

// DepartmentName returns the department's name or NotAvailable.
func (e Employee) DepartmentName() string {
	if e.Department == nil || strings.TrimSpace(e.Department.Name) == "" {
		return NotAvailable
	}
	return e.Department.Name
}

// EnrichedIdentity is an employee plus the display attributes handed to the mobile app.
type EnrichedIdentity struct {
	Employee       Employee
	DepartmentName string
	DeviceSerial   string
}

// NormalizeEmail trims and case-folds an email so directory and registry values compare equal.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AllocatedSIMSerial picks the serial of the employee's current SIM.
//
// Only allocations with status allocated whose asset type is SIMCardAssetType qualify.
// The most recent AllocatedAt wins; a missing AllocatedAt sorts last and ties keep stored order.
// The bool is false when nothing qualifies or the winning asset has no serial.
func AllocatedSIMSerial(e Employee) (string, bool) {
	candidates := make([]Allocation, 0, len(e.Assets))
	for _, a := range e.Assets {
		if isAllocatedSIM(a) {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return allocatedAfter(candidates[i].AllocatedAt, candidates[j].AllocatedAt)
	})

	serial := candidates[0].Asset.SerialNumber
	if serial == "" {
		return "", false
	}
	return serial, true
}

func isAllocatedSIM(a Allocation) bool {
	return a.Status == AllocationAllocated &&
		a.Asset != nil &&
		a.Asset.Type != nil &&
		a.Asset.Type.Name == SIMCardAssetType
}

// allocatedAfter orders by timestamp descending with nil treated as the zero time.
func allocatedAfter(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.After(*b)
	}
}
