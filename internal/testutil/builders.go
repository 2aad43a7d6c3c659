package testutil

import (
	"time"

	"github.com/milestone2github/callyn-backend/internal/domain/model"
)

// EmployeeBuilder provides a fluent interface for building registry employees in tests.
type EmployeeBuilder struct {
	emp model.Employee
}

// NewEmployee starts an employee with the given id, name and email and no department.
func NewEmployee(id, name, email string) *EmployeeBuilder {
	return &EmployeeBuilder{emp: model.Employee{ID: id, Name: name, Email: email}}
}

// WithDepartment sets the department.
func (b *EmployeeBuilder) WithDepartment(id, name string) *EmployeeBuilder {
	b.emp.Department = &model.Department{ID: id, Name: name}
	return b
}

// WithAllocation appends an allocation in stored order.
func (b *EmployeeBuilder) WithAllocation(a model.Allocation) *EmployeeBuilder {
	b.emp.Assets = append(b.emp.Assets, a)
	return b
}

// Build returns the employee.
func (b *EmployeeBuilder) Build() model.Employee {
	out := b.emp
	out.Assets = append([]model.Allocation(nil), b.emp.Assets...)
	return out
}

// SIMAllocation builds a SIM Card allocation. A zero at leaves AllocatedAt unset.
func SIMAllocation(serial string, status model.AllocationStatus, at time.Time) model.Allocation {
	return DeviceAllocation(model.SIMCardAssetType, serial, status, at)
}

// DeviceAllocation builds an allocation of an asset of the given type name.
func DeviceAllocation(typeName, serial string, status model.AllocationStatus, at time.Time) model.Allocation {
	a := model.Allocation{
		Asset: &model.Asset{
			ID:           "asset-" + serial,
			SerialNumber: serial,
			Type:         &model.AssetType{ID: "type-" + typeName, Name: typeName},
		},
		Status: status,
	}
	if !at.IsZero() {
		a.AllocatedAt = TimePtr(at)
	}
	if status == model.AllocationReturned && !at.IsZero() {
		a.ReturnedAt = TimePtr(at.Add(24 * time.Hour))
	}
	return a
}

// CallLogRequest returns a valid upload payload.
func CallLogRequest(uploadedBy string) *model.CreateCallLogRequest {
	return &model.CreateCallLogRequest{
		CallerName: "Asha Rao",
		Type:       string(model.CallTypeIncoming),
		Timestamp:  TestTime().UnixMilli(),
		Duration:   42,
		UploadedBy: uploadedBy,
	}
}
