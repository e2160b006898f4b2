package repository

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/portal-identity/internal/domain"
)

// memoryEmployeeRepository keeps the directory in process memory. All
// operations take a global mutex: read-modify-write on the employee list is
// not otherwise atomic under concurrent request handling.
type memoryEmployeeRepository struct {
	mu        sync.Mutex
	employees []*domain.Employee
}

// NewMemoryEmployeeRepository returns an empty in-memory directory.
func NewMemoryEmployeeRepository() EmployeeRepository {
	return &memoryEmployeeRepository{}
}

func (r *memoryEmployeeRepository) Insert(_ context.Context, employee *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	stored := employee.Clone()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = stored.CreatedAt
	}
	r.employees = append(r.employees, stored)

	employee.CreatedAt = stored.CreatedAt
	employee.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *memoryEmployeeRepository) Update(_ context.Context, id string, patch EmployeePatch) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, employee := range r.employees {
		if employee.ID == id {
			applyPatch(employee, patch, time.Now())
			return employee.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryEmployeeRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, employee := range r.employees {
		if employee.ID == id {
			r.employees = append(r.employees[:i], r.employees[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryEmployeeRepository) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, employee := range r.employees {
		if employee.ID == id {
			return employee.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

// GetByEmail matches exactly and case-sensitively.
func (r *memoryEmployeeRepository) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, employee := range r.employees {
		if employee.Email == email {
			return employee.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryEmployeeRepository) List(_ context.Context) ([]*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Employee, 0, len(r.employees))
	for _, employee := range r.employees {
		out = append(out, employee.Clone())
	}
	return out, nil
}
