package domain

import "testing"

func TestDeriveRole(t *testing.T) {
	cases := []struct {
		grade Grade
		want  Role
	}{
		{GradeTopAdministrator, RoleAdmin},
		{GradeLeader, RoleLeader},
		{GradeGeneralStaff, RoleUser},
	}

	for _, tc := range cases {
		if got := DeriveRole(tc.grade); got != tc.want {
			t.Errorf("DeriveRole(%q) = %q, want %q", tc.grade, got, tc.want)
		}
	}
}

func TestDeriveRole_Injective(t *testing.T) {
	grades := []Grade{GradeGeneralStaff, GradeLeader, GradeTopAdministrator}
	seen := make(map[Role]Grade)
	for _, g := range grades {
		role := DeriveRole(g)
		if prev, ok := seen[role]; ok {
			t.Fatalf("grades %q and %q both derive role %q", prev, g, role)
		}
		seen[role] = g
	}
}

func TestDeriveRole_UnknownGradePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-enum grade")
		}
	}()
	DeriveRole(Grade("INTERN"))
}
