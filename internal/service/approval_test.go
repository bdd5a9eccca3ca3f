package service

import (
	"context"
	"testing"
)

func TestApprove_Idempotent(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	_, _ = f.svc.Register(ctx, ngoInput("n@x.com"))

	first, err := f.svc.Approve(ctx, "n@x.com", "ngo")
	if err != nil {
		t.Fatal(err)
	}
	writes := f.store.Writes
	second, err := f.svc.Approve(ctx, "n@x.com", "ngo")
	if err != nil {
		t.Fatal(err)
	}
	if f.store.Writes != writes {
		t.Errorf("re-approval wrote to the store")
	}
	if first.ID != second.ID || !second.Approved || first.UpdatedAt != second.UpdatedAt {
		t.Errorf("state changed: %+v vs %+v", first, second)
	}
	a, b := first.ApprovalView(), second.ApprovalView()
	for k := range a {
		if a[k] != b[k] {
			t.Errorf("response field %s differs", k)
		}
	}
}

func TestApprove_Errors(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	_, _ = f.svc.Register(ctx, ngoInput("n@x.com"))

	_, err := f.svc.Approve(ctx, "", "ngo")
	wantKind(t, err, KindValidation)
	_, err = f.svc.Approve(ctx, "n@x.com", "superuser")
	wantKind(t, err, KindValidation)

	// constrained to the claimed role
	_, err = f.svc.Approve(ctx, "n@x.com", "volunteer")
	e := wantKind(t, err, KindNotFound)
	if e.Message != "User not found" || e.Details["userType"] != "volunteer" {
		t.Errorf("unexpected %+v", e)
	}
}
