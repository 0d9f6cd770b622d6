package domain

import "testing"

func TestNormalizeGSTIN_Idempotent(t *testing.T) {
	once := NormalizeGSTIN("27aaaaa0000a1z5")
	twice := NormalizeGSTIN(once)

	if once != "27AAAAA0000A1Z5" {
		t.Fatalf("expected upper-cased GSTIN, got %s", once)
	}
	if once != twice {
		t.Fatalf("normalization must be idempotent: %s vs %s", once, twice)
	}
}

func TestRole_Valid(t *testing.T) {
	if !RoleAdmin.Valid() || !RoleBroker.Valid() {
		t.Fatalf("known roles must be valid")
	}
	if Role("SUPERUSER").Valid() {
		t.Fatalf("unknown role must be invalid")
	}
}

func TestEntityType_Valid(t *testing.T) {
	if !EntityExporter.Valid() || !EntityImporter.Valid() {
		t.Fatalf("known entity types must be valid")
	}
	if EntityType("TRADER").Valid() {
		t.Fatalf("unknown entity type must be invalid")
	}
}
