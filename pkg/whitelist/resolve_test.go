package whitelist

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		edition string
		want    string
	}{
		{"Steve123", "Java", "Steve123"},
		{"Steve123", "java", "Steve123"},
		{"Alex", "Bedrock", "1Alex"},
		{"Alex", "bedrock edition", "1Alex"},
		{"Alex", "BEDROCK", "1Alex"},
		{"  Steve123  ", "Java", "Steve123"},
		{" Alex ", "Bedrock", "1Alex"},
		{"Steve123", "", "Steve123"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.edition, func(t *testing.T) {
			if got := Resolve(tt.name, tt.edition); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.name, tt.edition, got, tt.want)
			}
		})
	}
}

func TestOfflineUUIDDeterministic(t *testing.T) {
	a := OfflineUUID("Steve123")
	b := OfflineUUID("Steve123")
	if a != b {
		t.Errorf("OfflineUUID no es determinista: %v != %v", a, b)
	}

	c := OfflineUUID("Alex")
	if a == c {
		t.Error("OfflineUUID debería diferir para nombres distintos")
	}
}

func TestOfflineUUIDFormat(t *testing.T) {
	id := OfflineUUID("Steve123")

	if id.Version() != 3 {
		t.Errorf("Version() = %d, want 3", id.Version())
	}

	// 36 chars, standard textual form
	if len(id.String()) != 36 {
		t.Errorf("String() length = %d, want 36", len(id.String()))
	}
}
