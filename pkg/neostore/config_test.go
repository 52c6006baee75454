package neostore

import "testing"

func TestConfigValidate(t *testing.T) {
	valid := Config{URI: "bolt://localhost:7687", Username: "neo4j", Password: "secret"}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cases := []struct {
		name string
		cfg  Config
	}{
		{"missing uri", Config{Username: "neo4j", Password: "secret"}},
		{"missing username", Config{URI: "bolt://localhost:7687", Password: "secret"}},
		{"missing password", Config{URI: "bolt://localhost:7687", Username: "neo4j"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	if _, err := New(Config{}, nil); err == nil {
		t.Error("expected error for empty config")
	}
}

func TestFetchOverviewRequiresConnection(t *testing.T) {
	s, err := New(Config{URI: "bolt://localhost:7687", Username: "neo4j", Password: "secret"}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := s.FetchOverview(t.Context()); err == nil {
		t.Error("expected error before Connect")
	}
	if err := s.Ping(t.Context()); err == nil {
		t.Error("expected ping error before Connect")
	}
}
