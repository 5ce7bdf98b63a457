package discovery

import (
	"testing"
)

func TestInstance_String(t *testing.T) {
	instance := &Instance{
		Name:     "ecume-staging",
		Hostname: "ecume-api-01.local",
		IP:       "192.168.1.40",
		Port:     5000,
	}

	expected := "Ecume API ecume-staging (ecume-api-01.local) at 192.168.1.40:5000"
	if instance.String() != expected {
		t.Errorf("Instance.String() = %v, want %v", instance.String(), expected)
	}
}

func TestInstance_BaseURL(t *testing.T) {
	tests := []struct {
		name     string
		instance *Instance
		expected string
	}{
		{
			name: "standard port",
			instance: &Instance{
				IP:   "192.168.1.40",
				Port: 5000,
			},
			expected: "http://192.168.1.40:5000",
		},
		{
			name: "custom port",
			instance: &Instance{
				IP:   "10.0.0.5",
				Port: 8080,
			},
			expected: "http://10.0.0.5:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.instance.BaseURL(); got != tt.expected {
				t.Errorf("Instance.BaseURL() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestInstance_Environment(t *testing.T) {
	tests := []struct {
		name     string
		instance *Instance
		expected string
	}{
		{
			name:     "advertised env",
			instance: &Instance{Metadata: map[string]string{"env": "staging"}},
			expected: "staging",
		},
		{
			name:     "missing env",
			instance: &Instance{Metadata: map[string]string{"version": "2.3.1"}},
			expected: "unknown",
		},
		{
			name:     "nil metadata",
			instance: &Instance{},
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.instance.Environment(); got != tt.expected {
				t.Errorf("Instance.Environment() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestInstance_GetMetadata(t *testing.T) {
	instance := &Instance{
		Metadata: map[string]string{
			"env":     "prod",
			"version": "2.3.1",
		},
	}

	if got := instance.GetMetadata("version"); got != "2.3.1" {
		t.Errorf("GetMetadata(version) = %v", got)
	}
	if got := instance.GetMetadata("missing"); got != "" {
		t.Errorf("GetMetadata(missing) = %v, want empty", got)
	}

	empty := &Instance{}
	if got := empty.GetMetadata("env"); got != "" {
		t.Errorf("GetMetadata() with nil map = %v, want empty", got)
	}
}
