package config

import "time"

// Registry represents the entire user configuration file.
// It stores named API profiles and application preferences.
type Registry struct {
	Version     int                 `yaml:"version"`
	Profiles    map[string]*Profile `yaml:"profiles,omitempty"` // Keyed by profile name
	Preferences *Preferences        `yaml:"preferences,omitempty"`
}

// Profile represents one back-office API endpoint the user works against.
type Profile struct {
	BaseURL        string    `yaml:"base_url"`                  // API base URL (e.g., "http://localhost:5000")
	TimeoutSeconds int       `yaml:"timeout_seconds,omitempty"` // Per-request timeout (0 = client default)
	LastUsed       time.Time `yaml:"last_used,omitempty"`       // Last time this profile was selected
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultProfile  string `yaml:"default_profile"`  // Profile selected when --profile is not passed
	DiscoverTimeout int    `yaml:"discover_timeout"` // mDNS discovery timeout in seconds
}

// DefaultProfileName is the profile created on first run, pointing at the
// conventional local development server.
const DefaultProfileName = "local"

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Profiles: map[string]*Profile{
			DefaultProfileName: {
				BaseURL: "http://localhost:5000",
			},
		},
		Preferences: &Preferences{
			DefaultProfile:  DefaultProfileName,
			DiscoverTimeout: 10,
		},
	}
}

// GetProfile retrieves a profile by name.
// Returns nil if the profile doesn't exist in the registry.
func (r *Registry) GetProfile(name string) *Profile {
	return r.Profiles[name]
}

// EnsureProfile ensures a profile entry exists in the registry.
// If the profile doesn't exist, creates a new entry with the given base URL.
// Returns the profile entry (existing or newly created).
func (r *Registry) EnsureProfile(name, baseURL string) *Profile {
	if r.Profiles == nil {
		r.Profiles = make(map[string]*Profile)
	}

	if profile, exists := r.Profiles[name]; exists {
		return profile
	}

	profile := &Profile{BaseURL: baseURL}
	r.Profiles[name] = profile
	return profile
}

// TouchProfile updates the last-used timestamp for a profile.
func (r *Registry) TouchProfile(name string) {
	if profile := r.GetProfile(name); profile != nil {
		profile.LastUsed = time.Now()
	}
}

// SetDefaultProfile records which profile commands use when --profile is
// not passed.
func (r *Registry) SetDefaultProfile(name string) {
	if r.Preferences == nil {
		r.Preferences = &Preferences{DiscoverTimeout: 10}
	}
	r.Preferences.DefaultProfile = name
}

// ActiveProfile resolves the profile to use for a command: the named one if
// given, otherwise the configured default, otherwise the built-in local
// profile.
func (r *Registry) ActiveProfile(name string) *Profile {
	if name != "" {
		if profile := r.GetProfile(name); profile != nil {
			return profile
		}
	}
	if r.Preferences != nil && r.Preferences.DefaultProfile != "" {
		if profile := r.GetProfile(r.Preferences.DefaultProfile); profile != nil {
			return profile
		}
	}
	return r.GetProfile(DefaultProfileName)
}
