package preemptrt

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// FileMode is the permission applied to profile files written by
// SaveProfiles.
const FileMode = 0o644

// Profile is a named scheduling configuration: a policy and priority plus
// optional affinity and nice adjustments. Profiles are what LoadProfiles
// and SaveProfiles persist, and Apply installs one on a thread.
type Profile struct {
	// Name identifies the profile within a profile file
	Name string `yaml:"name"`
	// Policy is the scheduling policy, stored by name in YAML
	Policy Policy `yaml:"policy"`
	// Priority is the scheduling priority for real-time policies
	Priority int `yaml:"priority"`
	// Nice, when non-zero, is applied via setpriority(2) before the policy
	Nice int `yaml:"nice,omitempty"`
	// CPUs, when non-empty, pins the thread to these CPU indices
	CPUs []int `yaml:"cpus,omitempty,flow"`
	// ResetOnFork makes children of the thread start back on PolicyOther
	ResetOnFork bool `yaml:"reset_on_fork,omitempty"`
}

// profileFile is the document layout of a profile file.
type profileFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// Apply installs the profile on the given thread: affinity first, so any
// real-time execution that follows is already confined to the chosen CPUs,
// then nice, then the policy and priority with the same range validation as
// Request.Apply.
func (p Profile) Apply(tid TID) error {
	if len(p.CPUs) > 0 {
		if err := SetAffinity(tid, p.CPUs); err != nil {
			return err
		}
	}
	if p.Nice != 0 {
		if err := SetNice(tid, p.Nice); err != nil {
			return err
		}
	}

	req := Request{
		Policy:      p.Policy,
		Param:       Param{Priority: p.Priority},
		ResetOnFork: p.ResetOnFork,
	}
	return req.Apply(tid)
}

// LoadProfiles reads a YAML profile file. Names must be present and unique,
// and unknown policy names fail the load rather than defaulting.
func LoadProfiles(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preemptrt: load profiles: %w", err)
	}
	return parseProfiles(path, data)
}

// parseProfiles decodes and validates profile file content. The path is
// only used in error messages.
func parseProfiles(path string, data []byte) ([]Profile, error) {
	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("preemptrt: load profiles %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(pf.Profiles))
	for i, p := range pf.Profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("preemptrt: load profiles %s: profile %d has no name", path, i)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("preemptrt: load profiles %s: duplicate profile %q", path, p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	return pf.Profiles, nil
}

// SaveProfiles writes the profiles to path atomically: the file is replaced
// only once the new content is fully on disk, so a concurrent LoadProfiles
// never sees a partial write.
func SaveProfiles(path string, profiles []Profile) error {
	data, err := yaml.Marshal(profileFile{Profiles: profiles})
	if err != nil {
		return fmt.Errorf("preemptrt: save profiles: %w", err)
	}
	if err := renameio.WriteFile(path, data, FileMode); err != nil {
		return fmt.Errorf("preemptrt: save profiles: %w", err)
	}
	return nil
}

// FindProfile returns the named profile from a loaded set.
func FindProfile(profiles []Profile, name string) (Profile, bool) {
	for _, p := range profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}
